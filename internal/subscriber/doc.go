// Package subscriber holds ready-made engine.Subscriber implementations:
// a console display, a zerolog line logger, an email-style notifier, a
// threshold trader and an in-memory recorder. It also provides LogPublisher,
// an engine.EventPublisher that writes lifecycle events through zerolog.
package subscriber
