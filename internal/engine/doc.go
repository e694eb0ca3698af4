// Package engine provides an in-process, multi-topic publish/notify engine
// with concurrent fan-out. It is structured into small files by concern:
//
//   - engine.go: core Engine type, constructors, lifecycle (Drain, Close).
//   - config.go: EngineConfig, DeliveryMode and package defaults.
//   - types.go: Notification, HandleID, TopicInfo and internal topic/handle state.
//   - subscriber.go: the Subscriber capability and optional UnsubscribeNotifier hook.
//   - errors.go: error types and helpers (IsUnknownTopic, IsDuplicateTopic, IsInvalidValue).
//   - validate.go: DefaultValidate (NaN guard) and the Validator hook.
//   - registry.go: CreateTopic, Publish, RemoveTopic and read-only topic views.
//   - subscription.go: Subscribe, Unsubscribe, Subscribers.
//   - dispatch.go, mailbox.go: concurrent fan-out and per-handle ordering.
//   - failures.go: DeliveryFailure and the failure stream.
//   - events.go, eventpub_memory.go: lifecycle events.
//   - metrics.go: Prometheus collectors.
//   - status_report.go: Stats/Status reporting helpers.
//
// Concurrency model:
//
//   - Publish assigns the topic's next sequence number and takes a snapshot of
//     the topic's subscriber handles under the topic lock. Membership changes
//     made after that point are invisible to the fan-out already scheduled.
//   - Every handle in the snapshot is delivered to on its own goroutine;
//     Publish never waits for a subscriber.
//   - In DeliveryOrdered mode (default) a handle never runs two Receive calls
//     at once and sees sequence numbers in publish order. In DeliveryUnordered
//     mode there is one goroutine per (notification, handle) pair.
//   - Failures are isolated per delivery, reported on Failures() and to
//     EngineConfig.OnFailure, and never retried.
//
// External packages should use public methods only (New/NewWithConfig,
// CreateTopic, Publish, RemoveTopic, Subscribe, Unsubscribe, Status, Close).
package engine
