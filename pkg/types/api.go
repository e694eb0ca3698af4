package types

// CreateTopicRequest is the body of POST /topics.
type CreateTopicRequest struct {
	// Required topic name.
	// example: AAPL
	Name string `json:"name" example:"AAPL"`
	// Initial value of the topic.
	// example: 150
	Value float64 `json:"value" example:"150"`
}

// PublishRequest is the body of POST /topics/{name}/publish.
type PublishRequest struct {
	// New value for the topic. Must not be NaN.
	// example: 145
	Value *float64 `json:"value" example:"145"`
}

// PublishResponse describes the notification recorded by a publish.
type PublishResponse struct {
	// example: AAPL
	Topic string `json:"topic" example:"AAPL"`
	// example: 145
	Value float64 `json:"value" example:"145"`
	// Sequence number assigned to this publish.
	// example: 1
	Seq uint64 `json:"seq" example:"1"`
	// Publish time (unix nanoseconds).
	// example: 1700000000000000000
	PublishedUnixNano int64 `json:"published_unix_nano" example:"1700000000000000000"`
}

// TopicsResponse wraps the list returned by GET /topics.
type TopicsResponse struct {
	Topics []TopicStatus `json:"topics"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unknown topic: GOOG
	Error string `json:"error" example:"unknown topic: GOOG"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
