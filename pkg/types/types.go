package types

// TopicStatus summarizes one topic for /status and /topics.
type TopicStatus struct {
	// Unique topic name.
	// example: AAPL
	Name string `json:"name" example:"AAPL"`
	// Last published (or initial) value.
	// example: 145
	Value any `json:"value" example:"145"`
	// Sequence number of the last publish; 0 before the first publish.
	// example: 1
	Seq uint64 `json:"seq" example:"1"`
	// Number of subscriber handles currently attached.
	// example: 2
	Subscribers int `json:"subscribers" example:"2"`
	// Last time the topic was created or published to (unix seconds).
	// example: 1700000000
	UpdatedUnix int64 `json:"updated_unix" example:"1700000000"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Engine state: running or closed.
	// example: running
	State string `json:"state" example:"running"`
	// Delivery mode: ordered or unordered.
	// example: ordered
	DeliveryMode string `json:"delivery_mode" example:"ordered"`
	// Upper bound on concurrently running deliveries (0 = unbounded).
	// example: 0
	MaxConcurrency int `json:"max_concurrency" example:"0"`
	// Registered topics.
	Topics []TopicStatus `json:"topics"`
	// Total subscriber handles across all topics.
	// example: 3
	Subscriptions int `json:"subscriptions" example:"3"`
	// Accepted publishes since start.
	// example: 12
	PublishedTotal uint64 `json:"published_total" example:"12"`
	// Successful deliveries since start.
	// example: 24
	DeliveredTotal uint64 `json:"delivered_total" example:"24"`
	// Failed deliveries since start.
	// example: 1
	FailedTotal uint64 `json:"failed_total" example:"1"`
	// Failures that could not be queued on the failure stream.
	// example: 0
	FailuresDropped uint64 `json:"failures_dropped" example:"0"`
	// Deliveries queued or running right now.
	// example: 0
	Pending int64 `json:"pending" example:"0"`
	// Uptime of the engine in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
