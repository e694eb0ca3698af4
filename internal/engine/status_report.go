package engine

import (
	"time"

	"notifyd/pkg/types"
)

// Stats holds the engine's cumulative counters.
type Stats struct {
	Published       uint64
	Delivered       uint64
	Failed          uint64
	FailuresDropped uint64
	Pending         int64
}

// Stats returns a snapshot of the cumulative counters. Concurrent deliveries
// may advance them after it returns.
func (e *Engine[T]) Stats() Stats {
	return Stats{
		Published:       e.published.Load(),
		Delivered:       e.disp.delivered.Load(),
		Failed:          e.disp.failed.Load(),
		FailuresDropped: e.disp.dropped.Load(),
		Pending:         e.disp.pending.Load(),
	}
}

// Status builds a detailed status response for /status.
func (e *Engine[T]) Status() types.StatusResponse {
	topics := e.Topics()
	st := e.Stats()
	resp := types.StatusResponse{
		State:           string(e.State()),
		DeliveryMode:    string(e.disp.mode),
		MaxConcurrency:  e.disp.maxConc,
		Topics:          make([]types.TopicStatus, 0, len(topics)),
		PublishedTotal:  st.Published,
		DeliveredTotal:  st.Delivered,
		FailedTotal:     st.Failed,
		FailuresDropped: st.FailuresDropped,
		Pending:         st.Pending,
		UptimeSeconds:   int64(time.Since(e.startTime).Seconds()),
		ServerTimeUnix:  time.Now().Unix(),
	}
	for _, t := range topics {
		resp.Subscriptions += t.Subscribers
		resp.Topics = append(resp.Topics, TopicStatus(t))
	}
	return resp
}

// TopicStatus converts a TopicInfo to its API representation.
func TopicStatus[T any](t TopicInfo[T]) types.TopicStatus {
	return types.TopicStatus{
		Name:        t.Name,
		Value:       t.Value,
		Seq:         t.Seq,
		Subscribers: t.Subscribers,
		UpdatedUnix: t.UpdatedAt.Unix(),
	}
}
