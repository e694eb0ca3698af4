package httpapi

import (
	"notifyd/internal/engine"
	"notifyd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// *engine.Engine[float64] satisfies it.
type Service interface {
	CreateTopic(name string, initial float64) error
	Publish(name string, value float64) (engine.Notification[float64], error)
	RemoveTopic(name string) error
	Topic(name string) (engine.TopicInfo[float64], error)
	Topics() []engine.TopicInfo[float64]
	Status() types.StatusResponse
	Ready() bool
}
