package cli

import (
	"context"
	"fmt"
	"strings"

	"notifyd/internal/config"
	"notifyd/internal/engine"
	"notifyd/internal/subscriber"
)

// buildSubscriber maps a SubscriberSpec kind to one of the built-in subscribers.
func (a *app) buildSubscriber(label string, spec config.SubscriberSpec) (engine.Subscriber[float64], error) {
	switch spec.Kind {
	case "display":
		return subscriber.NewDisplay[float64](label, a.out), nil
	case "log":
		return subscriber.NewLog[float64](label, a.log), nil
	case "email":
		if spec.Recipient == "" {
			return nil, asUsage(fmt.Errorf("email subscriber needs --recipient"))
		}
		return subscriber.NewNotifier[float64](spec.Recipient, func(ctx context.Context, m subscriber.Message) error {
			_, err := fmt.Fprintf(a.out, "[%s] mail to %s: %s: %s\n", label, m.To, m.Subject, m.Body)
			return err
		}), nil
	case "trader":
		return subscriber.NewTrader(label, spec.BuyBelow, spec.SellAbove, a.log), nil
	case "record":
		r := subscriber.NewRecorder[float64]()
		a.recorders[label] = r
		return r, nil
	default:
		return nil, asUsage(fmt.Errorf("unknown subscriber kind %q (want one of %s)", spec.Kind, strings.Join(config.SubscriberKinds, ", ")))
	}
}
