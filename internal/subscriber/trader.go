package subscriber

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"notifyd/internal/engine"
)

// Action is a trading decision.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// Signal is one decision taken by a Trader.
type Signal struct {
	Topic  string
	Action Action
	Price  float64
	Seq    uint64
}

// Trader watches price topics and signals BUY when a price is at or below
// BuyBelow and SELL when it is at or above SellAbove. A zero threshold is
// disabled.
type Trader struct {
	Label     string
	BuyBelow  float64
	SellAbove float64
	Logger    zerolog.Logger

	mu      sync.Mutex
	signals []Signal
}

func NewTrader(label string, buyBelow, sellAbove float64, l zerolog.Logger) *Trader {
	return &Trader{Label: label, BuyBelow: buyBelow, SellAbove: sellAbove, Logger: l}
}

func (t *Trader) Receive(ctx context.Context, n engine.Notification[float64]) error {
	var act Action
	switch {
	case t.BuyBelow != 0 && n.Value <= t.BuyBelow:
		act = ActionBuy
	case t.SellAbove != 0 && n.Value >= t.SellAbove:
		act = ActionSell
	default:
		return nil
	}
	sig := Signal{Topic: n.Topic, Action: act, Price: n.Value, Seq: n.Seq}
	t.mu.Lock()
	t.signals = append(t.signals, sig)
	t.mu.Unlock()
	t.Logger.Info().
		Str("trader", t.Label).
		Str("topic", n.Topic).
		Str("action", string(act)).
		Float64("price", n.Value).
		Msg("trade signal")
	return nil
}

// Signals returns the decisions taken so far in delivery order.
func (t *Trader) Signals() []Signal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Signal(nil), t.signals...)
}
