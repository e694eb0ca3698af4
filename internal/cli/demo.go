package cli

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"notifyd/internal/engine"
	"notifyd/internal/subscriber"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the weather-station and stock-market scenarios",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, argv []string) error {
			return a.runDemo(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// runDemo uses its own engine so it never touches seeded session state.
func (a *app) runDemo(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := a.newEngine()
	if err != nil {
		return err
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		_ = e.Close(cctx)
	}()
	d := demo{ctx: ctx, e: e, out: out}

	fmt.Fprintln(out, "== weather station ==")
	d.must(e.CreateTopic("temperature", 20))
	phone := d.subscribe("temperature", subscriber.NewDisplay[float64]("phone", out))
	d.subscribe("temperature", subscriber.NewDisplay[float64]("window", out))
	d.publish("temperature", 25)
	d.publish("temperature", 30)
	d.unsubscribe("temperature", phone)
	d.publish("temperature", 18)
	d.publish("temperature", math.NaN())

	fmt.Fprintln(out, "== stock market ==")
	d.must(e.CreateTopic("AAPL", 150))
	robot := subscriber.NewTrader("robot", 140, 160, a.log)
	mail := subscriber.NewNotifier[float64]("investor@example.com", nil)
	d.subscribe("AAPL", robot)
	d.subscribe("AAPL", mail)
	b := d.subscribe("AAPL", subscriber.NewDisplay[float64]("B", out))
	d.publish("AAPL", 145)
	d.unsubscribe("AAPL", b)
	d.publish("AAPL", 135)
	d.publish("AAPL", 165)
	d.publish("GOOG", 100)

	for _, s := range robot.Signals() {
		fmt.Fprintf(out, "robot: %s %s at %v (seq %d)\n", s.Action, s.Topic, s.Price, s.Seq)
	}
	for _, m := range mail.Outbox() {
		fmt.Fprintf(out, "mail to %s: %s\n", m.To, m.Subject)
	}
	if d.err != nil {
		return d.err
	}
	st := e.Stats()
	fmt.Fprintf(out, "published=%d delivered=%d failed=%d\n", st.Published, st.Delivered, st.Failed)
	return nil
}

// demo sequences scenario steps; the first unexpected error stops later steps.
type demo struct {
	ctx context.Context
	e   *engine.Engine[float64]
	out io.Writer
	err error
}

func (d *demo) must(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

func (d *demo) subscribe(topic string, s engine.Subscriber[float64]) engine.HandleID {
	if d.err != nil {
		return ""
	}
	id, err := d.e.Subscribe(topic, s)
	d.must(err)
	return id
}

func (d *demo) unsubscribe(topic string, id engine.HandleID) {
	if d.err != nil {
		return
	}
	d.must(d.e.Unsubscribe(topic, id))
	d.must(d.e.Drain(d.ctx))
}

// publish prints the outcome; rejected publishes are part of the scenario.
func (d *demo) publish(topic string, v float64) {
	if d.err != nil {
		return
	}
	n, err := d.e.Publish(topic, v)
	if err != nil {
		fmt.Fprintf(d.out, "publish %s %v rejected: %v\n", topic, v, err)
		return
	}
	fmt.Fprintf(d.out, "published %s#%d = %v\n", n.Topic, n.Seq, n.Value)
	d.must(d.e.Drain(d.ctx))
}
