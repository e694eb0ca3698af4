package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"notifyd/internal/config"
	"notifyd/internal/engine"
	"notifyd/pkg/types"
)

// args wraps a cobra positional-args validator so violations exit as usage errors.
func args(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		return asUsage(v(cmd, a))
	}
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, asUsage(fmt.Errorf("invalid value %q: not a number", s))
	}
	return v, nil
}

// engineCommands returns the commands that operate on the session engine.
// They are mounted on the root command and on every shell line.
func engineCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newCreateTopicCmd(a),
		newPublishCmd(a),
		newSubscribeCmd(a),
		newUnsubscribeCmd(a),
		newListCmd(a),
		newRemoveTopicCmd(a),
		newReceivedCmd(a),
	}
}

func newCreateTopicCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "create-topic NAME [VALUE]",
		Short:   "Register a topic with an initial value (default 0)",
		Example: "  notifyd create-topic AAPL 150",
		Args:    args(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			var v float64
			if len(argv) == 2 {
				var err error
				if v, err = parseValue(argv[1]); err != nil {
					return err
				}
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			if err := e.CreateTopic(argv[0], v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s = %v\n", argv[0], v)
			return nil
		},
	}
}

func newPublishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "publish NAME VALUE",
		Short:   "Publish a value and wait for subscribers to be notified",
		Example: "  notifyd publish AAPL 145",
		Args:    args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			v, err := parseValue(argv[1])
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			n, err := e.Publish(argv[0], v)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s#%d = %v\n", n.Topic, n.Seq, n.Value)
			return a.drain()
		},
	}
}

func newSubscribeCmd(a *app) *cobra.Command {
	var spec config.SubscriberSpec
	cmd := &cobra.Command{
		Use:   "subscribe NAME",
		Short: "Attach a built-in subscriber to a topic",
		Example: "  notifyd subscribe AAPL --as A\n" +
			"  notifyd subscribe AAPL --kind trader --buy-below 140 --sell-above 160\n" +
			"  notifyd subscribe temperature --kind email --recipient ops@example.com",
		Args: args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			spec.Topic = argv[0]
			label, id, err := a.attach(spec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "subscribed %s to %s (handle %s)\n", label, spec.Topic, id)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&spec.Label, "as", "", "Label used to refer to this subscription later")
	f.StringVar(&spec.Kind, "kind", "display", "Subscriber kind: display|log|email|trader|record")
	f.StringVar(&spec.Recipient, "recipient", "", "Recipient for email subscribers")
	f.Float64Var(&spec.BuyBelow, "buy-below", 0, "Trader: signal BUY at or below this price (0 disables)")
	f.Float64Var(&spec.SellAbove, "sell-above", 0, "Trader: signal SELL at or above this price (0 disables)")
	return cmd
}

func newUnsubscribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "unsubscribe NAME HANDLE",
		Short:   "Detach a subscription by label or handle id",
		Example: "  notifyd unsubscribe AAPL B",
		Args:    args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			id := a.resolveHandle(argv[1])
			if err := e.Unsubscribe(argv[0], id); err != nil {
				return err
			}
			a.forget(id)
			fmt.Fprintf(cmd.OutOrStdout(), "unsubscribed %s from %s\n", argv[1], argv[0])
			return a.drain()
		},
	}
}

func newRemoveTopicCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-topic NAME",
		Short: "Delete a topic and detach all of its subscribers",
		Args:  args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			if err := e.RemoveTopic(argv[0]); err != nil {
				return err
			}
			for label, b := range a.labels {
				if b.topic == argv[0] {
					delete(a.labels, label)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", argv[0])
			return a.drain()
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics with their value, sequence and subscriber count",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, argv []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			topics := e.Topics()
			switch output {
			case "json":
				resp := types.TopicsResponse{Topics: make([]types.TopicStatus, 0, len(topics))}
				for _, t := range topics {
					resp.Topics = append(resp.Topics, engine.TopicStatus(t))
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			case "table", "":
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tVALUE\tSEQ\tSUBSCRIBERS")
				for _, t := range topics {
					fmt.Fprintf(tw, "%s\t%v\t%d\t%d\n", t.Name, t.Value, t.Seq, t.Subscribers)
				}
				return tw.Flush()
			default:
				return asUsage(fmt.Errorf("unknown output format %q (want table or json)", output))
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func newReceivedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "received LABEL",
		Short: "Print what a record subscriber has received so far",
		Example: "  subscribe AAPL --kind record --as audit\n" +
			"  received audit",
		Args: args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			r, ok := a.recorders[argv[0]]
			if !ok {
				return asUsage(fmt.Errorf("no record subscriber labelled %q", argv[0]))
			}
			if err := a.drain(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range r.Notifications() {
				fmt.Fprintf(out, "%s#%d = %v\n", n.Topic, n.Seq, n.Value)
			}
			for _, topic := range r.Unsubscribed() {
				fmt.Fprintf(out, "unsubscribed from %s\n", topic)
			}
			return nil
		},
	}
}
