package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"notifyd/internal/common/fsutil"
	"notifyd/internal/config"
	"notifyd/internal/engine"
	"notifyd/internal/httpapi"
	"notifyd/internal/subscriber"
)

// drainTimeout bounds how long a command waits for deliveries to finish.
const drainTimeout = 5 * time.Second

// app carries one CLI invocation: resolved configuration, logger and the
// session engine shared by every command it runs (one command, or a whole
// shell script).
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	out    io.Writer
	errOut io.Writer

	cfg config.Config
	log zerolog.Logger

	eng     *engine.Engine[float64]
	labels  map[string]binding
	counter map[string]int
	// recorders outlive their subscription so "received" works after unsubscribe.
	recorders map[string]*subscriber.Recorder[float64]
}

// binding remembers which topic a labelled handle belongs to.
type binding struct {
	topic string
	id    engine.HandleID
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:       &syncWriter{w: out},
		errOut:    errOut,
		log:       zerolog.Nop(),
		labels:    map[string]binding{},
		counter:   map[string]int{},
		recorders: map[string]*subscriber.Recorder[float64]{},
	}
}

// setup resolves configuration with precedence flags > env > file > defaults
// and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, err := fsutil.ResolveConfigPath(a.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		if a.cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	a.cfg.LogLevel = pick(flags.Changed("log-level"), a.logLevel, envStr("NOTIFYD_LOG_LEVEL", ""), a.cfg.LogLevel)
	a.cfg.LogFormat = pick(flags.Changed("log-format"), a.logFormat, envStr("NOTIFYD_LOG_FORMAT", ""), a.cfg.LogFormat)
	a.cfg.DeliveryMode = pick(false, "", envStr("NOTIFYD_DELIVERY_MODE", ""), a.cfg.DeliveryMode)
	a.cfg.MaxConcurrency = envInt("NOTIFYD_MAX_CONCURRENCY", a.cfg.MaxConcurrency)
	a.cfg.Apply()
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if a.log, err = newLogger(a.cfg.LogLevel, a.cfg.LogFormat, a.errOut); err != nil {
		return asUsage(err)
	}
	engine.SetLogger(a.log)
	httpapi.SetLogger(a.log)
	if path != "" {
		a.log.Debug().Str("path", path).Msg("config loaded")
	}
	return nil
}

func pick(changed bool, flagVal, envVal, cfgVal string) string {
	switch {
	case changed:
		return flagVal
	case envVal != "":
		return envVal
	default:
		return cfgVal
	}
}

// engine returns the session engine, building and seeding it on first use.
func (a *app) engine() (*engine.Engine[float64], error) {
	if a.eng != nil {
		return a.eng, nil
	}
	e, err := a.newEngine()
	if err != nil {
		return nil, err
	}
	for _, t := range a.cfg.Topics {
		if err := e.CreateTopic(t.Name, t.Value); err != nil {
			_ = e.Close(context.Background())
			return nil, fmt.Errorf("seed topic %s: %w", t.Name, err)
		}
	}
	a.eng = e
	for _, s := range a.cfg.Subscribers {
		if _, _, err := a.attach(s); err != nil {
			return nil, fmt.Errorf("seed subscriber %s on %s: %w", s.Kind, s.Topic, err)
		}
	}
	return e, nil
}

func (a *app) newEngine() (*engine.Engine[float64], error) {
	ec, err := a.cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	ec.Publisher = subscriber.NewLogPublisher(a.log)
	return engine.NewWithConfig(ec), nil
}

// attach builds a subscriber from spec and subscribes it. An empty label is
// replaced by kind-N.
func (a *app) attach(spec config.SubscriberSpec) (string, engine.HandleID, error) {
	e, err := a.engine()
	if err != nil {
		return "", "", err
	}
	label := spec.Label
	if label == "" {
		a.counter[spec.Kind]++
		label = fmt.Sprintf("%s-%d", spec.Kind, a.counter[spec.Kind])
	}
	if _, dup := a.labels[label]; dup {
		return "", "", asUsage(fmt.Errorf("label %q already in use", label))
	}
	sub, err := a.buildSubscriber(label, spec)
	if err != nil {
		return "", "", err
	}
	id, err := e.Subscribe(spec.Topic, sub)
	if err != nil {
		return "", "", err
	}
	a.labels[label] = binding{topic: spec.Topic, id: id}
	return label, id, nil
}

// resolveHandle maps a label to its handle id; anything else is taken as an id.
func (a *app) resolveHandle(s string) engine.HandleID {
	if b, ok := a.labels[s]; ok {
		return b.id
	}
	return engine.HandleID(s)
}

func (a *app) forget(id engine.HandleID) {
	for label, b := range a.labels {
		if b.id == id {
			delete(a.labels, label)
		}
	}
}

// drain waits for outstanding deliveries so their output precedes the next command.
func (a *app) drain() error {
	if a.eng == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	return a.eng.Drain(ctx)
}

// close drains and shuts the session engine down.
func (a *app) close() error {
	if a.eng == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	_ = a.eng.Drain(ctx)
	err := a.eng.Close(ctx)
	st := a.eng.Stats()
	a.log.Debug().
		Uint64("published", st.Published).
		Uint64("delivered", st.Delivered).
		Uint64("failed", st.Failed).
		Msg("engine closed")
	a.eng = nil
	return err
}

// syncWriter serializes writes from concurrent deliveries.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
