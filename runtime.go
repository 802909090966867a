package xgxsuppress

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// SuppressedPrefix introduces every suppressed error in printed traces.
const SuppressedPrefix = "Suppressed: "

// Runtime binds one selected Strategy to the side table that backs it.
// A Runtime is immutable after construction and safe for concurrent use.
type Runtime struct {
	sel    Selection
	table  *SideTable
	logger *zap.Logger
}

type options struct {
	probe    Probe
	probeSet bool
	cfg      *Config
	logger   *zap.Logger
}

// Option configures NewRuntime and Init.
type Option func(*options)

// WithProbe sets the capability probe. A nil probe is a detection failure.
func WithProbe(p Probe) Option {
	return func(o *options) {
		o.probe = p
		o.probeSet = true
	}
}

// WithConfig sets the configuration instead of reading the environment.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// WithLogger sets the logger used for selection and eviction messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewRuntime runs strategy selection and returns a Runtime for it. Unlike
// Init it installs nothing; it is meant for tests and for embedding a private
// suppression domain.
func NewRuntime(opts ...Option) *Runtime {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	if !o.probeSet {
		o.probe = EnvProbe("")
	}
	if o.cfg == nil {
		cfg, err := ConfigFromEnv()
		if err != nil {
			o.logger.Warn("invalid suppression config in environment; using defaults", zap.Error(err))
		}
		o.cfg = &cfg
	}
	return newRuntime(Select(o.probe, *o.cfg, o.logger), o.logger)
}

func newRuntime(sel Selection, log *zap.Logger) *Runtime {
	if log == nil {
		log = Logger()
	}
	return &Runtime{sel: sel, table: newSideTable(log), logger: log}
}

// Strategy returns the strategy selected for r.
func (r *Runtime) Strategy() Strategy { return r.sel.Strategy }

// CapabilityLevel returns the level observed at selection, or LevelUnknown.
func (r *Runtime) CapabilityLevel() int { return r.sel.Level }

// Selection returns the full selection outcome, including any detection error.
func (r *Runtime) Selection() Selection { return r.sel }

// SideTable exposes the table backing the Emulated strategy.
func (r *Runtime) SideTable() *SideTable { return r.table }

// AddSuppressed records suppressed against receiver.
//
// Emulated (and Native for receivers without Suppressor support) fails with
// invalid_argument on self-suppression or an untrackable receiver, and with
// null_argument on a nil argument. Disabled never fails.
func (r *Runtime) AddSuppressed(receiver, suppressed error) error {
	switch r.sel.Strategy {
	case StrategyNative:
		if s, ok := receiver.(Suppressor); ok {
			return s.AddSuppressed(suppressed)
		}
		return r.emulateAdd(receiver, suppressed)
	case StrategyEmulated:
		return r.emulateAdd(receiver, suppressed)
	default:
		return nil
	}
}

// GetSuppressed returns the errors suppressed by receiver in insertion order.
// The result is never nil.
func (r *Runtime) GetSuppressed(receiver error) []error {
	switch r.sel.Strategy {
	case StrategyNative:
		if s, ok := receiver.(Suppressor); ok {
			if out := s.Suppressed(); out != nil {
				return out
			}
			return []error{}
		}
		return r.emulateGet(receiver)
	case StrategyEmulated:
		return r.emulateGet(receiver)
	default:
		return []error{}
	}
}

// PrintStackTrace writes receiver's trace to w (os.Stderr when w is nil),
// followed by one "Suppressed: " section per suppressed error.
func (r *Runtime) PrintStackTrace(receiver error, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	printTrace(w, receiver)

	switch r.sel.Strategy {
	case StrategyNative:
		switch receiver.(type) {
		case *failureErr, *assertionErr:
			// %+v already rendered the native list.
			return
		}
		if s, ok := receiver.(Suppressor); ok {
			for _, sup := range s.Suppressed() {
				printSuppressed(w, sup)
			}
			return
		}
		r.emulatePrint(receiver, w)
	case StrategyEmulated:
		r.emulatePrint(receiver, w)
	}
}

// SuppressedDeep collects the suppressed errors of every node in err's
// unwrap graph, in pre-order.
func (r *Runtime) SuppressedDeep(err error) []error {
	out := []error{}
	Walk(err, func(node error) bool {
		out = append(out, r.GetSuppressed(node)...)
		return true
	})
	return out
}

func (r *Runtime) emulateAdd(receiver, suppressed error) error {
	if suppressed == nil {
		return NullArgument("suppressed")
	}
	if receiver == nil {
		return NullArgument("receiver")
	}
	if sameIdentity(receiver, suppressed) {
		return selfSuppression(suppressed)
	}
	list, err := r.table.GetOrCreate(receiver)
	if err != nil {
		return err
	}
	list.Append(suppressed)
	return nil
}

func (r *Runtime) emulateGet(receiver error) []error {
	if receiver == nil {
		return []error{}
	}
	list, ok := r.table.GetIfPresent(receiver)
	if !ok {
		return []error{}
	}
	return list.Snapshot()
}

func (r *Runtime) emulatePrint(receiver error, w io.Writer) {
	if receiver == nil {
		return
	}
	list, ok := r.table.GetIfPresent(receiver)
	if !ok {
		return
	}
	list.Each(func(sup error) { printSuppressed(w, sup) })
}

func printTrace(w io.Writer, err error) {
	if err == nil {
		_, _ = io.WriteString(w, "<nil>\n")
		return
	}
	_, _ = fmt.Fprintf(w, "%+v\n", err)
}

func printSuppressed(w io.Writer, err error) {
	_, _ = io.WriteString(w, SuppressedPrefix)
	printTrace(w, err)
}
