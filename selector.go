// selector.go — one-time strategy selection.
//
// Selection order:
//   1. Read the capability level from the Probe. A nil probe, an error or a
//      panic is a detection failure: it is logged and Disabled is selected.
//   2. level >= NativeSuppressionLevel → Native.
//   3. Otherwise Emulated, unless Config.DisableEmulation asks for Disabled.
//
// Config.Strategy overrides steps 1–3 (DisableEmulation still forces
// Disabled). Detection failure never aborts startup.
package xgxsuppress

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	// NativeSuppressionLevel is the lowest capability level at which errors
	// are expected to carry their own suppression support.
	NativeSuppressionLevel = 19

	// NativeCloseLevel is the lowest capability level at which io.Closer is
	// tried first when closing resources.
	NativeCloseLevel = 19

	// LevelUnknown is recorded when detection fails. It sits below every
	// threshold, so an unknown platform is treated as a low one.
	LevelUnknown = 0
)

// Probe reports the platform capability level.
type Probe interface {
	CapabilityLevel() (int, error)
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func() (int, error)

// CapabilityLevel calls f.
func (f ProbeFunc) CapabilityLevel() (int, error) { return f() }

// StaticProbe always reports level.
func StaticProbe(level int) Probe {
	return ProbeFunc(func() (int, error) { return level, nil })
}

// EnvProbe reads the level from the environment variable name
// (EnvCapabilityLevel when name is empty). A missing or malformed value is a
// detection failure.
func EnvProbe(name string) Probe {
	if name == "" {
		name = EnvCapabilityLevel
	}
	return ProbeFunc(func() (int, error) {
		v, ok := os.LookupEnv(name)
		if !ok {
			return LevelUnknown, New("capability level not reported", "env", name)
		}
		level, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return LevelUnknown, Wrap(err, "parse capability level", "env", name, "value", v)
		}
		return level, nil
	})
}

// Selection is the outcome of Select.
type Selection struct {
	Strategy Strategy
	Level    int
	// Detected is false when the capability level could not be read.
	Detected bool
	// Err holds the detection failure, if any. It is never returned to
	// callers of the suppression API.
	Err error
}

// Select picks a strategy from probe and cfg.
func Select(probe Probe, cfg Config, log *zap.Logger) Selection {
	if log == nil {
		log = Logger()
	}

	sel := Selection{Level: LevelUnknown}
	if cfg.CapabilityLevel != nil {
		probe = StaticProbe(*cfg.CapabilityLevel)
	}
	level, err := detect(probe)
	switch {
	case err != nil:
		sel.Err = err
		sel.Strategy = StrategyDisabled
		log.Warn("capability detection failed; suppression tracking disabled",
			zap.Error(err),
			zap.Stringer("strategy", sel.Strategy))
	case level >= NativeSuppressionLevel:
		sel.Detected, sel.Level = true, level
		sel.Strategy = StrategyNative
	default:
		sel.Detected, sel.Level = true, level
		sel.Strategy = StrategyEmulated
		if cfg.DisableEmulation {
			sel.Strategy = StrategyDisabled
		}
	}

	if cfg.Strategy != "" {
		forced, perr := ParseStrategy(cfg.Strategy)
		if perr != nil {
			log.Warn("ignoring configured strategy", zap.Error(perr))
		} else {
			sel.Strategy = forced
		}
	}
	if cfg.DisableEmulation {
		sel.Strategy = StrategyDisabled
	}

	log.Info("suppression strategy selected",
		zap.Stringer("strategy", sel.Strategy),
		zap.Int("capability_level", sel.Level),
		zap.Bool("detected", sel.Detected))
	return sel
}

// detect reads the capability level, converting a nil probe and panics into
// detection errors.
func detect(probe Probe) (level int, err error) {
	if probe == nil {
		return LevelUnknown, Recode(New("no capability probe configured"), CodeDetectionFailed)
	}
	defer func() {
		if r := recover(); r != nil {
			level = LevelUnknown
			if rerr, ok := r.(error); ok {
				err = Recode(Wrap(rerr, "capability probe panicked"), CodeDetectionFailed)
				return
			}
			err = Recode(New(fmt.Sprintf("capability probe panicked: %v", r)), CodeDetectionFailed)
		}
	}()
	level, err = probe.CapabilityLevel()
	if err != nil {
		return LevelUnknown, Recode(err, CodeDetectionFailed)
	}
	return level, nil
}

// -----------------------------------------------------------------------------
// Process-wide runtime
// -----------------------------------------------------------------------------

var (
	installed   atomic.Pointer[Runtime]
	installOnce sync.Once
	// fallback serves package-level calls made before Init. It is never
	// installed, so a later Init still takes effect.
	fallback = newRuntime(Selection{Strategy: StrategyDisabled, Level: LevelUnknown}, nil)
)

// Init selects the process-wide strategy and installs the resulting Runtime.
// Only the first call selects; later calls return the installed runtime and
// ignore their options. Call it once during process setup, before any
// concurrent use of the package-level functions.
//
// With no options Init uses EnvProbe("") and ConfigFromEnv. A malformed
// environment configuration is logged and replaced by the zero Config.
func Init(opts ...Option) *Runtime {
	installOnce.Do(func() {
		installed.Store(NewRuntime(opts...))
	})
	return installed.Load()
}

// Active returns the installed runtime, or a Disabled runtime if Init has
// not run yet.
func Active() *Runtime {
	if r := installed.Load(); r != nil {
		return r
	}
	return fallback
}
