package xgxsuppress

import (
	"fmt"
	"strings"
)

// Strategy selects how suppressed errors are recorded. It is chosen once per
// Runtime and never changes afterwards.
type Strategy uint8

const (
	// StrategyDisabled records nothing; printing shows only the receiver.
	StrategyDisabled Strategy = iota
	// StrategyEmulated records suppressions in a weak-keyed side table.
	StrategyEmulated
	// StrategyNative delegates to the receiver's own Suppressor support.
	StrategyNative
)

var strategyNames = [...]string{
	StrategyDisabled: "disabled",
	StrategyEmulated: "emulated",
	StrategyNative:   "native",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy maps a name produced by String back to a Strategy. Matching
// is case-insensitive; "mimic" and "null" are accepted as aliases.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "disabled", "null", "none":
		return StrategyDisabled, nil
	case "emulated", "mimic":
		return StrategyEmulated, nil
	case "native", "reuse":
		return StrategyNative, nil
	default:
		return StrategyDisabled, InvalidArgument("strategy", fmt.Sprintf("unknown strategy %q", name))
	}
}
