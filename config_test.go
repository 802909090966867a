package xgxsuppress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		want    Config
		wantErr bool
	}{
		{name: "empty document", doc: "", want: Config{}},
		{name: "opt-out", doc: "disable_emulation: true\n", want: Config{DisableEmulation: true}},
		{name: "strategy alias", doc: "strategy: mimic\n", want: Config{Strategy: "mimic"}},
		{name: "unknown strategy", doc: "strategy: sometimes\n", wantErr: true},
		{name: "malformed yaml", doc: "disable_emulation: [\n", wantErr: true},
		{name: "wrong type", doc: "disable_emulation: maybe\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseConfig([]byte(tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConfig_CapabilityLevel(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig([]byte("capability_level: 16\nstrategy: Native\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.CapabilityLevel)
	assert.Equal(t, 16, *cfg.CapabilityLevel)
	assert.Equal(t, "Native", cfg.Strategy)
}

func TestParseConfig_UnknownStrategyIsInvalidArgument(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig([]byte("strategy: sometimes\n"))
	assert.True(t, IsInvalidArgument(err))
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(EnvDisableEmulation, "")
		t.Setenv(EnvStrategy, "")
		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("opt-out and strategy", func(t *testing.T) {
		t.Setenv(EnvDisableEmulation, "true")
		t.Setenv(EnvStrategy, " emulated ")
		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.DisableEmulation)
		assert.Equal(t, "emulated", cfg.Strategy)
	})

	t.Run("malformed flag", func(t *testing.T) {
		t.Setenv(EnvDisableEmulation, "perhaps")
		_, err := ConfigFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvDisableEmulation)
	})
}

func TestNewRuntime_MalformedEnvFallsBackToDefaults(t *testing.T) {
	t.Setenv(EnvDisableEmulation, "perhaps")
	t.Setenv(EnvStrategy, "")

	rt := NewRuntime(WithProbe(StaticProbe(12)))
	assert.Equal(t, StrategyEmulated, rt.Strategy())
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := map[string]Strategy{
		"disabled": StrategyDisabled,
		"NULL":     StrategyDisabled,
		"none":     StrategyDisabled,
		"emulated": StrategyEmulated,
		"Mimic":    StrategyEmulated,
		" native ": StrategyNative,
		"reuse":    StrategyNative,
	}
	for in, want := range tests {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, s := range []Strategy{StrategyDisabled, StrategyEmulated, StrategyNative} {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStrategy("sometimes")
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, "strategy(9)", Strategy(9).String())
}
