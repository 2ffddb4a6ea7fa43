package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-sticky-scroll/internal/core/easing"
	"github.com/penwyp/go-sticky-scroll/internal/scroll"
	"github.com/penwyp/go-sticky-scroll/internal/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDefaults(t *testing.T) {
	o := Builtin()

	assert.Equal(t, "--", o.IgnoreSceneSymbol)
	assert.Equal(t, 5000.0, o.WrapperHeight)
	assert.Equal(t, 150*time.Millisecond, o.SnapDelay())
	assert.True(t, o.SnapDuration.Auto)
	assert.Equal(t, easing.InOut, o.SnapEasing)
	assert.NoError(t, o.Validate())
}

func TestValidateFillsInvalidValues(t *testing.T) {
	o := Options{
		WrapperHeight:   -10,
		SnapDelayMS:     -1,
		SnapTolerance:   snap.Tolerance{Before: -5, After: 30},
		SnapEasing:      "ease-out",
		AutoScrollSpeed: 0,
	}
	require.NoError(t, o.Validate())

	assert.Equal(t, 5000.0, o.WrapperHeight)
	assert.Equal(t, 150.0, o.SnapDelayMS)
	assert.Equal(t, snap.Tolerance{Before: 200, After: 30}, o.SnapTolerance)
	assert.Equal(t, easing.Out, o.SnapEasing)
	assert.Equal(t, 2.0, o.AutoScrollSpeed)
	assert.Equal(t, "vh", o.ViewportHeightUnit)

	bad := Options{SnapEasing: "wobble"}
	assert.ErrorIs(t, bad.Validate(), easing.ErrUnknownEasing)
}

func TestSetByKey(t *testing.T) {
	o := Builtin()

	tests := []struct {
		key   string
		value any
		check func(t *testing.T, o Options)
	}{
		{"wrapperHeight", 8000, func(t *testing.T, o Options) { assert.Equal(t, 8000.0, o.WrapperHeight) }},
		{"autoScrollSpeed", "1.5", func(t *testing.T, o Options) { assert.Equal(t, 1.5, o.AutoScrollSpeed) }},
		{"snapToBoundaries", "false", func(t *testing.T, o Options) { assert.False(t, o.SnapToBoundaries) }},
		{"snapTolerance", "100,40", func(t *testing.T, o Options) {
			assert.Equal(t, snap.Tolerance{Before: 100, After: 40}, o.SnapTolerance)
		}},
		{"snapTolerance", 75.0, func(t *testing.T, o Options) {
			assert.Equal(t, snap.Tolerance{Before: 75, After: 75}, o.SnapTolerance)
		}},
		{"snapDuration", "0.4", func(t *testing.T, o Options) {
			assert.Equal(t, scroll.Seconds(0.4), o.SnapDuration)
		}},
		{"snapDuration", 1.0, func(t *testing.T, o Options) {
			assert.Equal(t, time.Second, o.SnapDuration.Value)
		}},
		{"snapEasing", "linear", func(t *testing.T, o Options) { assert.Equal(t, easing.Linear, o.SnapEasing) }},
		{"ignoreSceneSymbol", "_", func(t *testing.T, o Options) { assert.Equal(t, "_", o.IgnoreSceneSymbol) }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, o.Set(tt.key, tt.value))
			tt.check(t, o)
		})
	}

	assert.ErrorIs(t, o.Set("nope", 1), ErrUnknownOption)
	assert.ErrorIs(t, o.Set("wrapperHeight", "tall"), ErrInvalidValue)
	assert.ErrorIs(t, o.Set("snapToBoundaries", 3), ErrInvalidValue)
}

func TestApplyPairs(t *testing.T) {
	o := Builtin()
	require.NoError(t, o.ApplyPairs([]string{"snapDelay=300", "useSmoothScroll = true"}))

	assert.Equal(t, 300*time.Millisecond, o.SnapDelay())
	assert.True(t, o.UseSmoothScroll)
	assert.ErrorIs(t, o.ApplyPairs([]string{"snapDelay"}), ErrInvalidValue)
}

func TestGlobalDefaults(t *testing.T) {
	defer ResetDefaults()

	require.NoError(t, SetDefault("wrapperHeight", 9000.0))
	assert.Equal(t, 9000.0, Defaults().WrapperHeight)

	assert.ErrorIs(t, SetDefault("missing", 1), ErrUnknownOption)
	assert.Equal(t, 9000.0, Defaults().WrapperHeight, "failed set leaves defaults untouched")

	replacement := Builtin()
	replacement.IgnoreSceneSymbol = "#"
	require.NoError(t, ReplaceDefaults(replacement))
	assert.Equal(t, "#", Defaults().IgnoreSceneSymbol)
	assert.Equal(t, 5000.0, Defaults().WrapperHeight)

	ResetDefaults()
	assert.Equal(t, Builtin().IgnoreSceneSymbol, Defaults().IgnoreSceneSymbol)
}

func TestDefaultsAreCopies(t *testing.T) {
	defer ResetDefaults()

	require.NoError(t, SetDefault("snapPoints", []snap.PointSpec{{Scene: "a", Time: snap.End}}))
	d := Defaults()
	d.SnapPoints[0].Scene = "mutated"

	assert.Equal(t, "a", Defaults().SnapPoints[0].Scene)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
wrapperHeight: 6400
snapDuration: auto
snapEasing: ease-in
snapPoints:
  - scene: intro
    time: end
  - scene: outro
    time: 1.5
    tolerance: {before: 50, after: 10}
`), 0644))

	o, err := LoadFile(yamlPath, Builtin())
	require.NoError(t, err)
	assert.Equal(t, 6400.0, o.WrapperHeight)
	assert.Equal(t, easing.In, o.SnapEasing)
	assert.True(t, o.SnapToBoundaries, "unspecified keys keep base values")
	require.Len(t, o.SnapPoints, 2)
	assert.True(t, o.SnapPoints[0].Time.End)
	assert.Equal(t, 1.5, o.SnapPoints[1].Time.Seconds)
	require.NotNil(t, o.SnapPoints[1].Tolerance)
	assert.Equal(t, 10.0, o.SnapPoints[1].Tolerance.After)

	jsonPath := filepath.Join(dir, "options.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "autoScrollSpeed": 4,
  "snapDelay": 250,
  "snapDuration": "0.5",
  "snapPoints": [{"scene": "intro", "time": 2}]
}`), 0644))

	o, err = LoadFile(jsonPath, Builtin())
	require.NoError(t, err)
	assert.Equal(t, 4.0, o.AutoScrollSpeed)
	assert.Equal(t, 250*time.Millisecond, o.SnapDelay())
	assert.Equal(t, 500*time.Millisecond, o.SnapDuration.Value)
	require.Len(t, o.SnapPoints, 1)
	assert.Equal(t, 2.0, o.SnapPoints[0].Time.Seconds)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"), Builtin())
	assert.Error(t, err)
}
