package ctrlperm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {

	t.Run("case-insensitive match", func(t *testing.T) {
		for _, v := range []string{"control", "CONTROL", "Control"} {
			tgt, err := ParseTarget(v)
			require.NoError(t, err)
			assert.Equal(t, TargetControl, tgt)
		}
	})

	t.Run("unknown family", func(t *testing.T) {
		_, err := ParseTarget("bogus")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTarget)
		assert.Contains(t, err.Error(), `"bogus"`)

		_, err = ParseTarget("")
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("must variant", func(t *testing.T) {
		assert.Equal(t, TargetControl, MustTarget("control"))
		assert.Panics(t, func() { MustTarget("bogus") })
	})
}

func TestTargetHelpers(t *testing.T) {
	assert.Equal(t, []Target{TargetControl}, TargetValues())
	assert.Equal(t, []string{"control"}, TargetNames())
	assert.Equal(t, "control", TargetControl.String())
}

func TestTargetText(t *testing.T) {
	b, err := TargetControl.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "control", string(b))

	var tgt Target
	err = tgt.UnmarshalText([]byte("Control"))
	require.NoError(t, err)
	assert.Equal(t, TargetControl, tgt)

	err = tgt.UnmarshalText([]byte("bogus"))
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestTargetSQL(t *testing.T) {
	v, err := TargetControl.Value()
	require.NoError(t, err)
	assert.Equal(t, "control", v)

	var tgt Target
	err = tgt.Scan("control")
	require.NoError(t, err)
	assert.Equal(t, TargetControl, tgt)

	// NULL gets the first known family
	err = tgt.Scan(nil)
	require.NoError(t, err)
	assert.Equal(t, TargetControl, tgt)

	err = tgt.Scan(3.14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target value")
}
