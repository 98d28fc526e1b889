package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilStoreDegradesToDefaults(t *testing.T) {
	m := NewManager(nil)
	require.Equal(t, Defaults(), m.Get())

	// Saving in degraded mode is a successful no-op.
	require.NoError(t, m.Save())

	s := m.Get()
	s.SoundEnabled = false
	s.SelectedVehicle = 2
	m.Set(s)
	require.False(t, m.Get().SoundEnabled)
	require.Equal(t, 2, m.Get().SelectedVehicle)
}
