package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fleetora/fleet-ops-api/internal/settlement"
	"github.com/stretchr/testify/require"
)

func TestLoadSlabsOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slabs.yaml")
	yaml := `
rent:
  morning:
    - min_trips: 0
      amount: 700
    - min_trips: 10
      amount: 640
earnings:
  night:
    - min_trips: 0
      amount: 480
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	tables, err := LoadSlabs(path)
	require.NoError(t, err)

	require.Equal(t, 700.0, tables.ResolveRent(5, settlement.ShiftMorning))
	require.Equal(t, 640.0, tables.ResolveRent(14, settlement.ShiftMorning))
	// shifts absent from the file keep their defaults
	require.Equal(t, settlement.DefaultTables().ResolveRent(12, settlement.ShiftNight), tables.ResolveRent(12, settlement.ShiftNight))
	require.Equal(t, 480.0, tables.ResolveCompanyEarnings(3, settlement.ShiftNight))
}

func TestLoadSlabsMissingFileFallsBack(t *testing.T) {
	tables, err := LoadSlabs(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Equal(t, settlement.DefaultTables().ResolveRent(12, settlement.ShiftMorning), tables.ResolveRent(12, settlement.ShiftMorning))
}

func TestLoadSlabsGarbageFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slabs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":- not yaml {"), 0644))

	tables, err := LoadSlabs(path)
	require.Error(t, err)
	require.Equal(t, 535.0, tables.ResolveRent(12, settlement.ShiftMorning))
}
