package balancer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneOptimizer_RejectsSmallCrews(t *testing.T) {
	optimizer := &ZoneOptimizer{Roster: []string{"amy", "ben", "cho"}}
	crews := []DayCrew{{Date: date("2026-03-02"), Workers: []string{"amy", "ben"}}}

	_, err := optimizer.Run(context.Background(), crews)
	assert.Error(t, err)
}

func TestZoneOptimizer_NoCrews(t *testing.T) {
	optimizer := &ZoneOptimizer{Roster: []string{"amy", "ben", "cho"}}

	result, err := optimizer.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Days)
}

func TestZoneOptimizer_ValidPartitions(t *testing.T) {
	roster := []string{"amy", "ben", "cho", "dan"}
	optimizer := &ZoneOptimizer{Roster: roster, Budget: 30 * time.Second}
	crews := crewsFor(roster, "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05")

	result, err := optimizer.Run(context.Background(), crews)
	require.NoError(t, err)
	require.Len(t, result.Days, 4)

	for _, day := range result.Days {
		assert.Len(t, day.Zones.Zone2, 2)
		assert.Len(t, day.Zones.Zone1, 2)

		seen := map[string]bool{}
		for _, worker := range append(day.Zones.Zone1, day.Zones.Zone2...) {
			assert.False(t, seen[worker], "worker %s in both zones", worker)
			seen[worker] = true
		}
		assert.Len(t, seen, 4)
	}
}

func TestZoneOptimizer_EvenZone2Spread(t *testing.T) {
	// Six four-worker days produce twelve zone-2 units over four workers;
	// the band collapses to exactly three each.
	roster := []string{"amy", "ben", "cho", "dan"}
	optimizer := &ZoneOptimizer{Roster: roster, Budget: 30 * time.Second}
	crews := crewsFor(roster,
		"2026-03-02", "2026-03-03", "2026-03-04",
		"2026-03-05", "2026-03-06", "2026-03-07",
	)

	result, err := optimizer.Run(context.Background(), crews)
	require.NoError(t, err)

	assert.Equal(t, 3, result.MinZone2)
	assert.Equal(t, 3, result.MaxZone2)
	for _, worker := range roster {
		assert.Equal(t, 3, result.Counters.Zone2(worker), "worker %s", worker)
	}
}

func TestZoneOptimizer_SoloDutySpread(t *testing.T) {
	// Nine three-worker days: nine solo units over three workers force
	// exactly three solo turns each, matching the solo target.
	roster := []string{"amy", "ben", "cho"}
	optimizer := &ZoneOptimizer{Roster: roster, Budget: 30 * time.Second}
	crews := crewsFor(roster,
		"2026-03-02", "2026-03-03", "2026-03-04",
		"2026-03-05", "2026-03-06", "2026-03-07",
		"2026-03-09", "2026-03-10", "2026-03-11",
	)

	result, err := optimizer.Run(context.Background(), crews)
	require.NoError(t, err)

	for _, worker := range roster {
		assert.Equal(t, 3, result.Counters.Zone2(worker), "worker %s", worker)
		assert.Equal(t, 3, result.Counters.Solo(worker), "worker %s", worker)
	}
	assert.Equal(t, 0, result.Objective)
}

func TestZone2Band(t *testing.T) {
	roster := []string{"amy", "ben", "cho", "dan"}

	// Five four-worker days: ten units over four workers -> band [2, 3].
	crews := crewsFor(roster, "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06")
	min, max := zone2Band(crews, len(roster))
	assert.Equal(t, 2, min)
	assert.Equal(t, 3, max)

	min, max = zone2Band(nil, len(roster))
	assert.Equal(t, 0, min)
	assert.Equal(t, 0, max)
}
