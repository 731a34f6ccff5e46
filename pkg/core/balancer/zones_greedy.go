package balancer

// GreedyZoneBalancer is the heuristic alternative to the exact optimizer:
// cheap, never infeasible, and good enough when the solver path fails or the
// range is too short to optimize over. It prefers workers who were not in
// zone 2 the previous day, then the least-loaded worker.
type GreedyZoneBalancer struct {
	// Roster is the ordered worker list; order breaks ties.
	Roster []string
}

// Run splits each crew greedily. Unlike the optimizer there is no minimum
// headcount: a crew of up to three sends one worker to zone 2, larger crews
// send two.
func (b *GreedyZoneBalancer) Run(crews []DayCrew) *ZoneResult {
	counters := NewZoneCounters(b.Roster)
	result := &ZoneResult{Counters: counters}

	var previousZone2 []string
	for _, crew := range crews {
		zone2Size := 1
		if len(crew.Workers) > 3 {
			zone2Size = 2
		}

		// Prefer candidates who were not in zone 2 yesterday; fall back
		// to the full crew when that leaves too few.
		candidates := exclude(crew.Workers, previousZone2)
		if len(candidates) < zone2Size {
			candidates = crew.Workers
		}

		var zone2 []string
		for i := 0; i < zone2Size && len(candidates) > 0; i++ {
			var picked string
			if zone2Size == 1 {
				picked = b.pickSolo(candidates, counters)
				counters.solo[picked]++
			} else {
				picked = b.pickPair(candidates, counters)
			}
			counters.zone2[picked]++
			zone2 = append(zone2, picked)
			candidates = exclude(candidates, []string{picked})
		}

		day := ZoneDay{Date: crew.Date}
		day.Zones.Zone2 = zone2
		day.Zones.Zone1 = exclude(crew.Workers, zone2)
		for _, worker := range day.Zones.Zone1 {
			counters.zone1[worker]++
		}
		result.Days = append(result.Days, day)
		previousZone2 = zone2
	}
	return result
}

// pickSolo selects the candidate with the fewest solo assignments, then the
// fewest zone-2 assignments, then earliest in candidate order.
func (b *GreedyZoneBalancer) pickSolo(candidates []string, counters *ZoneCounters) string {
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if counters.solo[candidate] < counters.solo[best] ||
			(counters.solo[candidate] == counters.solo[best] && counters.zone2[candidate] < counters.zone2[best]) {
			best = candidate
		}
	}
	return best
}

// pickPair selects the candidate with the fewest zone-2 assignments, then
// earliest in candidate order.
func (b *GreedyZoneBalancer) pickPair(candidates []string, counters *ZoneCounters) string {
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if counters.zone2[candidate] < counters.zone2[best] {
			best = candidate
		}
	}
	return best
}

// exclude returns workers minus the removed set, preserving order.
func exclude(workers, removed []string) []string {
	kept := make([]string, 0, len(workers))
	for _, worker := range workers {
		skip := false
		for _, r := range removed {
			if worker == r {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, worker)
		}
	}
	return kept
}
