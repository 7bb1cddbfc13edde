package game

import "sort"

// AssignLanes re-seats every participant: humans take the low lanes in
// join order, freshly rolled bots fill whatever is left. Humans beyond
// the lane count get lane -1 and sit the next race out. Returns the new
// bot list; the previous bots are discarded by the caller.
//
// Re-running with the same players in the same join order yields the
// same lanes, so churn in the lobby never shuffles seated racers.
func AssignLanes(players []*Player, totalLanes int, rng func() float64) []*Bot {
	sorted := append([]*Player(nil), players...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].JoinSeq < sorted[j].JoinSeq })

	lane := 0
	for _, p := range sorted {
		if lane < totalLanes {
			p.Lane = lane
			lane++
		} else {
			p.Lane = -1
		}
	}

	bots := make([]*Bot, 0, totalLanes-lane)
	for ; lane < totalLanes; lane++ {
		bots = append(bots, NewBot(lane, rng))
	}
	return bots
}
