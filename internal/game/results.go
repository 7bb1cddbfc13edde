package game

import "sort"

// ResultEntry is one row of the final standings.
type ResultEntry struct {
	ID            int64   `json:"id,omitempty"` // zero for bots
	Name          string  `json:"name"`
	Lane          int     `json:"lane"`
	IsBot         bool    `json:"isBot"`
	DNF           bool    `json:"dnf,omitempty"` // forfeited before the line
	Progress      float64 `json:"progress,omitempty"`
	FinishSeconds float64 `json:"finishSeconds"`
	DeltaSeconds  float64 `json:"deltaSeconds"`
}

// CompileResults ranks everyone who raced. Finishers sort ascending by
// finish time, the winner's delta pinned at zero; participants who
// never crossed the line trail the field as DNF, ordered by how far
// they got. Spectators never appear.
func CompileResults(players []*Player, bots []*Bot) []ResultEntry {
	entries := make([]ResultEntry, 0, len(players)+len(bots))
	for _, p := range players {
		if !p.Racing {
			continue
		}
		e := ResultEntry{ID: p.ID, Name: p.Name, Lane: p.Lane}
		if p.Motion.Finished {
			e.FinishSeconds = p.Motion.FinishSeconds
		} else {
			e.DNF = true
			e.Progress = p.Motion.Progress
		}
		entries = append(entries, e)
	}
	for _, b := range bots {
		e := ResultEntry{Name: b.Name, Lane: b.Lane, IsBot: true}
		if b.Motion.Finished {
			e.FinishSeconds = b.Motion.FinishSeconds
		} else {
			e.DNF = true
			e.Progress = b.Motion.Progress
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.DNF != b.DNF {
			return !a.DNF
		}
		if a.DNF {
			return a.Progress > b.Progress
		}
		return a.FinishSeconds < b.FinishSeconds
	})

	if len(entries) > 0 && !entries[0].DNF {
		winner := entries[0].FinishSeconds
		for i := range entries {
			if entries[i].DNF {
				continue
			}
			entries[i].DeltaSeconds = entries[i].FinishSeconds - winner
		}
	}
	return entries
}
