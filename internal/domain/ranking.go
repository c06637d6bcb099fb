package domain

import (
	"sort"
)

// LeaderboardTiers is how many distinct score values make the cut.
const LeaderboardTiers = 5

type GradedEntry struct {
	StudentName string
	Total       int
}

type LeaderboardEntry struct {
	Rank        int
	StudentName string
	Total       int
}

// TopTiers ranks by distinct score value, not by row: the top `tiers`
// distinct totals are kept, and every student sharing one of those
// totals is included with that tier's ordinal rank. The result can
// therefore hold more than `tiers` rows when scores tie.
func TopTiers(entries []GradedEntry, tiers int) []LeaderboardEntry {
	if tiers <= 0 || len(entries) == 0 {
		return nil
	}

	seen := make(map[int]struct{})
	distinct := make([]int, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Total]; ok {
			continue
		}
		seen[e.Total] = struct{}{}
		distinct = append(distinct, e.Total)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))

	if len(distinct) > tiers {
		distinct = distinct[:tiers]
	}

	rankByTotal := make(map[int]int, len(distinct))
	for i, total := range distinct {
		rankByTotal[total] = i + 1
	}

	var result []LeaderboardEntry
	for _, total := range distinct {
		for _, e := range entries {
			if e.Total != total {
				continue
			}
			result = append(result, LeaderboardEntry{
				Rank:        rankByTotal[total],
				StudentName: e.StudentName,
				Total:       e.Total,
			})
		}
	}

	return result
}
