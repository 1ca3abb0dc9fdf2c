package chart

// topPointsCount is how many leading point totals Stats carries for the
// score distribution chart
const topPointsCount = 20

// ComputeStats derives display statistics from a ranked chart.
// It never fails: an empty chart yields zero counts and an empty histogram
func ComputeStats(ranked []RankedAlbum, participantCount, year int) Stats {
	st := Stats{
		Year:             year,
		ParticipantCount: participantCount,
		AlbumCount:       len(ranked),
		RankHistogram:    make(map[int]int, len(ranked)),
		TopPoints:        make([]int, 0, topPointsCount),
	}

	for i, ra := range ranked {
		st.RankHistogram[ra.Rank]++

		switch {
		case ra.VoterCount >= 3:
			st.ThreePlusVoters++
		case ra.VoterCount == 2:
			st.TwoVoters++
		case ra.VoterCount == 1:
			st.OneVoter++
		}

		if i < topPointsCount {
			st.TopPoints = append(st.TopPoints, ra.TotalPoints)
		}
	}
	return st
}
