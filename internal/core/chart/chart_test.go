package chart

import (
	"encoding/json"
	"reflect"
	"testing"
)

func entry(user, artist, album string, pos int) Entry {
	return Entry{
		SourceListID: "list-" + user,
		UserID:       user,
		DisplayName:  user,
		Position:     pos,
		Artist:       artist,
		Album:        album,
	}
}

func TestAggregate_DedupAcrossSources(t *testing.T) {
	t.Parallel()

	aggs := Aggregate([]Entry{
		entry("alice", "Radiohead", "OK Computer", 1),
		entry("bob", "radiohead", "OK Computer (Remastered)", 3),
	})

	if len(aggs) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggs))
	}
	for _, a := range aggs {
		if a.VoterCount != 2 {
			t.Fatalf("voter count = %d, want 2", a.VoterCount)
		}
		if got, want := a.TotalPoints, 60+49; got != want {
			t.Fatalf("total points = %d, want %d", got, want)
		}
		if !reflect.DeepEqual(a.Positions, []int{1, 3}) {
			t.Fatalf("positions = %v, want [1 3]", a.Positions)
		}
	}
}

func TestAggregate_FirstWriterWinsDisplayFields(t *testing.T) {
	t.Parallel()

	first := entry("alice", "Radiohead", "OK Computer", 2)
	first.AlbumMBID = "mbid-first"
	first.Country = "GB"
	second := entry("bob", "radiohead", "OK Computer (Remastered)", 1)
	second.AlbumMBID = "mbid-second"
	second.Country = "UK"

	aggs := Aggregate([]Entry{first, second})
	for _, a := range aggs {
		if a.AlbumMBID != "mbid-first" || a.Country != "GB" {
			t.Fatalf("display fields overwritten: mbid=%q country=%q", a.AlbumMBID, a.Country)
		}
		if a.Album != "OK Computer" {
			t.Fatalf("album title = %q, want first writer's", a.Album)
		}
	}
}

func TestAggregate_ZeroPointEntriesStillCount(t *testing.T) {
	t.Parallel()

	// position 41 scores zero but the voter and position are still recorded
	aggs := Aggregate([]Entry{
		entry("alice", "Low", "Double Negative", 1),
		entry("bob", "Low", "Double Negative", 41),
	})
	for _, a := range aggs {
		if a.VoterCount != 2 {
			t.Fatalf("voter count = %d, want 2", a.VoterCount)
		}
		if a.TotalPoints != 60 {
			t.Fatalf("total points = %d, want 60", a.TotalPoints)
		}
		if !reflect.DeepEqual(a.Positions, []int{1, 41}) {
			t.Fatalf("positions = %v, want [1 41]", a.Positions)
		}
	}
}

func TestRank_DropsZeroPointAlbums(t *testing.T) {
	t.Parallel()

	ranked := Rank(Aggregate([]Entry{
		entry("alice", "Low", "Double Negative", 1),
		entry("bob", "Nobody", "Never Scored", 50),
	}))
	if len(ranked) != 1 {
		t.Fatalf("expected 1 ranked album, got %d", len(ranked))
	}
	if ranked[0].Album != "Double Negative" {
		t.Fatalf("wrong survivor: %q", ranked[0].Album)
	}
}

func TestRank_DefendsEmptyPositions(t *testing.T) {
	t.Parallel()

	aggs := map[string]*AlbumAggregate{
		"bad": {Artist: "x", Album: "y", TotalPoints: 10},
	}
	if got := Rank(aggs); len(got) != 0 {
		t.Fatalf("aggregate without positions must be dropped, got %d", len(got))
	}
}

func TestRank_SharedRankLeavesGap(t *testing.T) {
	t.Parallel()

	// two albums tie on points and best placement, a third trails
	ranked := Rank(Aggregate([]Entry{
		entry("alice", "Artist1", "AlbumX", 1),
		entry("bob", "Artist1", "AlbumX", 2),
		entry("alice", "Artist2", "AlbumY", 2),
		entry("bob", "Artist2", "AlbumY", 1),
		entry("alice", "Artist3", "AlbumZ", 3),
	}))

	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked albums, got %d", len(ranked))
	}
	if ranked[0].Rank != 1 || ranked[1].Rank != 1 {
		t.Fatalf("tied albums got ranks %d and %d, want 1 and 1", ranked[0].Rank, ranked[1].Rank)
	}
	if ranked[2].Rank != 3 {
		t.Fatalf("album after a two-way tie got rank %d, want 3", ranked[2].Rank)
	}
	// the spec scenario: both tied albums hold 114 points across 2 voters
	for _, ra := range ranked[:2] {
		if ra.TotalPoints != 114 || ra.VoterCount != 2 || ra.HighestPosition != 1 {
			t.Fatalf("tied album %q: points=%d voters=%d best=%d", ra.Album, ra.TotalPoints, ra.VoterCount, ra.HighestPosition)
		}
	}
}

func TestRank_TieBreakByBestPlacement(t *testing.T) {
	t.Parallel()

	// equal points, different best placement: 60+1 vs 54+7
	ranked := Rank(Aggregate([]Entry{
		entry("alice", "ArtistA", "CloseToTop", 1),
		entry("bob", "ArtistA", "CloseToTop", 40),
		entry("alice", "ArtistB", "SteadyMiddle", 2),
		entry("bob", "ArtistB", "SteadyMiddle", 34),
	}))

	if ranked[0].TotalPoints != ranked[1].TotalPoints {
		t.Fatalf("fixture broken: points %d vs %d should tie", ranked[0].TotalPoints, ranked[1].TotalPoints)
	}
	if ranked[0].Album != "CloseToTop" {
		t.Fatalf("tie should break to the album ranked closest to #1, got %q first", ranked[0].Album)
	}
	if ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Fatalf("points tie with different best placement must not share rank: %d, %d", ranked[0].Rank, ranked[1].Rank)
	}
}

func TestRank_PositionStatsAndVoterOrder(t *testing.T) {
	t.Parallel()

	ranked := Rank(Aggregate([]Entry{
		entry("carol", "Artist", "Album", 8),
		entry("alice", "Artist", "Album", 2),
		entry("bob", "Artist", "Album", 5),
	}))
	ra := ranked[0]

	if ra.HighestPosition != 2 || ra.LowestPosition != 8 {
		t.Fatalf("highest/lowest = %d/%d, want 2/8", ra.HighestPosition, ra.LowestPosition)
	}
	if ra.AveragePosition != 5.0 {
		t.Fatalf("average = %v, want 5", ra.AveragePosition)
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if ra.Voters[i].DisplayName != want {
			t.Fatalf("voter %d = %q, want %q (sorted by position)", i, ra.Voters[i].DisplayName, want)
		}
	}
}

func TestRank_AverageRoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	ranked := Rank(Aggregate([]Entry{
		entry("alice", "Artist", "Album", 1),
		entry("bob", "Artist", "Album", 2),
		entry("carol", "Artist", "Album", 5),
	}))
	// (1+2+5)/3 = 2.666... -> 2.67
	if got := ranked[0].AveragePosition; got != 2.67 {
		t.Fatalf("average = %v, want 2.67", got)
	}
}

func TestRank_Deterministic(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		entry("alice", "A", "One", 1),
		entry("alice", "B", "Two", 2),
		entry("bob", "B", "Two", 1),
		entry("bob", "C", "Three", 2),
		entry("carol", "C", "Three", 1),
		entry("carol", "A", "One", 2),
	}

	first, err := json.Marshal(Rank(Aggregate(entries)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(Rank(Aggregate(entries)))
		if err != nil {
			t.Fatal(err)
		}
		if string(first) != string(again) {
			t.Fatalf("run %d: ranked output not byte-identical", i)
		}
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	ranked := Rank(Aggregate([]Entry{
		entry("alice", "Artist1", "AlbumX", 1),
		entry("bob", "Artist1", "AlbumX", 2),
		entry("carol", "Artist1", "AlbumX", 3),
		entry("alice", "Artist2", "AlbumY", 2),
		entry("bob", "Artist2", "AlbumY", 1),
		entry("carol", "Artist3", "AlbumZ", 1),
	}))
	st := ComputeStats(ranked, 3, 2024)

	if st.Year != 2024 || st.ParticipantCount != 3 {
		t.Fatalf("year/participants = %d/%d", st.Year, st.ParticipantCount)
	}
	if st.AlbumCount != 3 {
		t.Fatalf("album count = %d, want 3", st.AlbumCount)
	}
	if st.ThreePlusVoters != 1 || st.TwoVoters != 1 || st.OneVoter != 1 {
		t.Fatalf("voter buckets = %d/%d/%d, want 1/1/1", st.ThreePlusVoters, st.TwoVoters, st.OneVoter)
	}
	if len(st.TopPoints) != 3 {
		t.Fatalf("top points length = %d, want 3", len(st.TopPoints))
	}
	total := 0
	for _, c := range st.RankHistogram {
		total += c
	}
	if total != 3 {
		t.Fatalf("histogram total = %d, want 3", total)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()

	st := ComputeStats(nil, 0, 2024)
	if st.AlbumCount != 0 || st.ThreePlusVoters != 0 || st.TwoVoters != 0 || st.OneVoter != 0 {
		t.Fatalf("empty input must yield zero counts: %+v", st)
	}
	if len(st.TopPoints) != 0 || len(st.RankHistogram) != 0 {
		t.Fatalf("empty input must yield empty series: %+v", st)
	}
}
