// Package chart folds raw per-user list entries into a ranked consensus
// chart for a year. Everything in this package is a pure function over its
// input: storage reads and writes live in the chart service
package chart

// Entry is one album row from one contributor's year list, as handed over by
// the storage layer. Positions are 1-based; the storage query only supplies
// positions within the scoring cutoff
type Entry struct {
	SourceListID string `json:"source_list_id"`
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	Position     int    `json:"position"`

	Artist      string `json:"artist"`
	Album       string `json:"album"`
	AlbumMBID   string `json:"album_mbid,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	Country     string `json:"country,omitempty"`
	Genre1      string `json:"genre1,omitempty"`
	Genre2      string `json:"genre2,omitempty"`

	CoverImage  []byte `json:"cover_image,omitempty"`
	CoverFormat string `json:"cover_format,omitempty"`
}

// Voter is one contributor's placement of an album, kept for display
type Voter struct {
	DisplayName string `json:"display_name"`
	Position    int    `json:"position"`
	Points      int    `json:"points"`
}

// AlbumAggregate is the working state for one deduped album while folding.
// Display fields come from the first entry observed for the key and are
// never overwritten by later entries
type AlbumAggregate struct {
	AlbumMBID   string `json:"album_mbid,omitempty"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ReleaseDate string `json:"release_date,omitempty"`
	Country     string `json:"country,omitempty"`
	Genre1      string `json:"genre1,omitempty"`
	Genre2      string `json:"genre2,omitempty"`
	CoverImage  []byte `json:"cover_image,omitempty"`
	CoverFormat string `json:"cover_format,omitempty"`

	TotalPoints int     `json:"total_points"`
	VoterCount  int     `json:"voter_count"`
	Positions   []int   `json:"positions"`
	Voters      []Voter `json:"voters"`
}

// RankedAlbum is an AlbumAggregate with its final chart placement
type RankedAlbum struct {
	AlbumAggregate

	Rank            int     `json:"rank"`
	AveragePosition float64 `json:"average_position"`
	HighestPosition int     `json:"highest_position"`
	LowestPosition  int     `json:"lowest_position"`
}

// Stats summarizes a ranked chart for display
type Stats struct {
	Year             int         `json:"year"`
	ParticipantCount int         `json:"participant_count"`
	AlbumCount       int         `json:"album_count"`
	RankHistogram    map[int]int `json:"rank_histogram"`
	ThreePlusVoters  int         `json:"three_plus_voters"`
	TwoVoters        int         `json:"two_voters"`
	OneVoter         int         `json:"one_voter"`
	TopPoints        []int       `json:"top_points"`
}
