package analysis

// PlayEvent is one recorded play of a track.
type PlayEvent struct {
	TrackID    string   `json:"trackId" yaml:"track_id"`
	TrackName  string   `json:"trackName" yaml:"track_name"`
	ArtistName string   `json:"artistName" yaml:"artist_name"`
	AlbumName  string   `json:"albumName" yaml:"album_name"`
	Genres     []string `json:"genres" yaml:"genres"`

	// PlayedAt is kept as persisted. See ParseTimestamp.
	PlayedAt   string `json:"playedAt" yaml:"played_at"`
	DurationMs int64  `json:"duration" yaml:"duration_ms"`

	// ArtistPopularity is 0-100, nil when unknown.
	ArtistPopularity *int `json:"artistPopularity,omitempty" yaml:"artist_popularity,omitempty"`
}

// ArtistLocation is where an artist is from. An empty Country means unknown.
type ArtistLocation struct {
	ArtistName string   `json:"artistName" yaml:"artist_name"`
	Country    string   `json:"country,omitempty" yaml:"country,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

// CategoryCountMap maps a category label (genre, artist, album, time block) to a play count.
type CategoryCountMap map[string]int

// TraitVector holds the behavioral trait scores, each in [0,1].
type TraitVector struct {
	Variety         float64 `json:"variety" yaml:"variety"`
	Consistency     float64 `json:"consistency" yaml:"consistency"`
	Discovery       float64 `json:"discovery" yaml:"discovery"`
	Loyalty         float64 `json:"loyalty" yaml:"loyalty"`
	Nocturnality    float64 `json:"nocturnality" yaml:"nocturnality"`
	Mainstream      float64 `json:"mainstream" yaml:"mainstream"`
	GlobalDiscovery float64 `json:"globalDiscovery" yaml:"global_discovery"`
}

// PersonalityResult is the outcome of classifying a TraitVector.
type PersonalityResult struct {
	PrimaryTrait       Personality `json:"primaryTrait" yaml:"primary_trait"`
	SecondaryTrait     Personality `json:"secondaryTrait" yaml:"secondary_trait"`
	ListeningCharacter string      `json:"listeningCharacter" yaml:"listening_character"`
	Traits             TraitVector `json:"traits" yaml:"traits"`
	Description        string      `json:"description" yaml:"description"`
}

// HeatmapResult is the output of AnalyzeTemporal. Rows are days of the week
// (0 = Sunday), columns are hours of the day.
type HeatmapResult struct {
	Heatmap  [DaysPerWeek][HoursPerDay]int   `json:"heatmap" yaml:"heatmap"`
	Duration [DaysPerWeek][HoursPerDay]int64 `json:"duration" yaml:"duration"`
	Stats    HeatmapStats                    `json:"stats" yaml:"stats"`
}

type HeatmapStats struct {
	TotalPlays    int      `json:"totalPlays" yaml:"total_plays"`
	TotalDuration int64    `json:"totalDuration" yaml:"total_duration_ms"`
	PeakListening PeakSlot `json:"peakListening" yaml:"peak_listening"`
	Streak        Streak   `json:"streak" yaml:"streak"`
}

type PeakSlot struct {
	Hour int `json:"hour" yaml:"hour"`
	Day  int `json:"day" yaml:"day"`
}

// Streak is the longest run of days with at least one play. StartDay and
// EndDay are nil when there were no plays at all.
type Streak struct {
	Count    int     `json:"count" yaml:"count"`
	StartDay *string `json:"startDay" yaml:"start_day"`
	EndDay   *string `json:"endDay" yaml:"end_day"`
}

// DiversityResult holds normalized entropy scores, each clamped to [0,1].
type DiversityResult struct {
	GenreDiversity     float64 `json:"genreDiversity" yaml:"genre_diversity"`
	ArtistDiversity    float64 `json:"artistDiversity" yaml:"artist_diversity"`
	AlbumDiversity     float64 `json:"albumDiversity" yaml:"album_diversity"`
	TimeOfDayDiversity float64 `json:"timeOfDayDiversity" yaml:"time_of_day_diversity"`
}
