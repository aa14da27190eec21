// Package tmdb provides a client for The Movie Database API.
package tmdb

// MovieResult is one entry of a movie search.
type MovieResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"` // "2010-07-15"
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	Popularity    float64 `json:"popularity"`
}

// Year returns the four-digit release year, or "" when unknown.
func (m MovieResult) Year() string { return yearOf(m.ReleaseDate) }

// TVResult is one entry of a TV search.
type TVResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
}

// Year returns the four-digit first-air year, or "" when unknown.
func (t TVResult) Year() string { return yearOf(t.FirstAirDate) }

// Movie is the full movie record.
type Movie struct {
	ID           int64   `json:"id"`
	IMDBID       string  `json:"imdb_id,omitempty"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Runtime      int     `json:"runtime"`
	Genres       []Genre `json:"genres"`
}

// Year returns the four-digit release year, or "" when unknown.
func (m *Movie) Year() string { return yearOf(m.ReleaseDate) }

// TVShow is the full series record.
type TVShow struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Overview        string  `json:"overview"`
	FirstAirDate    string  `json:"first_air_date"`
	PosterPath      string  `json:"poster_path"`
	NumberOfSeasons int     `json:"number_of_seasons"`
	Genres          []Genre `json:"genres"`
}

// Year returns the four-digit first-air year, or "" when unknown.
func (t *TVShow) Year() string { return yearOf(t.FirstAirDate) }

// Episode is a single episode record.
type Episode struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	StillPath     string `json:"still_path"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreNames flattens genres to their names.
func GenreNames(genres []Genre) []string {
	if len(genres) == 0 {
		return nil
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return names
}

type searchResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalResults int `json:"total_results"`
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
