// Package tvdb provides a client for the TVDB API v4.
package tvdb

import (
	"strconv"
	"strings"
	"time"
)

// Series is a TV series record.
type Series struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"` // from firstAired
	Status   string `json:"status"`
	Overview string `json:"overview"`
}

// Episode is a single episode of a series in default (aired) order.
type Episode struct {
	ID       int       `json:"id"`
	Season   int       `json:"seasonNumber"`
	Episode  int       `json:"number"`
	Name     string    `json:"name"`
	Overview string    `json:"overview"`
	AirDate  time.Time `json:"aired"`
	Runtime  int       `json:"runtime"`
}

// SearchResult is one series search hit.
type SearchResult struct {
	ID       int    `json:"tvdb_id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Status   string `json:"status"`
	Overview string `json:"overview"`
	Network  string `json:"network"`
}

// FindEpisode returns the episode with the given season and number, or nil.
func FindEpisode(episodes []Episode, season, number int) *Episode {
	for i := range episodes {
		if episodes[i].Season == season && episodes[i].Episode == number {
			return &episodes[i]
		}
	}
	return nil
}

// envelope is the {status, data, links} wrapper around every v4 response.
type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
	Links  struct {
		Next *string `json:"next"`
	} `json:"links"`
}

func (e envelope[T]) hasNext() bool {
	return e.Links.Next != nil && *e.Links.Next != ""
}

type loginData struct {
	Token string `json:"token"`
}

// v4 search returns ids and years as strings.
type searchHit struct {
	ObjectID string `json:"objectID"` // "series-12345"
	TVDBID   string `json:"tvdb_id"`
	Name     string `json:"name"`
	Year     string `json:"year"`
	Status   string `json:"status"`
	Overview string `json:"overview"`
	Network  string `json:"network"`
}

func (h searchHit) result() SearchResult {
	id, _ := strconv.Atoi(h.TVDBID)
	if id == 0 {
		if rest, ok := strings.CutPrefix(h.ObjectID, "series-"); ok {
			id, _ = strconv.Atoi(rest)
		}
	}
	year, _ := strconv.Atoi(h.Year)
	return SearchResult{
		ID:       id,
		Name:     h.Name,
		Year:     year,
		Status:   h.Status,
		Overview: h.Overview,
		Network:  h.Network,
	}
}

type seriesRecord struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status struct {
		Name string `json:"name"`
	} `json:"status"`
	Overview   string `json:"overview"`
	FirstAired string `json:"firstAired"`
}

func (r seriesRecord) series() *Series {
	return &Series{
		ID:       r.ID,
		Name:     r.Name,
		Year:     yearOf(r.FirstAired),
		Status:   r.Status.Name,
		Overview: r.Overview,
	}
}

type episodePage struct {
	Episodes []episodeRecord `json:"episodes"`
}

type episodeRecord struct {
	ID           int    `json:"id"`
	SeasonNumber int    `json:"seasonNumber"`
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	Aired        string `json:"aired"`
	Runtime      int    `json:"runtime"`
}

func (r episodeRecord) episode() Episode {
	// Unaired episodes have no date.
	aired, _ := time.Parse(time.DateOnly, r.Aired)
	return Episode{
		ID:       r.ID,
		Season:   r.SeasonNumber,
		Episode:  r.Number,
		Name:     r.Name,
		Overview: r.Overview,
		AirDate:  aired,
		Runtime:  r.Runtime,
	}
}

// yearOf reads the year from a YYYY-MM-DD date, or 0.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, _ := strconv.Atoi(date[:4])
	return y
}
