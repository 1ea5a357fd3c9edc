// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"fmt"

	"github.com/tomtom215/marquee/internal/models"
)

// PopularPage is one page of /movie/popular or /tv/popular.
type PopularPage struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Title `json:"results"`
}

// Title is a film or series as listed by TMDB. Films carry Title and ReleaseDate,
// series carry Name and FirstAirDate.
type Title struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title,omitempty"`
	Name             string   `json:"name,omitempty"`
	OriginalLanguage string   `json:"original_language"`
	Overview         string   `json:"overview"`
	Popularity       *float64 `json:"popularity"`
	VoteAverage      *float64 `json:"vote_average"`
	VoteCount        *int64   `json:"vote_count"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	FirstAirDate     string   `json:"first_air_date,omitempty"`
	GenreIDs         []int    `json:"genre_ids"`
}

// DisplayTitle returns Title for films and Name for series.
func (t Title) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

// Date returns ReleaseDate for films and FirstAirDate for series.
func (t Title) Date() string {
	if t.ReleaseDate != "" {
		return t.ReleaseDate
	}
	return t.FirstAirDate
}

// Genre is one entry of a genre list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the body of /genre/{kind}/list.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// pathKind maps a catalogue kind to the TMDB path segment.
func pathKind(k models.Kind) (string, error) {
	switch k {
	case models.KindFilm:
		return "movie", nil
	case models.KindSeries:
		return "tv", nil
	default:
		return "", fmt.Errorf("tmdb: unsupported kind %q", k)
	}
}
