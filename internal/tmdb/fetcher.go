// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// File names written by Collection.WriteFiles.
const (
	CatalogueFile = "tmdb_popular.csv"
	GenresFile    = "genres_map.csv"
)

// catalogueHeader is the column order of the catalogue file.
var catalogueHeader = []string{
	"id", "kind", "title", "original_language", "overview",
	"popularity", "vote_average", "vote_count", "release_date", "genre_ids",
}

// Item is one fetched title with the kind it was listed under.
type Item struct {
	Kind  models.Kind
	Title Title
}

// Collection is the result of a fetch: titles in fetch order (films first) and
// the merged genre map in discovery order.
type Collection struct {
	Items  []Item
	Genres []Genre
}

// Fetcher pages through popular films and series.
type Fetcher struct {
	client *Client
	pages  int
}

// NewFetcher returns a fetcher requesting pages pages per kind.
func NewFetcher(client *Client, pages int) *Fetcher {
	return &Fetcher{client: client, pages: pages}
}

// Collect fetches popular films, then popular series, then both genre lists.
// Pagination stops early when TMDB reports fewer pages than requested.
func (f *Fetcher) Collect(ctx context.Context) (*Collection, error) {
	logger := logging.Ctx(ctx)
	col := &Collection{}

	for _, kind := range []models.Kind{models.KindFilm, models.KindSeries} {
		for page := 1; page <= f.pages; page++ {
			res, err := f.client.Popular(ctx, kind, page)
			if err != nil {
				return nil, fmt.Errorf("popular %s page %d: %w", kind, page, err)
			}
			for _, t := range res.Results {
				col.Items = append(col.Items, Item{Kind: kind, Title: t})
			}
			logger.Debug().Str("kind", kind.String()).Int("page", page).Int("results", len(res.Results)).Msg("Fetched popular page")
			if res.TotalPages > 0 && page >= res.TotalPages {
				break
			}
		}
	}

	seen := make(map[int]int)
	for _, kind := range []models.Kind{models.KindFilm, models.KindSeries} {
		genres, err := f.client.Genres(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("genres %s: %w", kind, err)
		}
		for _, g := range genres {
			if i, ok := seen[g.ID]; ok {
				col.Genres[i].Name = g.Name
				continue
			}
			seen[g.ID] = len(col.Genres)
			col.Genres = append(col.Genres, g)
		}
	}

	logger.Info().Int("titles", len(col.Items)).Int("genres", len(col.Genres)).Msg("TMDB fetch complete")
	return col, nil
}

// WriteFiles writes the catalogue and genre map into dir and returns their paths.
func (c *Collection) WriteFiles(dir string) (catalogue, genres string, err error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", "", fmt.Errorf("failed to create data directory: %w", err)
	}

	rows := make([][]string, 0, len(c.Items))
	for _, it := range c.Items {
		segment, err := pathKind(it.Kind)
		if err != nil {
			return "", "", err
		}
		t := it.Title
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			segment,
			t.DisplayTitle(),
			t.OriginalLanguage,
			t.Overview,
			formatFloat(t.Popularity),
			formatFloat(t.VoteAverage),
			formatInt(t.VoteCount),
			t.Date(),
			formatIDs(t.GenreIDs),
		})
	}
	catalogue = filepath.Join(dir, CatalogueFile)
	if err := writeCSV(catalogue, catalogueHeader, rows); err != nil {
		return "", "", err
	}

	genreRows := make([][]string, 0, len(c.Genres))
	for _, g := range c.Genres {
		genreRows = append(genreRows, []string{strconv.Itoa(g.ID), g.Name})
	}
	genres = filepath.Join(dir, GenresFile)
	if err := writeCSV(genres, []string{"", "name"}, genreRows); err != nil {
		return "", "", err
	}
	return catalogue, genres, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := csv.NewWriter(tmp)
	err = w.Write(header)
	if err == nil {
		err = w.WriteAll(rows)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// formatIDs renders ids as a bracketed list ("[28, 878]"), the form the
// normalizer parses.
func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
