// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package tmdb fetches popular films and series from The Movie Database (TMDB) v3 API
and writes them as the catalogue files the analysis reads.

Request path:

	Client.get
	  -> Cache (BadgerDB, keyed by URL without api_key, TTL)
	  -> rate.Limiter.Wait (golang.org/x/time/rate)
	  -> gobreaker circuit breaker ("tmdb-api")
	  -> HTTP GET with HTTP 429 retry (Retry-After or exponential backoff)

Endpoints used:

	/movie/popular?page=N    /tv/popular?page=N
	/genre/movie/list        /genre/tv/list

Fetcher.Collect pages through both kinds, merges the genre lists and
Collection.WriteFiles writes tmdb_popular.csv and genres_map.csv:

	id,kind,title,original_language,overview,popularity,vote_average,vote_count,release_date,genre_ids
	603,movie,The Matrix,en,...,84.2,8.2,25000,1999-03-30,"[28, 878]"

	,name
	28,Action

Authentication uses the api_key query parameter; the key never reaches logs or
cache keys.
*/
package tmdb
