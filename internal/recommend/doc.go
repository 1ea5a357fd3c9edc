// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend selects the original languages that deserve investment focus.
//
// # Algorithm
//
// The recommender looks at the most recent releases, ranks languages by audience
// reception and then applies an adaptive sample-size threshold so that a language
// is only recommended on the strength of enough titles:
//
//  1. Recent window: records released in the last WindowYears years, counted back
//     from the latest release year in the data. An empty window (or data without any
//     release year) degrades to the whole dataset.
//  2. Ranking: languages in the window ordered by mean overview sentiment, then
//     mean popularity, both descending. Missing popularity ranks last; remaining
//     ties keep the order in which languages were first seen.
//  3. Decision table: the first rule whose condition holds picks the shortlist.
//     With the default thresholds [20 10 5] and MinGroups 3, the shortlist is every
//     language with at least 20 titles if there are at least three of them, else the
//     same test at 10, then at 5, else the top 8 languages regardless of size.
//
// # Guarantees
//
//   - Recommend never fails and is deterministic for a given input
//   - The result is empty only when no record carries a language
//   - RecommendationSet.Rule and Threshold record which rule fired
//
// # Usage
//
//	rec, err := recommend.New(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	set := rec.Recommend(enriched)
//	fmt.Println(set.Rule, len(set.Rows))
//
// The rule table is exported through Rules so it can be audited on its own.
package recommend
