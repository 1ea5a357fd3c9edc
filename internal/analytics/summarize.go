// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package analytics

import (
	"sort"
)

// Reduction selects how a measure's values are combined within a group.
type Reduction int

const (
	// Mean averages the present values.
	Mean Reduction = iota
	// Sum adds the present values.
	Sum
)

// Measure is one reduced column of a summary table.
type Measure[T any] struct {
	Name      string
	Value     func(T) *float64
	Reduction Reduction
}

// GroupSpec describes how to summarise rows of type T by keys of type K.
type GroupSpec[T any, K comparable] struct {
	// Key returns the group key; false drops the row.
	Key func(T) (K, bool)

	// ID identifies the record behind a row. Count is the number of distinct ids.
	ID func(T) string

	Measures []Measure[T]
}

// Group is one summarised key. Values holds one entry per measure, in the order of GroupSpec.Measures.
type Group[K comparable] struct {
	Key    K
	Count  int
	Values []*float64
}

type accumulator struct {
	sum float64
	n   int
}

type groupState[K comparable] struct {
	key  K
	ids  map[string]struct{}
	accs []accumulator
}

// Summarize groups rows and reduces each measure. Groups are returned in the order
// their keys were first seen.
func Summarize[T any, K comparable](rows []T, spec GroupSpec[T, K]) []Group[K] {
	index := make(map[K]int)
	var states []*groupState[K]

	for _, row := range rows {
		key, ok := spec.Key(row)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(states)
			index[key] = i
			states = append(states, &groupState[K]{
				key:  key,
				ids:  make(map[string]struct{}),
				accs: make([]accumulator, len(spec.Measures)),
			})
		}
		st := states[i]
		st.ids[spec.ID(row)] = struct{}{}
		for m, measure := range spec.Measures {
			if v := measure.Value(row); v != nil {
				st.accs[m].sum += *v
				st.accs[m].n++
			}
		}
	}

	groups := make([]Group[K], len(states))
	for i, st := range states {
		values := make([]*float64, len(spec.Measures))
		for m, measure := range spec.Measures {
			acc := st.accs[m]
			if acc.n == 0 {
				continue
			}
			v := acc.sum
			if measure.Reduction == Mean {
				v /= float64(acc.n)
			}
			values[m] = &v
		}
		groups[i] = Group[K]{Key: st.key, Count: len(st.ids), Values: values}
	}
	return groups
}

// SortByCount orders groups by Count descending. Equal counts keep their order.
func SortByCount[K comparable](groups []Group[K]) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
}
