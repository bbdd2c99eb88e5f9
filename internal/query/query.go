// Package query implements the generic filter → sort → paginate pipeline
// shared by every list screen. It is entity-agnostic and operates on
// in-memory collections returned by the repositories; no step mutates its
// input.
package query

import (
	"fmt"
	"sort"
	"strings"
)

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(T) bool

// And composes predicates with logical AND. With no predicates everything
// passes.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, pred := range preds {
			if !pred(item) {
				return false
			}
		}
		return true
	}
}

// TextSearch builds a case-insensitive substring predicate across the named
// field accessors. An empty needle matches everything.
func TextSearch[T any](needle string, fields ...func(T) string) Predicate[T] {
	needle = strings.ToLower(strings.TrimSpace(needle))
	return func(item T) bool {
		if needle == "" {
			return true
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				return true
			}
		}
		return false
	}
}

// Filter returns the items passing all predicates, preserving input order.
// Filtering is idempotent: applying the same predicates again is a no-op.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	pred := And(preds...)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a sorted copy of items. The sort is stable: ties preserve
// their prior relative order. descending inverts the comparator.
func SortBy[T any](items []T, less func(a, b T) bool, descending bool) []T {
	out := append([]T(nil), items...)
	cmp := less
	if descending {
		cmp = func(a, b T) bool { return less(b, a) }
	}
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) })
	return out
}

// Page is one page of query results plus the pagination metadata the list
// screens render.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageIndex  int `json:"page_index"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into the 1-based page of the given size. A page past
// the end yields empty items with intact metadata; the engine never clamps,
// callers decide how to present an out-of-range request.
func Paginate[T any](items []T, pageIndex, pageSize int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}
	if pageIndex < 1 {
		return Page[T]{}, fmt.Errorf("page index is 1-based, got %d", pageIndex)
	}
	total := len(items)
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	page := Page[T]{
		Items:      []T{},
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
	start := (pageIndex - 1) * pageSize
	if start >= total {
		return page, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	page.Items = append([]T(nil), items[start:end]...)
	return page, nil
}
