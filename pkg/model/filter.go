package model

import "tableflip.dev/filmdeck/pkg/movie"

// FilterModel holds the active filter selection.
type FilterModel struct {
	Observable
	filter movie.FilterType
}

// NewFilterModel starts on the "all" filter.
func NewFilterModel() *FilterModel {
	return &FilterModel{filter: movie.FilterAll}
}

// Filter returns the active filter.
func (f *FilterModel) Filter() movie.FilterType {
	return f.filter
}

// SetFilter changes the filter and notifies observers with kind.
func (f *FilterModel) SetFilter(kind UpdateKind, filter movie.FilterType) {
	f.filter = filter
	f.notify(kind, filter)
}
