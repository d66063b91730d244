package view

import (
	"strings"

	"task-desk.com/task-desk/pkg/constants"
	"task-desk.com/task-desk/pkg/exceptions"
)

type SortKey string

const (
	SortByTitle     SortKey = "title"
	SortByStatus    SortKey = "status"
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByTitle, SortByStatus, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// FilterAll disables the status filter.
const FilterAll = "all"

// Params is the ephemeral filter, search and sort selection of one view.
type Params struct {
	StatusFilter string    `json:"status"`
	Search       string    `json:"search"`
	SortKey      SortKey   `json:"sort"`
	Direction    Direction `json:"dir"`
}

// DefaultParams shows every task, newest first.
func DefaultParams() Params {
	return Params{
		StatusFilter: FilterAll,
		SortKey:      SortByCreatedAt,
		Direction:    Descending,
	}
}

// ToggleSort selects key ascending, or flips the direction when key is
// already the active sort.
func (p Params) ToggleSort(key SortKey) Params {
	if p.SortKey == key {
		if p.Direction == Ascending {
			p.Direction = Descending
		} else {
			p.Direction = Ascending
		}
		return p
	}

	p.SortKey = key
	p.Direction = Ascending
	return p
}

// WithStatusFilter selects the tasks of one status. Any spelling accepted by
// ParseStatusFilter works; anything else is a validation error and leaves p
// unchanged.
func (p Params) WithStatusFilter(status string) (Params, error) {
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return p, err
	}
	p.StatusFilter = filter
	return p, nil
}

func (p Params) WithSearch(term string) Params {
	p.Search = term
	return p
}

// Filtering reports whether a status filter or search term is active.
func (p Params) Filtering() bool {
	_, ok := p.status()
	return p.Search != "" || ok
}

// status returns the filtered status, if any. A hand-built Params may carry
// any spelling; an unknown one still filters and so matches nothing.
func (p Params) status() (constants.TaskStatus, bool) {
	v := strings.TrimSpace(p.StatusFilter)
	if v == "" || strings.EqualFold(v, FilterAll) {
		return "", false
	}
	if s, ok := constants.ParseStatus(v); ok {
		return s, true
	}
	return constants.TaskStatus(v), true
}

// ParseStatusFilter turns "", "all" (any case) or a status spelling into the
// canonical filter value.
func ParseStatusFilter(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, FilterAll) {
		return FilterAll, nil
	}
	s, ok := constants.ParseStatus(v)
	if !ok {
		return "", exceptions.Validation("unknown status filter: " + v)
	}
	return string(s), nil
}

// ParseParams builds Params from loosely typed input such as query strings
// or command flags. Empty values keep their defaults.
func ParseParams(status, search, sortKey, dir string) (Params, error) {
	p := DefaultParams()

	filter, err := ParseStatusFilter(status)
	if err != nil {
		return p, err
	}
	p.StatusFilter = filter

	p.Search = search

	if sortKey != "" {
		key, err := ParseSortKey(sortKey)
		if err != nil {
			return p, err
		}
		p.SortKey = key
	}

	switch strings.ToLower(dir) {
	case "":
	case "asc", "ascending":
		p.Direction = Ascending
	case "desc", "descending":
		p.Direction = Descending
	default:
		return p, exceptions.Validation("unknown sort direction: " + dir)
	}

	return p, nil
}

// ParseSortKey accepts the sort keys in camel, snake or kebab case.
func ParseSortKey(v string) (SortKey, error) {
	if key, ok := sortKeyOf(v); ok {
		return key, nil
	}
	return "", exceptions.Validation("unknown sort key: " + v)
}

func sortKeyOf(v string) (SortKey, bool) {
	switch strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(v)) {
	case "title":
		return SortByTitle, true
	case "status":
		return SortByStatus, true
	case "createdat", "created":
		return SortByCreatedAt, true
	case "updatedat", "updated":
		return SortByUpdatedAt, true
	}
	return "", false
}
