package domain

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// FilterState is the paging and filter state owned by one list view. Every
// With* helper returns a copy, so updaters built from them stay pure.
type FilterState struct {
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Search  string            `json:"q,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

// Updater derives the next state from the previous one.
type Updater func(prev FilterState) FilterState

// NewFilterState returns {page: 1, limit: limit} with limit falling back to 10.
func NewFilterState(limit int) FilterState {
	return FilterState{Page: DefaultPage, Limit: limit}.Normalize()
}

// Normalize returns a sanitized copy applying defaults and bounds.
func (q FilterState) Normalize() FilterState {
	normalized := q
	if normalized.Page <= 0 {
		normalized.Page = DefaultPage
	}
	if normalized.Limit <= 0 {
		normalized.Limit = DefaultLimit
	}
	if normalized.Limit > MaxLimit {
		normalized.Limit = MaxLimit
	}
	normalized.Search = strings.TrimSpace(normalized.Search)
	normalized.Filters = sanitizeFilters(normalized.Filters)
	return normalized
}

// Clone copies the filter map so the result can be changed freely.
func (q FilterState) Clone() FilterState {
	clone := q
	if q.Filters != nil {
		clone.Filters = make(map[string]string, len(q.Filters))
		for key, value := range q.Filters {
			clone.Filters[key] = value
		}
	}
	return clone
}

// Filter returns the current value of key, or "".
func (q FilterState) Filter(key string) string {
	return q.Filters[key]
}

// WithPage moves to page, keeping every filter.
func (q FilterState) WithPage(page int) FilterState {
	next := q.Clone()
	next.Page = page
	return next.Normalize()
}

// WithLimit changes the page size and returns to the first page.
func (q FilterState) WithLimit(limit int) FilterState {
	next := q.Clone()
	next.Limit = limit
	next.Page = DefaultPage
	return next.Normalize()
}

// WithSearch commits a search term and returns to the first page.
func (q FilterState) WithSearch(term string) FilterState {
	next := q.Clone()
	next.Search = term
	next.Page = DefaultPage
	return next.Normalize()
}

// WithFilter sets one filter and returns to the first page. An empty value
// removes the filter.
func (q FilterState) WithFilter(key, value string) FilterState {
	return q.WithFilters(map[string]string{key: value})
}

// WithFilters merges only the given keys; keys absent from updates are left as
// they were and empty values remove their key.
func (q FilterState) WithFilters(updates map[string]string) FilterState {
	next := q.Clone()
	if next.Filters == nil {
		next.Filters = make(map[string]string, len(updates))
	}
	for key, value := range updates {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if strings.TrimSpace(value) == "" {
			delete(next.Filters, key)
			continue
		}
		next.Filters[key] = value
	}
	next.Page = DefaultPage
	return next.Normalize()
}

// CanonicalKey builds a stable cache key; any field change produces a new key.
func (q FilterState) CanonicalKey() string {
	normalized := q.Normalize()
	var builder strings.Builder
	builder.WriteString("page=")
	builder.WriteString(strconv.Itoa(normalized.Page))
	builder.WriteString("&limit=")
	builder.WriteString(strconv.Itoa(normalized.Limit))
	if normalized.Search != "" {
		builder.WriteString("&q=")
		builder.WriteString(url.QueryEscape(normalized.Search))
	}
	keys := sortedKeys(normalized.Filters)
	for _, key := range keys {
		builder.WriteString("&")
		builder.WriteString(url.QueryEscape(key))
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(normalized.Filters[key]))
	}
	return builder.String()
}

// Equal compares two states by their canonical keys.
func (q FilterState) Equal(other FilterState) bool {
	return q.CanonicalKey() == other.CanonicalKey()
}

// Metadata flattens the state for websocket messages.
func (q FilterState) Metadata() map[string]string {
	normalized := q.Normalize()
	metadata := map[string]string{
		"page":  strconv.Itoa(normalized.Page),
		"limit": strconv.Itoa(normalized.Limit),
	}
	if normalized.Search != "" {
		metadata["q"] = normalized.Search
	}
	for key, value := range normalized.Filters {
		metadata[key] = value
	}
	return metadata
}

// ToURLValues returns query parameters ready for REST calls. alias maps a
// filter key to the parameter name the endpoint expects; nil keeps keys as-is.
func (q FilterState) ToURLValues(alias func(string) string) url.Values {
	normalized := q.Normalize()
	values := url.Values{}
	values.Set("page", strconv.Itoa(normalized.Page))
	values.Set("limit", strconv.Itoa(normalized.Limit))
	if normalized.Search != "" {
		values.Set("q", normalized.Search)
	}
	for key, value := range normalized.Filters {
		name := key
		if alias != nil {
			name = alias(key)
		}
		if name == "" {
			continue
		}
		values.Set(name, value)
	}
	return values
}

func sanitizeFilters(filters map[string]string) map[string]string {
	if len(filters) == 0 {
		return nil
	}
	sanitized := make(map[string]string, len(filters))
	for key, value := range filters {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		sanitized[trimmedKey] = trimmedValue
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}

func sortedKeys(filters map[string]string) []string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
