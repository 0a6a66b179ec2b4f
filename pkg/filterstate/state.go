// Package filterstate models the filter values applied to a dashboard against
// the values last saved on an alert.
//
// A State is an immutable value: every mutation returns a new State. Change
// notification is kept outside the value in a Listeners registry, and Tracker
// combines the two for callers that want mutate-then-notify semantics.
package filterstate

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/utils"
)

// Version selects which mapping of a State an operation reads
type Version int

const (
	Current Version = iota
	Initial
)

func (v Version) String() string {
	if v == Initial {
		return "initial"
	}
	return "current"
}

// ParseVersion maps "initial" to Initial and anything else to Current
func ParseVersion(s string) Version {
	if s == "initial" {
		return Initial
	}
	return Current
}

// State holds the current filter mapping and the initial snapshot it started from
type State struct {
	current map[string]string
	initial map[string]string
}

// New builds a State from a raw mapping, normalizing nil values to "".
// The result is not dirty.
func New(raw map[string]*string) State {
	m := make(map[string]string, len(raw))
	for k, v := range raw {
		m[k] = utils.StringOrEmpty(v)
	}
	return FromMap(m)
}

// FromMap builds a State whose current and initial mappings equal m
func FromMap(m map[string]string) State {
	return State{current: copyMap(m), initial: copyMap(m)}
}

// FromAppliedFilters folds an alert's applied filters by title.
// Records without a title are skipped; a later record wins over an earlier one.
func FromAppliedFilters(filters []models.AppliedDashboardFilter) State {
	m := make(map[string]string, len(filters))
	for _, f := range filters {
		if f.FilterTitle == "" {
			continue
		}
		m[f.FilterTitle] = utils.StringOrEmpty(f.FilterValue)
	}
	return FromMap(m)
}

// Filter returns a copy of the current mapping, or of the initial one
func (s State) Filter(initial bool) map[string]string {
	if initial {
		return copyMap(s.initial)
	}
	return copyMap(s.current)
}

func (s State) mapping(v Version) map[string]string {
	if v == Initial {
		return s.initial
	}
	return s.current
}

// CanonicalKey serializes the chosen mapping as a JSON object with sorted keys
func (s State) CanonicalKey(v Version) string {
	return canonicalKey(s.mapping(v))
}

// InitialKey is the base64 form of the initial canonical key
func (s State) InitialKey() string {
	return base64.StdEncoding.EncodeToString([]byte(s.CanonicalKey(Initial)))
}

// IsDirty reports whether the current mapping differs from the initial one
func (s State) IsDirty() bool {
	return s.CanonicalKey(Current) != s.CanonicalKey(Initial)
}

// Compare reports whether version this of s and version that of other hold the same filters
func (s State) Compare(other State, this, that Version) bool {
	return s.CanonicalKey(this) == other.CanonicalKey(that)
}

// Equal compares the current mappings of s and other
func (s State) Equal(other State) bool {
	return s.Compare(other, Current, Current)
}

// SearchParams renders the current mapping in query-string form.
// Encode() on the result orders parameters by key.
func (s State) SearchParams() url.Values {
	params := make(url.Values, len(s.current))
	for k, v := range s.current {
		params.Set(k, v)
	}
	return params
}

// WithExternalChange replaces the current mapping with the query parameters of
// rawURL. Filters missing from the URL are dropped; the initial snapshot is kept.
func (s State) WithExternalChange(rawURL string) (State, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return s, fmt.Errorf("parse dashboard url: %w", err)
	}
	next := make(map[string]string)
	for k, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		next[k] = values[len(values)-1]
	}
	return State{current: next, initial: copyMap(s.initial)}, nil
}

// Reset returns a State whose current mapping is a copy of the initial one
func (s State) Reset() State {
	return State{current: copyMap(s.initial), initial: copyMap(s.initial)}
}

// Commit returns a State whose initial snapshot equals the current mapping
func (s State) Commit() State {
	return FromMap(s.current)
}

func canonicalKey(m map[string]string) string {
	if m == nil {
		m = map[string]string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// map keys are emitted in sorted order
	if err := enc.Encode(m); err != nil {
		return "{}"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
