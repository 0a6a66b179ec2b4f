package filterstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertmgr/backend/pkg/models"
	"github.com/alertmgr/backend/pkg/utils"
)

func TestNew_NotDirtyAfterConstruction(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]*string
	}{
		{"empty", map[string]*string{}},
		{"nil", nil},
		{"values", map[string]*string{"a": utils.StringPtr("1"), "b": utils.StringPtr("2")}},
		{"nil value", map[string]*string{"a": utils.StringPtr("1"), "b": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, New(tt.raw).IsDirty())
		})
	}
}

func TestNew_NormalizesNilValues(t *testing.T) {
	s := New(map[string]*string{"a": utils.StringPtr("1"), "b": nil})
	assert.Equal(t, map[string]string{"a": "1", "b": ""}, s.Filter(false))
	assert.Equal(t, map[string]string{"a": "1", "b": ""}, s.Filter(true))
}

func TestFromAppliedFilters(t *testing.T) {
	withNil := []models.AppliedDashboardFilter{
		{FilterTitle: "a", FilterValue: utils.StringPtr("1")},
		{FilterTitle: "b", FilterValue: nil},
	}
	withMissing := []models.AppliedDashboardFilter{
		{FilterTitle: "a", FilterValue: utils.StringPtr("1")},
		{FilterTitle: "b"},
		{FilterValue: utils.StringPtr("ignored")},
	}

	expected := map[string]string{"a": "1", "b": ""}
	assert.Equal(t, expected, FromAppliedFilters(withNil).Filter(false))
	assert.Equal(t, expected, FromAppliedFilters(withMissing).Filter(false))
	assert.Empty(t, FromAppliedFilters(nil).Filter(false))
}

func TestCanonicalKey_PermutationStable(t *testing.T) {
	m1 := map[string]string{}
	m2 := map[string]string{}
	keys := []string{"zeta", "alpha", "Beta", "gamma", "a b", "1"}
	for i, k := range keys {
		m1[k] = k + "-v"
		m2[keys[len(keys)-1-i]] = keys[len(keys)-1-i] + "-v"
	}

	assert.Equal(t, FromMap(m1).CanonicalKey(Current), FromMap(m2).CanonicalKey(Current))
	assert.Equal(t, `{"a":"1","b":"2"}`, FromMap(map[string]string{"b": "2", "a": "1"}).CanonicalKey(Current))
	assert.Equal(t, `{}`, State{}.CanonicalKey(Initial))
	assert.Equal(t, `{"q":"a&b<c>"}`, FromMap(map[string]string{"q": "a&b<c>"}).CanonicalKey(Current))
}

func TestCompare(t *testing.T) {
	s1 := FromMap(map[string]string{"a": "1", "b": "2"})
	s2 := FromMap(map[string]string{"b": "2", "a": "1"})
	assert.True(t, s1.Equal(s2))
	assert.True(t, s1.Compare(s2, Initial, Current))

	withNil := New(map[string]*string{"a": utils.StringPtr("1"), "b": nil})
	withEmpty := FromMap(map[string]string{"a": "1", "b": ""})
	assert.True(t, withNil.Equal(withEmpty))

	missingKey := FromMap(map[string]string{"a": "1"})
	assert.False(t, missingKey.Equal(withEmpty))
}

func TestSearchParams(t *testing.T) {
	s := FromMap(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, "a=1&b=2", s.SearchParams().Encode())

	spaced := FromMap(map[string]string{"Order Status": "Complete,Returned"})
	assert.Equal(t, "Order+Status=Complete%2CReturned", spaced.SearchParams().Encode())
}

func TestWithExternalChange(t *testing.T) {
	s := FromMap(map[string]string{"a": "1", "b": "2"})

	next, err := s.WithExternalChange("https://bi.example.com/embed/dashboards/7?a=5&c=x&c=y")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a": "5", "c": "y"}, next.Filter(false))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, next.Filter(true))
	assert.True(t, next.IsDirty())
	// receiver is untouched
	assert.False(t, s.IsDirty())

	_, err = s.WithExternalChange("http://[::1]:namedport")
	assert.Error(t, err)
}

func TestResetAndCommit(t *testing.T) {
	s := FromMap(map[string]string{"a": "1"})
	changed, err := s.WithExternalChange("https://x/?a=2")
	require.NoError(t, err)

	reset := changed.Reset()
	assert.False(t, reset.IsDirty())
	assert.Equal(t, map[string]string{"a": "1"}, reset.Filter(false))

	committed := changed.Commit()
	assert.False(t, committed.IsDirty())
	assert.Equal(t, map[string]string{"a": "2"}, committed.Filter(true))
}

func TestFilter_ReturnsCopy(t *testing.T) {
	s := FromMap(map[string]string{"a": "1"})
	f := s.Filter(false)
	f["a"] = "mutated"
	assert.Equal(t, "1", s.Filter(false)["a"])
}

func TestInitialKey(t *testing.T) {
	s := FromMap(map[string]string{"b": "", "a": "1"})
	// base64 of {"a":"1","b":""}
	assert.Equal(t, "eyJhIjoiMSIsImIiOiIifQ==", s.InitialKey())
}

func TestParseVersion(t *testing.T) {
	assert.Equal(t, Initial, ParseVersion("initial"))
	assert.Equal(t, Current, ParseVersion("current"))
	assert.Equal(t, Current, ParseVersion(""))
	assert.Equal(t, "initial", Initial.String())
}
