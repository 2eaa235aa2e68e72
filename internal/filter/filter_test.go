package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec map[Facet][]string

func (r rec) FacetValues(f Facet) []string { return r[f] }

func students() []rec {
	return []rec{
		{FacetExperienceLevel: {"Advanced"}, FacetAcademicYear: {"Senior"}, FacetMajor: {"Computer Science"}, FacetSkills: {"React", "Go"}, FacetAvailability: {"20+ hours/week"}},
		{FacetExperienceLevel: {"Beginner"}, FacetAcademicYear: {"Freshman"}, FacetMajor: {"Design"}, FacetSkills: {"Figma"}, FacetAvailability: {"Flexible"}},
		{FacetExperienceLevel: {"Intermediate"}, FacetAcademicYear: {"Senior"}, FacetMajor: {"Computer Science"}, FacetSkills: nil, FacetAvailability: {"5–10 hours/week"}},
	}
}

func TestToggle_AddThenRemove(t *testing.T) {
	e := New(StudentFacets)
	require.NoError(t, e.Toggle(FacetSkills, "React"))
	require.NoError(t, e.Toggle(FacetSkills, "Python"))
	assert.Equal(t, []string{"React", "Python"}, e.Selected(FacetSkills))

	require.NoError(t, e.Toggle(FacetSkills, "React"))
	assert.Equal(t, []string{"Python"}, e.Selected(FacetSkills))
}

func TestToggle_Errors(t *testing.T) {
	e := New(ProjectFacets)
	assert.ErrorIs(t, e.Toggle(FacetMajor, "Design"), ErrUnknownFacet)
	assert.ErrorIs(t, e.Toggle(FacetCategory, "  "), ErrEmptyValue)
	assert.True(t, e.Empty())
}

func TestActive_FacetDeclarationOrder(t *testing.T) {
	e := New(StudentFacets)
	require.NoError(t, e.Toggle(FacetAvailability, "Flexible"))
	require.NoError(t, e.Toggle(FacetSkills, "Go"))
	require.NoError(t, e.Toggle(FacetSkills, "React"))
	require.NoError(t, e.Toggle(FacetExperienceLevel, "Advanced"))

	assert.Equal(t, []string{"Advanced", "Go", "React", "Flexible"}, e.Active())
}

func TestClear_AllRecordsMatch(t *testing.T) {
	e := New(StudentFacets)
	require.NoError(t, e.Toggle(FacetMajor, "Design"))
	require.NoError(t, e.Toggle(FacetSkills, "Go"))

	e.Clear()
	assert.Empty(t, e.Active())
	assert.True(t, e.Empty())
	assert.Len(t, Apply(e, students()), 3)

	e.Clear()
	assert.Empty(t, e.Active())
	assert.Len(t, Apply(e, students()), 3)
}

func TestMatches_SkillsOverlapLaw(t *testing.T) {
	cases := []struct {
		name     string
		selected []string
		record   []string
		want     bool
	}{
		{"overlap one", []string{"React", "Python"}, []string{"Go", "React"}, true},
		{"overlap all", []string{"Go"}, []string{"Go"}, true},
		{"disjoint", []string{"Python"}, []string{"Go", "React"}, false},
		{"record has none", []string{"Python"}, nil, false},
		{"nothing selected", nil, []string{"Go"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(StudentFacets)
			for _, s := range tc.selected {
				require.NoError(t, e.Toggle(FacetSkills, s))
			}
			assert.Equal(t, tc.want, e.Matches(rec{FacetSkills: tc.record}))
		})
	}
}

func TestMatches_AndAcrossOrWithin(t *testing.T) {
	e := New(StudentFacets)
	require.NoError(t, e.Toggle(FacetAcademicYear, "Senior"))
	require.NoError(t, e.Toggle(FacetAcademicYear, "Freshman"))
	require.NoError(t, e.Toggle(FacetMajor, "Computer Science"))

	got := Apply(e, students())
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Advanced"}, got[0][FacetExperienceLevel])
	assert.Equal(t, []string{"Intermediate"}, got[1][FacetExperienceLevel])
}

func TestRemove_DropsFromEveryFacet(t *testing.T) {
	e := New(ProjectFacets)
	require.NoError(t, e.Toggle(FacetCategory, "Design"))
	require.NoError(t, e.Toggle(FacetSkills, "Design"))
	require.NoError(t, e.Toggle(FacetSkills, "Go"))

	e.Remove("Design")
	assert.Empty(t, e.Selected(FacetCategory))
	assert.Equal(t, []string{"Go"}, e.Selected(FacetSkills))
	assert.Equal(t, []string{"Go"}, e.Active())
}

func TestFromQuery(t *testing.T) {
	q := map[string][]string{
		"skills":   {"React", "React", " ", "Python"},
		"category": {"Design"},
		"major":    {"ignored for projects"},
	}
	e := FromQuery(ProjectFacets, func(k string) []string { return q[k] })

	assert.Equal(t, []string{"Design", "React", "Python"}, e.Active())
	assert.Empty(t, e.Selected(FacetMajor))
}

func TestSelected_ReturnsCopy(t *testing.T) {
	e := New(ProjectFacets)
	require.NoError(t, e.Toggle(FacetDuration, "1-2 months"))
	sel := e.Selected(FacetDuration)
	sel[0] = "mutated"
	assert.Equal(t, []string{"1-2 months"}, e.Selected(FacetDuration))
}
