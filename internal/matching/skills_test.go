package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamfinder-app/teamfinder/internal/matching"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

func TestMatchesNeededSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		neededSkills string
		primary      string
		additional   string
		want         bool
	}{
		{
			name:         "token in primary skill",
			neededSkills: "Python, React",
			primary:      "React Native",
			want:         true,
		},
		{
			name:         "token in additional skills",
			neededSkills: "Python, React, Design",
			primary:      "Mobile (Flutter)",
			additional:   "Python",
			want:         true,
		},
		{
			name:         "case insensitive",
			neededSkills: "PYTHON",
			primary:      "backend python developer",
			want:         true,
		},
		{
			name:         "no overlap",
			neededSkills: "Python, React",
			primary:      "Design (Figma)",
			additional:   "Marketing",
			want:         false,
		},
		{
			name:         "empty needed skills never match",
			neededSkills: "",
			primary:      "Python",
			additional:   "React",
			want:         false,
		},
		{
			name:         "whitespace-only tokens never match",
			neededSkills: " , ,",
			primary:      "Python",
			want:         false,
		},
		{
			name:         "substring semantics, not whole-word",
			neededSkills: "Go",
			primary:      "Backend (Python/Go)",
			want:         true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			candidate := &user.User{
				PrimarySkill:     tt.primary,
				AdditionalSkills: tt.additional,
			}
			assert.Equal(t, tt.want, matching.MatchesNeededSkills(tt.neededSkills, candidate))
		})
	}
}

func TestStripQualifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "backend", matching.StripQualifier("Backend (Python/Go)"))
	assert.Equal(t, "design", matching.StripQualifier("Design (Figma)"))
	assert.Equal(t, "marketing", matching.StripQualifier("Marketing"))
	assert.Equal(t, "", matching.StripQualifier("(nothing before)"))
	assert.Equal(t, "", matching.StripQualifier("   "))
}

func TestTeamWantsAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		neededSkills string
		skills       []string
		want         bool
	}{
		{
			name:         "stripped label found in free-form text",
			neededSkills: "We need python and design",
			skills:       []string{"design (figma)"},
			want:         true,
		},
		{
			// The qualifier is dropped, not matched: "backend (python/go)"
			// becomes "backend", which this team text does not mention.
			name:         "qualifier content does not count",
			neededSkills: "We need python and design",
			skills:       []string{"backend (python/go)"},
			want:         false,
		},
		{
			name:         "case insensitive against team text",
			neededSkills: "Looking for BACKEND engineers",
			skills:       []string{"Backend (Go)"},
			want:         true,
		},
		{
			name:         "no participant skills",
			neededSkills: "python, design",
			skills:       nil,
			want:         false,
		},
		{
			name:         "empty team text",
			neededSkills: "",
			skills:       []string{"python"},
			want:         false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, matching.TeamWantsAny(tt.neededSkills, tt.skills))
		})
	}
}

func TestParticipantSkills(t *testing.T) {
	t.Parallel()

	u := &user.User{
		PrimarySkill:     "Backend (Python/Go)",
		AdditionalSkills: "React, , Design (Figma)",
	}

	assert.Equal(t, []string{"backend (python/go)", "react", "design (figma)"}, matching.ParticipantSkills(u))

	empty := &user.User{}
	assert.Empty(t, matching.ParticipantSkills(empty))
}
