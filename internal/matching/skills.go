package matching

import (
	"strings"

	"github.com/teamfinder-app/teamfinder/internal/user"
)

// MatchesNeededSkills reports whether the candidate declares any of the
// comma-separated skills a team is recruiting for. Matching is a
// case-insensitive substring check against the candidate's primary and
// additional skills. Skill values come from a fixed picklist at
// registration, so plain containment is reliable; there is no stemming or
// typo tolerance. Empty needed-skills text matches nothing.
func MatchesNeededSkills(neededSkills string, candidate *user.User) bool {
	primary := strings.ToLower(candidate.PrimarySkill)
	additional := strings.ToLower(candidate.AdditionalSkills)

	for _, token := range strings.Split(neededSkills, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if strings.Contains(primary, token) || strings.Contains(additional, token) {
			return true
		}
	}

	return false
}

// StripQualifier cuts a skill label down to its canonical prefix, dropping
// the parenthetical detail: "Backend (Python/Go)" becomes "backend".
func StripQualifier(skill string) string {
	base, _, _ := strings.Cut(skill, "(")
	return strings.ToLower(strings.TrimSpace(base))
}

// TeamWantsAny reports whether a team's needed-skills text mentions any of
// the participant's skills. The qualifier is stripped on the participant side
// only: participant labels carry a canonical prefix plus a detail
// parenthetical, while team text is authored free-form.
func TeamWantsAny(neededSkills string, participantSkills []string) bool {
	needed := strings.ToLower(neededSkills)
	if needed == "" {
		return false
	}

	for _, skill := range participantSkills {
		stripped := StripQualifier(skill)
		if stripped != "" && strings.Contains(needed, stripped) {
			return true
		}
	}

	return false
}

// ParticipantSkills collects a user's primary skill and each comma-separated
// additional skill as a flat lowercased list, empties dropped.
func ParticipantSkills(u *user.User) []string {
	var skills []string

	if s := strings.ToLower(strings.TrimSpace(u.PrimarySkill)); s != "" {
		skills = append(skills, s)
	}
	for _, s := range strings.Split(u.AdditionalSkills, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			skills = append(skills, s)
		}
	}

	return skills
}
