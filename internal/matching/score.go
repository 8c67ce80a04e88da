package matching

import (
	"strings"

	"github.com/teamfinder-app/teamfinder/internal/user"
)

// Compatibility weights. The base plus both bonuses caps out at the
// five-star maximum; the floor stays at two stars even though the rating is
// rendered on a one-to-five scale.
const (
	baseStars            = 2
	differentSkillsBonus = 2
	sharedCategoryBonus  = 1
	maxStars             = 5
)

// Score rates how well two solo founders complement each other, from 2 to 5
// stars. Different primary skills add 2 (they complete each other), ideas in
// the same category add 1. Both bonuses are symmetric predicates, so the
// score is commutative.
func Score(a, b *user.User) int {
	stars := baseStars

	skillA := strings.ToLower(strings.TrimSpace(a.PrimarySkill))
	skillB := strings.ToLower(strings.TrimSpace(b.PrimarySkill))
	if skillA != "" && skillB != "" && skillA != skillB {
		stars += differentSkillsBonus
	}

	catA, okA := CategoryOf(a.IdeaWhat)
	catB, okB := CategoryOf(b.IdeaWhat)
	if okA && okB && catA == catB {
		stars += sharedCategoryBonus
	}

	if stars > maxStars {
		stars = maxStars
	}

	return stars
}
