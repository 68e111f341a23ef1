package classify

import "github.com/okian/crux/internal/domain/types"

// DefaultDiscipline is returned when no discipline rule matches.
const DefaultDiscipline = types.Lead

// DisciplineRules tests boulder, lead, speed, combined in that order.
var DisciplineRules = Table[types.Discipline]{
	{Name: "boulder", Match: ContainsFold("boulder"), Tag: types.Bouldering},
	{Name: "lead", Match: ContainsFold("lead"), Tag: types.Lead},
	{Name: "speed", Match: ContainsFold("speed"), Tag: types.Speed},
	{Name: "combined", Match: ContainsFold("combined"), Tag: types.Combined},
}

// Discipline classifies a free-text label. ok is false when the label was
// not recognized and DefaultDiscipline was returned.
func Discipline(label string) (d types.Discipline, ok bool) {
	if d, ok = DisciplineRules.First(label); ok {
		return d, true
	}
	return DefaultDiscipline, false
}
