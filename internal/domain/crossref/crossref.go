// Package crossref aggregates the shared competition footprint of a set
// of queried persons, per discipline.
package crossref

import (
	"github.com/okian/crux/internal/domain/model"
	"github.com/okian/crux/internal/domain/types"
)

// Result is the footprint of the queried persons in one discipline.
// Participants and competitions keep first-seen order.
type Result struct {
	Discipline types.Discipline

	participants map[string]*model.Participant
	personOrder  []string
	competitions map[string]struct{}
	compOrder    []string
}

func newResult(d types.Discipline) *Result {
	return &Result{
		Discipline:   d,
		participants: make(map[string]*model.Participant),
		competitions: make(map[string]struct{}),
	}
}

// addParticipant is a no-op for an already recorded person id.
func (r *Result) addParticipant(p *model.Participant) {
	if _, ok := r.participants[p.PersonID]; ok {
		return
	}
	r.participants[p.PersonID] = p
	r.personOrder = append(r.personOrder, p.PersonID)
}

func (r *Result) addCompetition(name string) {
	if _, ok := r.competitions[name]; ok {
		return
	}
	r.competitions[name] = struct{}{}
	r.compOrder = append(r.compOrder, name)
}

// Participants returns the recorded participants.
func (r *Result) Participants() []*model.Participant {
	out := make([]*model.Participant, len(r.personOrder))
	for i, id := range r.personOrder {
		out[i] = r.participants[id]
	}
	return out
}

// Participant looks up a recorded participant by person id.
func (r *Result) Participant(personID string) (*model.Participant, bool) {
	p, ok := r.participants[personID]
	return p, ok
}

// Competitions returns the recorded competition names.
func (r *Result) Competitions() []string {
	return append([]string(nil), r.compOrder...)
}

// HasCompetition reports whether name is in the competition set.
func (r *Result) HasCompetition(name string) bool {
	_, ok := r.competitions[name]
	return ok
}

// Empty reports whether nothing was found in this discipline.
func (r *Result) Empty() bool {
	return len(r.personOrder) == 0 && len(r.compOrder) == 0
}

// Aggregate resolves each "firstname:lastname" query through names and
// walks every matching participant's history. It always returns one
// result per discipline, in types.Disciplines order. Unknown names are
// skipped.
func Aggregate(queries []string, names model.NameIndex, idx model.ParticipantIndex) []*Result {
	byDiscipline := make(map[types.Discipline]*Result, len(types.Disciplines))
	for _, d := range types.Disciplines {
		byDiscipline[d] = newResult(d)
	}

	for _, q := range queries {
		for _, id := range names[q] {
			p, ok := idx[id]
			if !ok {
				continue
			}
			for _, c := range p.Competitions {
				r, ok := byDiscipline[c.Discipline]
				if !ok {
					continue
				}
				r.addCompetition(c.Name)
				r.addParticipant(p)
			}
		}
	}

	out := make([]*Result, len(types.Disciplines))
	for i, d := range types.Disciplines {
		out[i] = byDiscipline[d]
	}
	return out
}

// Resolved reports which queries are present in names, in query order.
func Resolved(queries []string, names model.NameIndex) (found, missing []string) {
	for _, q := range queries {
		if _, ok := names[q]; ok {
			found = append(found, q)
		} else {
			missing = append(missing, q)
		}
	}
	return found, missing
}
