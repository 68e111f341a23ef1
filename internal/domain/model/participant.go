// Package model contains domain models passed between layers.
package model

import (
	"sort"

	"github.com/okian/crux/internal/domain/types"
)

// CompetitionReference is one entry of a participant's history.
type CompetitionReference struct {
	Name       string           `json:"name"`       // competition document name
	Rank       string           `json:"rank"`       // result rank, empty when unranked
	Discipline types.Discipline `json:"discipline"` // always set
}

// Participant is a person and every competition they appeared in.
// Identity fields are fixed at creation; only Competitions grows.
type Participant struct {
	Firstname    string                 `json:"firstname"`
	Lastname     string                 `json:"lastname"`
	Gender       types.Gender           `json:"gender"`
	PersonID     string                 `json:"PerId"`
	Competitions []CompetitionReference `json:"Competitions"`
}

// FullName joins first and last name for display.
func (p *Participant) FullName() string {
	return p.Firstname + " " + p.Lastname
}

// RankIn returns the rank of the first history entry for competition.
func (p *Participant) RankIn(competition string) (string, bool) {
	for _, c := range p.Competitions {
		if c.Name == competition {
			return c.Rank, true
		}
	}
	return "", false
}

// Record is a raw participant record as published in a competition document.
type Record struct {
	PersonID  string
	Firstname string
	Lastname  string
	Rank      string
	ResultKey string // opaque rkey, encodes category (and gender) upstream
}

// Fact is one normalized participant-competition observation.
type Fact struct {
	Record      Record
	Gender      types.Gender
	Competition string
	Discipline  types.Discipline
}

// ParticipantIndex maps person id to participant. It is the single source
// of truth and is persisted as-is.
type ParticipantIndex map[string]*Participant

// IDs returns the person ids in scan order (sorted, matching persisted key order).
func (idx ParticipantIndex) IDs() []string {
	ids := make([]string, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NameIndex maps "firstname:lastname" to every person id carrying that name.
type NameIndex map[string][]string

// NameKey builds the lookup key used by NameIndex and query input.
func NameKey(firstname, lastname string) string {
	return firstname + ":" + lastname
}
