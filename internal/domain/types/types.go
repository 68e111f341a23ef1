// Package types contains the closed tag sets shared across the application
package types

import (
	"encoding/json"
	"fmt"
)

// Discipline is one of the four climbing event categories.
type Discipline int

// Discipline tags. The zero value is Lead so an unset tag still carries
// the classifier's default.
const (
	Lead Discipline = iota
	Bouldering
	Speed
	Combined
)

// Disciplines lists every tag in the order query results are reported.
var Disciplines = []Discipline{Bouldering, Speed, Lead, Combined}

var disciplineNames = map[Discipline]string{
	Bouldering: "Bouldering",
	Lead:       "Lead",
	Speed:      "Speed",
	Combined:   "Combined",
}

// legacy labels written by older index files
var disciplineAliases = map[string]Discipline{
	"Bouldering": Bouldering,
	"Bouldern":   Bouldering,
	"Lead":       Lead,
	"Speed":      Speed,
	"Combined":   Combined,
}

func (d Discipline) String() string {
	if s, ok := disciplineNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Discipline(%d)", int(d))
}

// ParseDiscipline maps a persisted label back to its tag.
func ParseDiscipline(s string) (Discipline, error) {
	if d, ok := disciplineAliases[s]; ok {
		return d, nil
	}
	return Lead, fmt.Errorf("%w: discipline %q", ErrUnknownTag, s)
}

// MarshalJSON encodes the tag as its label.
func (d Discipline) MarshalJSON() ([]byte, error) {
	s, ok := disciplineNames[d]
	if !ok {
		return nil, fmt.Errorf("%w: discipline %d", ErrUnknownTag, int(d))
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a label, accepting legacy spellings.
func (d *Discipline) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDiscipline(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Gender is the inferred gender category of a participant. Unknown is a
// legitimate value and is persisted as null.
type Gender int

// Gender tags.
const (
	Unknown Gender = iota
	Women
	Men
)

func (g Gender) String() string {
	switch g {
	case Women:
		return "Women"
	case Men:
		return "Men"
	default:
		return ""
	}
}

// Known reports whether the gender was resolved.
func (g Gender) Known() bool { return g == Women || g == Men }

// MarshalJSON encodes Women/Men as labels and Unknown as null.
func (g Gender) MarshalJSON() ([]byte, error) {
	if !g.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a label or null, accepting legacy spellings.
func (g *Gender) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*g = Unknown
		return nil
	}
	switch *s {
	case "Women", "Damen", "Frauen":
		*g = Women
	case "Men", "Maenner", "Herren":
		*g = Men
	case "":
		*g = Unknown
	default:
		return fmt.Errorf("%w: gender %q", ErrUnknownTag, *s)
	}
	return nil
}
