// Package document recognizes the two published competition shapes and
// exposes only the fields each normalizer needs.
package document

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/okian/crux/internal/domain/model"
)

// Source field names.
const (
	fieldParticipants = "participants"
	fieldDiscipline   = "discipline"
	fieldCategorys    = "categorys"
	fieldCategories   = "categories"
	fieldGroupID      = "GrpId"
	fieldRouteName    = "route_name"
	fieldName         = "name"
	fieldResults      = "results"
	fieldResultKey    = "rkey"
	fieldPersonID     = "PerId"
	fieldFirstname    = "firstname"
	fieldLastname     = "lastname"
	fieldRank         = "result_rank"
)

// CompetitionDocument is either a *Standard or a *Compound.
type CompetitionDocument interface {
	// Name is the external identifier of the document (its filename).
	Name() string
	isDocument()
}

// Standard is a flat participant list with one document-level discipline.
type Standard struct {
	name string

	// Discipline is the free-text discipline/description label.
	Discipline string
	// CategoryName is the human-readable category used for the gender fallback.
	CategoryName string
	Participants []model.Record
}

// Name implements CompetitionDocument.
func (s *Standard) Name() string { return s.name }
func (*Standard) isDocument() {}

// Compound is partitioned into named categories with their own results.
type Compound struct {
	name       string
	Categories []Category
}

// Name implements CompetitionDocument.
func (c *Compound) Name() string { return c.name }
func (*Compound) isDocument() {}

// Category is one group of a compound document.
type Category struct {
	Name      string
	ResultKey string
	Results   []model.Record
}

// Parse detects the shape of raw and builds the matching variant. The
// standard shape is tested first.
func Parse(name string, raw []byte) (CompetitionDocument, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: %s: invalid json", ErrUnparseable, name)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: %s: top level is not an object", ErrUnparseable, name)
	}

	if root.Get(fieldParticipants).Exists() {
		return parseStandard(name, root), nil
	}
	if cats := root.Get(fieldCategorys); cats.IsArray() && len(cats.Array()) > 0 {
		return parseCompound(name, cats), nil
	}
	if cats := root.Get(fieldCategories); cats.IsArray() && len(cats.Array()) > 0 {
		return parseCompound(name, cats), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnclassifiable, name)
}

func parseStandard(name string, root gjson.Result) *Standard {
	return &Standard{
		name:         name,
		Discipline:   root.Get(fieldDiscipline).String(),
		CategoryName: categoryName(root),
		Participants: records(root.Get(fieldParticipants)),
	}
}

func parseCompound(name string, cats gjson.Result) *Compound {
	c := &Compound{name: name}
	for _, cat := range cats.Array() {
		c.Categories = append(c.Categories, Category{
			Name:      cat.Get(fieldName).String(),
			ResultKey: cat.Get(fieldResultKey).String(),
			Results:   records(cat.Get(fieldResults)),
		})
	}
	return c
}

// categoryName prefers the category descriptor whose GrpId matches the
// document's own, then the route name.
func categoryName(root gjson.Result) string {
	cats := root.Get(fieldCategories)
	if !cats.Exists() {
		cats = root.Get(fieldCategorys)
	}
	if grp := root.Get(fieldGroupID); grp.Exists() && cats.IsArray() {
		for _, cat := range cats.Array() {
			if sameValue(cat.Get(fieldGroupID), grp) {
				if n := cat.Get(fieldName).String(); n != "" {
					return n
				}
				break
			}
		}
	}
	return root.Get(fieldRouteName).String()
}

// sameValue compares two JSON scalars without coercing between types.
func sameValue(a, b gjson.Result) bool {
	if !a.Exists() || a.Type != b.Type {
		return false
	}
	if a.Type == gjson.Number {
		return a.Num == b.Num
	}
	return a.String() == b.String()
}

func records(list gjson.Result) []model.Record {
	if !list.IsArray() {
		return nil
	}
	items := list.Array()
	out := make([]model.Record, 0, len(items))
	for _, item := range items {
		out = append(out, model.Record{
			PersonID:  item.Get(fieldPersonID).String(),
			Firstname: item.Get(fieldFirstname).String(),
			Lastname:  item.Get(fieldLastname).String(),
			Rank:      item.Get(fieldRank).String(),
			ResultKey: item.Get(fieldResultKey).String(),
		})
	}
	return out
}
