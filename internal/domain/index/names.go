package index

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/okian/crux/internal/domain/model"
)

// Names derives the name resolution index. Ids under one name keep the
// scan order of idx; duplicates are expected.
func Names(idx model.ParticipantIndex) model.NameIndex {
	names := make(model.NameIndex, len(idx))
	for _, id := range idx.IDs() {
		p := idx[id]
		key := model.NameKey(p.Firstname, p.Lastname)
		names[key] = append(names[key], id)
	}
	return names
}

// Suggest returns indexed names within maxDistance edits of name, closest
// first. An exact hit returns nothing.
func Suggest(names model.NameIndex, name string, maxDistance int) []string {
	if _, ok := names[name]; ok || maxDistance <= 0 {
		return nil
	}
	type candidate struct {
		key  string
		dist int
	}
	var found []candidate
	for key := range names {
		if d := levenshtein.ComputeDistance(name, key); d <= maxDistance {
			found = append(found, candidate{key: key, dist: d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].key < found[j].key
	})
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.key
	}
	return out
}
