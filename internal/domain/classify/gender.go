package classify

import "github.com/okian/crux/internal/domain/types"

// Result-key families. Women is always evaluated before men.
var (
	WomenKeyRules = patterns(types.Women, `.*F.$`, `.*F..$`, `.*F$`, `.*_F_.$`, `.*_F_..$`)
	MenKeyRules   = patterns(types.Men, `.*M.$`, `.*M..$`, `.*M$`, `.*_M_.$`, `.*_M_..$`)

	ResultKeyRules = WomenKeyRules.Then(MenKeyRules)
)

// Category-name families used for the document-level fallback.
var (
	WomenCategoryRules = substrings(types.Women, "weiblich", "D A M E N", "W O M E N")
	MenCategoryRules   = substrings(types.Men, "männlich", "H E R R E N", "M E N", "Junioren")

	CategoryRules = WomenCategoryRules.Then(MenCategoryRules)
)

// ResultKeyGender infers gender from a result key. An empty or unmatched
// key yields fallback, which may itself be types.Unknown.
func ResultKeyGender(key string, fallback types.Gender) types.Gender {
	if key == "" {
		return fallback
	}
	if g, ok := ResultKeyRules.First(key); ok {
		return g
	}
	return fallback
}

// CategoryGender infers gender from a human-readable category name.
func CategoryGender(name string) types.Gender {
	if name == "" {
		return types.Unknown
	}
	g, _ := CategoryRules.First(name)
	return g
}
