package resolve

import "github.com/poiesic/taxonomist/core"

const (
	SuggestionSoftware = "software"
	SuggestionGeneral  = "general"
)

var softwareSuggestion = core.Suggestion{
	Template: SuggestionSoftware,
	Message:  "Software and digital products are usually classified under the device they drive or the measurement they analyze, not under their own name.",
	Tips: []string{
		"Describe the hardware or the clinical measurement the software works with",
		"Try formal function words such as \"analyzer\", \"image processing\" or \"data system\"",
		"Look up a comparable cleared product and reuse its product code",
	},
}

var generalSuggestion = core.Suggestion{
	Template: SuggestionGeneral,
	Message:  "No classification matched. Formal names put the main noun first, followed by qualifiers.",
	Tips: []string{
		"Search for the main noun alone, for example \"catheter\" instead of \"thin tube for veins\"",
		"Use clinical rather than everyday words, for example \"cardiac\" instead of \"heart\"",
		"Search a comparable cleared product by name to discover its product code",
	},
}

// Suggester picks the static guidance attached to unresolved outcomes.
type Suggester struct {
	highMiss WordSet
}

// NewSuggester creates a suggester that switches to the software template
// when a query contains one of the high-miss terms.
func NewSuggester(highMiss WordSet) *Suggester {
	return &Suggester{highMiss: highMiss}
}

// Suggest returns one of the two fixed templates for the original terms.
func (s *Suggester) Suggest(terms []string) *core.Suggestion {
	template := generalSuggestion
	if s.highMiss.Intersects(terms) {
		template = softwareSuggestion
	}
	template.Tips = append([]string(nil), template.Tips...)
	return &template
}
