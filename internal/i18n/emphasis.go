package i18n

import "strings"

// SplitPolicy controls how a heading is split into a plain lead and an
// emphasized remainder.
type SplitPolicy struct {
	// LeadingWords is how many words stay plain when the text has more
	// words than that.
	LeadingWords int
	// EmphasizeSingle emphasizes the whole text when splitting is not
	// possible; otherwise a single word renders plain.
	EmphasizeSingle bool
}

// Split policies used by the page headings.
var (
	// HeroSplit keeps the first word plain; a one-word tagline stays plain.
	HeroSplit = SplitPolicy{LeadingWords: 1}
	// TitleSplit keeps the first word plain; a one-word title is fully
	// emphasized.
	TitleSplit = SplitPolicy{LeadingWords: 1, EmphasizeSingle: true}
	// ContactTitleSplit keeps the first two words plain when the title has
	// at least three.
	ContactTitleSplit = SplitPolicy{LeadingWords: 2, EmphasizeSingle: true}
)

// SplitEmphasis divides text per policy. Emphasized is empty when nothing is
// to be highlighted.
func SplitEmphasis(text string, policy SplitPolicy) (plain, emphasized string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text, ""
	}
	if len(words) == 1 {
		if policy.EmphasizeSingle {
			return "", words[0]
		}
		return words[0], ""
	}
	lead := policy.LeadingWords
	if lead < 1 {
		lead = 1
	}
	if lead >= len(words) {
		lead = len(words) - 1
	}
	return strings.Join(words[:lead], " "), strings.Join(words[lead:], " ")
}
