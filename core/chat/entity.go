package chat

import (
	"regexp"
	"strconv"
	"strings"
)

type SubjectRefKind int

const (
	SubjectNone SubjectRefKind = iota
	SubjectSlot
	SubjectName
)

// SubjectRef is the subject a message refers to, either by slot position (1..5)
// or by one or more curated name tokens.
type SubjectRef struct {
	Kind   SubjectRefKind
	Slot   int
	Tokens []string
}

var (
	subjectSlotRegex = regexp.MustCompile(`(?i)subject\s*([1-5])\b`)

	// subjectTokens is the curated vocabulary of subject name fragments.
	subjectTokens = []string{
		"math", "physics", "chemistry", "english", "computer", "data",
		"structure", "algorithm", "database", "network", "software",
	}

	yearPatterns = []struct {
		year  YearLevel
		regex *regexp.Regexp
	}{
		{YearSY, regexp.MustCompile(`(?i)\b(sy|second year|2nd year)\b`)},
		{YearTY, regexp.MustCompile(`(?i)\b(ty|third year|3rd year)\b`)},
		{YearBE, regexp.MustCompile(`(?i)\b(be|final year|4th year|fourth year)\b`)},
	}
)

// ExtractSubjectRef finds an explicit subject slot ("subject 2") or known subject name tokens.
func ExtractSubjectRef(text string) SubjectRef {
	if m := subjectSlotRegex.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return SubjectRef{Kind: SubjectSlot, Slot: n}
	}

	lower := strings.ToLower(text)
	var tokens []string
	for _, tok := range subjectTokens {
		if strings.Contains(lower, tok) {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) > 0 {
		return SubjectRef{Kind: SubjectName, Tokens: tokens}
	}
	return SubjectRef{}
}

// matches reports whether a named subject is covered by the reference.
func (ref SubjectRef) matches(slot int, name string) bool {
	switch ref.Kind {
	case SubjectSlot:
		return ref.Slot == slot
	case SubjectName:
		lower := strings.ToLower(name)
		for _, tok := range ref.Tokens {
			if strings.Contains(lower, tok) {
				return true
			}
		}
	}
	return false
}

// ExtractYearLevel finds the cohort year a staff member is asking about.
func ExtractYearLevel(text string) YearLevel {
	for _, p := range yearPatterns {
		if p.regex.MatchString(text) {
			return p.year
		}
	}
	return YearNone
}
