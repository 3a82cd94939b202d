// Package match implements pattern safety validation and domain-name
// matching for user-saved watch patterns.
package match

import (
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the result of pattern safety validation. An unsafe pattern is
// never compiled anywhere in the system; Reason is shown to the user verbatim.
type Verdict struct {
	Safe   bool
	Reason string
}

const (
	maxPatternLength = 200
	maxParenDepth    = 3
	maxQuantifiers   = 5
)

// dangerousShapes are structural fingerprints of catastrophic-backtracking
// patterns. Go's RE2 engine doesn't backtrack, but saved patterns are also
// evaluated by the web dashboard's JavaScript engine, so we reject them at
// the gate regardless of which runtime would execute them.
var dangerousShapes = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`\([^()]*[+*][^()]*\)[+*]`), "nested quantifiers like (a+)+ can cause catastrophic backtracking"},
	{regexp.MustCompile(`\([^()]*[+*][^()]*\)\{\d+(,\d*)?\}`), "quantified group followed by a bounded repetition is unsafe"},
	{regexp.MustCompile(`\{\d+(,\d*)?\}[+*?]`), "bounded repetition followed by a quantifier is unsafe"},
	{regexp.MustCompile(`\)[+*?][+*?]`), "stacked quantifiers on a group are unsafe"},
}

var (
	quantifiedAlternation = regexp.MustCompile(`\(([^()]*\|[^()]*)\)[+*]`)
	boundedRepetition     = regexp.MustCompile(`\{\d+(,\d*)?\}`)
	consecutiveQuants     = regexp.MustCompile(`[+*?]{2,}`)
)

// ValidatePattern statically analyzes a user-supplied pattern for ReDoS risk
// before it is compiled or persisted. Pure analysis; no side effects. Checks
// short-circuit in order, so the first violation wins.
func ValidatePattern(pattern string) Verdict {
	if len(pattern) > maxPatternLength {
		return Verdict{Safe: false, Reason: fmt.Sprintf("pattern is too long (%d chars, max %d)", len(pattern), maxPatternLength)}
	}
	if strings.TrimSpace(pattern) == "" {
		return Verdict{Safe: false, Reason: "pattern is empty"}
	}

	for _, shape := range dangerousShapes {
		if shape.re.MatchString(pattern) {
			return Verdict{Safe: false, Reason: shape.reason}
		}
	}

	// A quantified alternation is dangerous when an alternative itself carries
	// a quantifier, e.g. (a|b+)*, or when one alternative is a prefix of
	// another, e.g. (a|ab)+. Both are ambiguous-match backtracking bombs.
	// Plain (a|b)+ is fine.
	for _, m := range quantifiedAlternation.FindAllStringSubmatch(pattern, -1) {
		alts := strings.Split(m[1], "|")
		for _, alt := range alts {
			if strings.ContainsAny(alt, "+*?{") {
				return Verdict{Safe: false, Reason: "quantified alternation with a quantified alternative is unsafe"}
			}
		}
		for i, a := range alts {
			for j, b := range alts {
				if i != j && a != "" && strings.HasPrefix(b, a) {
					return Verdict{Safe: false, Reason: "quantified alternation with overlapping alternatives is unsafe"}
				}
			}
		}
	}

	// Depth is counted by running paren balance, not syntax-tree depth. A
	// malformed pattern can under- or over-count here; it will fail the
	// compile check below anyway.
	depth, maxDepth := 0, 0
	for _, r := range pattern {
		switch r {
		case '(':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case ')':
			depth--
		}
	}
	if maxDepth > maxParenDepth {
		return Verdict{Safe: false, Reason: fmt.Sprintf("too many nested groups (depth %d, max %d)", maxDepth, maxParenDepth)}
	}

	if n := countQuantifiers(pattern); n > maxQuantifiers {
		return Verdict{Safe: false, Reason: fmt.Sprintf("too many quantifiers (%d, max %d)", n, maxQuantifiers)}
	}

	if consecutiveQuants.MatchString(pattern) {
		return Verdict{Safe: false, Reason: "consecutive quantifiers are unsafe"}
	}

	if _, err := regexp.Compile(pattern); err != nil {
		return Verdict{Safe: false, Reason: "pattern is not a valid regular expression"}
	}

	return Verdict{Safe: true}
}

// countQuantifiers counts every + * ? character plus every {m,n} bound as one
// token each. The count is deliberately naive character counting; a ? that is
// part of a group modifier still counts.
func countQuantifiers(pattern string) int {
	count := 0
	for _, r := range pattern {
		if r == '+' || r == '*' || r == '?' {
			count++
		}
	}
	count += len(boundedRepetition.FindAllString(pattern, -1))
	return count
}
