package match

import (
	"regexp"
	"strings"
	"sync"

	"github.com/bkellow/domainhawk/internal/store"
)

// Matcher wraps a compiled pattern. An unsafe or uncompilable pattern still
// yields a usable Matcher that reports false for every input and carries the
// rejection reason. Batch callers must never crash on one bad pattern.
type Matcher struct {
	re     *regexp.Regexp
	reason string
}

// Compile validates the pattern through the safety gate and compiles it.
// Compile never fails; an unsafe pattern produces an always-false Matcher.
func Compile(pattern string, caseInsensitive bool) *Matcher {
	if v := ValidatePattern(pattern); !v.Safe {
		return &Matcher{reason: v.Reason}
	}

	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		// The validator already compile-checked the bare pattern, so this
		// only fires if the (?i) prefix collides with an existing flag group.
		return &Matcher{reason: "pattern is not a valid regular expression"}
	}
	return &Matcher{re: re}
}

// Test reports whether the candidate name matches. A rejected pattern or a
// runtime matching fault is a non-match, never an error: a domain that fails
// to match is the safe default.
func (m *Matcher) Test(name string) (matched bool) {
	if m.re == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			matched = false
		}
	}()
	return m.re.MatchString(name)
}

// Reason returns the safety rejection reason, or "" if the pattern compiled.
func (m *Matcher) Reason() string {
	return m.reason
}

// Engine caches compiled matchers across a sweep so each saved pattern is
// validated and compiled once, not once per listing. Safe for concurrent use.
type Engine struct {
	mu    sync.RWMutex
	cache map[string]*Matcher
}

func NewEngine() *Engine {
	return &Engine{cache: make(map[string]*Matcher)}
}

func (e *Engine) matcher(pattern string) *Matcher {
	return e.cached("u:"+pattern, func() *Matcher {
		return Compile(pattern, true)
	})
}

// structureMatcher compiles the regex generated from a shape pattern. The
// generated regex is an anchored run of character classes with no
// quantifiers, so it skips the safety gate that budgets typed patterns; a
// long shape expands past the gate's length cap without being dangerous.
func (e *Engine) structureMatcher(shape string) *Matcher {
	return e.cached("s:"+shape, func() *Matcher {
		re, err := regexp.Compile(StructureRegex(shape))
		if err != nil {
			return &Matcher{reason: "shape pattern is not valid"}
		}
		return &Matcher{re: re}
	})
}

func (e *Engine) cached(key string, build func() *Matcher) *Matcher {
	e.mu.RLock()
	m, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return m
	}

	m = build()
	e.mu.Lock()
	e.cache[key] = m
	e.mu.Unlock()
	return m
}

// MatchesDomain reports whether any enabled pattern matches the domain's
// second-level name. An empty pattern set matches everything: no patterns
// means no filtering, and hiding the whole feed behind an unconfigured
// account would be worse than showing it.
func (e *Engine) MatchesDomain(patterns []store.Pattern, domainName string) bool {
	name := SecondLevelName(domainName)

	enabled := 0
	for _, p := range patterns {
		if !p.Enabled {
			continue
		}
		enabled++
		if e.Matches(p, name) {
			return true
		}
	}

	return enabled == 0
}

// MatchesDomain is the one-shot form for callers without a long-lived Engine.
func MatchesDomain(patterns []store.Pattern, domainName string) bool {
	return NewEngine().MatchesDomain(patterns, domainName)
}

// Matches tests one pattern against an already-reduced second-level name,
// dispatching on the pattern kind.
func (e *Engine) Matches(p store.Pattern, name string) bool {
	switch p.Kind {
	case store.KindStructure:
		return e.structureMatcher(p.Pattern).Test(name)
	case store.KindPronounceable:
		return IsPronounceable(name)
	default: // store.KindRegex
		return e.matcher(p.Pattern).Test(name)
	}
}

// SecondLevelName reduces a full domain name to its second-level label,
// lowercased: "CloudBank.com" -> "cloudbank". A bare name passes through.
func SecondLevelName(domainName string) string {
	name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domainName), "."))
	if i := strings.Index(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// TLD returns the domain's final label, defaulting to "com" when the name
// carries no extension.
func TLD(domainName string) string {
	name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domainName), "."))
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return "com"
}

// StructureRegex translates a shape pattern into an anchored regex. Tokens:
// C consonant, V vowel, L any letter, N digit; anything else is matched
// literally. "CVCV" matches "toga", "LLNN" matches "ab12".
func StructureRegex(shape string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range strings.ToUpper(shape) {
		switch r {
		case 'C':
			b.WriteString("[bcdfghjklmnpqrstvwxyz]")
		case 'V':
			b.WriteString("[aeiou]")
		case 'L':
			b.WriteString("[a-z]")
		case 'N':
			b.WriteString("[0-9]")
		default:
			b.WriteString(regexp.QuoteMeta(strings.ToLower(string(r))))
		}
	}
	b.WriteString("$")
	return b.String()
}

// IsPronounceable applies a consonant/vowel run heuristic: a name is
// pronounceable when it is all letters, contains a vowel, and never runs
// more than three consonants or two vowels in a row.
func IsPronounceable(name string) bool {
	if name == "" {
		return false
	}

	consonantRun, vowelRun, vowels := 0, 0, 0
	for _, r := range name {
		if r < 'a' || r > 'z' {
			return false
		}
		if strings.ContainsRune("aeiou", r) {
			vowels++
			vowelRun++
			consonantRun = 0
			if vowelRun > 2 {
				return false
			}
		} else {
			consonantRun++
			vowelRun = 0
			if consonantRun > 3 {
				return false
			}
		}
	}
	return vowels > 0
}
