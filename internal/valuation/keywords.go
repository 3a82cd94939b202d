package valuation

import (
	"strings"

	"github.com/bkellow/domainhawk/internal/match"
	"github.com/bkellow/domainhawk/internal/wordlist"
)

// cleanName reduces a domain to its lowercase alphanumeric second-level name:
// "Cloud-Bank.com" -> "cloudbank".
func cleanName(domainName string) string {
	name := match.SecondLevelName(domainName)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractKeywords segments the cleaned second-level name and keeps the
// recognized words of length >= 2. The same extraction runs on targets and
// comps so overlap scoring compares like with like.
func ExtractKeywords(domainName string) []string {
	var keywords []string
	for _, w := range wordlist.Segment(cleanName(domainName)) {
		if len(w) >= 2 && wordlist.Known(w) {
			keywords = append(keywords, w)
		}
	}
	return keywords
}
