// Package wordlist holds the static keyword reference sets and the name
// segmentation heuristic shared by keyword extraction and the quick valuer.
package wordlist

// premiumKeywords are high-demand commercial terms that materially move a
// domain's resale value.
var premiumKeywords = []string{
	"ai", "app", "auto", "bank", "bet", "bit", "block", "brand", "business",
	"buy", "capital", "car", "cash", "chain", "cloud", "code", "coin", "crypto",
	"data", "deal", "digital", "doctor", "energy", "estate", "exchange", "finance",
	"fit", "fund", "game", "gold", "health", "home", "host", "hotel", "insure",
	"invest", "job", "law", "lead", "learn", "legal", "loan", "market", "media",
	"medical", "money", "mortgage", "pay", "pro", "property", "rent", "sale",
	"secure", "shop", "smart", "social", "solar", "stock", "store", "swap",
	"tax", "tech", "trade", "travel", "vpn", "wallet", "web", "wealth",
}

// dictionaryWords are ordinary English words that commonly appear in
// brandable domain names.
var dictionaryWords = []string{
	"able", "active", "agent", "air", "alpha", "anchor", "apex", "arc", "atlas",
	"base", "beam", "bear", "bell", "best", "big", "bird", "blue", "bold",
	"book", "boost", "box", "bridge", "bright", "bull", "cast", "cat", "chart",
	"check", "city", "clear", "clip", "club", "coast", "core", "craft", "crew",
	"crown", "cube", "dash", "dawn", "day", "deep", "den", "desk", "dock",
	"dog", "dot", "dream", "drive", "drop", "eagle", "earth", "east", "easy",
	"echo", "edge", "elite", "ever", "fair", "farm", "fast", "field", "find",
	"fire", "first", "fish", "five", "flag", "flash", "flow", "fly", "forge",
	"fort", "four", "fox", "free", "fresh", "front", "frost", "gate", "gear",
	"gem", "glow", "go", "grand", "great", "green", "grid", "grow", "hall",
	"hand", "harbor", "hawk", "haven", "hero", "high", "hill", "hive", "hub",
	"ice", "idea", "iron", "jet", "key", "king", "kit", "lab", "lake", "land",
	"leaf", "life", "lift", "light", "like", "line", "link", "lion", "list",
	"live", "lock", "loft", "logic", "long", "loop", "luck", "main", "map",
	"mark", "max", "mesh", "metro", "mind", "mine", "mint", "mix", "moon",
	"move", "nest", "net", "new", "next", "night", "north", "nova", "now",
	"oak", "ocean", "one", "open", "orbit", "park", "path", "peak", "pilot",
	"pine", "pixel", "plan", "play", "plus", "point", "pond", "port", "post",
	"prime", "pulse", "pure", "quest", "quick", "rain", "ranch", "range",
	"rapid", "reach", "real", "red", "reef", "ridge", "rise", "river", "road",
	"rock", "root", "rose", "run", "safe", "sail", "sand", "scale", "scout",
	"sea", "seed", "set", "seven", "sharp", "shift", "shine", "ship", "shore",
	"side", "sign", "silver", "site", "sky", "snap", "snow", "solid", "south",
	"space", "spark", "spot", "spring", "star", "stone", "storm", "stream",
	"strong", "studio", "summit", "sun", "surf", "swift", "tab", "table",
	"tap", "team", "ten", "three", "tide", "time", "tip", "top", "torch",
	"town", "track", "trail", "tree", "trek", "true", "trust", "turbo", "two",
	"unit", "up", "urban", "valley", "vault", "venture", "view", "villa",
	"vine", "vista", "vital", "wave", "way", "well", "west", "wild", "wind",
	"wing", "wise", "wolf", "wood", "work", "world", "yard", "zen", "zone",
}

// commonWords are connective filler words; they count as known words for
// segmentation but carry little value on their own.
var commonWords = []string{
	"a", "all", "an", "and", "any", "at", "be", "by", "co", "do", "for",
	"get", "has", "hq", "if", "in", "is", "it", "its", "me", "my", "no", "of",
	"on", "or", "our", "out", "so", "the", "this", "to", "us", "we", "you",
	"your",
}

var (
	premiumSet = toSet(premiumKeywords)
	dictSet    = toSet(dictionaryWords)
	commonSet  = toSet(commonWords)
	maxWordLen int
)

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func init() {
	for _, list := range [][]string{premiumKeywords, dictionaryWords, commonWords} {
		for _, w := range list {
			if len(w) > maxWordLen {
				maxWordLen = len(w)
			}
		}
	}
}

// Known reports whether word appears in any of the reference sets.
func Known(word string) bool {
	if _, ok := premiumSet[word]; ok {
		return true
	}
	if _, ok := dictSet[word]; ok {
		return true
	}
	_, ok := commonSet[word]
	return ok
}

// IsPremium reports whether word is in the premium-keyword set.
func IsPremium(word string) bool {
	_, ok := premiumSet[word]
	return ok
}

// Segment splits a concatenated lowercase name into candidate words using
// greedy longest-match against the reference sets. Characters that don't
// start a known word are accumulated into leftover tokens so callers can
// still see the unmatched residue.
func Segment(name string) []string {
	var words []string
	var leftover []byte

	flushLeftover := func() {
		if len(leftover) > 0 {
			words = append(words, string(leftover))
			leftover = leftover[:0]
		}
	}

	for i := 0; i < len(name); {
		matched := ""
		limit := maxWordLen
		if rest := len(name) - i; rest < limit {
			limit = rest
		}
		// Longest match wins: "bankroll" segments as "bank"+"roll", not "ban"+...
		for l := limit; l >= 1; l-- {
			if Known(name[i : i+l]) {
				matched = name[i : i+l]
				break
			}
		}

		if matched == "" {
			leftover = append(leftover, name[i])
			i++
			continue
		}

		flushLeftover()
		words = append(words, matched)
		i += len(matched)
	}
	flushLeftover()

	return words
}
