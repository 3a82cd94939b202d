package discord

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// RateLimiter provides a simple in-memory token bucket rate limiter.
type RateLimiter struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		lastSeen: make(map[string]time.Time),
	}
}

// Allow checks if the given userID is allowed to perform an action (max 1 request per 2 seconds).
func (rl *RateLimiter) Allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	last, ok := rl.lastSeen[userID]
	if ok && time.Since(last) < 2*time.Second {
		return false
	}

	rl.lastSeen[userID] = time.Now()
	return true
}

var (
	// regex to strip potentially dangerous characters while allowing common domain/description characters.
	sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?-]`)
	// control characters are the only thing stripped from pattern input so
	// regex metacharacters survive intact.
	controlRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// Sanitize cleans up free-text user input to prevent basic injection or formatting abuse.
func Sanitize(input string) string {
	// 1. Limit length
	if len(input) > 500 {
		input = input[:500]
	}

	// 2. Strip dangerous characters
	input = sanitizeRegex.ReplaceAllString(input, "")

	// 3. Trim whitespace
	return strings.TrimSpace(input)
}

// SanitizePattern cleans regex pattern input without destroying metacharacters.
// Structural validation happens separately in the match package.
func SanitizePattern(input string) string {
	if len(input) > 250 {
		input = input[:250]
	}
	input = controlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(input)
}
