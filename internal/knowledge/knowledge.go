// Package knowledge implements the offline question-answer tier.
//
// The base is a fixed table of (pattern set → response set) entries checked
// in declaration order; matching is substring containment on the normalised
// query and the reply is picked uniformly at random from the matched entry's
// response set. Time, date, and weekday queries are answered from the clock.
// Everything here works without network access.
package knowledge

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// QnA is one entry of the offline table.
type QnA struct {
	// Patterns are the trigger substrings; any one matching selects the entry.
	Patterns []string

	// Answers are the candidate replies; one is chosen at random.
	Answers []string
}

// Base answers offline queries from the built-in table and the clock.
type Base struct {
	entries []QnA
	now     func() time.Time
	intN    func(n int) int
}

// Option configures a Base.
type Option func(*Base)

// WithNow overrides the clock. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(b *Base) { b.now = now }
}

// WithIntN overrides the random index source. Used by tests.
func WithIntN(intN func(n int) int) Option {
	return func(b *Base) { b.intN = intN }
}

// New returns a Base backed by the built-in table, the wall clock, and the
// shared random source.
func New(opts ...Option) *Base {
	b := &Base{
		entries: table,
		now:     time.Now,
		intN:    rand.IntN,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Lookup answers query from the offline table, or from the clock for time,
// date, and weekday questions. It reports false when nothing matches; the
// caller then falls through to the next tier.
func (b *Base) Lookup(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, e := range b.entries {
		for _, p := range e.Patterns {
			if strings.Contains(q, p) {
				return e.Answers[b.intN(len(e.Answers))], true
			}
		}
	}

	if containsAny(q, "aaj kya din", "weekday", "week") {
		return fmt.Sprintf("Aaj %s hai Boss!", b.dayName()), true
	}
	if containsAny(q, "time", "kitne baje", "samay") {
		return b.currentTime(), true
	}
	if containsAny(q, "date", "aaj", "tarikh") {
		return b.currentDate(), true
	}

	return "", false
}

// Fallback returns one of the "didn't understand" phrases.
func (b *Base) Fallback() string {
	return fallbacks[b.intN(len(fallbacks))]
}

func containsAny(q string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(q, s) {
			return true
		}
	}
	return false
}

func (b *Base) currentTime() string {
	t := b.now()
	h, m := t.Hour(), t.Minute()
	var period string
	switch {
	case h < 5:
		period = "raat"
	case h < 12:
		period = "subah"
	case h < 17:
		period = "dopahar"
	case h < 20:
		period = "shaam"
	default:
		period = "raat"
	}
	return fmt.Sprintf("%s ke %d baj ke %d minute hue hain Boss", period, h, m)
}

func (b *Base) currentDate() string {
	t := b.now()
	return fmt.Sprintf("Aaj %d %s %d hai Boss", t.Day(), t.Month().String(), t.Year())
}

// dayName returns the Hindi weekday name, Sunday first.
func (b *Base) dayName() string {
	days := [...]string{"Ravivar", "Somvar", "Mangalvar", "Budhvar", "Guruvar", "Shukravar", "Shanivar"}
	return days[int(b.now().Weekday())]
}

var fallbacks = []string{
	"Ye toh pata nahi Boss, koi system command bolo!",
	"Samjha nahi Boss. App open karna ho, call karna ho, ya kuch aur?",
	"Hmm... abhi offline hun, internet wala kaam nahi hoga. Par system commands karunga!",
	"Boss, thoda clearly bolo? Main zyada samajhne ki koshish karunga.",
	"Ye mujhse zyada mushkil sawaal hai Boss. Kuch aur pucho!",
}
