// Package contacts resolves spoken call targets against a configured
// directory.
//
// Speech recognition rarely produces a contact's name verbatim, so Resolve
// tries three stages in order: exact case-insensitive match, substring match
// in either direction, then a phonetic stage using Double Metaphone codes
// with Jaro-Winkler ranking. The first stage that produces a contact wins.
package contacts

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const defaultPhoneticThreshold = 0.70

// Contact is one directory entry.
type Contact struct {
	// Name is the spoken name the user refers to the contact by.
	Name string

	// Number is the dial string handed to the automation layer.
	Number string
}

// Directory answers spoken-name lookups. Read-only after construction and
// safe for concurrent use.
type Directory struct {
	entries           []Contact
	phoneticThreshold float64
}

// Option is a functional option for configuring a [Directory].
type Option func(*Directory)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched contact to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(d *Directory) { d.phoneticThreshold = threshold }
}

// NewDirectory returns a Directory over entries.
func NewDirectory(entries []Contact, opts ...Option) *Directory {
	d := &Directory{
		entries:           entries,
		phoneticThreshold: defaultPhoneticThreshold,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Resolve maps a spoken target to a directory entry. It reports false when
// no stage produces a match; callers then fall back to the chooser action.
func (d *Directory) Resolve(spoken string) (Contact, bool) {
	q := strings.ToLower(strings.TrimSpace(spoken))
	if q == "" {
		return Contact{}, false
	}

	// Stage 1: exact.
	for _, c := range d.entries {
		if strings.ToLower(c.Name) == q {
			return c, true
		}
	}

	// Stage 2: substring in either direction.
	for _, c := range d.entries {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return c, true
		}
	}

	// Stage 3: phonetic candidates ranked by Jaro-Winkler.
	qCodes := metaphoneCodes(q)
	var (
		best      Contact
		bestScore float64
	)
	for _, c := range d.entries {
		name := strings.ToLower(c.Name)
		if !codesOverlap(qCodes, metaphoneCodes(name)) {
			continue
		}
		if score := matchr.JaroWinkler(q, name, false); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore >= d.phoneticThreshold {
		return best, true
	}
	return Contact{}, false
}

// Names returns the directory's names in declaration order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.entries))
	for i, c := range d.entries {
		out[i] = c.Name
	}
	return out
}

// metaphoneCodes returns the union of Double Metaphone codes for each token.
func metaphoneCodes(s string) map[string]struct{} {
	codes := make(map[string]struct{}, 4)
	for _, t := range strings.Fields(s) {
		p, sec := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if sec != "" {
			codes[sec] = struct{}{}
		}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}
