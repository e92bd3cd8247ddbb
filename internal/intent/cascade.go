package intent

import (
	"strings"

	"github.com/adityaksh/sakha/internal/knowledge"
)

// Classifier resolves transcripts through the four handler tiers.
type Classifier struct {
	kb *knowledge.Base
}

// NewClassifier returns a Classifier backed by kb for the offline tier.
func NewClassifier(kb *knowledge.Base) *Classifier {
	return &Classifier{kb: kb}
}

// Classify maps text to exactly one Intent. It is total: any input,
// including empty or garbage text, yields a valid Intent. Given the same
// normalised text and the same flags the tier decision is deterministic;
// only the pick within a matched knowledge response set is randomised.
func (c *Classifier) Classify(text string, flags Flags) Intent {
	q := strings.ToLower(strings.TrimSpace(text))

	for _, r := range rules {
		if r.matches(q) {
			in := r.build(q)
			in.Kind = KindDeviceAction
			in.Rule = r.name
			return in
		}
	}

	if reply, ok := c.kb.Lookup(q); ok {
		return Intent{Kind: KindKnowledge, Reply: reply}
	}

	if flags.CloudConfigured {
		return Intent{Kind: KindRemoteQuery, Query: q}
	}
	if flags.LocalModelReady {
		return Intent{Kind: KindLocalQuery, Query: q}
	}
	return Intent{Kind: KindUnrecognized}
}
