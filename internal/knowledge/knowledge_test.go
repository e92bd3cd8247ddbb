package knowledge_test

import (
	"strings"
	"testing"
	"time"

	"github.com/adityaksh/sakha/internal/knowledge"
)

// fixedBase returns a Base with a pinned clock and a first-element random
// source so replies are deterministic.
func fixedBase(t *testing.T, at time.Time) *knowledge.Base {
	t.Helper()
	return knowledge.New(
		knowledge.WithNow(func() time.Time { return at }),
		knowledge.WithIntN(func(n int) int { return 0 }),
	)
}

func TestLookup_GreetingMatchesFirstEntry(t *testing.T) {
	t.Parallel()
	b := fixedBase(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))

	got, ok := b.Lookup("Hello wahan")
	if !ok {
		t.Fatal("Lookup returned no match for greeting")
	}
	if got != "Namaste Boss! Kya seva karun?" {
		t.Errorf("Lookup = %q, want first greeting answer", got)
	}
}

func TestLookup_RandomAnswerWithinEntry(t *testing.T) {
	t.Parallel()
	b := knowledge.New(
		knowledge.WithIntN(func(n int) int { return n - 1 }),
	)

	got, ok := b.Lookup("thanks yaar")
	if !ok {
		t.Fatal("Lookup returned no match")
	}
	if got != "Bas yahi toh kaam hai mera Boss!" {
		t.Errorf("Lookup = %q, want last thanks answer", got)
	}
}

func TestLookup_TimeQuery(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		at     time.Time
		query  string
		period string
	}{
		{"late night", time.Date(2026, 1, 5, 2, 15, 0, 0, time.UTC), "kitne baje hain", "raat"},
		{"morning", time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), "time kya hua", "subah"},
		{"afternoon", time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC), "samay batao", "dopahar"},
		{"evening", time.Date(2026, 1, 5, 18, 45, 0, 0, time.UTC), "time", "shaam"},
		{"night", time.Date(2026, 1, 5, 22, 5, 0, 0, time.UTC), "kitne baje", "raat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := fixedBase(t, tt.at)
			got, ok := b.Lookup(tt.query)
			if !ok {
				t.Fatalf("Lookup(%q) returned no match", tt.query)
			}
			if !strings.HasPrefix(got, tt.period+" ke ") {
				t.Errorf("Lookup(%q) = %q, want prefix %q", tt.query, got, tt.period+" ke ")
			}
		})
	}
}

func TestLookup_DateQuery(t *testing.T) {
	t.Parallel()
	b := fixedBase(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	got, ok := b.Lookup("aaj ki tarikh")
	if !ok {
		t.Fatal("Lookup returned no match for date query")
	}
	want := "Aaj 1 September 2026 hai Boss"
	if got != want {
		t.Errorf("Lookup = %q, want %q", got, want)
	}
}

func TestLookup_WeekdayQuery(t *testing.T) {
	t.Parallel()
	// 2026-09-01 is a Tuesday.
	b := fixedBase(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	got, ok := b.Lookup("aaj kya din hai")
	if !ok {
		t.Fatal("Lookup returned no match for weekday query")
	}
	if got != "Aaj Mangalvar hai Boss!" {
		t.Errorf("Lookup = %q, want Mangalvar reply", got)
	}
}

func TestLookup_NoMatch(t *testing.T) {
	t.Parallel()
	b := fixedBase(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	if got, ok := b.Lookup("quantum chromodynamics explain karo"); ok {
		t.Errorf("Lookup matched %q, want no match", got)
	}
}

func TestFallback_IsOneOfKnownPhrases(t *testing.T) {
	t.Parallel()
	b := knowledge.New()

	got := b.Fallback()
	if got == "" {
		t.Fatal("Fallback returned empty string")
	}
	if !strings.Contains(got, "Boss") {
		t.Errorf("Fallback = %q, want a phrase addressing Boss", got)
	}
}

func TestEvalArithmetic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		expr string
		want string
	}{
		{"5 + 3", "Jawab hai: 8 Boss!"},
		{"10 - 4", "Jawab hai: 6 Boss!"},
		{"6 x 7", "Jawab hai: 42 Boss!"},
		{"6 × 7", "Jawab hai: 42 Boss!"},
		{"9 / 2", "Jawab hai: 4.50 Boss!"},
		{"9 ÷ 3", "Jawab hai: 3 Boss!"},
		{"10 / 0", "Zero se divide nahi ho sakta Boss!"},
		{"2.5 + 2.5", "Jawab hai: 5 Boss!"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			got, ok := knowledge.EvalArithmetic(tt.expr)
			if !ok {
				t.Fatalf("EvalArithmetic(%q) returned no match", tt.expr)
			}
			if got != tt.want {
				t.Errorf("EvalArithmetic(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalArithmetic_NoExpression(t *testing.T) {
	t.Parallel()
	if got, ok := knowledge.EvalArithmetic("kya hal hai"); ok {
		t.Errorf("EvalArithmetic matched %q, want no match", got)
	}
}

func TestEvalSpokenArithmetic(t *testing.T) {
	t.Parallel()
	got, ok := knowledge.EvalSpokenArithmetic("5 plus 3 kitna hota hai")
	if !ok {
		t.Fatal("EvalSpokenArithmetic returned no match")
	}
	if got != "Jawab hai: 8 Boss!" {
		t.Errorf("EvalSpokenArithmetic = %q, want Jawab hai: 8 Boss!", got)
	}
}
