package knowledge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// arithRe matches the first <number><operator><number> group in a query.
var arithRe = regexp.MustCompile(`(\d+\.?\d*)\s*([+\-x*×÷/])\s*(\d+\.?\d*)`)

// MatchesArithmetic reports whether text contains a binary arithmetic
// expression the agent can answer.
func MatchesArithmetic(text string) bool {
	return arithRe.MatchString(text)
}

// EvalArithmetic evaluates the first binary expression found in text and
// returns a spoken answer. Division by zero yields a distinguished reply
// rather than an error. Whole results are spoken without a decimal part,
// everything else with two decimals. The second return is false when text
// contains no expression.
func EvalArithmetic(text string) (string, bool) {
	m := arithRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	a, errA := strconv.ParseFloat(m[1], 64)
	b, errB := strconv.ParseFloat(m[3], 64)
	if errA != nil || errB != nil {
		return "", false
	}

	var result float64
	switch m[2] {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*", "x", "×":
		result = a * b
	case "/", "÷":
		if b == 0 {
			return "Zero se divide nahi ho sakta Boss!", true
		}
		result = a / b
	default:
		return "", false
	}

	ans := strconv.FormatFloat(result, 'f', 2, 64)
	if result == float64(int64(result)) {
		ans = strconv.FormatInt(int64(result), 10)
	}
	return fmt.Sprintf("Jawab hai: %s Boss!", ans), true
}

// normalizeOperatorWords rewrites spoken operator words into symbols so the
// regex can match dictated arithmetic ("5 plus 3").
func normalizeOperatorWords(text string) string {
	r := strings.NewReplacer(
		" plus ", " + ",
		" minus ", " - ",
		" guna ", " * ",
		" bhaag ", " / ",
	)
	return r.Replace(text)
}

// EvalSpokenArithmetic is EvalArithmetic after spoken operator words are
// rewritten into symbols.
func EvalSpokenArithmetic(text string) (string, bool) {
	return EvalArithmetic(normalizeOperatorWords(text))
}

// MatchesSpokenArithmetic is MatchesArithmetic after spoken operator words
// are rewritten into symbols.
func MatchesSpokenArithmetic(text string) bool {
	return MatchesArithmetic(normalizeOperatorWords(text))
}
