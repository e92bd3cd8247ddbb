package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// alarmRe captures <digits><unit-word> for alarm times.
var alarmRe = regexp.MustCompile(`(\d+)\s*(baje|bajey|baj|am|pm|:)`)

// durationRe captures <digits><unit-word> for timer durations.
var durationRe = regexp.MustCompile(`(\d+)\s*(minutes|minute|mins|min|seconds|second|secs|sec)`)

// postpositions are the filler tokens dropped from extracted targets.
var postpositions = map[string]bool{
	"ko": true, "ka": true, "ki": true, "se": true, "pe": true, "par": true,
}

// extractTarget strips the rule's trigger phrases from q and drops known
// postposition tokens; the residual token sequence is the target. An empty
// residual means the caller should fall back to a chooser or clarification.
func extractTarget(q string, triggers []string) string {
	for _, t := range triggers {
		q = strings.ReplaceAll(q, t, " ")
	}
	var kept []string
	for _, tok := range strings.Fields(q) {
		if postpositions[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// extractQuery removes the given phrases from q and returns the trimmed
// residual free text, with postposition tokens dropped.
func extractQuery(q string, phrases ...string) string {
	return extractTarget(q, phrases)
}

// extractAlarmTime parses an alarm time out of q. The hour is taken from the
// first <digits><unit> match; "pm" adds 12 when the hour is below 12.
// Minutes are always zero in this grammar.
func extractAlarmTime(q string) (hour, minute int, ok bool) {
	m := alarmRe.FindStringSubmatch(q)
	if m == nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	if m[2] == "pm" && h < 12 {
		h += 12
	}
	return h, 0, true
}

// extractDuration parses a timer duration out of q and returns it in
// seconds. Minute units convert at 60 seconds each.
func extractDuration(q string) (seconds int, ok bool) {
	m := durationRe.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if strings.HasPrefix(m[2], "min") {
		n *= 60
	}
	return n, true
}
