package parse

import (
	"regexp"
	"strings"
)

// System notices are membership, group-management, and encryption lines the
// export interleaves with conversation. They are dropped, not surfaced.
var noticeSubstrings = []string{
	"added",
	"left",
	"joined",
	"removed",
	"created group",
	"security code changed",
	"end-to-end encrypted",
	"missed voice call",
	"missed video call",
}

var noticeGroupChange = regexp.MustCompile(`changed.*group`)

// Real exports write notices with a timestamp header but no "Sender:" part,
// e.g. "02/02/23, 09:00 - Bob added Carol". Those never match the message
// grammar, so they are recognized by stripping the header and checking the
// remainder.
var noticeHeader = regexp.MustCompile(`^\[?\d{1,2}[/.]\d{1,2}[/.]\d{2,4},?\s*\d{1,2}:\d{2}(?::\d{2})?(?:\s*(?i:AM|PM))?\]?\s*[-–]?\s*(.*)$`)

func isNoticeLine(line string) bool {
	m := noticeHeader.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	return isSystemNotice(m[1])
}

func isSystemNotice(text string) bool {
	lower := strings.ToLower(text)
	for _, sub := range noticeSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return noticeGroupChange.MatchString(lower)
}
