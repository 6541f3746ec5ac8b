// Package plugin attaches per-element controllers that manage a numeric value
// and run an initializer such as word substitution.
package plugin

import (
	"log"
	"math"
	"strconv"
	"strings"
)

// EventChange is triggered on an element after its value is written.
const EventChange = "change"

// Element is the boundary to a displayed element.
// Elements are compared by identity, so implementations should be pointers.
type Element interface {
	Value() string
	SetValue(value string)
	Content() string
	SetContent(content string)
	// InsertAfter creates a read-only sibling element placed after this one.
	InsertAfter(name string) Element
	// On subscribes fn to event and returns an unsubscribe func.
	On(event string, fn func()) func()
	Trigger(event string)
}

// Diagnostics reports non-fatal problems.
type Diagnostics func(format string, args ...any)

// LogDiagnostics writes diagnostics with the standard logger.
func LogDiagnostics(format string, args ...any) {
	log.Printf(format, args...)
}

// ParseInt parses the leading base-10 integer of s.
// Leading blanks and a sign are allowed and trailing text is ignored, so
// "12px" parses as 12. Values beyond the int range saturate.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v\u00a0\ufeff")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil || n > math.MaxInt {
		if negative {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if negative {
		return -int(n), true
	}
	return int(n), true
}
