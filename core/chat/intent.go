package chat

import "strings"

// Intent is the academic domain a message is about.
type Intent int

const (
	IntentFallback Intent = iota
	IntentMarks
	IntentAttendance
	IntentFees
)

func (i Intent) String() string {
	switch i {
	case IntentMarks:
		return "marks"
	case IntentAttendance:
		return "attendance"
	case IntentFees:
		return "fees"
	}
	return "fallback"
}

// Title is the capitalized domain name used in table titles.
func (i Intent) Title() string {
	switch i {
	case IntentMarks:
		return "Marks"
	case IntentAttendance:
		return "Attendance"
	case IntentFees:
		return "Fees"
	}
	return ""
}

// intentKeywords is checked in order; the first domain with a matching keyword wins.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentMarks, []string{"mark", "result", "score", "record", "all record", "all records"}},
	{IntentAttendance, []string{"attendance", "attendence", "present", "absent"}},
	{IntentFees, []string{"fee", "payment", "due"}},
}

// ClassifyIntent picks the academic domain of a message with a case-insensitive substring match.
func ClassifyIntent(message string) Intent {
	msg := strings.ToLower(message)
	for _, entry := range intentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(msg, kw) {
				return entry.intent
			}
		}
	}
	return IntentFallback
}
