package chat

import "testing"

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"show my marks", IntentMarks},
		{"What is my RESULT?", IntentMarks},
		{"all records please", IntentMarks},
		{"score in sem 5", IntentMarks},
		{"my attendance", IntentAttendance},
		{"attendence of sem 3", IntentAttendance},
		{"how many days was I absent", IntentAttendance},
		{"fees status", IntentFees},
		{"pending payment", IntentFees},
		{"when is it due", IntentFees},
		{"attendance and marks", IntentMarks},
		{"hello, how are you", IntentFallback},
		{"", IntentFallback},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := ClassifyIntent(tt.message); got != tt.want {
				t.Errorf("ClassifyIntent() = %v, want %v", got, tt.want)
			}
		})
	}
}
