package chat

import (
	"fmt"
	"strings"
)

const bullet = "• "

func studentNarrative(kind Intent, records []Record) string {
	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		switch kind {
		case IntentMarks:
			blocks = append(blocks, marksNarrative(rec))
		case IntentAttendance:
			blocks = append(blocks, attendanceNarrative(rec))
		case IntentFees:
			blocks = append(blocks, feesNarrative(rec))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func periodOf(rec Record) string {
	period := labelOrDash(rec.Semester)
	if rec.AcademicYear != "" {
		period += " (" + rec.AcademicYear + ")"
	}
	return period
}

func marksNarrative(rec Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are your marks for %s:", periodOf(rec))
	if rec.ExamType != "" {
		fmt.Fprintf(&b, "\nExam: %s", rec.ExamType)
	}
	for _, slot := range rec.Marks {
		if !slot.HasName() {
			continue
		}
		fmt.Fprintf(&b, "\n%s%s: %s/%s", bullet, slot.Subject, formatOptional(slot.Marks), formatOptional(slot.Total))
	}
	if rec.TotalMarks != nil {
		fmt.Fprintf(&b, "\n%sTotal: %s", bullet, FormatNumber(*rec.TotalMarks))
		if rec.TotalPercentage != nil {
			fmt.Fprintf(&b, " (%s%%)", formatPercent(*rec.TotalPercentage))
		}
	} else if rec.TotalPercentage != nil {
		fmt.Fprintf(&b, "\n%sPercentage: %s%%", bullet, formatPercent(*rec.TotalPercentage))
	}
	return b.String()
}

func attendanceNarrative(rec Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is your attendance for %s:", periodOf(rec))
	for i, slot := range rec.Attendance {
		if slot.hasTheory() {
			fmt.Fprintf(&b, "\n%s%s (Theory): %s/%s", bullet, subjectLabelOrSlot(slot.Theory, i),
				formatOptional(slot.TheoryPresent), formatOptional(slot.TheoryTotal))
		}
		if slot.hasPractical() {
			name := slot.Practical
			if strings.TrimSpace(name) == "" {
				name = slot.Name()
			}
			fmt.Fprintf(&b, "\n%s%s (Practical): %s/%s", bullet, subjectLabelOrSlot(name, i),
				formatOptional(slot.PracticalPresent), formatOptional(slot.PracticalTotal))
		}
	}
	if rec.TotalPresent != nil || rec.TotalClasses != nil {
		fmt.Fprintf(&b, "\n%sOverall: %s/%s", bullet, formatOptional(rec.TotalPresent), formatOptional(rec.TotalClasses))
		if rec.TotalPercentage != nil {
			fmt.Fprintf(&b, " (%s%%)", formatPercent(*rec.TotalPercentage))
		}
	}
	return b.String()
}

func feesNarrative(rec Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are your fee details for %s:", periodOf(rec))
	fmt.Fprintf(&b, "\n%sTotal Fees: %s", bullet, formatOptional(rec.TotalFees))
	fmt.Fprintf(&b, "\n%sPaid: %s", bullet, formatOptional(rec.PaidFees))
	fmt.Fprintf(&b, "\n%sRemaining: %s", bullet, formatOptional(rec.RemainingFees))
	if rec.LastPaidDate != "" {
		fmt.Fprintf(&b, "\n%sLast Paid: %s", bullet, rec.LastPaidDate)
	}
	if rec.DueDate != "" {
		fmt.Fprintf(&b, "\n%sDue Date: %s", bullet, rec.DueDate)
	}
	return b.String()
}

func subjectNarrative(records []Record, ref SubjectRef) string {
	var b strings.Builder
	if ref.Kind == SubjectSlot {
		fmt.Fprintf(&b, "Here are your marks for subject %d:", ref.Slot)
	} else {
		b.WriteString("Here are your marks for the requested subject:")
	}
	for _, rec := range records {
		for i, slot := range rec.Marks {
			if slot.Marks == nil || !ref.matches(i+1, slot.Subject) {
				continue
			}
			fmt.Fprintf(&b, "\n%s%s - %s: %s/%s", bullet, subjectLabelOrSlot(slot.Subject, i), periodOf(rec),
				formatOptional(slot.Marks), formatOptional(slot.Total))
		}
	}
	return b.String()
}

// staffHeader summarizes an aggregated staff answer.
func staffHeader(q Query, n int) string {
	domain := q.Intent.String()

	var b strings.Builder
	switch {
	case q.Year != YearNone:
		fmt.Fprintf(&b, "Showing %s %s (%d records).", q.Year, domain, n)
	case q.Semester.Kind == SemesterOld:
		fmt.Fprintf(&b, "Previous semesters (alternate set) %s (%d records).", domain, n)
	default:
		fmt.Fprintf(&b, "Current semester %s (%d records).", domain, n)
	}
	b.WriteString(" Grouped by semester and year.")
	if q.hasSubjectFilter() {
		b.WriteString(" (filtered by subject)")
	}
	switch q.Semester.Kind {
	case SemesterExact:
		fmt.Fprintf(&b, " (semester %d)", q.Semester.Number)
	case SemesterLatest:
		b.WriteString(" (latest semester)")
	case SemesterOld:
		b.WriteString(" (previous semester)")
	}
	return b.String()
}
