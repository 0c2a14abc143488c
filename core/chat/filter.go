package chat

import (
	"fmt"
	"time"
)

// Query is everything the engine reads out of a message.
type Query struct {
	Intent   Intent
	Semester SemesterRef
	Subject  SubjectRef
	Year     YearLevel
	Active   ActiveSemesterSet
}

func ParseQuery(message string, now time.Time) Query {
	return Query{
		Intent:   ClassifyIntent(message),
		Semester: ParseSemesterRef(message),
		Subject:  ExtractSubjectRef(message),
		Year:     ExtractYearLevel(message),
		Active:   ActiveSemesters(now),
	}
}

func (q Query) hasSubjectFilter() bool {
	return q.Intent == IntentMarks && q.Subject.Kind != SubjectNone
}

// studentView answers a student about their own records.
func studentView(q Query, sess Session, records []Record) Response {
	domain := q.Intent.String()
	if len(records) == 0 && q.Semester.Kind != SemesterExact {
		return textResponse(fmt.Sprintf("No %s records found.", domain))
	}
	records = withStudentName(records, sess.Username)

	if q.hasSubjectFilter() {
		matched := filterRecords(records, func(rec Record) bool { return hasSubjectMarks(rec, q.Subject) })
		if len(matched) == 0 {
			return textResponse("No marks found for the requested subject.")
		}
		return Response{
			Text:    subjectNarrative(matched, q.Subject),
			Table:   buildSubjectTable(matched, q.Subject),
			Success: true,
		}
	}

	var sem int
	switch q.Semester.Kind {
	case SemesterExact:
		sem = q.Semester.Number
	case SemesterOld:
		n, ok := PreviousSemesterNumber(records)
		if !ok {
			return textResponse(fmt.Sprintf("No previous semester %s found yet.", domain))
		}
		sem = n
	default:
		sem, _ = LatestSemesterNumber(records)
	}

	selected := records
	if sem > 0 {
		selected = filterRecords(records, func(rec Record) bool { return SemesterNumber(rec.Semester) == sem })
	}
	if len(selected) == 0 {
		if q.Semester.Kind == SemesterExact {
			return textResponse(fmt.Sprintf("Requested semester %d data not found yet.", sem))
		}
		return textResponse(fmt.Sprintf("No %s records found.", domain))
	}
	if q.Intent == IntentMarks {
		selected = selected[:1]
	}

	title := q.Intent.Title()
	if label := selected[0].Semester; label != "" {
		title += " - " + label
	}
	return Response{
		Text:    studentNarrative(q.Intent, selected),
		Table:   BuildTable(title, q.Intent, sess.Role, false, selected),
		Success: true,
	}
}

// staffView aggregates cohort records into one table per (semester, year) group.
func staffView(q Query, role Role, records []Record) Response {
	matched := records
	if q.Year != YearNone {
		matched = filterRecords(matched, func(rec Record) bool { return rec.Year == q.Year })
	}
	if q.hasSubjectFilter() {
		matched = filterRecords(matched, func(rec Record) bool { return hasSubjectMarks(rec, q.Subject) })
	}

	var inScope func(n int) bool
	switch q.Semester.Kind {
	case SemesterExact:
		inScope = func(n int) bool { return n == q.Semester.Number }
	case SemesterOld:
		inScope = q.Active.Complement().Contains
	default:
		inScope = q.Active.Contains
	}
	matched = filterRecords(matched, func(rec Record) bool { return inScope(SemesterNumber(rec.Semester)) })

	var tables []*TableSpec
	for _, grp := range groupBySemesterAndYear(matched) {
		title := fmt.Sprintf("%s - %s - %s", q.Intent.Title(), labelOrDash(grp.semester), labelOrDash(string(grp.year)))
		if table := BuildTable(title, q.Intent, role, true, grp.records); table != nil {
			tables = append(tables, table)
		}
	}
	return Response{
		Text:    staffHeader(q, len(matched)),
		Tables:  tables,
		Success: true,
	}
}

type recordGroup struct {
	semester string
	year     YearLevel
	records  []Record
}

// groupBySemesterAndYear buckets records by their (semester label, year) pair in first-seen order.
func groupBySemesterAndYear(records []Record) []*recordGroup {
	type key struct {
		semester string
		year     YearLevel
	}
	index := make(map[key]*recordGroup)
	groups := make([]*recordGroup, 0)
	for _, rec := range records {
		k := key{rec.Semester, rec.Year}
		grp, ok := index[k]
		if !ok {
			grp = &recordGroup{semester: rec.Semester, year: rec.Year}
			index[k] = grp
			groups = append(groups, grp)
		}
		grp.records = append(grp.records, rec)
	}
	return groups
}

func hasSubjectMarks(rec Record, ref SubjectRef) bool {
	for i, slot := range rec.Marks {
		if slot.Marks != nil && ref.matches(i+1, slot.Subject) {
			return true
		}
	}
	return false
}

func filterRecords(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// withStudentName fills in the caller's name on their own rows without touching the provider's slice.
func withStudentName(records []Record, name string) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	for i := range out {
		if out[i].StudentName == "" {
			out[i].StudentName = name
		}
	}
	return out
}

func labelOrDash(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}

func textResponse(text string) Response {
	return Response{Text: text, Success: true}
}
