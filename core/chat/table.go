package chat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	emptyCell     = "-"
	maxLabelRunes = 12
	ellipsis      = "..."
)

// ShortLabel abbreviates a subject name for use as a column header:
// multi-word names become their initials (when that yields 2 to 6 letters),
// anything else longer than 12 characters is truncated.
func ShortLabel(name string) string {
	name = strings.TrimSpace(name)
	if words := strings.Fields(name); len(words) >= 2 {
		var b strings.Builder
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			b.WriteRune(unicode.ToUpper(r))
		}
		if n := utf8.RuneCountInString(b.String()); n >= 2 && n <= 6 {
			return b.String()
		}
	}
	if runes := []rune(name); len(runes) > maxLabelRunes {
		return string(runes[:maxLabelRunes]) + ellipsis
	}
	return name
}

type columnDef struct {
	Column
	value func(rec Record) interface{}
}

// DeriveColumns discovers the table layout from a sample record.
// Staff tables carry the cohort year, and the semester too when rows are not grouped by semester.
func DeriveColumns(sample Record, kind Intent, role Role, grouped bool) []Column {
	defs := columnDefs(sample, kind, role, grouped)
	cols := make([]Column, len(defs))
	for i, def := range defs {
		cols[i] = def.Column
	}
	return cols
}

func columnDefs(sample Record, kind Intent, role Role, grouped bool) []columnDef {
	defs := []columnDef{
		{Column{"roll_no", "Roll No"}, func(rec Record) interface{} { return textCell(rec.RollNo) }},
		{Column{"name", "Name"}, func(rec Record) interface{} { return textCell(rec.StudentName) }},
	}
	if role.IsStaff() {
		defs = append(defs, columnDef{Column{"year", "Year"}, func(rec Record) interface{} { return textCell(string(rec.Year)) }})
		if !grouped {
			defs = append(defs, columnDef{Column{"semester", "Semester"}, func(rec Record) interface{} { return textCell(rec.Semester) }})
		}
	}

	switch kind {
	case IntentMarks:
		defs = append(defs, marksColumns(sample)...)
	case IntentAttendance:
		defs = append(defs, attendanceColumns(sample)...)
	case IntentFees:
		defs = append(defs,
			columnDef{Column{"total_fees", "Total Fees"}, func(rec Record) interface{} { return numberCell(rec.TotalFees) }},
			columnDef{Column{"paid_fees", "Paid"}, func(rec Record) interface{} { return numberCell(rec.PaidFees) }},
			columnDef{Column{"remaining_fees", "Remaining"}, func(rec Record) interface{} { return numberCell(rec.RemainingFees) }},
			columnDef{Column{"due_date", "Due Date"}, func(rec Record) interface{} { return textCell(rec.DueDate) }},
		)
	}
	return defs
}

func marksColumns(sample Record) []columnDef {
	defs := make([]columnDef, 0, SlotCount+2)
	for i, slot := range sample.Marks {
		if !slot.HasName() {
			continue
		}
		i := i
		defs = append(defs, columnDef{
			Column{fmt.Sprintf("subject%d_marks", i+1), ShortLabel(slot.Subject)},
			func(rec Record) interface{} { return numberCell(rec.Marks[i].Marks) },
		})
	}
	return append(defs,
		columnDef{Column{"total_marks", "Total"}, func(rec Record) interface{} { return numberCell(rec.TotalMarks) }},
		columnDef{Column{"total_percentage", "Percentage"}, func(rec Record) interface{} { return percentCell(rec.TotalPercentage) }},
	)
}

func attendanceColumns(sample Record) []columnDef {
	defs := make([]columnDef, 0, 2*SlotCount+2)
	for i, slot := range sample.Attendance {
		i := i
		if slot.hasTheory() {
			defs = append(defs, columnDef{
				Column{fmt.Sprintf("subject%d_theory", i+1), subjectLabel(slot.Theory, slot.Name(), i) + " Th"},
				func(rec Record) interface{} {
					return ratioCell(rec.Attendance[i].TheoryPresent, rec.Attendance[i].TheoryTotal, " / ")
				},
			})
		}
		if slot.hasPractical() {
			defs = append(defs, columnDef{
				Column{fmt.Sprintf("subject%d_practical", i+1), subjectLabel(slot.Practical, slot.Name(), i) + " Pr"},
				func(rec Record) interface{} {
					return ratioCell(rec.Attendance[i].PracticalPresent, rec.Attendance[i].PracticalTotal, " / ")
				},
			})
		}
	}
	return append(defs,
		columnDef{Column{"total", "Total"}, func(rec Record) interface{} { return ratioCell(rec.TotalPresent, rec.TotalClasses, "/") }},
		columnDef{Column{"total_percentage", "Percentage"}, func(rec Record) interface{} { return percentCell(rec.TotalPercentage) }},
	)
}

func subjectLabel(name, fallback string, slot int) string {
	if name = strings.TrimSpace(name); name == "" {
		name = fallback
	}
	if name == "" {
		return fmt.Sprintf("Subject %d", slot+1)
	}
	return ShortLabel(name)
}

// BuildTable renders records into a table whose columns are derived from the first record.
// It returns nil when there is nothing to show.
func BuildTable(title string, kind Intent, role Role, grouped bool, records []Record) *TableSpec {
	if len(records) == 0 {
		return nil
	}
	defs := columnDefs(records[0], kind, role, grouped)
	table := &TableSpec{
		Title:   title,
		Columns: make([]Column, len(defs)),
		Rows:    make([]Row, 0, len(records)),
	}
	for i, def := range defs {
		table.Columns[i] = def.Column
	}
	for _, rec := range records {
		row := make(Row, len(defs))
		for _, def := range defs {
			row[def.Key] = def.value(rec)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// buildSubjectTable lists the marks of the referenced subjects across records.
func buildSubjectTable(records []Record, ref SubjectRef) *TableSpec {
	table := &TableSpec{
		Title: "Subject Marks",
		Columns: []Column{
			{"semester", "Semester"},
			{"academic_year", "Academic Year"},
			{"subject", "Subject"},
			{"marks", "Marks"},
			{"total", "Out Of"},
		},
	}
	for _, rec := range records {
		for i, slot := range rec.Marks {
			if slot.Marks == nil || !ref.matches(i+1, slot.Subject) {
				continue
			}
			table.Rows = append(table.Rows, Row{
				"semester":      textCell(rec.Semester),
				"academic_year": textCell(rec.AcademicYear),
				"subject":       subjectLabelOrSlot(slot.Subject, i),
				"marks":         numberCell(slot.Marks),
				"total":         numberCell(slot.Total),
			})
		}
	}
	if len(table.Rows) == 0 {
		return nil
	}
	return table
}

func subjectLabelOrSlot(name string, slot int) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fmt.Sprintf("Subject %d", slot+1)
}

func textCell(s string) interface{} {
	if s = strings.TrimSpace(s); s == "" {
		return emptyCell
	}
	return s
}

func numberCell(v *float64) interface{} {
	if v == nil {
		return emptyCell
	}
	return *v
}

func percentCell(v *float64) interface{} {
	if v == nil {
		return emptyCell
	}
	return formatPercent(*v)
}

func ratioCell(present, total *float64, sep string) interface{} {
	return formatOptional(present) + sep + formatOptional(total)
}

func formatOptional(v *float64) string {
	if v == nil {
		return emptyCell
	}
	return FormatNumber(*v)
}

// FormatNumber renders v with as few digits as needed.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
