package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Data Structures", "DS"},
		{"Theory of Computation", "TOC"},
		{"Database Management System", "DMS"},
		{"Maths", "Maths"},
		{"Microprocessors", "Microprocess..."},
		{"Design and Analysis of Algorithms Lab", "DAAOAL"},
		{"A B C D E F G", "A B C D E F ..."},
		{"  Physics  ", "Physics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortLabel(tt.name); got != tt.want {
				t.Errorf("ShortLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func marksRecord(rollNo, name, sem string, year YearLevel) Record {
	return Record{
		RollNo:       rollNo,
		StudentName:  name,
		Semester:     sem,
		AcademicYear: "2024-25",
		Year:         year,
		Marks: [SlotCount]MarkSlot{
			{Subject: "Data Structures", Marks: Float(78), Total: Float(100)},
			{Subject: "Maths", Marks: Float(66), Total: Float(100)},
			{Subject: "Computer Networks", Marks: Float(81), Total: Float(100)},
		},
		TotalMarks:      Float(225),
		TotalPercentage: Float(75),
	}
}

func columnKeys(cols []Column) []string {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

func TestDeriveColumns_marks(t *testing.T) {
	sample := marksRecord("21", "Asha", "Sem 5", YearTY)

	student := DeriveColumns(sample, IntentMarks, RoleStudent, false)
	assert.Equal(t,
		[]string{"roll_no", "name", "subject1_marks", "subject2_marks", "subject3_marks", "total_marks", "total_percentage"},
		columnKeys(student),
	)
	assert.Equal(t, "DS", student[2].Label)
	assert.Equal(t, "Maths", student[3].Label)
	assert.Equal(t, "CN", student[4].Label)

	grouped := DeriveColumns(sample, IntentMarks, RoleTeacher, true)
	assert.Equal(t, []string{"roll_no", "name", "year"}, columnKeys(grouped)[:3])

	flat := DeriveColumns(sample, IntentMarks, RoleHOD, false)
	assert.Equal(t, []string{"roll_no", "name", "year", "semester"}, columnKeys(flat)[:4])
}

func TestDeriveColumns_attendance(t *testing.T) {
	sample := Record{
		Attendance: [SlotCount]AttendanceSlot{
			{Theory: "Operating Systems", TheoryPresent: Float(40), TheoryTotal: Float(45),
				Practical: "OS Lab", PracticalPresent: Float(10), PracticalTotal: Float(12)},
			{Theory: "Maths", TheoryPresent: Float(30)},
			{Practical: "Mini Project", PracticalTotal: Float(8)},
			{Theory: "Unused"},
		},
	}
	cols := DeriveColumns(sample, IntentAttendance, RoleStudent, false)
	assert.Equal(t, []Column{
		{"roll_no", "Roll No"},
		{"name", "Name"},
		{"subject1_theory", "OS Th"},
		{"subject1_practical", "OL Pr"},
		{"subject2_theory", "Maths Th"},
		{"subject3_practical", "MP Pr"},
		{"total", "Total"},
		{"total_percentage", "Percentage"},
	}, cols)
}

func TestDeriveColumns_fees(t *testing.T) {
	student := DeriveColumns(Record{}, IntentFees, RoleStudent, false)
	assert.Equal(t, []string{"roll_no", "name", "total_fees", "paid_fees", "remaining_fees", "due_date"}, columnKeys(student))

	staff := DeriveColumns(Record{}, IntentFees, RolePrincipal, true)
	assert.Equal(t, []string{"roll_no", "name", "year", "total_fees", "paid_fees", "remaining_fees", "due_date"}, columnKeys(staff))
}

func TestBuildTable(t *testing.T) {
	assert.Nil(t, BuildTable("Marks", IntentMarks, RoleStudent, false, nil))

	rec := marksRecord("21", "Asha", "Sem 5", YearTY)
	rec.Marks[1].Marks = nil
	rec.TotalPercentage = Float(74.96)

	table := BuildTable("Marks - Sem 5", IntentMarks, RoleStudent, false, []Record{rec})
	require.NotNil(t, table)
	assert.Equal(t, "Marks - Sem 5", table.Title)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "21", row["roll_no"])
	assert.Equal(t, "Asha", row["name"])
	assert.Equal(t, 78.0, row["subject1_marks"])
	assert.Equal(t, emptyCell, row["subject2_marks"])
	assert.Equal(t, 225.0, row["total_marks"])
	assert.Equal(t, "75.0", row["total_percentage"])
}

func TestBuildTable_attendanceCells(t *testing.T) {
	rec := Record{
		RollNo: "7",
		Attendance: [SlotCount]AttendanceSlot{
			{Theory: "Maths", TheoryPresent: Float(30), TheoryTotal: Float(40)},
			{Theory: "Physics", TheoryPresent: Float(12.5)},
		},
		TotalPresent:    Float(42.5),
		TotalClasses:    Float(40),
		TotalPercentage: Float(87.46),
	}
	table := BuildTable("Attendance", IntentAttendance, RoleStudent, false, []Record{rec})
	require.NotNil(t, table)

	row := table.Rows[0]
	assert.Equal(t, "30 / 40", row["subject1_theory"])
	assert.Equal(t, "12.5 / -", row["subject2_theory"])
	assert.Equal(t, "42.5/40", row["total"])
	assert.Equal(t, "87.5", row["total_percentage"])
	assert.Equal(t, emptyCell, row["name"])
}
