package sqlxrepos

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/smartedu/core/chat"
)

const (
	baseColumns = `r.id, r.semester, r.academic_year, s.name AS student_name, s.roll_no AS student_roll_no`

	marksColumns = baseColumns + `, r.exam_type,
	r.subject1, r.subject1_marks, r.subject1_total,
	r.subject2, r.subject2_marks, r.subject2_total,
	r.subject3, r.subject3_marks, r.subject3_total,
	r.subject4, r.subject4_marks, r.subject4_total,
	r.subject5, r.subject5_marks, r.subject5_total,
	r.total_marks, r.total_percentage`

	attendanceColumns = baseColumns + `,
	r.subject1_theory, r.subject1_theory_present, r.subject1_theory_total,
	r.subject1_practical, r.subject1_practical_present, r.subject1_practical_total,
	r.subject2_theory, r.subject2_theory_present, r.subject2_theory_total,
	r.subject2_practical, r.subject2_practical_present, r.subject2_practical_total,
	r.subject3_theory, r.subject3_theory_present, r.subject3_theory_total,
	r.subject3_practical, r.subject3_practical_present, r.subject3_practical_total,
	r.subject4_theory, r.subject4_theory_present, r.subject4_theory_total,
	r.subject4_practical, r.subject4_practical_present, r.subject4_practical_total,
	r.subject5_theory, r.subject5_theory_present, r.subject5_theory_total,
	r.subject5_practical, r.subject5_practical_present, r.subject5_practical_total,
	r.total_present, r.total_classes, r.total_percentage`

	feesColumns = baseColumns + `,
	r.total_fees, r.paid_fees, r.remaining_fees, r.last_paid_date, r.due_date`
)

type baseRow struct {
	ID           int64       `db:"id"`
	Semester     null.String `db:"semester"`
	AcademicYear null.String `db:"academic_year"`
	StudentName  null.String `db:"student_name"`
	RollNo       null.String `db:"student_roll_no"`
}

func (r baseRow) record(year chat.YearLevel) chat.Record {
	return chat.Record{
		ID:           r.ID,
		RollNo:       str(r.RollNo),
		StudentName:  str(r.StudentName),
		Semester:     str(r.Semester),
		AcademicYear: str(r.AcademicYear),
		Year:         year,
	}
}

type marksRow struct {
	baseRow
	ExamType null.String `db:"exam_type"`

	Subject1      null.String  `db:"subject1"`
	Subject1Marks null.Float64 `db:"subject1_marks"`
	Subject1Total null.Float64 `db:"subject1_total"`
	Subject2      null.String  `db:"subject2"`
	Subject2Marks null.Float64 `db:"subject2_marks"`
	Subject2Total null.Float64 `db:"subject2_total"`
	Subject3      null.String  `db:"subject3"`
	Subject3Marks null.Float64 `db:"subject3_marks"`
	Subject3Total null.Float64 `db:"subject3_total"`
	Subject4      null.String  `db:"subject4"`
	Subject4Marks null.Float64 `db:"subject4_marks"`
	Subject4Total null.Float64 `db:"subject4_total"`
	Subject5      null.String  `db:"subject5"`
	Subject5Marks null.Float64 `db:"subject5_marks"`
	Subject5Total null.Float64 `db:"subject5_total"`

	TotalMarks      null.Float64 `db:"total_marks"`
	TotalPercentage null.Float64 `db:"total_percentage"`
}

func markSlot(subject null.String, marks, total null.Float64) chat.MarkSlot {
	if !subject.Valid && !marks.Valid {
		return chat.MarkSlot{}
	}
	return chat.MarkSlot{Subject: str(subject), Marks: marks.Ptr(), Total: total.Ptr()}
}

func (r marksRow) record(year chat.YearLevel) chat.Record {
	rec := r.baseRow.record(year)
	rec.ExamType = str(r.ExamType)
	rec.Marks = [chat.SlotCount]chat.MarkSlot{
		markSlot(r.Subject1, r.Subject1Marks, r.Subject1Total),
		markSlot(r.Subject2, r.Subject2Marks, r.Subject2Total),
		markSlot(r.Subject3, r.Subject3Marks, r.Subject3Total),
		markSlot(r.Subject4, r.Subject4Marks, r.Subject4Total),
		markSlot(r.Subject5, r.Subject5Marks, r.Subject5Total),
	}
	rec.TotalMarks = r.TotalMarks.Ptr()
	rec.TotalPercentage = r.TotalPercentage.Ptr()
	return rec
}

type attendanceRow struct {
	baseRow

	Subject1Theory           null.String  `db:"subject1_theory"`
	Subject1TheoryPresent    null.Float64 `db:"subject1_theory_present"`
	Subject1TheoryTotal      null.Float64 `db:"subject1_theory_total"`
	Subject1Practical        null.String  `db:"subject1_practical"`
	Subject1PracticalPresent null.Float64 `db:"subject1_practical_present"`
	Subject1PracticalTotal   null.Float64 `db:"subject1_practical_total"`
	Subject2Theory           null.String  `db:"subject2_theory"`
	Subject2TheoryPresent    null.Float64 `db:"subject2_theory_present"`
	Subject2TheoryTotal      null.Float64 `db:"subject2_theory_total"`
	Subject2Practical        null.String  `db:"subject2_practical"`
	Subject2PracticalPresent null.Float64 `db:"subject2_practical_present"`
	Subject2PracticalTotal   null.Float64 `db:"subject2_practical_total"`
	Subject3Theory           null.String  `db:"subject3_theory"`
	Subject3TheoryPresent    null.Float64 `db:"subject3_theory_present"`
	Subject3TheoryTotal      null.Float64 `db:"subject3_theory_total"`
	Subject3Practical        null.String  `db:"subject3_practical"`
	Subject3PracticalPresent null.Float64 `db:"subject3_practical_present"`
	Subject3PracticalTotal   null.Float64 `db:"subject3_practical_total"`
	Subject4Theory           null.String  `db:"subject4_theory"`
	Subject4TheoryPresent    null.Float64 `db:"subject4_theory_present"`
	Subject4TheoryTotal      null.Float64 `db:"subject4_theory_total"`
	Subject4Practical        null.String  `db:"subject4_practical"`
	Subject4PracticalPresent null.Float64 `db:"subject4_practical_present"`
	Subject4PracticalTotal   null.Float64 `db:"subject4_practical_total"`
	Subject5Theory           null.String  `db:"subject5_theory"`
	Subject5TheoryPresent    null.Float64 `db:"subject5_theory_present"`
	Subject5TheoryTotal      null.Float64 `db:"subject5_theory_total"`
	Subject5Practical        null.String  `db:"subject5_practical"`
	Subject5PracticalPresent null.Float64 `db:"subject5_practical_present"`
	Subject5PracticalTotal   null.Float64 `db:"subject5_practical_total"`

	TotalPresent    null.Float64 `db:"total_present"`
	TotalClasses    null.Float64 `db:"total_classes"`
	TotalPercentage null.Float64 `db:"total_percentage"`
}

func attendanceSlot(theory null.String, thPresent, thTotal null.Float64, practical null.String, prPresent, prTotal null.Float64) chat.AttendanceSlot {
	return chat.AttendanceSlot{
		Theory:           str(theory),
		TheoryPresent:    thPresent.Ptr(),
		TheoryTotal:      thTotal.Ptr(),
		Practical:        str(practical),
		PracticalPresent: prPresent.Ptr(),
		PracticalTotal:   prTotal.Ptr(),
	}
}

func (r attendanceRow) record(year chat.YearLevel) chat.Record {
	rec := r.baseRow.record(year)
	rec.Attendance = [chat.SlotCount]chat.AttendanceSlot{
		attendanceSlot(r.Subject1Theory, r.Subject1TheoryPresent, r.Subject1TheoryTotal,
			r.Subject1Practical, r.Subject1PracticalPresent, r.Subject1PracticalTotal),
		attendanceSlot(r.Subject2Theory, r.Subject2TheoryPresent, r.Subject2TheoryTotal,
			r.Subject2Practical, r.Subject2PracticalPresent, r.Subject2PracticalTotal),
		attendanceSlot(r.Subject3Theory, r.Subject3TheoryPresent, r.Subject3TheoryTotal,
			r.Subject3Practical, r.Subject3PracticalPresent, r.Subject3PracticalTotal),
		attendanceSlot(r.Subject4Theory, r.Subject4TheoryPresent, r.Subject4TheoryTotal,
			r.Subject4Practical, r.Subject4PracticalPresent, r.Subject4PracticalTotal),
		attendanceSlot(r.Subject5Theory, r.Subject5TheoryPresent, r.Subject5TheoryTotal,
			r.Subject5Practical, r.Subject5PracticalPresent, r.Subject5PracticalTotal),
	}
	rec.TotalPresent = r.TotalPresent.Ptr()
	rec.TotalClasses = r.TotalClasses.Ptr()
	rec.TotalPercentage = r.TotalPercentage.Ptr()
	return rec
}

type feesRow struct {
	baseRow
	TotalFees     null.Float64 `db:"total_fees"`
	PaidFees      null.Float64 `db:"paid_fees"`
	RemainingFees null.Float64 `db:"remaining_fees"`
	LastPaidDate  null.Time    `db:"last_paid_date"`
	DueDate       null.Time    `db:"due_date"`
}

func (r feesRow) record(year chat.YearLevel) chat.Record {
	rec := r.baseRow.record(year)
	rec.TotalFees = r.TotalFees.Ptr()
	rec.PaidFees = r.PaidFees.Ptr()
	rec.RemainingFees = r.RemainingFees.Ptr()
	rec.LastPaidDate = date(r.LastPaidDate)
	rec.DueDate = date(r.DueDate)
	return rec
}
