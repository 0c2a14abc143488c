package testutil

import (
	"github.com/trezcool/smartedu/core/chat"
	inmemdb "github.com/trezcool/smartedu/storage/database/inmem"
)

var subjects = [chat.SlotCount]string{"Data Structures", "Maths", "Computer Networks", "Operating Systems", "DBMS"}

// MarksRecord builds a marks row out of 100 per subject, filling slots in order.
func MarksRecord(rollNo, name, sem string, values ...float64) chat.Record {
	rec := chat.Record{
		RollNo:       rollNo,
		StudentName:  name,
		Semester:     sem,
		AcademicYear: "2024-25",
		ExamType:     "ESE",
	}
	var total float64
	for i, v := range values {
		rec.Marks[i] = chat.MarkSlot{Subject: subjects[i], Marks: chat.Float(v), Total: chat.Float(100)}
		total += v
	}
	rec.TotalMarks = chat.Float(total)
	if len(values) > 0 {
		rec.TotalPercentage = chat.Float(total / float64(len(values)))
	}
	return rec
}

func FeesRecord(rollNo, name string, total, paid float64, due string) chat.Record {
	return chat.Record{
		RollNo:        rollNo,
		StudentName:   name,
		TotalFees:     chat.Float(total),
		PaidFees:      chat.Float(paid),
		RemainingFees: chat.Float(total - paid),
		DueDate:       due,
	}
}

// SeedRecords fills db with a small CSE department:
//   - TY: Asha (21) with Sem 5 and Sem 6 marks, Ravi (22) with Sem 5 marks, Asha's fees
//   - SY: Neha (7) with Sem 3 marks
func SeedRecords(db *inmemdb.DB) {
	db.Insert(chat.IntentMarks, chat.YearTY,
		MarksRecord("21", "Asha", "Sem 5", 70, 60, 80),
		MarksRecord("22", "Ravi", "Sem 5", 50, 55, 65),
		MarksRecord("21", "Asha", "Sem 6", 78, 66, 81),
	)
	db.Insert(chat.IntentMarks, chat.YearSY, MarksRecord("7", "Neha", "Sem 3", 90, 85, 88))
	db.Insert(chat.IntentFees, chat.YearTY, FeesRecord("21", "Asha", 90000, 60000, "2025-11-30"))
}
