package chat

import "strings"

// SlotCount is the number of subject slots carried by every academic record.
const SlotCount = 5

// Role is the caller's role as stated by the auth layer.
type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleHOD       Role = "hod"
	RolePrincipal Role = "principal"
)

var AllRoles = []Role{RoleStudent, RoleTeacher, RoleHOD, RolePrincipal}

// IsStaff reports whether the role sees aggregated cohort data instead of its own records.
func (r Role) IsStaff() bool {
	switch r {
	case RoleTeacher, RoleHOD, RolePrincipal:
		return true
	}
	return false
}

func (r Role) Valid() bool {
	return r == RoleStudent || r.IsStaff()
}

// Session describes who is asking. It is immutable for the lifetime of a request.
type Session struct {
	ID       string
	Role     Role
	Table    string // cohort table tag, e.g. Students_TY_CSE
	Branch   string
	Year     string
	RollNo   string
	Username string
}

// Sender is the conversation id used with the external engine.
func (s Session) Sender() string {
	return "user_" + s.ID
}

// YearLevel is a cohort year: second, third or final year.
type YearLevel string

const (
	YearNone YearLevel = ""
	YearSY   YearLevel = "SY"
	YearTY   YearLevel = "TY"
	YearBE   YearLevel = "BE"
)

var YearLevels = []YearLevel{YearSY, YearTY, YearBE}

// YearFromTable extracts the cohort year from a table tag such as Students_SY_CSE.
// Unknown tags fall back to TY.
func YearFromTable(table string) YearLevel {
	for _, part := range strings.Split(strings.ToUpper(table), "_") {
		switch YearLevel(part) {
		case YearSY, YearTY, YearBE:
			return YearLevel(part)
		}
	}
	return YearTY
}

type (
	MarkSlot struct {
		Subject string
		Marks   *float64
		Total   *float64
	}

	AttendanceSlot struct {
		Theory           string
		TheoryPresent    *float64
		TheoryTotal      *float64
		Practical        string
		PracticalPresent *float64
		PracticalTotal   *float64
	}

	// Record is one row of marks, attendance or fees data.
	// Only the fields relevant to the record's domain are set.
	Record struct {
		ID           int64
		RollNo       string
		StudentName  string
		Semester     string
		AcademicYear string
		ExamType     string
		Year         YearLevel // staff views only

		Marks      [SlotCount]MarkSlot
		TotalMarks *float64

		Attendance   [SlotCount]AttendanceSlot
		TotalPresent *float64
		TotalClasses *float64

		TotalPercentage *float64

		TotalFees     *float64
		PaidFees      *float64
		RemainingFees *float64
		LastPaidDate  string
		DueDate       string
	}
)

// HasName reports whether the slot carries a subject.
func (s MarkSlot) HasName() bool {
	return strings.TrimSpace(s.Subject) != ""
}

// Name returns the theory subject name, or the practical one when there is no theory component.
func (s AttendanceSlot) Name() string {
	if name := strings.TrimSpace(s.Theory); name != "" {
		return name
	}
	return strings.TrimSpace(s.Practical)
}

func (s AttendanceSlot) hasTheory() bool {
	return s.TheoryPresent != nil || s.TheoryTotal != nil
}

func (s AttendanceSlot) hasPractical() bool {
	return s.PracticalPresent != nil || s.PracticalTotal != nil
}

type (
	Column struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}

	// Row maps a column key to a displayable value (string or number).
	Row map[string]interface{}

	TableSpec struct {
		Title   string   `json:"title"`
		Columns []Column `json:"columns"`
		Rows    []Row    `json:"rows"`
	}

	// Response is what the chat endpoint sends back.
	Response struct {
		Text    string       `json:"response"`
		Table   *TableSpec   `json:"table,omitempty"`
		Tables  []*TableSpec `json:"tables,omitempty"`
		Success bool         `json:"success"`

		Intent     Intent `json:"-"`
		// EngineDown is set when a fallback message could not reach the conversation engine.
		EngineDown bool   `json:"-"`
	}
)

// Float is a shorthand for optional numeric record fields.
func Float(v float64) *float64 {
	return &v
}
