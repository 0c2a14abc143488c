package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSubjectRef(t *testing.T) {
	tests := []struct {
		text string
		want SubjectRef
	}{
		{"marks of subject 2", SubjectRef{Kind: SubjectSlot, Slot: 2}},
		{"Subject5 marks", SubjectRef{Kind: SubjectSlot, Slot: 5}},
		{"subject 6 marks", SubjectRef{}},
		{"my maths marks", SubjectRef{Kind: SubjectName, Tokens: []string{"math"}}},
		{"data structures score", SubjectRef{Kind: SubjectName, Tokens: []string{"data", "structure"}}},
		{"computer network result", SubjectRef{Kind: SubjectName, Tokens: []string{"computer", "network"}}},
		{"show my marks", SubjectRef{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSubjectRef(tt.text))
		})
	}
}

func TestSubjectRef_matches(t *testing.T) {
	byName := SubjectRef{Kind: SubjectName, Tokens: []string{"data"}}
	assert.True(t, byName.matches(1, "Database Systems"))
	assert.True(t, byName.matches(3, "Data Structures"))
	assert.False(t, byName.matches(2, "Operating Systems"))

	bySlot := SubjectRef{Kind: SubjectSlot, Slot: 2}
	assert.True(t, bySlot.matches(2, ""))
	assert.False(t, bySlot.matches(1, "Data Structures"))

	assert.False(t, SubjectRef{}.matches(1, "Data Structures"))
}

func TestExtractYearLevel(t *testing.T) {
	tests := []struct {
		text string
		want YearLevel
	}{
		{"SY marks", YearSY},
		{"second year attendance", YearSY},
		{"2nd year fees", YearSY},
		{"show ty marks", YearTY},
		{"third year results", YearTY},
		{"BE attendance", YearBE},
		{"final year fees", YearBE},
		{"fourth year marks", YearBE},
		{"what will be the marks", YearBE},
		{"sy and ty marks", YearSY},
		{"typical marks", YearNone},
		{"show marks", YearNone},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ExtractYearLevel(tt.text); got != tt.want {
				t.Errorf("ExtractYearLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYearFromTable(t *testing.T) {
	assert.Equal(t, YearSY, YearFromTable("Students_SY_CSE"))
	assert.Equal(t, YearBE, YearFromTable("students_be_cse"))
	assert.Equal(t, YearTY, YearFromTable("Students_TY_CSE"))
	assert.Equal(t, YearTY, YearFromTable("Students"))
}
