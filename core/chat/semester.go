package chat

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ActiveSemesterSet is the parity group of semesters currently being taught.
type ActiveSemesterSet struct {
	Semesters []int
	Label     string
}

var (
	EvenSemesters = ActiveSemesterSet{Semesters: []int{4, 6, 8}, Label: "even"}
	OddSemesters  = ActiveSemesterSet{Semesters: []int{3, 5, 7}, Label: "odd"}
)

func (s ActiveSemesterSet) Contains(n int) bool {
	for _, sem := range s.Semesters {
		if sem == n {
			return true
		}
	}
	return false
}

// Complement returns the other parity set.
func (s ActiveSemesterSet) Complement() ActiveSemesterSet {
	if s.Label == EvenSemesters.Label {
		return OddSemesters
	}
	return EvenSemesters
}

// ActiveSemesters maps a calendar date to the semesters being taught on that day:
// Feb 1 to Jun 30 (and Jan 1 to Jan 30) is the even half of the year, the rest is odd.
// Only the month and day matter.
func ActiveSemesters(t time.Time) ActiveSemesterSet {
	switch month := t.Month(); {
	case month >= time.February && month <= time.June:
		return EvenSemesters
	case month == time.January && t.Day() <= 30:
		return EvenSemesters
	}
	return OddSemesters
}

type SemesterRefKind int

const (
	SemesterNone SemesterRefKind = iota
	SemesterLatest
	SemesterOld
	SemesterExact
)

// SemesterRef is the semester a message refers to. Number is only set for SemesterExact.
type SemesterRef struct {
	Kind   SemesterRefKind
	Number int
}

var (
	latestRegex     = regexp.MustCompile(`(?i)\b(latest|new|current|recent)\b`)
	oldRegex        = regexp.MustCompile(`(?i)\b(old|older|previous|last)\b`)
	semNumRegex     = regexp.MustCompile(`(?i)sem(?:ester)?\s*(\d{1,2})\b`)
	ordinalRegex    = regexp.MustCompile(`(?i)\b([1-8])(?:st|nd|rd|th)\b`)
	numberWordRegex = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight)\b`)
	bareNumRegex    = regexp.MustCompile(`\b(\d{1,2})\b`)

	labelSemRegex = regexp.MustCompile(`(?i)sem(?:ester)?\s*(\d+)`)

	numberWords = map[string]int{
		"one": 1, "two": 2, "three": 3, "four": 4,
		"five": 5, "six": 6, "seven": 7, "eight": 8,
	}
)

// ParseSemesterRef reads the semester reference out of a message. The first matching rule wins:
// latest words, old words, "sem N", ordinals, number words and finally a bare number.
// Numbers outside 1..8 do not count as a match.
func ParseSemesterRef(text string) SemesterRef {
	if latestRegex.MatchString(text) {
		return SemesterRef{Kind: SemesterLatest}
	}
	if oldRegex.MatchString(text) {
		return SemesterRef{Kind: SemesterOld}
	}
	if n, ok := matchSemester(semNumRegex, text); ok {
		return SemesterRef{Kind: SemesterExact, Number: n}
	}
	if n, ok := matchSemester(ordinalRegex, text); ok {
		return SemesterRef{Kind: SemesterExact, Number: n}
	}
	if m := numberWordRegex.FindStringSubmatch(text); m != nil {
		return SemesterRef{Kind: SemesterExact, Number: numberWords[strings.ToLower(m[1])]}
	}
	if n, ok := matchSemester(bareNumRegex, text); ok {
		return SemesterRef{Kind: SemesterExact, Number: n}
	}
	return SemesterRef{}
}

func matchSemester(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 8 {
		return 0, false
	}
	return n, true
}

// SemesterNumber parses the semester number out of a record's semester label, e.g. "Sem 5" or "5".
// It returns 0 when the label carries no number.
func SemesterNumber(label string) int {
	m := labelSemRegex.FindStringSubmatch(label)
	if m == nil {
		m = bareNumRegex.FindStringSubmatch(label)
	}
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// semesterNumbers returns the distinct known semester numbers, highest first.
func semesterNumbers(records []Record) []int {
	seen := make(map[int]bool)
	nums := make([]int, 0)
	for _, rec := range records {
		if n := SemesterNumber(rec.Semester); n > 0 && !seen[n] {
			seen[n] = true
			nums = append(nums, n)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(nums)))
	return nums
}

// LatestSemesterNumber returns the highest semester number present in records.
func LatestSemesterNumber(records []Record) (int, bool) {
	nums := semesterNumbers(records)
	if len(nums) == 0 {
		return 0, false
	}
	return nums[0], true
}

// PreviousSemesterNumber returns the second-highest distinct semester number present in records.
func PreviousSemesterNumber(records []Record) (int, bool) {
	nums := semesterNumbers(records)
	if len(nums) < 2 {
		return 0, false
	}
	return nums[1], true
}
