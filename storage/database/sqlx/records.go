package sqlxrepos

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
)

var (
	ErrInvalidBranch = errors.New("invalid branch code")

	branchRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Record tables are split per domain, cohort year and branch, e.g. Marks_TY_CSE,
// and reference the cohort's students table (Students_TY_CSE) through student_id -> roll_no.
const (
	marksPrefix      = "Marks"
	attendancePrefix = "Attendance"
	feesPrefix       = "Fees"
	studentsPrefix   = "Students"
)

type RecordProvider struct {
	db            *sqlx.DB
	defaultBranch string
	logger        core.Logger
}

var _ chat.RecordProvider = (*RecordProvider)(nil)

func NewRecordProvider(db *sqlx.DB, defaultBranch string, logger core.Logger) *RecordProvider {
	return &RecordProvider{
		db:            db,
		defaultBranch: defaultBranch,
		logger:        logger,
	}
}

// cohortQuery selects the rows of one cohort table, optionally narrowed to a single student.
type cohortQuery struct {
	table        string
	studentTable string
	year         chat.YearLevel
	rollNo       string
}

func (q cohortQuery) build(db *sqlx.DB, columns string) (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s r JOIN %s s ON r.student_id = s.roll_no", columns, q.table, q.studentTable)
	if q.rollNo != "" {
		return db.Rebind(query + " WHERE s.roll_no = ? ORDER BY r.id DESC"), []interface{}{q.rollNo}
	}
	return query + " ORDER BY s.roll_no ASC, r.id ASC", nil
}

// cohorts lists the tables visible to the session: its own cohort for students, every cohort for staff.
func (p *RecordProvider) cohorts(sess chat.Session, prefix string) ([]cohortQuery, error) {
	branch := sess.Branch
	if branch == "" {
		branch = p.defaultBranch
	}
	if !branchRegex.MatchString(branch) {
		return nil, errors.Wrap(ErrInvalidBranch, branch)
	}

	table := func(prefix string, year chat.YearLevel) string {
		return fmt.Sprintf("%s_%s_%s", prefix, year, branch)
	}

	if !sess.Role.IsStaff() {
		year := chat.YearFromTable(sess.Table)
		rollNo := sess.RollNo
		if rollNo == "" {
			rollNo = sess.ID
		}
		return []cohortQuery{{
			table:        table(prefix, year),
			studentTable: table(studentsPrefix, year),
			rollNo:       rollNo,
		}}, nil
	}

	queries := make([]cohortQuery, 0, len(chat.YearLevels))
	for _, year := range chat.YearLevels {
		queries = append(queries, cohortQuery{
			table:        table(prefix, year),
			studentTable: table(studentsPrefix, year),
			year:         year,
		})
	}
	return queries, nil
}

// each runs fn for every cohort visible to the session.
// A failing cohort aborts a student lookup but is only logged for staff, whose other cohorts still count.
func (p *RecordProvider) each(sess chat.Session, prefix string, fn func(q cohortQuery) error) error {
	queries, err := p.cohorts(sess, prefix)
	if err != nil {
		return err
	}
	for _, q := range queries {
		if err = fn(q); err != nil {
			if !sess.Role.IsStaff() {
				return err
			}
			p.logger.Warn(fmt.Sprintf("skipping cohort table %s", q.table), err, sess)
		}
	}
	return nil
}

func (p *RecordProvider) FetchMarks(ctx context.Context, sess chat.Session) ([]chat.Record, error) {
	var records []chat.Record
	err := p.each(sess, marksPrefix, func(q cohortQuery) error {
		var rows []marksRow
		query, args := q.build(p.db, marksColumns)
		if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return errors.Wrapf(err, "selecting marks from %s", q.table)
		}
		for _, row := range rows {
			records = append(records, row.record(q.year))
		}
		return nil
	})
	return records, err
}

func (p *RecordProvider) FetchAttendance(ctx context.Context, sess chat.Session) ([]chat.Record, error) {
	var records []chat.Record
	err := p.each(sess, attendancePrefix, func(q cohortQuery) error {
		var rows []attendanceRow
		query, args := q.build(p.db, attendanceColumns)
		if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return errors.Wrapf(err, "selecting attendance from %s", q.table)
		}
		for _, row := range rows {
			records = append(records, row.record(q.year))
		}
		return nil
	})
	return records, err
}

func (p *RecordProvider) FetchFees(ctx context.Context, sess chat.Session) ([]chat.Record, error) {
	var records []chat.Record
	err := p.each(sess, feesPrefix, func(q cohortQuery) error {
		var rows []feesRow
		query, args := q.build(p.db, feesColumns)
		if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
			return errors.Wrapf(err, "selecting fees from %s", q.table)
		}
		for _, row := range rows {
			records = append(records, row.record(q.year))
		}
		return nil
	})
	return records, err
}

func str(s null.String) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func date(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02")
}
