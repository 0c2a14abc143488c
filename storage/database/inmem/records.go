package inmemdb

import (
	"context"
	"sync"

	"github.com/trezcool/smartedu/core/chat"
)

type (
	// DB keeps academic records per domain and cohort year, in insertion order.
	DB struct {
		mutex  sync.RWMutex
		pk     int64
		tables map[chat.Intent]map[chat.YearLevel][]chat.Record
	}

	RecordProvider struct {
		db *DB
	}
)

var _ chat.RecordProvider = (*RecordProvider)(nil)

func Open() *DB {
	return &DB{tables: make(map[chat.Intent]map[chat.YearLevel][]chat.Record)}
}

// Insert stores records of the given domain in a cohort's table and assigns their IDs.
func (db *DB) Insert(kind chat.Intent, year chat.YearLevel, records ...chat.Record) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	cohorts, ok := db.tables[kind]
	if !ok {
		cohorts = make(map[chat.YearLevel][]chat.Record)
		db.tables[kind] = cohorts
	}
	for _, rec := range records {
		db.pk++
		rec.ID = db.pk
		rec.Year = chat.YearNone
		cohorts[year] = append(cohorts[year], rec)
	}
}

func NewRecordProvider(db *DB) *RecordProvider {
	return &RecordProvider{db: db}
}

func (p *RecordProvider) query(kind chat.Intent, sess chat.Session) []chat.Record {
	p.db.mutex.RLock()
	defer p.db.mutex.RUnlock()

	cohorts := p.db.tables[kind]
	if !sess.Role.IsStaff() {
		rollNo := sess.RollNo
		if rollNo == "" {
			rollNo = sess.ID
		}
		rows := cohorts[chat.YearFromTable(sess.Table)]
		records := make([]chat.Record, 0)
		for i := len(rows) - 1; i >= 0; i-- { // newest first
			if rows[i].RollNo == rollNo {
				records = append(records, rows[i])
			}
		}
		return records
	}

	records := make([]chat.Record, 0)
	for _, year := range chat.YearLevels {
		for _, rec := range cohorts[year] {
			rec.Year = year
			records = append(records, rec)
		}
	}
	return records
}

func (p *RecordProvider) FetchMarks(_ context.Context, sess chat.Session) ([]chat.Record, error) {
	return p.query(chat.IntentMarks, sess), nil
}

func (p *RecordProvider) FetchAttendance(_ context.Context, sess chat.Session) ([]chat.Record, error) {
	return p.query(chat.IntentAttendance, sess), nil
}

func (p *RecordProvider) FetchFees(_ context.Context, sess chat.Session) ([]chat.Record, error) {
	return p.query(chat.IntentFees, sess), nil
}
