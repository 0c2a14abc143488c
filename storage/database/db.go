package database

import (
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/smartedu/core"
)

const (
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
	EngineMemory   = "memory"
)

var ErrUnsupportedEngine = errors.New("unsupported database engine")

// DataSourceName builds the driver specific connection string for the configured engine.
func DataSourceName(conf *core.Config) (string, error) {
	db := conf.Database
	switch db.Engine {
	case EnginePostgres:
		sslMode := "require"
		if db.DisableTLS {
			sslMode = "disable"
		}
		q := make(url.Values)
		q.Set("sslmode", sslMode)
		q.Set("timezone", "utc")

		u := url.URL{
			Scheme:   EnginePostgres,
			User:     url.UserPassword(db.User, db.Password),
			Host:     db.Address(),
			Path:     db.Name,
			RawQuery: q.Encode(),
		}
		return u.String(), nil

	case EngineMySQL:
		cfg := mysql.NewConfig()
		cfg.User = db.User
		cfg.Passwd = db.Password
		cfg.Net = "tcp"
		cfg.Addr = db.Address()
		cfg.DBName = db.Name
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		if !db.DisableTLS {
			cfg.TLSConfig = "true"
		}
		return cfg.FormatDSN(), nil
	}
	return "", errors.Wrap(ErrUnsupportedEngine, db.Engine)
}

// Open connects to the configured SQL database and waits until it answers.
func Open(conf *core.Config) (*sqlx.DB, error) {
	dsn, err := DataSourceName(conf)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(conf.Database.Engine, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var pingAttempts = 30 // mockable

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	for attempts := 1; attempts <= pingAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}
