package database

import (
	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
	inmemdb "github.com/trezcool/smartedu/storage/database/inmem"
	sqlxrepos "github.com/trezcool/smartedu/storage/database/sqlx"
)

// OpenRecordProvider sets up the record store selected by the configured engine.
// The returned close func releases the underlying connection, if any.
func OpenRecordProvider(conf *core.Config, logger core.Logger) (chat.RecordProvider, func() error, error) {
	if conf.Database.Engine == EngineMemory {
		logger.Warn("using the in-memory record store; academic queries will find no records")
		return inmemdb.NewRecordProvider(inmemdb.Open()), func() error { return nil }, nil
	}

	db, err := Open(conf)
	if err != nil {
		return nil, nil, err
	}
	return sqlxrepos.NewRecordProvider(db, conf.Database.DefaultBranch, logger), db.Close, nil
}
