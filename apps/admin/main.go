package main

import (
	"log"
	"os"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
	convsvc "github.com/trezcool/smartedu/services/conversation"
	logsvc "github.com/trezcool/smartedu/services/logger"
	"github.com/trezcool/smartedu/storage/database"
)

func main() {
	os.Exit(run(os.Args))
}

// run returns the process exit code once every resource is released.
func run(args []string) int {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(false)

	// set up records
	records, closeDB, err := database.OpenRecordProvider(conf, logger)
	if err != nil {
		logger.Error("setting up database", err)
		return 1
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// start CLI
	cli := commandLine{
		conf:    conf,
		chatSvc: chat.NewService(records, convsvc.NewRasaClient(conf), logger),
		out:     os.Stdout,
	}
	if err = cli.run(args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		return 1
	}
	return 0
}
