package main

import (
	"log"
	"os"

	"edupro/core"
	"edupro/core/user"
	emailsvc "edupro/services/email"
	logsvc "edupro/services/logger"
	"edupro/storage/localdb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	dbLogger := logsvc.NewRollbarLogger(logger, conf)
	dbLogger.Enable(false) // local tool; never report

	// set up storage
	db, err := localdb.Open(conf.Storage.Path, dbLogger)
	errAndDie(err)

	usrSvc := user.NewService(localdb.NewUserRepository(db), db, emailsvc.NewConsoleService(conf), conf)

	// start CLI
	cli := commandLine{
		db:     db,
		usrSvc: usrSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
