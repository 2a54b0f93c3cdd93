package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/storage/database"
	"github.com/classflow/gradego/storage/database/postgres"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	sqlxDB := sqlx.NewDb(db, core.Conf.Database.Engine)

	// start CLI
	cli := commandLine{
		db:         db,
		acctRepo:   pgrepos.NewAccountRepository(sqlxDB),
		tenantRepo: pgrepos.NewTenantRepository(sqlxDB),
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
