package main

import (
	"fmt"

	"github.com/classflow/gradego/storage/database"
)

// mockable
var (
	migrateUpFunc      = database.Migrate
	migrateDownFunc    = database.MigrateDown
	migrateVersionFunc = database.MigrateVersion
)

func (cli *commandLine) migrate(cmd string) error {
	switch cmd {
	case "up":
		return migrateUpFunc(cli.db)
	case "down":
		return migrateDownFunc(cli.db)
	case "version":
		version, dirty, err := migrateVersionFunc(cli.db)
		if err != nil {
			return err
		}
		fmt.Printf("version: %d, dirty: %t\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("%q: no such command", cmd)
	}
}
