package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/tenant"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *sql.DB
	acctRepo   account.Repository
	tenantRepo tenant.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate up|down|version                - run database migrations")
	fmt.Println("  addtenant -name NAME [-theme THEME]    - create a school tenant")
	fmt.Println("  adduser -email EMAIL                   - create or update an admin account; the password will be prompted")
	fmt.Println("  resetpassword -email EMAIL             - reset an account's password; the new password will be prompted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addTenantCmd := flag.NewFlagSet("addtenant", flag.ExitOnError)
	addTenantName := addTenantCmd.String("name", "", "The school's name.")
	addTenantTheme := addTenantCmd.String("theme", "", "Optional UI theme.")

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The admin's email. The password will be prompted next.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The account's email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2])
	case "addtenant":
		if err := addTenantCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTenantName == "" {
			addTenantCmd.Usage()
			return errHelp
		}
		return cli.addTenant(*addTenantName, *addTenantTheme)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			if err == errHelp {
				addUserCmd.Usage()
			}
			return err
		}
		return cli.addUser(*addUserEmail, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			if err == errHelp {
				resetPasswordCmd.Usage()
			}
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return string(pwd), nil
}
