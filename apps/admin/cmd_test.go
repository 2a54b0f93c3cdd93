package main

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/classflow/gradego/core/account"
	inmemdb "github.com/classflow/gradego/storage/database/inmem"
)

var acctRepo account.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	db := inmemdb.NewDB()
	acctRepo = inmemdb.NewAccountRepository(db)

	return &commandLine{
		acctRepo:   acctRepo,
		tenantRepo: inmemdb.NewTenantRepository(db),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	migrateUpFunc = func(db *sql.DB) error { return nil }
	migrateDownFunc = func(db *sql.DB) error { return nil }
	migrateVersionFunc = func(db *sql.DB) (uint, bool, error) { return 1, false, nil }

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addTenant(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addtenant"}, wantErr: errHelp},
		{name: "add", args: []string{"addtenant", "-name", "Acme Elementary"}},
		{name: "add with theme", args: []string{"addtenant", "-name", "Zen High", "-theme", "Dark"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	tenants, err := cli.tenantRepo.QueryAllTenants(context.Background())
	if err != nil {
		t.Fatalf("QueryAllTenants() failed, %v", err)
	}
	if len(tenants) != 2 {
		t.Errorf("len(tenants) = %d, want 2", len(tenants))
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"adduser", "-email", "boss@test.cd"}, wantErr: errHelp},
		{name: "add", args: []string{"adduser", "-email", "Boss@Test.cd"}, extra: extra{pwd: "s3cr3t"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	acct, err := acctRepo.GetAccountByEmail(context.Background(), "boss@test.cd")
	if err != nil {
		t.Fatalf("GetAccountByEmail() failed, %v", err)
	}
	if acct.Role != account.RoleAdmin {
		t.Errorf("acct.Role = %s, want %s", acct.Role, account.RoleAdmin)
	}
	if err := acct.CheckPassword("s3cr3t"); err != nil {
		t.Error("failed to set password")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	acct := account.Account{Email: "awe@test.cd", Role: account.RoleAdmin}
	if err := acct.SetPassword("mdr"); err != nil {
		t.Fatalf("SetPassword() failed, %v", err)
	}
	acct, err := acctRepo.CreateAccount(context.Background(), acct)
	if err != nil {
		t.Fatalf("CreateAccount() failed, %v", err)
	}

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "account not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: account.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", acct.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := acctRepo.GetAccountByEmail(context.Background(), acct.Email)
				if err != nil {
					t.Fatalf("GetAccountByEmail() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, acct.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
