package main

import (
	"context"
	"time"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
)

// addUser updates or creates an admin account.
func (cli *commandLine) addUser(email, pwd string) error {
	now := time.Now().UTC()
	acct := account.Account{
		Email:     core.CleanString(email, true /* lower */),
		Role:      account.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acct.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.acctRepo.UpdateOrCreateAccount(context.Background(), acct)
	return err
}
