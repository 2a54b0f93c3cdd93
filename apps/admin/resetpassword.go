package main

import (
	"context"
	"time"

	"github.com/classflow/gradego/core"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	acct, err := cli.acctRepo.GetAccountByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := acct.SetPassword(pwd); err != nil {
		return err
	}
	acct.UpdatedAt = time.Now().UTC()
	_, err = cli.acctRepo.UpdateAccount(ctx, acct)
	return err
}
