package main

import (
	"context"
	"time"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/tenant"
)

func (cli *commandLine) addTenant(name, theme string) error {
	t := tenant.Tenant{
		Name:      core.CleanString(name),
		Theme:     core.CleanString(theme, true /* lower */),
		CreatedAt: time.Now().UTC(),
	}
	_, err := cli.tenantRepo.CreateTenant(context.Background(), t)
	return err
}
