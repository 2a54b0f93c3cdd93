package account

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/classflow/gradego/core"
)

var (
	// errors
	ErrNotFound    = errors.New("account not found")
	ErrEmailExists = errors.New("Email already exists.")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Account) error
		CreateAccount(ctx context.Context, acct Account) (Account, error)
		GetAccountByID(ctx context.Context, id string) (Account, error)
		GetAccountByEmail(ctx context.Context, email string) (Account, error)
		QueryAllAccounts(ctx context.Context) ([]Account, error)
		// UpdateAccount persists changed credentials; only the password hash
		// and role are mutable.
		UpdateAccount(ctx context.Context, acct Account) (Account, error)
		UpdateOrCreateAccount(ctx context.Context, acct Account) (Account, error)
	}

	Service interface {
		Create(ctx context.Context, na NewAccount) (Account, error)
		GetByID(ctx context.Context, id string) (Account, error)
		GetByEmail(ctx context.Context, email string) (Account, error)
		QueryAll(ctx context.Context) ([]Account, error)
		SetNewPassword(ctx context.Context, acct Account, pwd string) (Account, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, na NewAccount) (Account, error) {
	now := time.Now().UTC()
	acct := Account{
		Email:     na.Email,
		Role:      na.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Account{}, errors.Wrap(err, "setting password")
	}
	return svc.repo.CreateAccount(ctx, acct)
}

func (svc *service) GetByID(ctx context.Context, id string) (Account, error) {
	return svc.repo.GetAccountByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (Account, error) {
	return svc.repo.GetAccountByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) QueryAll(ctx context.Context) ([]Account, error) {
	return svc.repo.QueryAllAccounts(ctx)
}

func (svc *service) SetNewPassword(ctx context.Context, acct Account, pwd string) (Account, error) {
	if err := acct.SetPassword(pwd); err != nil {
		return Account{}, errors.Wrap(err, "setting password")
	}
	acct.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAccount(ctx, acct)
}
