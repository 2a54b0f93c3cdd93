package teacher

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
)

var ErrNotFound = errors.New("teacher not found")

type (
	Repository interface {
		// CreateTeacher persists the account and its profile as a single
		// transaction; neither row exists if either insert fails.
		CreateTeacher(ctx context.Context, acct account.Account, tch Teacher) (account.Account, Teacher, error)
		GetTeacherByID(ctx context.Context, id string) (Teacher, error)
		GetTeacherByAccountID(ctx context.Context, accountID string) (Teacher, error)
		QueryTeachersByTenant(ctx context.Context, tenantID string) ([]Teacher, error)
	}

	Service interface {
		Register(ctx context.Context, nt NewTeacher, tenantID string) (account.Account, Teacher, error)
		GetByID(ctx context.Context, id string) (Teacher, error)
		GetByAccountID(ctx context.Context, accountID string) (Teacher, error)
		QueryByTenant(ctx context.Context, tenantID string) ([]Teacher, error)
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) Service {
	return &service{repo: repo, mailSvc: mailSvc}
}

// Register creates the teacher's Account and profile atomically and sends
// the welcome email.
func (svc *service) Register(ctx context.Context, nt NewTeacher, tenantID string) (account.Account, Teacher, error) {
	now := time.Now().UTC()
	acct := account.Account{
		Email:     nt.Email,
		Role:      account.RoleTeacher,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acct.SetPassword(nt.Password); err != nil {
		return account.Account{}, Teacher{}, errors.Wrap(err, "setting password")
	}

	tch := Teacher{
		TenantID:   tenantID,
		FirstName:  nt.FirstName,
		MiddleName: nt.MiddleName,
		LastName:   nt.LastName,
		Extension:  nt.Extension,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	acct, tch, err := svc.repo.CreateTeacher(ctx, acct, tch)
	if err != nil {
		return account.Account{}, Teacher{}, err
	}

	svc.sendWelcomeMail(acct, tch)
	return acct, tch, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *service) GetByAccountID(ctx context.Context, accountID string) (Teacher, error) {
	return svc.repo.GetTeacherByAccountID(ctx, accountID)
}

func (svc *service) QueryByTenant(ctx context.Context, tenantID string) ([]Teacher, error) {
	return svc.repo.QueryTeachersByTenant(ctx, tenantID)
}

func (svc *service) sendWelcomeMail(acct account.Account, tch Teacher) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: tch.FullName(), Address: acct.Email}},
		Subject:      "Welcome to " + core.Conf.AppName,
		TemplateName: "welcome",
		TemplateData: struct{ Name string }{Name: tch.FirstName},
	})
}
