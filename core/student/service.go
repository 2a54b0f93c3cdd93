package student

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/enroll"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		// CreateStudent persists the account and its profile as a single
		// transaction; neither row exists if either insert fails.
		CreateStudent(ctx context.Context, acct account.Account, st Student) (account.Account, Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByAccountID(ctx context.Context, accountID string) (Student, error)
		QueryStudentsByTenant(ctx context.Context, tenantID string) ([]Student, error)
		ArchiveStudent(ctx context.Context, id string, archived bool) (Student, error)
	}

	Service interface {
		Enroll(ctx context.Context, form enroll.Form, tenantID string) (account.Account, Student, error)
		GetByID(ctx context.Context, id string) (Student, error)
		GetByAccountID(ctx context.Context, accountID string) (Student, error)
		QueryByTenant(ctx context.Context, tenantID string) ([]Student, error)
		Archive(ctx context.Context, id string, archived bool) (Student, error)
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

// Enroll creates the student's Account and profile atomically from a
// completed enrollment form and sends the welcome email.
func (svc *service) Enroll(ctx context.Context, form enroll.Form, tenantID string) (account.Account, Student, error) {
	now := time.Now().UTC()
	acct := account.Account{
		Email:     form.Email,
		Role:      account.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acct.SetPassword(form.Password); err != nil {
		return account.Account{}, Student{}, errors.Wrap(err, "setting password")
	}

	st := Student{
		TenantID:        tenantID,
		FirstName:       form.FirstName,
		MiddleName:      form.MiddleName,
		LastName:        form.LastName,
		Extension:       form.Extension,
		Sex:             form.Sex,
		Gender:          form.Gender,
		Birthday:        form.Birthday,
		LRN:             form.LRN,
		InterestingFact: form.InterestingFact,
		Guardian: Guardian{
			FirstName:    form.GuardianFirstName,
			MiddleName:   form.GuardianMiddleName,
			LastName:     form.GuardianLastName,
			Extension:    form.GuardianExtension,
			Relationship: form.GuardianRelationship,
			Number:       form.GuardianNumber,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	acct, st, err := svc.repo.CreateStudent(ctx, acct, st)
	if err != nil {
		return account.Account{}, Student{}, err
	}

	svc.sendWelcomeMail(acct, st)
	return acct, st, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *service) GetByAccountID(ctx context.Context, accountID string) (Student, error) {
	return svc.repo.GetStudentByAccountID(ctx, accountID)
}

func (svc *service) QueryByTenant(ctx context.Context, tenantID string) ([]Student, error) {
	return svc.repo.QueryStudentsByTenant(ctx, tenantID)
}

func (svc *service) Archive(ctx context.Context, id string, archived bool) (Student, error) {
	return svc.repo.ArchiveStudent(ctx, id, archived)
}

func (svc *service) sendWelcomeMail(acct account.Account, st Student) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: st.FullName(), Address: acct.Email}},
		Subject:      "Welcome to " + core.Conf.AppName,
		TemplateName: "welcome",
		TemplateData: struct{ Name string }{Name: st.FirstName},
	})
}
