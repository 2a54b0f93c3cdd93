package classroom

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/student"
)

var (
	ErrNotFound   = errors.New("class not found")
	ErrCodeExists = errors.New("a class with this enrollment code already exists")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		GetClassByEnrollmentCode(ctx context.Context, code string) (Class, error)
		QueryClassesByTeacher(ctx context.Context, teacherID string) ([]Class, error)
		QueryClassesByTenant(ctx context.Context, tenantID string) ([]Class, error)
		UpdateClass(ctx context.Context, cls Class) (Class, error)
		ArchiveClass(ctx context.Context, id string, archived bool) (Class, error)

		// roster
		AddStudentToClass(ctx context.Context, classID, studentID string) error
		RemoveStudentFromClass(ctx context.Context, classID, studentID string) error
		QueryClassRoster(ctx context.Context, classID string) ([]student.Student, error)
		QueryClassesByStudent(ctx context.Context, studentID string) ([]Class, error)
	}

	Service interface {
		Create(ctx context.Context, nc NewClass, tenantID, teacherID string) (Class, error)
		GetByID(ctx context.Context, id string) (Class, error)
		QueryByTeacher(ctx context.Context, teacherID string) ([]Class, error)
		QueryByStudent(ctx context.Context, studentID string) ([]Class, error)
		Update(ctx context.Context, id string, uc UpdateClass) (Class, error)
		Archive(ctx context.Context, id string, archived bool) (Class, error)
		Roster(ctx context.Context, classID string) ([]student.Student, error)
		AddStudent(ctx context.Context, classID, studentID string) error
		RemoveStudent(ctx context.Context, classID, studentID string) error
		// JoinByCode adds the student to the class matching the enrollment
		// code, provided both belong to the same tenant.
		JoinByCode(ctx context.Context, st student.Student, code string) (Class, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nc NewClass, tenantID, teacherID string) (Class, error) {
	code, err := GenerateEnrollmentCode()
	if err != nil {
		return Class{}, errors.Wrap(err, "generating enrollment code")
	}
	cls := Class{
		TenantID:       tenantID,
		TeacherID:      teacherID,
		Name:           nc.Name,
		EnrollmentCode: code,
		ThemeColor:     nc.ThemeColor,
		BannerURL:      nc.BannerURL,
		CreatedAt:      time.Now().UTC(),
	}

	// unique-index collisions on the 6-char code are rare; retry once
	created, err := svc.repo.CreateClass(ctx, cls)
	if err == ErrCodeExists {
		if cls.EnrollmentCode, err = GenerateEnrollmentCode(); err != nil {
			return Class{}, errors.Wrap(err, "generating enrollment code")
		}
		created, err = svc.repo.CreateClass(ctx, cls)
	}
	return created, err
}

func (svc *service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *service) QueryByTeacher(ctx context.Context, teacherID string) ([]Class, error) {
	return svc.repo.QueryClassesByTeacher(ctx, teacherID)
}

func (svc *service) QueryByStudent(ctx context.Context, studentID string) ([]Class, error) {
	return svc.repo.QueryClassesByStudent(ctx, studentID)
}

func (svc *service) Update(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	cls, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return Class{}, err
	}
	cls.Name = uc.Name
	cls.ThemeColor = uc.ThemeColor
	cls.BannerURL = uc.BannerURL
	return svc.repo.UpdateClass(ctx, cls)
}

func (svc *service) Archive(ctx context.Context, id string, archived bool) (Class, error) {
	return svc.repo.ArchiveClass(ctx, id, archived)
}

func (svc *service) Roster(ctx context.Context, classID string) ([]student.Student, error) {
	return svc.repo.QueryClassRoster(ctx, classID)
}

func (svc *service) AddStudent(ctx context.Context, classID, studentID string) error {
	return svc.repo.AddStudentToClass(ctx, classID, studentID)
}

func (svc *service) RemoveStudent(ctx context.Context, classID, studentID string) error {
	return svc.repo.RemoveStudentFromClass(ctx, classID, studentID)
}

func (svc *service) JoinByCode(ctx context.Context, st student.Student, code string) (Class, error) {
	cls, err := svc.repo.GetClassByEnrollmentCode(ctx, code)
	if err != nil {
		return Class{}, err
	}
	if cls.TenantID != st.TenantID {
		// cross-tenant joins must look identical to an unknown code
		return Class{}, ErrNotFound
	}
	if err := svc.repo.AddStudentToClass(ctx, cls.ID, st.ID); err != nil {
		return Class{}, errors.Wrap(err, "adding student to class")
	}
	return cls, nil
}
