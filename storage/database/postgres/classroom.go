package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/student"
)

type classRow struct {
	ID             string      `db:"id"`
	TenantID       string      `db:"tenant_id"`
	TeacherID      string      `db:"teacher_id"`
	Name           string      `db:"name"`
	EnrollmentCode string      `db:"enrollment_code"`
	ThemeColor     string      `db:"theme_color"`
	BannerURL      null.String `db:"banner_url"`
	IsArchived     bool        `db:"is_archived"`
	CreatedAt      time.Time   `db:"created_at"`
}

func (r classRow) toModel() classroom.Class {
	return classroom.Class{
		ID:             r.ID,
		TenantID:       r.TenantID,
		TeacherID:      r.TeacherID,
		Name:           r.Name,
		EnrollmentCode: r.EnrollmentCode,
		ThemeColor:     r.ThemeColor,
		BannerURL:      r.BannerURL.String,
		IsArchived:     r.IsArchived,
		CreatedAt:      r.CreatedAt,
	}
}

type classRepository struct {
	db *sqlx.DB
}

var _ classroom.Repository = (*classRepository)(nil)

func NewClassRepository(db *sqlx.DB) *classRepository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls classroom.Class) (classroom.Class, error) {
	cls.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO class (id, tenant_id, teacher_id, name, enrollment_code, theme_color, banner_url, is_archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		cls.ID, cls.TenantID, cls.TeacherID, cls.Name, cls.EnrollmentCode,
		cls.ThemeColor, null.NewString(cls.BannerURL, cls.BannerURL != ""), cls.IsArchived, cls.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return classroom.Class{}, classroom.ErrCodeExists
		}
		return classroom.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (classroom.Class, error) {
	var row classRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE id = $1`, id)
	if err != nil {
		return classroom.Class{}, trapNoRows(err, classroom.ErrNotFound, "getting class by id")
	}
	return row.toModel(), nil
}

func (repo *classRepository) GetClassByEnrollmentCode(ctx context.Context, code string) (classroom.Class, error) {
	var row classRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE enrollment_code = $1`, code)
	if err != nil {
		return classroom.Class{}, trapNoRows(err, classroom.ErrNotFound, "getting class by enrollment code")
	}
	return row.toModel(), nil
}

func (repo *classRepository) QueryClassesByTeacher(ctx context.Context, teacherID string) ([]classroom.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class WHERE teacher_id = $1 ORDER BY created_at`, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes by teacher")
	}
	return classSlice(rows), nil
}

func (repo *classRepository) QueryClassesByTenant(ctx context.Context, tenantID string) ([]classroom.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes by tenant")
	}
	return classSlice(rows), nil
}

func (repo *classRepository) QueryClassesByStudent(ctx context.Context, studentID string) ([]classroom.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT c.* FROM class c
		JOIN student_to_class sc ON sc.class_id = c.id
		WHERE sc.student_id = $1
		ORDER BY c.created_at`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes by student")
	}
	return classSlice(rows), nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls classroom.Class) (classroom.Class, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE class SET name = $2, theme_color = $3, banner_url = $4 WHERE id = $1`,
		cls.ID, cls.Name, cls.ThemeColor, null.NewString(cls.BannerURL, cls.BannerURL != ""))
	if err != nil {
		return classroom.Class{}, errors.Wrap(err, "updating class")
	}
	return cls, nil
}

func (repo *classRepository) ArchiveClass(ctx context.Context, id string, archived bool) (classroom.Class, error) {
	_, err := repo.db.ExecContext(ctx, `UPDATE class SET is_archived = $2 WHERE id = $1`, id, archived)
	if err != nil {
		return classroom.Class{}, errors.Wrap(err, "archiving class")
	}
	return repo.GetClassByID(ctx, id)
}

func (repo *classRepository) AddStudentToClass(ctx context.Context, classID, studentID string) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO student_to_class (student_id, class_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, studentID, classID)
	return errors.Wrap(err, "adding student to class")
}

func (repo *classRepository) RemoveStudentFromClass(ctx context.Context, classID, studentID string) error {
	_, err := repo.db.ExecContext(ctx,
		`DELETE FROM student_to_class WHERE student_id = $1 AND class_id = $2`, studentID, classID)
	return errors.Wrap(err, "removing student from class")
}

func (repo *classRepository) QueryClassRoster(ctx context.Context, classID string) ([]student.Student, error) {
	var rows []studentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT s.* FROM student s
		JOIN student_to_class sc ON sc.student_id = s.id
		WHERE sc.class_id = $1
		ORDER BY s.last_name, s.first_name`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying class roster")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toModel())
	}
	return students, nil
}

func classSlice(rows []classRow) []classroom.Class {
	classes := make([]classroom.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, row.toModel())
	}
	return classes
}
