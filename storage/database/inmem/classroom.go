package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/student"
)

type classRepository struct {
	db *DB
}

func NewClassRepository(db *DB) classroom.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls classroom.Class) (classroom.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.classes {
		if existing.EnrollmentCode == cls.EnrollmentCode {
			return classroom.Class{}, classroom.ErrCodeExists
		}
	}
	cls.ID = uuid.New().String()
	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (classroom.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return *cls, nil
	}
	return classroom.Class{}, classroom.ErrNotFound
}

func (repo *classRepository) GetClassByEnrollmentCode(ctx context.Context, code string) (classroom.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, cls := range repo.db.classes {
		if cls.EnrollmentCode == code {
			return *cls, nil
		}
	}
	return classroom.Class{}, classroom.ErrNotFound
}

func (repo *classRepository) QueryClassesByTeacher(ctx context.Context, teacherID string) ([]classroom.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]classroom.Class, 0)
	for _, cls := range repo.db.classes {
		if cls.TeacherID == teacherID {
			classes = append(classes, *cls)
		}
	}
	sortClasses(classes)
	return classes, nil
}

func (repo *classRepository) QueryClassesByTenant(ctx context.Context, tenantID string) ([]classroom.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]classroom.Class, 0)
	for _, cls := range repo.db.classes {
		if cls.TenantID == tenantID {
			classes = append(classes, *cls)
		}
	}
	sortClasses(classes)
	return classes, nil
}

func (repo *classRepository) QueryClassesByStudent(ctx context.Context, studentID string) ([]classroom.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]classroom.Class, 0)
	for classID, students := range repo.db.roster {
		if !students[studentID] {
			continue
		}
		if cls, ok := repo.db.classes[classID]; ok {
			classes = append(classes, *cls)
		}
	}
	sortClasses(classes)
	return classes, nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls classroom.Class) (classroom.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.classes[cls.ID]
	if !ok {
		return classroom.Class{}, classroom.ErrNotFound
	}
	orig.Name = cls.Name
	orig.ThemeColor = cls.ThemeColor
	orig.BannerURL = cls.BannerURL
	return *orig, nil
}

func (repo *classRepository) ArchiveClass(ctx context.Context, id string, archived bool) (classroom.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cls, ok := repo.db.classes[id]
	if !ok {
		return classroom.Class{}, classroom.ErrNotFound
	}
	cls.IsArchived = archived
	return *cls, nil
}

func (repo *classRepository) AddStudentToClass(ctx context.Context, classID, studentID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.db.roster[classID] == nil {
		repo.db.roster[classID] = make(map[string]bool)
	}
	repo.db.roster[classID][studentID] = true
	return nil
}

func (repo *classRepository) RemoveStudentFromClass(ctx context.Context, classID, studentID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.roster[classID], studentID)
	return nil
}

func (repo *classRepository) QueryClassRoster(ctx context.Context, classID string) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0)
	for _, st := range repo.db.students {
		if repo.db.roster[classID][st.ID] {
			students = append(students, *st)
		}
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].FirstName < students[j].FirstName
	})
	return students, nil
}

func sortClasses(classes []classroom.Class) {
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.Before(classes[j].CreatedAt) })
}
