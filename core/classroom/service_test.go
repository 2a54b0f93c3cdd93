package classroom_test

import (
	"context"
	"testing"

	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/student"
	inmemdb "github.com/classflow/gradego/storage/database/inmem"
)

func TestService_Create(t *testing.T) {
	svc := classroom.NewService(inmemdb.NewClassRepository(inmemdb.NewDB()))

	cls, err := svc.Create(context.Background(), classroom.NewClass{Name: "Math 7", ThemeColor: "blue"}, "tnt1", "tea1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cls.ID == "" {
		t.Error("cls.ID is empty")
	}
	if len(cls.EnrollmentCode) != 6 {
		t.Errorf("len(cls.EnrollmentCode) = %d, want 6", len(cls.EnrollmentCode))
	}
	if cls.TenantID != "tnt1" || cls.TeacherID != "tea1" {
		t.Errorf("cls owner = %s/%s, want tnt1/tea1", cls.TenantID, cls.TeacherID)
	}
}

// codeClashRepo rejects the first insert as a code collision.
type codeClashRepo struct {
	classroom.Repository
	calls int
}

func (repo *codeClashRepo) CreateClass(ctx context.Context, cls classroom.Class) (classroom.Class, error) {
	repo.calls++
	if repo.calls == 1 {
		return classroom.Class{}, classroom.ErrCodeExists
	}
	return repo.Repository.CreateClass(ctx, cls)
}

func TestService_Create_retriesCodeCollision(t *testing.T) {
	repo := &codeClashRepo{Repository: inmemdb.NewClassRepository(inmemdb.NewDB())}
	svc := classroom.NewService(repo)

	cls, err := svc.Create(context.Background(), classroom.NewClass{Name: "Math 7"}, "tnt1", "tea1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if repo.calls != 2 {
		t.Errorf("repo.calls = %d, want 2", repo.calls)
	}
	if cls.ID == "" {
		t.Error("cls.ID is empty")
	}
}

func TestService_JoinByCode(t *testing.T) {
	db := inmemdb.NewDB()
	svc := classroom.NewService(inmemdb.NewClassRepository(db))
	ctx := context.Background()

	cls, err := svc.Create(ctx, classroom.NewClass{Name: "Science 8"}, "tnt1", "tea1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	st := student.Student{ID: "stu1", TenantID: "tnt1"}
	outsider := student.Student{ID: "stu2", TenantID: "tnt2"}

	t.Run("unknown code", func(t *testing.T) {
		if _, err := svc.JoinByCode(ctx, st, "AAAAAA"); err != classroom.ErrNotFound {
			t.Errorf("JoinByCode() error = %v, wantErr %v", err, classroom.ErrNotFound)
		}
	})

	t.Run("cross-tenant code looks unknown", func(t *testing.T) {
		if _, err := svc.JoinByCode(ctx, outsider, cls.EnrollmentCode); err != classroom.ErrNotFound {
			t.Errorf("JoinByCode() error = %v, wantErr %v", err, classroom.ErrNotFound)
		}
	})

	t.Run("same tenant joins", func(t *testing.T) {
		joined, err := svc.JoinByCode(ctx, st, cls.EnrollmentCode)
		if err != nil {
			t.Fatalf("JoinByCode() error = %v", err)
		}
		if joined.ID != cls.ID {
			t.Errorf("joined.ID = %s, want %s", joined.ID, cls.ID)
		}

		classes, err := svc.QueryByStudent(ctx, st.ID)
		if err != nil {
			t.Fatalf("QueryByStudent() error = %v", err)
		}
		if len(classes) != 1 || classes[0].ID != cls.ID {
			t.Errorf("QueryByStudent() = %v, want [%s]", classes, cls.ID)
		}
	})
}

func TestGenerateEnrollmentCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := classroom.GenerateEnrollmentCode()
		if err != nil {
			t.Fatalf("GenerateEnrollmentCode() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("len(code) = %d, want 6", len(code))
		}
		for _, c := range code {
			switch c {
			case 'I', 'L', 'O', '0', '1':
				t.Fatalf("code %q contains ambiguous character %q", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes are not random")
	}

	// every alphabet character should show up across enough codes
	chars := make(map[rune]int)
	for i := 0; i < 1000; i++ {
		code, err := classroom.GenerateEnrollmentCode()
		if err != nil {
			t.Fatalf("GenerateEnrollmentCode() error = %v", err)
		}
		for _, c := range code {
			chars[c]++
		}
	}
	if len(chars) != 31 {
		t.Errorf("codes drew from %d distinct characters, want 31", len(chars))
	}
}
