package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/enroll"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/teacher"
)

func createTeacher(t *testing.T, tenantID, firstName, lastName, email string) (teacher.Teacher, string) {
	t.Helper()

	acct, tch, err := teacherSvc.Register(context.Background(), teacher.NewTeacher{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  "password123",
	}, tenantID)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return tch, getToken(t, acct, tch.TenantID)
}

func createStudent(t *testing.T, tenantID, firstName, lastName, email, lrn string) (student.Student, string) {
	t.Helper()

	form := enroll.Form{
		Step1StudentInfo: enroll.Step1StudentInfo{
			FirstName: firstName,
			LastName:  lastName,
			Sex:       "female",
			Birthday:  "2011-06-15",
			LRN:       lrn,
		},
		Step2GuardianInfo: enroll.Step2GuardianInfo{
			GuardianFirstName:    "Gale",
			GuardianLastName:     lastName,
			GuardianRelationship: "Father",
			GuardianNumber:       "09181234567",
		},
		Step3AccountSetup: enroll.Step3AccountSetup{Email: email, Password: "tr0ub4dor&3"},
	}
	acct, st, err := studentSvc.Enroll(context.Background(), form, tenantID)
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	return st, getToken(t, acct, st.TenantID)
}

func Test_classApi_flow(t *testing.T) {
	tch, teacherToken := createTeacher(t, defaultTenant.ID, "Valerie", "Frizzle", "frizzle2@acme.edu")
	st, studentToken := createStudent(t, defaultTenant.ID, "Dorothy", "Ann", "dorothy@acme.edu", "111111111111")

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{
			method: http.MethodGet, path: "/v1/classes",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		}
		req, rec := newRequest(tt.method, tt.path)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("teacher role required", func(t *testing.T) {
		tt := httpTest{
			method: http.MethodPost, path: "/v1/classes", token: studentToken,
			body:     marchallObj(t, classroom.NewClass{Name: "Magic Bus 101"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		}
		req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	var cls classroom.Class
	t.Run("teacher creates a class", func(t *testing.T) {
		body := marchallObj(t, classroom.NewClass{Name: "Magic Bus 101"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/classes", teacherToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &cls); err != nil {
			t.Fatalf("unmarshalling class: %v", err)
		}
		if cls.TeacherID != tch.ID {
			t.Errorf("cls.TeacherID = %q, want %q", cls.TeacherID, tch.ID)
		}
		if len(cls.EnrollmentCode) != 6 {
			t.Errorf("len(cls.EnrollmentCode) = %d, want 6", len(cls.EnrollmentCode))
		}
		if cls.ThemeColor != "blue" { // default
			t.Errorf("cls.ThemeColor = %q, want %q", cls.ThemeColor, "blue")
		}
	})

	t.Run("student joins with a bad code", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"code": "AAAAAA"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/classes/join", studentToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("student joins with the code", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"code": cls.EnrollmentCode})
		req, rec := newAuthRequest(http.MethodPost, "/v1/classes/join", studentToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/classes/joined", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d", rec.Code, http.StatusOK)
		}
		var joined []classroom.Class
		if err := json.Unmarshal(rec.Body.Bytes(), &joined); err != nil {
			t.Fatalf("unmarshalling classes: %v", err)
		}
		if len(joined) != 1 || joined[0].ID != cls.ID {
			t.Errorf("joined = %v, want [%s]", joined, cls.ID)
		}
	})

	t.Run("teacher sees the roster", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/classes/"+cls.ID+"/roster", teacherToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var roster []student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &roster); err != nil {
			t.Fatalf("unmarshalling roster: %v", err)
		}
		if len(roster) != 1 || roster[0].ID != st.ID {
			t.Errorf("roster = %v, want [%s]", roster, st.ID)
		}
	})

	t.Run("another teacher cannot touch the class", func(t *testing.T) {
		_, otherToken := createTeacher(t, defaultTenant.ID, "Phoebe", "Terese", "phoebe@acme.edu")
		body := marchallObj(t, classroom.UpdateClass{Name: "Hijacked"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/classes/"+cls.ID, otherToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want %d; body %s", rec.Code, http.StatusForbidden, rec.Body.String())
		}
	})

	t.Run("teacher archives the class", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/classes/"+cls.ID+"/archive", teacherToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var archived classroom.Class
		if err := json.Unmarshal(rec.Body.Bytes(), &archived); err != nil {
			t.Fatalf("unmarshalling class: %v", err)
		}
		if !archived.IsArchived {
			t.Error("archived.IsArchived = false, want true")
		}
	})
}
