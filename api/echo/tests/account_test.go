package tests

import (
	"net/http"
	"testing"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/enroll"
	"github.com/classflow/gradego/core/teacher"
)

func Test_accountApi_register(t *testing.T) {
	form := teacher.NewTeacher{
		FirstName: "Valerie",
		LastName:  "Frizzle",
		Email:     "frizzle@acme.edu",
		Password:  "password123",
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/register", marchallObj(t, form))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		resp := decodeStatus(t, rec)
		if resp.Status != "success" {
			t.Errorf("resp.Status = %q, want %q", resp.Status, "success")
		}
		if resp.Role != account.RoleTeacher {
			t.Errorf("resp.Role = %q, want %q", resp.Role, account.RoleTeacher)
		}
		if resp.Token == "" {
			t.Error("resp.Token is empty")
		}
		if !hasAuthCookie(rec) {
			t.Error("auth cookie not set")
		}

		// the profile landed on the default tenant
		acct, err := acctSvc.GetByEmail(req.Context(), form.Email)
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}
		tch, err := teacherSvc.GetByAccountID(req.Context(), acct.ID)
		if err != nil {
			t.Fatalf("GetByAccountID() error = %v", err)
		}
		if tch.TenantID != defaultTenant.ID {
			t.Errorf("tch.TenantID = %q, want %q", tch.TenantID, defaultTenant.ID)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/register", marchallObj(t, form))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		resp := decodeStatus(t, rec)
		if resp.Status != "failed" {
			t.Errorf("resp.Status = %q, want %q", resp.Status, "failed")
		}
		if resp.Message != "Email already exists." {
			t.Errorf("resp.Message = %q, want %q", resp.Message, "Email already exists.")
		}
	})

	t.Run("invalid form", func(t *testing.T) {
		bad := form
		bad.Email = "lol"
		req, rec := newRequest(http.MethodPost, "/v1/register", marchallObj(t, bad))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if resp := decodeStatus(t, rec); resp.Status != "invalid_data" {
			t.Errorf("resp.Status = %q, want %q", resp.Status, "invalid_data")
		}
	})
}

func Test_accountApi_login(t *testing.T) {
	form := teacher.NewTeacher{
		FirstName: "Charlie",
		LastName:  "Brown",
		Email:     "cbrown@acme.edu",
		Password:  "goodgrief99",
	}
	req, rec := newRequest(http.MethodPost, "/v1/register", marchallObj(t, form))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("registering fixture: code = %d; body %s", rec.Code, rec.Body.String())
	}

	login := func(t *testing.T, email, pwd string) *StatusRec {
		t.Helper()
		body := marchallObj(t, map[string]string{"email": email, "password": pwd})
		req, rec := newRequest(http.MethodPost, "/v1/login", body)
		app.ServeHTTP(rec, req)
		resp := decodeStatus(t, rec)
		return &StatusRec{Code: rec.Code, Resp: resp, Cookie: hasAuthCookie(rec)}
	}

	t.Run("success", func(t *testing.T) {
		got := login(t, "cbrown@acme.edu", "goodgrief99")
		if got.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d", got.Code, http.StatusOK)
		}
		if got.Resp.Status != "success" || got.Resp.Role != account.RoleTeacher || got.Resp.Token == "" {
			t.Errorf("resp = %+v", got.Resp)
		}
		if !got.Cookie {
			t.Error("auth cookie not set")
		}
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		if got := login(t, "CBrown@Acme.EDU", "goodgrief99"); got.Code != http.StatusOK {
			t.Errorf("code = %d, want %d", got.Code, http.StatusOK)
		}
	})

	t.Run("bad credentials are indistinguishable", func(t *testing.T) {
		wrongPwd := login(t, "cbrown@acme.edu", "badgrief99")
		unknownEmail := login(t, "nobody@acme.edu", "goodgrief99")

		for _, got := range []*StatusRec{wrongPwd, unknownEmail} {
			if got.Code != http.StatusBadRequest {
				t.Errorf("code = %d, want %d", got.Code, http.StatusBadRequest)
			}
			if got.Cookie {
				t.Error("auth cookie set on failure")
			}
		}
		if wrongPwd.Resp != unknownEmail.Resp {
			t.Errorf("responses differ: %+v vs %+v", wrongPwd.Resp, unknownEmail.Resp)
		}
		if wrongPwd.Resp.Message != "invalid credentials" {
			t.Errorf("resp.Message = %q, want %q", wrongPwd.Resp.Message, "invalid credentials")
		}
	})
}

func Test_accountApi_enroll(t *testing.T) {
	step1 := enroll.Step1StudentInfo{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Sex:       "male",
		Birthday:  "2012-03-04",
		LRN:       "123456789012",
	}
	step2 := enroll.Step2GuardianInfo{
		GuardianFirstName:    "Maria",
		GuardianLastName:     "Dela Cruz",
		GuardianRelationship: "Mother",
		GuardianNumber:       "09171234567",
	}
	step3 := enroll.Step3AccountSetup{
		Email:    "juan@acme.edu",
		Password: "tr0ub4dor&3",
	}

	t.Run("step validation", func(t *testing.T) {
		tests := []httpTest{
			{name: "step 1 valid", path: "/v1/enroll/steps/1", body: marchallObj(t, step1), wantCode: http.StatusOK},
			{name: "step 2 valid", path: "/v1/enroll/steps/2", body: marchallObj(t, step2), wantCode: http.StatusOK},
			{name: "step 3 valid", path: "/v1/enroll/steps/3", body: marchallObj(t, step3), wantCode: http.StatusOK},
			{
				name: "step 1 missing last name", path: "/v1/enroll/steps/1",
				body:     marchallObj(t, enroll.Step1StudentInfo{FirstName: "Juan", Sex: "male", Birthday: "2012-03-04", LRN: "123456789012"}),
				wantCode: http.StatusBadRequest,
			},
			{
				name: "step 2 bad guardian number", path: "/v1/enroll/steps/2",
				body:     marchallObj(t, enroll.Step2GuardianInfo{GuardianFirstName: "Maria", GuardianLastName: "Dela Cruz", GuardianRelationship: "Mother", GuardianNumber: "12345"}),
				wantCode: http.StatusBadRequest,
			},
			{name: "unknown step", path: "/v1/enroll/steps/4", body: marchallObj(t, step1), wantCode: http.StatusNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, rec := newRequest(http.MethodPost, tt.path, tt.body)
				app.ServeHTTP(rec, req)
				if rec.Code != tt.wantCode {
					t.Errorf("code = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
			})
		}
	})

	t.Run("final submission", func(t *testing.T) {
		form := enroll.Form{Step1StudentInfo: step1, Step2GuardianInfo: step2, Step3AccountSetup: step3}
		req, rec := newRequest(http.MethodPost, "/v1/enroll", marchallObj(t, form))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want %d; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		resp := decodeStatus(t, rec)
		if resp.Status != "success" || resp.Role != account.RoleStudent || resp.Token == "" {
			t.Errorf("resp = %+v", resp)
		}

		acct, err := acctSvc.GetByEmail(req.Context(), step3.Email)
		if err != nil {
			t.Fatalf("GetByEmail() error = %v", err)
		}
		st, err := studentSvc.GetByAccountID(req.Context(), acct.ID)
		if err != nil {
			t.Fatalf("GetByAccountID() error = %v", err)
		}
		if st.TenantID != defaultTenant.ID {
			t.Errorf("st.TenantID = %q, want %q", st.TenantID, defaultTenant.ID)
		}
		if st.LRN != step1.LRN {
			t.Errorf("st.LRN = %q, want %q", st.LRN, step1.LRN)
		}
	})

	t.Run("duplicate email leaves no orphan profile", func(t *testing.T) {
		form := enroll.Form{Step1StudentInfo: step1, Step2GuardianInfo: step2, Step3AccountSetup: step3}
		form.Step1StudentInfo.LRN = "210987654321"
		req, rec := newRequest(http.MethodPost, "/v1/enroll", marchallObj(t, form))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		resp := decodeStatus(t, rec)
		if resp.Status != "failed" || resp.Message != "Email already exists." {
			t.Errorf("resp = %+v", resp)
		}

		students, err := studentSvc.QueryByTenant(req.Context(), defaultTenant.ID)
		if err != nil {
			t.Fatalf("QueryByTenant() error = %v", err)
		}
		for _, st := range students {
			if st.LRN == "210987654321" {
				t.Error("profile created despite failed enrollment")
			}
		}
	})
}
