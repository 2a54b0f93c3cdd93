package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	. "github.com/classflow/gradego/api/echo"
	"github.com/classflow/gradego/core"
	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/announcement"
	"github.com/classflow/gradego/core/assessment"
	"github.com/classflow/gradego/core/attendance"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/planner"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/suggestion"
	"github.com/classflow/gradego/core/teacher"
	"github.com/classflow/gradego/core/tenant"
	emailsvc "github.com/classflow/gradego/services/email"
	logsvc "github.com/classflow/gradego/services/logger"
	inmemdb "github.com/classflow/gradego/storage/database/inmem"
)

var (
	app Server

	defaultTenant tenant.Tenant

	acctSvc    account.Service
	tenantSvc  tenant.Service
	teacherSvc teacher.Service
	studentSvc student.Service
	classSvc   classroom.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	// set up DB & repos
	db := inmemdb.NewDB()
	mailSvc := emailsvc.NewConsoleServiceMock()

	acctSvc = account.NewService(inmemdb.NewAccountRepository(db))
	tenantSvc = tenant.NewService(inmemdb.NewTenantRepository(db))
	teacherSvc = teacher.NewService(inmemdb.NewTeacherRepository(db), mailSvc)
	studentSvc = student.NewService(inmemdb.NewStudentRepository(db), mailSvc)
	classSvc = classroom.NewService(inmemdb.NewClassRepository(db))

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), core.Conf)
	logger.Enable(false)

	app = NewServer(
		&Options{
			DisableReqLogs: true,
			Logger:         logger,
			SignalShutdown: func() {},

			AccountSvc:      acctSvc,
			TenantSvc:       tenantSvc,
			TeacherSvc:      teacherSvc,
			StudentSvc:      studentSvc,
			ClassSvc:        classSvc,
			AssessmentSvc:   assessment.NewService(inmemdb.NewAssessmentRepository(db)),
			AttendanceSvc:   attendance.NewService(inmemdb.NewAttendanceRepository(db)),
			AnnouncementSvc: announcement.NewService(inmemdb.NewAnnouncementRepository(db)),
			SuggestionSvc:   suggestion.NewService(inmemdb.NewSuggestionRepository(db)),
			PlannerSvc:      planner.NewService(inmemdb.NewPlannerRepository(db)),
		},
	)

	// every flow lands on the default (oldest) tenant
	var err error
	defaultTenant, err = tenantSvc.Create(context.Background(), tenant.NewTenant{Name: "Acme Elementary"})
	if err != nil {
		log.Fatalf("creating default tenant: %v", err)
	}

	os.Exit(m.Run())
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, acct account.Account, tenantID string) string {
	t.Helper()

	token, err := GenerateToken(GetAccountClaims(acct, tenantID))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) StatusResponse {
	t.Helper()

	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodeStatus(): %v; body %s", err, rec.Body.String())
	}
	return resp
}

// StatusRec bundles an auth flow response for comparison.
type StatusRec struct {
	Code   int
	Resp   StatusResponse
	Cookie bool
}

func hasAuthCookie(rec *httptest.ResponseRecorder) bool {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value != "" {
			return true
		}
	}
	return false
}
