package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"edupro/core"
	"edupro/core/grade"
	"edupro/core/lesson"
	"edupro/core/user"
	aisvc "edupro/services/ai"
	emailsvc "edupro/services/email"
	"edupro/storage/localdb"
)

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type testApp struct {
	server  *Server
	db      *localdb.DB
	usrSvc  user.Service
	advisor *aisvc.DummyService
}

func newTestConfig(t *testing.T) *core.Config {
	conf := &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "EduPro",
		SecretKey: "secret",
	}
	conf.Server.Addr = ":0"
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	conf.Storage.Path = filepath.Join(t.TempDir(), "edupro.json")
	return conf
}

func setupApp(t *testing.T) testApp {
	conf := newTestConfig(t)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	lesson.InitValidators(validate, translator)

	db, err := localdb.Open(conf.Storage.Path, testLogger{})
	if err != nil {
		t.Fatalf("setupApp() failed: %v", err)
	}

	advisor := aisvc.NewDummyService()
	usrSvc := user.NewService(localdb.NewUserRepository(db), db, emailsvc.NewConsoleServiceMock(conf), conf)

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     testLogger{},
		UserSvc:    usrSvc,
		LessonSvc:  lesson.NewService(localdb.NewLessonRepository(db)),
		GradeSvc:   grade.NewService(localdb.NewGradeRepository(db)),
		Advisor:    advisor,
		Validate:   validate,
		Translator: translator,
	})
	return testApp{server: server, db: db, usrSvc: usrSvc, advisor: advisor}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
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

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

// seed users as hydrated by a fresh store
var (
	seedAdmin   = user.User{ID: "1", Username: "admin", FullName: "System Administrator", Role: user.RoleAdmin, Status: user.StatusActive}
	seedTeacher = user.User{ID: "2", Username: "teacher1", FullName: "Mrs. Nguyen", Role: user.RoleTeacher, Status: user.StatusActive}
	seedStudent = user.User{ID: "3", Username: "student1", FullName: "An Tran", Role: user.RoleStudent, Status: user.StatusActive, ClassID: "c1"}
)

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func unmarshallBody(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarshallBody() failed: %v; body: %s", err, rec.Body.String())
	}
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, wantCode int) {
	if rec.Code != wantCode {
		t.Fatalf("failed! code = %v; wantCode %v; body: %s", rec.Code, wantCode, rec.Body.String())
	}
}
