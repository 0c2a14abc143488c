package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
	inmemdb "github.com/trezcool/smartedu/storage/database/inmem"
	"github.com/trezcool/smartedu/tests"
)

var (
	conf   *core.Config
	engine *chat.EngineMock
	logger *chat.LoggerMock
	app    *Server

	testValidate   *validator.Validate
	testTranslator ut.Translator

	student = chat.Session{ID: "12", Role: chat.RoleStudent, Table: "Students_TY_CSE", RollNo: "21", Username: "asha"}
	teacher = chat.Session{ID: "3", Role: chat.RoleTeacher, Table: "Teachers", Branch: "CSE", Username: "mr.k"}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	conf = core.NewTestConfig()
	chat.NowFunc = func() time.Time { return time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC) }

	// set up DB & provider
	db := inmemdb.Open()
	testutil.SeedRecords(db)

	// set up services
	engine = &chat.EngineMock{Replies: []chat.EngineReply{{RecipientID: "user_12", Text: "Hello! How can I help?"}}}
	logger = &chat.LoggerMock{}
	chatSvc := chat.NewService(inmemdb.NewRecordProvider(db), engine, logger)

	testValidate = validator.New()
	testTranslator = core.NewTranslator()
	core.InitValidators(testValidate, testTranslator)

	// set up server
	app = NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		ChatSvc:        chatSvc,
		Validate:       testValidate,
		Translator:     testTranslator,
		DisableReqLogs: true,
	})

	os.Exit(m.Run())
}

type httpErr struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
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

func getToken(t *testing.T, sess chat.Session) string {
	token, err := GenerateToken(NewSessionClaims(sess, conf), conf.SecretKey)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
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
