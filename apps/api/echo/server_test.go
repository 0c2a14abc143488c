package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
)

type failingResponder struct{}

func (failingResponder) Respond(context.Context, chat.Session, string, string) (chat.Response, error) {
	return chat.Response{}, errors.Wrap(core.NewShutdownError("records store is gone"), "fetching marks")
}

func TestServer_routes(t *testing.T) {
	tests := []httpTest{
		{
			name:     "health",
			method:   http.MethodGet,
			path:     "/health",
			wantCode: http.StatusOK,
			wantData: []byte(`{"status":"ok"}`),
		},
		{
			name:     "unknown route",
			method:   http.MethodGet,
			path:     "/api/nope",
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error":"Not Found","success":false}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestServer_requestID(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/health")
	app.ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get("X-Request-Id"), 36)
}

func TestServer_metrics(t *testing.T) {
	postMessage(t, getToken(t, student), "show my marks")

	req, rec := newRequest(http.MethodGet, "/metrics")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `smartedu_chat_responses_total{intent="marks",role="student",shape="table"}`)
	assert.Contains(t, rec.Body.String(), "smartedu_chat_engine_unavailable_total 0")
}

func TestServer_internalError(t *testing.T) {
	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		ChatSvc:        failingResponder{},
		Validate:       testValidate,
		Translator:     testTranslator,
		DisableReqLogs: true,
	})

	req, rec := newAuthRequest(http.MethodPost, "/api/chatbot", getToken(t, student), marshallObj(t, ChatRequest{Message: "marks"}))
	srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusInternalServerError,
		wantData: []byte(`{"error":"Internal Server Error","success":false}`),
	}, rec)

	select {
	case sig := <-srv.ShutdownSignal():
		assert.Equal(t, syscall.SIGTERM, sig)
	case <-time.After(time.Second):
		t.Error("shutdown was not signaled")
	}
}

func TestClaims_flexibleIDs(t *testing.T) {
	var claims Claims
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"role":"hod","roll_no":"A-7"}`), &claims))

	sess := claims.Session()
	assert.Equal(t, "42", sess.ID)
	assert.Equal(t, "A-7", sess.RollNo)
	assert.Equal(t, chat.RoleHOD, sess.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"id":{}}`), &claims))
}
