package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/smartedu/core/chat"
)

func postMessage(t *testing.T, token, message string) chat.Response {
	t.Helper()
	req, rec := newAuthRequest(http.MethodPost, "/api/chatbot", token, marshallObj(t, ChatRequest{Message: message}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func Test_chatApi_send_errors(t *testing.T) {
	stuToken := getToken(t, student)
	badRole := student
	badRole.Role = "parent"
	badTable := student
	badTable.Table = "Students; DROP TABLE x"

	otherKey, err := GenerateToken(NewSessionClaims(student, conf), "not-the-secret")
	require.NoError(t, err)

	tests := []httpTest{
		{
			name:     "missing token",
			body:     marshallObj(t, ChatRequest{Message: "marks"}),
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, errMissingToken),
		},
		{
			name:     "foreign token",
			body:     marshallObj(t, ChatRequest{Message: "marks"}),
			token:    otherKey,
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{
			name:     "unknown role",
			body:     marshallObj(t, ChatRequest{Message: "marks"}),
			token:    getToken(t, badRole),
			wantCode: http.StatusForbidden,
			wantData: marshallObj(t, errForbidden),
		},
		{
			name:     "unsafe table claim",
			body:     marshallObj(t, ChatRequest{Message: "marks"}),
			token:    getToken(t, badTable),
			wantCode: http.StatusForbidden,
			wantData: marshallObj(t, errForbidden),
		},
		{
			name:     "blank message",
			body:     marshallObj(t, ChatRequest{Message: "   "}),
			token:    stuToken,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"message":"this field is required"}`),
		},
		{
			name:     "malformed body",
			body:     []byte(`{"message":`),
			token:    stuToken,
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/chatbot", tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData == nil {
				assert.Equal(t, tt.wantCode, rec.Code)
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_chatApi_send_student(t *testing.T) {
	token := getToken(t, student)

	t.Run("latest marks", func(t *testing.T) {
		resp := postMessage(t, token, "show my marks")
		assert.True(t, resp.Success)
		assert.True(t, strings.HasPrefix(resp.Text, "Here are your marks for Sem 6 (2024-25):"), resp.Text)
		require.NotNil(t, resp.Table)
		assert.Equal(t, "Marks - Sem 6", resp.Table.Title)
		require.Len(t, resp.Table.Rows, 1)
		assert.Equal(t, "21", resp.Table.Rows[0]["roll_no"])
	})

	t.Run("exact semester", func(t *testing.T) {
		resp := postMessage(t, token, "marks of sem 5")
		require.NotNil(t, resp.Table)
		assert.Equal(t, "Marks - Sem 5", resp.Table.Title)
	})

	t.Run("missing semester", func(t *testing.T) {
		resp := postMessage(t, token, "marks of sem 8")
		assert.Equal(t, "Requested semester 8 data not found yet.", resp.Text)
		assert.Nil(t, resp.Table)
	})

	t.Run("fees", func(t *testing.T) {
		resp := postMessage(t, token, "how much fee is pending?")
		require.NotNil(t, resp.Table)
		require.Len(t, resp.Table.Rows, 1)
		assert.Equal(t, float64(30000), resp.Table.Rows[0]["remaining_fees"])
	})

	t.Run("no attendance", func(t *testing.T) {
		resp := postMessage(t, token, "attendance")
		assert.Equal(t, "No attendance records found.", resp.Text)
	})

	t.Run("no attendance for requested semester", func(t *testing.T) {
		resp := postMessage(t, token, "show my attendance for sem 5")
		assert.Equal(t, "Requested semester 5 data not found yet.", resp.Text)
		assert.Nil(t, resp.Table)
		assert.Nil(t, resp.Tables)
	})
}

func Test_chatApi_send_numericClaims(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      12,
		"role":    "student",
		"table":   "Students_TY_CSE",
		"roll_no": 21,
		"exp":     time.Now().Add(time.Minute).Unix(),
	})
	ss, err := token.SignedString([]byte(conf.SecretKey))
	require.NoError(t, err)

	resp := postMessage(t, ss, "result")
	require.NotNil(t, resp.Table)
	assert.Equal(t, "Marks - Sem 6", resp.Table.Title)
}

func Test_chatApi_send_staff(t *testing.T) {
	resp := postMessage(t, getToken(t, teacher), "show marks")

	assert.Equal(t, "Current semester marks (3 records). Grouped by semester and year.", resp.Text)
	assert.Nil(t, resp.Table)
	require.Len(t, resp.Tables, 2)
	assert.Equal(t, "Marks - Sem 3 - SY", resp.Tables[0].Title)
	assert.Equal(t, "Marks - Sem 5 - TY", resp.Tables[1].Title)
	assert.Len(t, resp.Tables[1].Rows, 2)
}

func Test_chatApi_send_fallback(t *testing.T) {
	token := getToken(t, student)

	req, rec := newAuthRequest(http.MethodPost, "/api/chatbot", token, marshallObj(t, ChatRequest{Message: "hello there"}))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: []byte(`{"response":"Hello! How can I help?","success":true}`),
	}, rec)

	sent := engine.Sent()
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	assert.Equal(t, "user_12", last.Sender)
	assert.Equal(t, "hello there", last.Message)
	assert.Equal(t, token, last.Metadata.Token)
	assert.Equal(t, "Students_TY_CSE", last.Metadata.Table)
}

func Test_chatApi_placeholders(t *testing.T) {
	token := getToken(t, teacher)

	tests := []httpTest{
		{
			name:     "history",
			method:   http.MethodGet,
			path:     "/api/chatbot/history",
			token:    token,
			wantCode: http.StatusOK,
			wantData: []byte(`{"messages":[],"success":true}`),
		},
		{
			name:     "history trailing slash",
			method:   http.MethodGet,
			path:     "/api/chatbot/history/",
			token:    token,
			wantCode: http.StatusOK,
			wantData: []byte(`{"messages":[],"success":true}`),
		},
		{
			name:     "voice",
			method:   http.MethodPost,
			path:     "/api/chatbot/voice",
			token:    token,
			wantCode: http.StatusNotImplemented,
			wantData: []byte(`{"msg":"Voice processing not implemented yet","success":false}`),
		},
		{
			name:     "history without token",
			method:   http.MethodGet,
			path:     "/api/chatbot/history",
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, errMissingToken),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
