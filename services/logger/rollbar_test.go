package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "TEST : ", 0), core.NewTestConfig())
	logger.Enable(false)

	sess := chat.Session{ID: "12", Role: chat.RoleStudent, Table: "Students_TY_CSE", Username: "asha"}
	logger.Warn("conversation engine unavailable", errors.New("connection refused"), sess)

	out := buf.String()
	assert.Contains(t, out, "TEST : conversation engine unavailable\n")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "session: id=12 role=student table=Students_TY_CSE")

	args := logger.prepare("msg", []interface{}{sess, sess, "extra"})
	assert.Equal(t, []interface{}{"msg", "extra"}, args)
}
