package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/access"
)

func newTestLogger(debug bool) (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", TestMode: true, Debug: debug})
	return l, &buf
}

func TestPrint(t *testing.T) {
	l, buf := newTestLogger(false)
	l.Warn("dispatch rejected", "DELETE_STUDENT", access.RoleParent)
	assert.Equal(t, "[WARN] dispatch rejected\nDELETE_STUDENT\nparent\n", buf.String())
}

func TestDebugGate(t *testing.T) {
	l, buf := newTestLogger(false)
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l, buf = newTestLogger(true)
	l.Debug("shown", errors.New("boom"))
	assert.Contains(t, buf.String(), "[DEBUG] shown")
	assert.Contains(t, buf.String(), "boom")
}

func TestPrepare(t *testing.T) {
	l, _ := newTestLogger(false)
	err := errors.New("boom")
	args := l.prepare("msg", []interface{}{access.RoleAdmin, err, 42, access.RoleTeacher})
	assert.Equal(t, []interface{}{"msg", err, map[string]interface{}{"value": 42}}, args)
}
