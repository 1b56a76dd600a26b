package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestTimeLogsRequestID(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithRequestID(context.Background(), "req-123")

	func() (err error) {
		defer Time(ctx, "facilities.List")(&err)
		return nil
	}()

	assert.Contains(t, buf.String(), "req_id=req-123")
	assert.Contains(t, buf.String(), "op=facilities.List")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestTimeLogsError(t *testing.T) {
	buf := captureLogs(t)

	func() (err error) {
		defer Time(context.Background(), "sessions.Get")(&err)
		return errors.New("boom")
	}()

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "err=boom")
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
