package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := Log{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	n.Success("+5 poin! 🌟")
	n.Info("Sudah dicatat hari ini! ✅")
	n.Error("Gagal, coba lagi")

	out := buf.String()
	assert.Contains(t, out, "notice=success")
	assert.Contains(t, out, "notice=info")
	assert.Contains(t, out, "notice=error")
	assert.Contains(t, out, "Gagal, coba lagi")
}

func TestLogNotifierDefaultsToGlobalLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Log{}.Info("ok")
	})
}

func TestRecorderCapturesInOrder(t *testing.T) {
	r := &Recorder{}
	r.Success("a")
	r.Success("b")
	r.Error("c")

	assert.Equal(t, []string{"a", "b"}, r.Successes)
	assert.Equal(t, []string{"c"}, r.Errors)
	assert.Empty(t, r.Infos)
}
