package linear_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/c3pm/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr), &stdout, &stderr
}

func TestRenderer_TaskLifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	start := time.Now()
	r.OnTaskStart("span1", "", "configure", start)
	assert.Equal(t, "[configure] Starting...\n", stderr.String())

	r.OnTaskLog("span1", []byte("-- The C compiler identification is GNU\n-- Configuring done\n"))
	assert.Equal(t, "[configure] -- The C compiler identification is GNU\n[configure] -- Configuring done\n", stdout.String())

	r.OnTaskComplete("span1", start.Add(1500*time.Millisecond), nil)
	assert.Contains(t, stderr.String(), "[configure] ✓ Completed in 1.5s")

	require.NoError(t, r.Stop())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	start := time.Now()
	r.OnTaskStart("span1", "", "build", start)

	r.OnTaskLog("span1", []byte("[ 50%] Building"))
	assert.Empty(t, stdout.String())

	r.OnTaskLog("span1", []byte(" CXX object main.o\n[100%] Linking"))
	assert.Equal(t, "[build] [ 50%] Building CXX object main.o\n", stdout.String())

	r.OnTaskComplete("span1", start, nil)
	assert.True(t, strings.HasSuffix(stdout.String(), "[build] [100%] Linking\n"))
}

func TestRenderer_Failure(t *testing.T) {
	r, _, stderr := newRenderer(t)

	start := time.Now()
	r.OnTaskStart("span1", "", "fetch fmt", start)
	r.OnTaskComplete("span1", start.Add(time.Second), errors.New("failed to fetch dependency"))

	assert.Contains(t, stderr.String(), "[fetch fmt] ✗ Failed after 1s: failed to fetch dependency")
}

func TestRenderer_UnknownSpanIgnored(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	r.OnTaskLog("missing", []byte("line\n"))
	r.OnTaskComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_StopFlushes(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnTaskStart("span1", "", "build", time.Now())
	r.OnTaskLog("span1", []byte("no newline"))
	require.NoError(t, r.Stop())

	assert.Equal(t, "[build] no newline\n", stdout.String())
}
