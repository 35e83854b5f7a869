package telemetry

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"svgjsx/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	m.MustRegister(reg)

	m.ObserveLoad(true, time.Millisecond, nil)
	m.ObserveLoad(false, time.Millisecond, nil)
	m.ObserveLoad(false, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("chained", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("storage", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("storage", "error")))

	n, err := testutil.GatherAndCount(reg, "svgjsx_load_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestExpose_LogsListenerFailure(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	out := &syncBuffer{}
	logging.Configure(logging.Options{Writer: out})
	t.Cleanup(func() { logging.Configure(logging.Options{}) })

	Expose(taken.Addr().(*net.TCPAddr).Port)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "metrics listener stopped")
	}, 2*time.Second, 10*time.Millisecond)
}
