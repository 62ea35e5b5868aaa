package probe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/mittwald/fileprobe/internal/config"
	"github.com/mittwald/fileprobe/pkg/fileprobe"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMemProbe(t *testing.T, name string, check fileprobe.Check) *filesystemProbe {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/ready", []byte("ready\n"), 0o644))
	require.NoError(t, fs.Chtimes("/srv/ready", testNow, testNow.Add(-2*time.Hour)))

	return &filesystemProbe{name: name, check: check, fs: fs, clock: fileprobe.FixedClock(testNow)}
}

func maxAge(h int64) *int64 {
	return &h
}

func TestFilesystemProbeExec(t *testing.T) {
	ok := newMemProbe(t, "ok", fileprobe.Check{Path: "/srv/ready", Type: fileprobe.TypeFile, MaxAgeHours: maxAge(2), Contains: "ready"})
	assert.NoError(t, ok.Exec())

	stale := newMemProbe(t, "stale", fileprobe.Check{Path: "/srv/ready", MaxAgeHours: maxAge(1)})
	assert.EqualError(t, stale.Exec(), "File /srv/ready last modified 2 hours ago")

	missing := newMemProbe(t, "missing", fileprobe.Check{Path: "/srv/gone"})
	assert.EqualError(t, missing.Exec(), "File /srv/gone does not exist")
}

func TestNewFilesystemProbeResolvesPath(t *testing.T) {
	t.Setenv("FILEPROBE_TEST_DIR", "/data")

	p, err := NewFilesystemProbe("data", &config.FileCheck{Path: `{{ env "FILEPROBE_TEST_DIR" }}/state`, Type: "file"})
	require.NoError(t, err)
	assert.Equal(t, "/data/state", p.check.Path)
	assert.Equal(t, fileprobe.TypeFile, p.check.Type)

	p, err = NewFilesystemProbe("env", &config.FileCheck{Path: "ENV:FILEPROBE_TEST_DIR"})
	require.NoError(t, err)
	assert.Equal(t, "/data", p.check.Path)
	assert.Equal(t, fileprobe.TypeAny, p.check.Type)

	_, err = NewFilesystemProbe("bad", &config.FileCheck{Path: "/x", Type: "fifo"})
	assert.Error(t, err)
}

func TestHandleStatusAllOK(t *testing.T) {
	h := &Handler{
		probes: map[string]Probe{
			"ready": newMemProbe(t, "ready", fileprobe.Check{Path: "/srv/ready", Contains: "ready"}),
		},
		StatusTimeout: time.Second,
	}

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Contains(t, response.Probes, "ready")
	assert.True(t, response.Probes["ready"].OK)
	assert.Equal(t, "OK", response.Probes["ready"].Status)
}

func TestHandleStatusReportsFailure(t *testing.T) {
	h := &Handler{
		probes: map[string]Probe{
			"ready":   newMemProbe(t, "ready", fileprobe.Check{Path: "/srv/ready"}),
			"content": newMemProbe(t, "content", fileprobe.Check{Path: "/srv/ready", Contains: "xyz"}),
		},
		StatusTimeout: time.Second,
	}

	rec := httptest.NewRecorder()
	h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var response StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Probes["ready"].OK)
	assert.False(t, response.Probes["content"].OK)
	assert.Equal(t, "CRITICAL", response.Probes["content"].Status)
	assert.Equal(t, "File /srv/ready does not contain 'xyz' string", response.Probes["content"].Message)
}

type blockingProbe struct {
	release chan struct{}
}

func (b *blockingProbe) Exec() error {
	<-b.release
	return nil
}

func TestHandleStatusTimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	h := &Handler{
		probes:        map[string]Probe{"slow": &blockingProbe{release: release}},
		StatusTimeout: 10 * time.Millisecond,
	}

	rec := httptest.NewRecorder()
	h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "timed out")
}

func TestMetricsEndpointExportsProbeGauges(t *testing.T) {
	p := newMemProbe(t, "metrics-test", fileprobe.Check{Path: "/srv/ready"})
	require.NoError(t, p.Exec())

	h := &Handler{probes: map[string]Probe{}, StatusTimeout: time.Second}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `fileprobe_probe_ok{probe="metrics-test"} 1`)
	assert.Contains(t, body, `fileprobe_probe_age_hours{probe="metrics-test"} 2`)
}

func TestWaitReturnsOnceProbesAreReady(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ready")

	cfg := &config.Ignition{Probes: []config.Probe{
		{Name: "ready", Wait: true, File: &config.FileCheck{Path: path, Type: "file"}},
		{Name: "ignored", File: &config.FileCheck{Path: filepath.Join(dir, "never")}},
	}}

	h, err := NewProbeHandler(cfg)
	require.NoError(t, err)
	h.WaitInterval = 10 * time.Millisecond
	assert.Len(t, h.waitProbes, 1)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("ok"), 0o644)
	}()

	done := make(chan error, 1)
	go func() { done <- h.Wait(make(chan os.Signal)) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("readiness wait did not return")
	}
}

func TestWaitIsInterruptedBySignal(t *testing.T) {
	cfg := &config.Ignition{Probes: []config.Probe{
		{Name: "never", Wait: true, File: &config.FileCheck{Path: filepath.Join(t.TempDir(), "never")}},
	}}

	h, err := NewProbeHandler(cfg)
	require.NoError(t, err)
	h.WaitInterval = time.Hour

	interrupt := make(chan os.Signal, 1)
	interrupt <- syscall.SIGTERM

	err = h.Wait(interrupt)
	assert.True(t, err != nil && strings.Contains(err.Error(), "interrupted"))
}

func TestNewProbeHandlerRejectsInvalidProbe(t *testing.T) {
	cfg := &config.Ignition{Probes: []config.Probe{
		{Name: "bad", File: &config.FileCheck{Path: "{{ nope", Type: "file"}},
	}}

	_, err := NewProbeHandler(cfg)
	assert.ErrorContains(t, err, `invalid probe "bad"`)
}
