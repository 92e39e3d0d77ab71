package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lcalzada-xor/ghostfield/internal/adapters/reporting"
	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

type fakeController struct {
	paused  bool
	resumed bool
}

func (f *fakeController) Pause()  { f.paused = true }
func (f *fakeController) Resume() { f.resumed = true }
func (f *fakeController) Status() domain.SchedulerStatus {
	return domain.SchedulerStatus{
		Paused:         f.paused,
		BeaconInterval: 102400 * time.Microsecond,
		Channel:        6,
		RosterSize:     6,
	}
}

type fakeSink struct {
	records []domain.BurstRecord
}

func (f *fakeSink) RecordBurst(ctx context.Context, runID string, s domain.BurstSummary) error {
	return nil
}

func (f *fakeSink) RecentBursts(ctx context.Context, limit int) ([]domain.BurstRecord, error) {
	if limit < len(f.records) {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func newTestServer(t *testing.T, tokenHash string) (*Server, http.Handler) {
	t.Helper()
	sink := &fakeSink{records: []domain.BurstRecord{
		{ID: 2, RunID: "run", Sequence: 2, Channel: 6, Frames: 6},
		{ID: 1, RunID: "run", Sequence: 1, Channel: 1, Frames: 6},
	}}
	s := NewServer(":0", &fakeController{}, domain.DefaultRoster(), domain.DefaultChannelPlan(),
		sink, reporting.NewPDFExporter(), tokenHash)
	return s, s.routes()
}

func TestHandleStatus(t *testing.T) {
	_, h := newTestServer(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status domain.SchedulerStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 6, status.Channel)
	assert.Equal(t, 6, status.RosterSize)
}

func TestHandleRoster(t *testing.T) {
	_, h := newTestServer(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roster", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Networks []rosterEntry `json:"networks"`
		Channels []int         `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Networks, domain.DefaultRoster().Len())
	assert.Equal(t, domain.DefaultChannelPlan().All(), resp.Channels)

	// Hidden entries come back flagged, with an empty SSID; visible ones
	// carry their raw name, never a placeholder.
	var sawHidden bool
	for i, n := range resp.Networks {
		if n.Hidden {
			sawHidden = true
			assert.Empty(t, n.SSID)
		} else {
			assert.Equal(t, string(domain.DefaultRoster().At(i).SSID), n.SSID)
		}
	}
	assert.True(t, sawHidden)
}

func TestHandleBursts(t *testing.T) {
	_, h := newTestServer(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bursts?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Bursts []domain.BurstRecord `json:"bursts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bursts, 1)
	assert.Equal(t, 2, resp.Bursts[0].Sequence)
}

func TestHandleBurstsRejectsBadLimit(t *testing.T) {
	_, h := newTestServer(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bursts?limit=nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReport(t *testing.T) {
	_, h := newTestServer(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestPauseResumeOpenWhenNoToken(t *testing.T) {
	s, h := newTestServer(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/pause", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Controller.(*fakeController).paused)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/resume", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Controller.(*fakeController).resumed)
}

func TestPauseRequiresValidToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("gallery-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	s, h := newTestServer(t, string(hash))

	// No token.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/pause", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, s.Controller.(*fakeController).paused)

	// Wrong token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pause", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct token.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/pause", nil)
	req.Header.Set("Authorization", "Bearer gallery-secret")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Controller.(*fakeController).paused)

	// Status stays open for the gallery display.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWSManagerBurstComplete(t *testing.T) {
	m := NewWSManager()
	// No clients connected: broadcasting must not panic.
	m.BurstComplete(domain.BurstSummary{Sequence: 1, Channel: 6, Frames: 6})
}
