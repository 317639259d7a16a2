package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shiftdesk/shiftdesk-backend-go/internal/domain/worksession"
	"github.com/stretchr/testify/assert"
)

// sessionServiceStub records the last timeline lookup. The embedded
// interface is nil, so any other call panics; requests rejected at the
// handler must never reach it.
type sessionServiceStub struct {
	worksession.WorkSessionService
	timelineID string
}

func (s *sessionServiceStub) GetTimeline(_ context.Context, id string) ([]worksession.SegmentResponse, error) {
	s.timelineID = id
	return nil, nil
}

func sessionTestRouter(h WorkSessionHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/sessions/{id}/timeline", h.GetTimeline)
	r.Get("/sessions/{id}/summary", h.GetSummary)
	r.Post("/sessions/{id}/force-close", h.ForceClose)
	return r
}

func TestSessionRoutesRejectMalformedID(t *testing.T) {
	h := NewWorkSessionHandler(&sessionServiceStub{})
	r := sessionTestRouter(h)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/sessions/not-a-uuid/timeline"},
		{http.MethodGet, "/sessions/42/summary"},
		{http.MethodPost, "/sessions/0188d0f2/force-close"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, c.path)
	}
}

func TestSessionTimelinePassesValidID(t *testing.T) {
	stub := &sessionServiceStub{}
	r := sessionTestRouter(NewWorkSessionHandler(stub))

	id := "123e4567-e89b-42d3-a456-426614174000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/timeline", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, stub.timelineID)
}
