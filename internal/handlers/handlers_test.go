package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
	"github.com/BruksfildServices01/fieldservice-availability/internal/httperr"
	"github.com/BruksfildServices01/fieldservice-availability/internal/infra/salesforce"
	ucAvailability "github.com/BruksfildServices01/fieldservice-availability/internal/usecase/availability"
	"github.com/BruksfildServices01/fieldservice-availability/internal/web"
)

// fakeGateway returns canned values and records the ids it was asked for.
type fakeGateway struct {
	tokenErr      error
	candidates    []scheduling.Appointment
	candidatesErr error
	record        json.RawMessage
	recordErr     error

	workTypeID  string
	territoryID string
}

func (f *fakeGateway) Token(context.Context) (*scheduling.Token, error) {
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	return &scheduling.Token{AccessToken: "abc"}, nil
}

func (f *fakeGateway) AppointmentCandidates(
	_ context.Context, _ *scheduling.Token, workTypeID, territoryID string,
) (*scheduling.CandidatesResponse, error) {
	f.workTypeID, f.territoryID = workTypeID, territoryID
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}
	return &scheduling.CandidatesResponse{Candidates: f.candidates}, nil
}

func (f *fakeGateway) ServiceAppointment(
	_ context.Context, _ *scheduling.Token, _ string,
) (json.RawMessage, error) {
	return f.record, f.recordErr
}

func newRouter(t *testing.T, gw *fakeGateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	getDates := ucAvailability.NewGetAvailableDates(
		gw,
		ucAvailability.Defaults{WorkTypeID: "wt-default", TerritoryID: "tr-default"},
		time.UTC,
		audit.Nop{},
		zap.NewNop(),
	)
	getRecord := ucAvailability.NewGetServiceAppointment(gw, audit.Nop{})

	api := NewAvailabilityHandler(getDates, getRecord)
	pages := NewWebHandler(getDates, zap.NewNop())

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/fetching", pages.Fetching)
	r.GET("/sandbox", pages.Sandbox)
	r.POST("/sandbox", pages.SubmitSandbox)
	r.GET("/sandbox/:example", pages.SandboxExample)
	r.GET("/api/availability", api.ListDates)
	r.GET("/api/service-appointments/:id", api.GetServiceAppointment)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ======================================================
// API
// ======================================================

func TestListDates(t *testing.T) {
	gw := &fakeGateway{candidates: []scheduling.Appointment{
		{StartTime: "2024-01-02T09:00:00.000+0000"},
		{StartTime: "2024-01-02T09:00:00.000+0000"},
		{StartTime: "2024-01-03T16:15:00.000+0000"},
	}}
	r := newRouter(t, gw)

	w := get(r, "/api/availability?work_type_id=wt-1&territory_id=tr-1")
	require.Equal(t, http.StatusOK, w.Code)

	assert.JSONEq(t, `{
		"data": [
			{"date": "2024-01-02", "times": ["9:00am"]},
			{"date": "2024-01-03", "times": ["4:15pm"]}
		],
		"total": 2
	}`, w.Body.String())
	assert.Equal(t, "wt-1", gw.workTypeID)
	assert.Equal(t, "tr-1", gw.territoryID)
}

func TestListDatesEmpty(t *testing.T) {
	w := get(newRouter(t, &fakeGateway{}), "/api/availability")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data": [], "total": 0}`, w.Body.String())
}

func TestListDatesErrors(t *testing.T) {
	tests := []struct {
		name   string
		gw     *fakeGateway
		status int
		code   string
	}{
		{
			name:   "token exhausted",
			gw:     &fakeGateway{tokenErr: salesforce.ErrTokenExhausted},
			status: http.StatusBadGateway,
			code:   "crm_auth_failed",
		},
		{
			name:   "invalid key",
			gw:     &fakeGateway{tokenErr: salesforce.ErrInvalidPrivateKey},
			status: http.StatusInternalServerError,
			code:   "crm_misconfigured",
		},
		{
			name: "candidates failed",
			gw: &fakeGateway{candidatesErr: &salesforce.APIError{
				Method: http.MethodPost, URL: "https://x", StatusCode: http.StatusBadRequest,
			}},
			status: http.StatusBadGateway,
			code:   "crm_request_failed",
		},
		{
			name:   "timeout",
			gw:     &fakeGateway{candidatesErr: context.DeadlineExceeded},
			status: http.StatusGatewayTimeout,
			code:   "crm_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newRouter(t, tt.gw), "/api/availability")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestGetServiceAppointment(t *testing.T) {
	gw := &fakeGateway{record: json.RawMessage(`{"Id":"08p1","Status":"Scheduled"}`)}

	w := get(newRouter(t, gw), "/api/service-appointments/08p1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Id":"08p1","Status":"Scheduled"}`, w.Body.String())
}

func TestGetServiceAppointmentNotFound(t *testing.T) {
	gw := &fakeGateway{recordErr: &salesforce.APIError{StatusCode: http.StatusNotFound}}

	w := get(newRouter(t, gw), "/api/service-appointments/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Code)
}

func TestGetServiceAppointmentBlankID(t *testing.T) {
	w := get(newRouter(t, &fakeGateway{}), "/api/service-appointments/%20")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_appointment_id", decodeError(t, w).Code)
}

// ======================================================
// WEB
// ======================================================

func TestFetchingRendersDates(t *testing.T) {
	gw := &fakeGateway{candidates: []scheduling.Appointment{
		{StartTime: "2024-01-02T09:00:00.000+0000"},
	}}

	w := get(newRouter(t, gw), "/fetching")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-01-02")
	assert.Contains(t, w.Body.String(), "9:00am")
	assert.Equal(t, "wt-default", gw.workTypeID)
}

func TestFetchingDegradesToEmptyList(t *testing.T) {
	gw := &fakeGateway{tokenErr: errors.New("crm down")}

	w := get(newRouter(t, gw), "/fetching")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fetching data")
	assert.NotContains(t, w.Body.String(), `class="date"`)
}

func TestSandbox(t *testing.T) {
	w := get(newRouter(t, &fakeGateway{}), "/sandbox")

	require.Equal(t, http.StatusOK, w.Code)
	for _, label := range []string{"Demo 1", "Demo 2", "Demo 3", "Demo 4"} {
		assert.Contains(t, w.Body.String(), label)
	}
	assert.Contains(t, w.Body.String(), `href="/fetching"`)
}

func TestSubmitSandboxRedirects(t *testing.T) {
	form := url.Values{"example": {"hello world"}}
	req := httptest.NewRequest(http.MethodPost, "/sandbox", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	newRouter(t, &fakeGateway{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sandbox/hello%20world", w.Header().Get("Location"))
}

func TestSandboxExample(t *testing.T) {
	w := get(newRouter(t, &fakeGateway{}), "/sandbox/first")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello Outlet: first")
	assert.Contains(t, w.Body.String(), "Demo 1")
}

func TestGetServiceAppointmentOversizedBody(t *testing.T) {
	gw := &fakeGateway{recordErr: salesforce.ErrBodyTooLarge}

	w := get(newRouter(t, gw), "/api/service-appointments/08p1")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "crm_request_failed", decodeError(t, w).Code)
}
