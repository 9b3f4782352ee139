package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
	"github.com/BruksfildServices01/fieldservice-availability/internal/timezone"
)

const (
	apiVersion = "v55.0"

	candidatesPath         = "/services/data/" + apiVersion + "/scheduling/getAppointmentCandidates"
	serviceAppointmentPath = "/services/data/" + apiVersion + "/sobjects/ServiceAppointment/"

	// candidates are searched from now+leadTime to the end of the day
	// horizonDays from now
	leadTime    = 3 * time.Hour
	horizonDays = 14

	isoLayout = "2006-01-02T15:04:05.000Z07:00"
)

// CandidatesRequest builds the scheduling-policy body for a query issued
// at now. The horizon ends at midnight in the session's timezone.
func (s *Session) CandidatesRequest(now time.Time, workTypeID, territoryID string) scheduling.CandidatesRequest {
	start := now.Add(leadTime)
	end := timezone.EndOfDay(now.In(s.loc).AddDate(0, 0, horizonDays))

	return scheduling.CandidatesRequest{
		StartTime:          start.UTC().Format(isoLayout),
		EndTime:            end.UTC().Format(isoLayout),
		TerritoryIDs:       []string{territoryID},
		SchedulingPolicyID: s.cfg.PolicyID,
		WorkType:           scheduling.WorkTypeRef{ID: workTypeID},
	}
}

// AppointmentCandidates asks the CRM for candidate slots. The response is
// returned as parsed, without validating the candidates.
func (s *Session) AppointmentCandidates(
	ctx context.Context,
	token *scheduling.Token,
	workTypeID string,
	territoryID string,
) (*scheduling.CandidatesResponse, error) {

	body := s.CandidatesRequest(s.now(), workTypeID, territoryID)

	req, err := newJSONRequest(ctx, http.MethodPost, instanceURL(token, candidatesPath), body)
	if err != nil {
		return nil, err
	}

	raw, err := s.do(req, token)
	if err != nil {
		return nil, err
	}

	var out scheduling.CandidatesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode appointment candidates: %w", err)
	}
	return &out, nil
}

// ServiceAppointment fetches a ServiceAppointment sobject and returns the
// body untouched.
func (s *Session) ServiceAppointment(
	ctx context.Context,
	token *scheduling.Token,
	appointmentID string,
) (json.RawMessage, error) {

	u := instanceURL(token, serviceAppointmentPath+url.PathEscape(appointmentID))

	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	raw, err := s.do(req, token)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
