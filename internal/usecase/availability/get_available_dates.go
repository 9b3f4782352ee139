package availability

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
	"github.com/BruksfildServices01/fieldservice-availability/internal/httperr"
)

type Defaults struct {
	WorkTypeID  string
	TerritoryID string
}

type GetAvailableDatesInput struct {
	WorkTypeID  string
	TerritoryID string
}

type GetAvailableDates struct {
	gateway  scheduling.Gateway
	defaults Defaults
	loc      *time.Location
	audit    audit.Recorder
	log      *zap.Logger
}

func NewGetAvailableDates(
	gateway scheduling.Gateway,
	defaults Defaults,
	loc *time.Location,
	recorder audit.Recorder,
	log *zap.Logger,
) *GetAvailableDates {
	return &GetAvailableDates{
		gateway:  gateway,
		defaults: defaults,
		loc:      loc,
		audit:    recorder,
		log:      log,
	}
}

// Execute fetches candidates for the work type and territory (falling back
// to the configured ones) and groups them by date. CRM errors are returned
// to the caller as-is.
func (uc *GetAvailableDates) Execute(
	ctx context.Context,
	in GetAvailableDatesInput,
) ([]scheduling.AvailableDate, error) {

	workTypeID := firstNonEmpty(in.WorkTypeID, uc.defaults.WorkTypeID)
	if workTypeID == "" {
		return nil, httperr.ErrBusiness("missing_work_type")
	}

	territoryID := firstNonEmpty(in.TerritoryID, uc.defaults.TerritoryID)
	if territoryID == "" {
		return nil, httperr.ErrBusiness("missing_territory")
	}

	token, err := uc.gateway.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := uc.gateway.AppointmentCandidates(ctx, token, workTypeID, territoryID)
	if err != nil {
		return nil, err
	}

	var candidates []scheduling.Appointment
	if resp != nil {
		candidates = resp.Candidates
	}

	dates, skipped := scheduling.DeriveAvailableDates(candidates, uc.loc)
	if skipped > 0 {
		uc.log.Warn("skipped candidates with unparseable start time",
			zap.Int("skipped", skipped),
			zap.Int("candidates", len(candidates)),
		)
	}

	uc.audit.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(ctx),
		Action:    audit.ActionAvailabilityViewed,
		Entity:    "territory",
		EntityID:  territoryID,
		Metadata: map[string]any{
			"work_type_id": workTypeID,
			"candidates":   len(candidates),
			"dates":        len(dates),
		},
	})

	return dates, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
