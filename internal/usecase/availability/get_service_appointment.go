package availability

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
	"github.com/BruksfildServices01/fieldservice-availability/internal/httperr"
)

type GetServiceAppointment struct {
	gateway scheduling.Gateway
	audit   audit.Recorder
}

func NewGetServiceAppointment(
	gateway scheduling.Gateway,
	recorder audit.Recorder,
) *GetServiceAppointment {
	return &GetServiceAppointment{
		gateway: gateway,
		audit:   recorder,
	}
}

func (uc *GetServiceAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (json.RawMessage, error) {

	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return nil, httperr.ErrBusiness("missing_appointment_id")
	}

	token, err := uc.gateway.Token(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := uc.gateway.ServiceAppointment(ctx, token, appointmentID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		RequestID: audit.RequestIDFrom(ctx),
		Action:    audit.ActionServiceAppointmentViewed,
		Entity:    "service_appointment",
		EntityID:  appointmentID,
	})

	return raw, nil
}
