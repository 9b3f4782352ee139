package scheduling

import (
	"context"
	"encoding/json"
)

// Gateway is the CRM scheduling API as seen by the use cases.
type Gateway interface {
	Token(ctx context.Context) (*Token, error)

	AppointmentCandidates(
		ctx context.Context,
		token *Token,
		workTypeID string,
		territoryID string,
	) (*CandidatesResponse, error)

	ServiceAppointment(
		ctx context.Context,
		token *Token,
		appointmentID string,
	) (json.RawMessage, error)
}
