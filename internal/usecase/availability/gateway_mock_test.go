package availability

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
)

type gatewayMock struct {
	mock.Mock
}

func (m *gatewayMock) Token(ctx context.Context) (*scheduling.Token, error) {
	args := m.Called(ctx)
	token, _ := args.Get(0).(*scheduling.Token)
	return token, args.Error(1)
}

func (m *gatewayMock) AppointmentCandidates(
	ctx context.Context,
	token *scheduling.Token,
	workTypeID string,
	territoryID string,
) (*scheduling.CandidatesResponse, error) {
	args := m.Called(ctx, token, workTypeID, territoryID)
	resp, _ := args.Get(0).(*scheduling.CandidatesResponse)
	return resp, args.Error(1)
}

func (m *gatewayMock) ServiceAppointment(
	ctx context.Context,
	token *scheduling.Token,
	appointmentID string,
) (json.RawMessage, error) {
	args := m.Called(ctx, token, appointmentID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}
