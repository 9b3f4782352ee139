package availability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/fieldservice-availability/internal/audit"
	"github.com/BruksfildServices01/fieldservice-availability/internal/httperr"
)

func TestGetServiceAppointment(t *testing.T) {
	raw := json.RawMessage(`{"Id":"08p000000000001","Status":"Scheduled"}`)

	gw := &gatewayMock{}
	gw.On("Token", mock.Anything).Return(testToken, nil)
	gw.On("ServiceAppointment", mock.Anything, testToken, "08p000000000001").Return(raw, nil)

	rec := &recorder{}
	got, err := NewGetServiceAppointment(gw, rec).Execute(context.Background(), " 08p000000000001 ")
	require.NoError(t, err)

	assert.JSONEq(t, string(raw), string(got))
	require.Len(t, rec.events, 1)
	assert.Equal(t, audit.ActionServiceAppointmentViewed, rec.events[0].Action)
	assert.Equal(t, "08p000000000001", rec.events[0].EntityID)
}

func TestGetServiceAppointmentMissingID(t *testing.T) {
	gw := &gatewayMock{}

	_, err := NewGetServiceAppointment(gw, audit.Nop{}).Execute(context.Background(), "  ")

	assert.True(t, httperr.IsBusiness(err, "missing_appointment_id"))
	gw.AssertNotCalled(t, "Token", mock.Anything)
}

func TestGetServiceAppointmentPropagatesError(t *testing.T) {
	boom := errors.New("lookup failed")

	gw := &gatewayMock{}
	gw.On("Token", mock.Anything).Return(testToken, nil)
	gw.On("ServiceAppointment", mock.Anything, testToken, "x").Return(nil, boom)

	rec := &recorder{}
	_, err := NewGetServiceAppointment(gw, rec).Execute(context.Background(), "x")

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.events)
}
