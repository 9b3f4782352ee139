package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/fieldservice-availability/internal/httpresp"
	ucAvailability "github.com/BruksfildServices01/fieldservice-availability/internal/usecase/availability"
)

type AvailabilityHandler struct {
	getAvailableDates     *ucAvailability.GetAvailableDates
	getServiceAppointment *ucAvailability.GetServiceAppointment
}

func NewAvailabilityHandler(
	getAvailableDates *ucAvailability.GetAvailableDates,
	getServiceAppointment *ucAvailability.GetServiceAppointment,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getAvailableDates:     getAvailableDates,
		getServiceAppointment: getServiceAppointment,
	}
}

// ======================================================
// GET /api/availability
// ======================================================

func (h *AvailabilityHandler) ListDates(c *gin.Context) {
	dates, err := h.getAvailableDates.Execute(
		c.Request.Context(),
		ucAvailability.GetAvailableDatesInput{
			WorkTypeID:  c.Query("work_type_id"),
			TerritoryID: c.Query("territory_id"),
		},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dates)
}

// ======================================================
// GET /api/service-appointments/:id
// ======================================================

func (h *AvailabilityHandler) GetServiceAppointment(c *gin.Context) {
	raw, err := h.getServiceAppointment.Execute(
		c.Request.Context(),
		c.Param("id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
