package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/fieldservice-availability/internal/domain/scheduling"
	ucAvailability "github.com/BruksfildServices01/fieldservice-availability/internal/usecase/availability"
)

type demoItem struct {
	ID    int
	Label string
}

var sandboxItems = []demoItem{
	{ID: 1, Label: "Demo 1"},
	{ID: 2, Label: "Demo 2"},
	{ID: 3, Label: "Demo 3"},
	{ID: 4, Label: "Demo 4"},
}

// WebHandler serves the server-rendered pages.
type WebHandler struct {
	getAvailableDates *ucAvailability.GetAvailableDates
	log               *zap.Logger
}

func NewWebHandler(
	getAvailableDates *ucAvailability.GetAvailableDates,
	log *zap.Logger,
) *WebHandler {
	return &WebHandler{
		getAvailableDates: getAvailableDates,
		log:               log,
	}
}

// Fetching renders the available dates for the configured work type and
// territory. Any failure is logged and rendered as an empty list.
func (h *WebHandler) Fetching(c *gin.Context) {
	dates, err := h.getAvailableDates.Execute(
		c.Request.Context(),
		ucAvailability.GetAvailableDatesInput{},
	)
	if err != nil {
		h.log.Error("fetching available dates failed", zap.Error(err))
		dates = []scheduling.AvailableDate{}
	}

	c.HTML(http.StatusOK, "fetching.html", gin.H{
		"AvailableDates": dates,
	})
}

func (h *WebHandler) Sandbox(c *gin.Context) {
	c.HTML(http.StatusOK, "sandbox.html", gin.H{
		"Items": sandboxItems,
	})
}

func (h *WebHandler) SubmitSandbox(c *gin.Context) {
	example := strings.TrimSpace(c.PostForm("example"))
	h.log.Debug("sandbox form submitted", zap.String("example", example))

	c.Redirect(http.StatusSeeOther, "/sandbox/"+url.PathEscape(example))
}

func (h *WebHandler) SandboxExample(c *gin.Context) {
	c.HTML(http.StatusOK, "sandbox_example.html", gin.H{
		"Items":   sandboxItems,
		"Example": c.Param("example"),
	})
}
