package controllers

import (
	"net/http"
	"time"

	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProgressController struct {
	Svc *services.ProgressService
}

func NewProgressController(svc *services.ProgressService) *ProgressController {
	return &ProgressController{Svc: svc}
}

// Summary reports progress between ?from and ?to, defaulting to the current
// calendar month.
func (h *ProgressController) Summary(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	from, to := datatypes.Date(first), datatypes.Date(last)

	f, err := trackingFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if f.From != nil {
		from = *f.From
	}
	if f.To != nil {
		to = *f.To
	}

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
