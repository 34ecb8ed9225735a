package controllers

import (
	"net/http"
	"time"

	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type TrackingController struct {
	Svc *services.TrackingService
}

func NewTrackingController(svc *services.TrackingService) *TrackingController {
	return &TrackingController{Svc: svc}
}

func (h *TrackingController) List(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	filter, err := trackingFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.Svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(entries, newTrackingResponse))
}

func (h *TrackingController) Get(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTrackingResponse(entry))
}

func (h *TrackingController) Create(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	var input services.TrackingInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.Svc.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTrackingResponse(entry))
}

// Update serves PUT (full) and PATCH (partial).
func (h *TrackingController) Update(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.TrackingInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	entry, err := h.Svc.Update(c.Request.Context(), userID, id, input, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTrackingResponse(entry))
}

func (h *TrackingController) Delete(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func trackingFilter(c *gin.Context) (services.TrackingFilter, error) {
	var f services.TrackingFilter
	v := &services.ValidationError{}
	for key, dst := range map[string]**datatypes.Date{"from": &f.From, "to": &f.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := services.ParseDate(raw)
		if err != nil {
			v.Add(key, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
			continue
		}
		*dst = &d
	}
	if f.From != nil && f.To != nil && time.Time(*f.To).Before(time.Time(*f.From)) {
		v.Add("to", "Must be on or after from.")
	}
	return f, v.OrNil()
}
