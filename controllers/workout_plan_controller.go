package controllers

import (
	"net/http"

	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
)

type WorkoutPlanController struct {
	Svc *services.WorkoutPlanService
}

func NewWorkoutPlanController(svc *services.WorkoutPlanService) *WorkoutPlanController {
	return &WorkoutPlanController{Svc: svc}
}

func (h *WorkoutPlanController) List(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	active, err := boolQuery(c, "active")
	if err != nil {
		respondError(c, err)
		return
	}
	plans, err := h.Svc.List(c.Request.Context(), userID, services.WorkoutPlanFilter{Active: active})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(plans, newWorkoutPlanResponse))
}

func (h *WorkoutPlanController) Get(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	plan, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWorkoutPlanResponse(plan))
}

func (h *WorkoutPlanController) Create(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	var input services.WorkoutPlanInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	plan, err := h.Svc.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newWorkoutPlanResponse(plan))
}

// Update serves PUT (full) and PATCH (partial).
func (h *WorkoutPlanController) Update(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.WorkoutPlanInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	plan, err := h.Svc.Update(c.Request.Context(), userID, id, input, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWorkoutPlanResponse(plan))
}

func (h *WorkoutPlanController) Delete(c *gin.Context) {
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
