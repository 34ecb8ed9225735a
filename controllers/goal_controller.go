package controllers

import (
	"net/http"

	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Svc *services.GoalService
}

func NewGoalController(svc *services.GoalService) *GoalController {
	return &GoalController{Svc: svc}
}

func (h *GoalController) List(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	achieved, err := boolQuery(c, "achieved")
	if err != nil {
		respondError(c, err)
		return
	}
	goals, err := h.Svc.List(c.Request.Context(), userID, services.GoalFilter{Achieved: achieved})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(goals, newGoalResponse))
}

func (h *GoalController) Get(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	goal, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGoalResponse(goal))
}

func (h *GoalController) Create(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	var input services.GoalInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	goal, err := h.Svc.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGoalResponse(goal))
}

// Update serves PUT (full) and PATCH (partial).
func (h *GoalController) Update(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var input services.GoalInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	goal, err := h.Svc.Update(c.Request.Context(), userID, id, input, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGoalResponse(goal))
}

func (h *GoalController) Delete(c *gin.Context) {
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
