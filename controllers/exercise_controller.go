package controllers

import (
	"net/http"

	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
)

// ExerciseController exposes the shared library read-only.
type ExerciseController struct {
	Svc *services.ExerciseService
}

func NewExerciseController(svc *services.ExerciseService) *ExerciseController {
	return &ExerciseController{Svc: svc}
}

func (h *ExerciseController) List(c *gin.Context) {
	exercises, err := h.Svc.List(c.Request.Context(), services.ExerciseFilter{
		Search: c.Query("search"),
		Muscle: c.Query("muscle"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(exercises, newExerciseResponse))
}

func (h *ExerciseController) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	e, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newExerciseResponse(e))
}
