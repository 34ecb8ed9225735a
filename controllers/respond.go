package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/guraspy/personalized-workout-api/logger"
	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const genericServerError = "An unexpected error occurred. Please try again later."

// respondError maps service errors onto status codes. Internal errors are
// logged and replaced by a generic message.
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var cErr *services.ConflictError
	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid input.", "fields": vErr.Fields})
	case errors.As(err, &cErr):
		body := gin.H{"error": cErr.Message}
		if cErr.Field != "" {
			body["fields"] = map[string]string{cErr.Field: cErr.Message}
		}
		c.AbortWithStatusJSON(http.StatusConflict, body)
	case errors.Is(err, services.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found."})
	case errors.Is(err, services.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": genericServerError})
	}
}

// bindJSON decodes and validates the request body into obj. Decoding and
// validator failures come back as a *services.ValidationError.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	return bindingError(err)
}

func bindingError(err error) error {
	v := &services.ValidationError{}
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			v.Add(jsonFieldName(fe), validationMessage(fe))
		}
	case errors.As(err, &typeErr):
		v.Add(typeErr.Field, fmt.Sprintf("Expected a value of type %s.", typeErr.Type.String()))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		v.Add("non_field_errors", "JSON parse error.")
	case errors.Is(err, io.EOF):
		v.Add("non_field_errors", "Request body is empty.")
	default:
		v.Add("non_field_errors", err.Error())
	}
	return v
}

// jsonFieldName lowercases the struct field into the snake_case key the
// client sent. Request structs name fields so that this holds.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// idParam parses the :id path segment. A malformed id is reported as not
// found, the same as an id that does not exist.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, services.ErrNotFound
	}
	return uint(id), nil
}

func boolQuery(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &services.ValidationError{Fields: map[string]string{key: "Must be true or false."}}
	}
	return &b, nil
}

// requestUser reads the user id set by the auth middleware, answering 401
// itself when it is missing.
func requestUser(c *gin.Context) (uint, bool) {
	id, ok := userIDFromCtx(c)
	if !ok {
		respondError(c, services.ErrUnauthorized)
	}
	return id, ok
}
