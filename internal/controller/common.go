package controller

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"gig-marketplace-api/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

const callerContextKey = "caller"

type errorResponse struct {
	Reason string `json:"reason"`
}

// requireCaller builds the caller identity from headers set by the external
// authentication layer. The values are trusted, not re-derived.
func requireCaller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Request().Header.Get("X-User-Id"))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{"Missing or malformed X-User-Id header"})
		}

		role := entity.Role(c.Request().Header.Get("X-User-Role"))
		if role != entity.RoleClient && role != entity.RoleFreelancer {
			return c.JSON(http.StatusUnauthorized, errorResponse{"Missing or unknown X-User-Role header"})
		}

		c.Set(callerContextKey, &entity.Caller{Id: id, Role: role})

		return next(c)
	}
}

func callerFromContext(c echo.Context) *entity.Caller {
	return c.Get(callerContextKey).(*entity.Caller)
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	if fe.Type().Kind() == reflect.String {
		return getMessageForString(fe)
	}

	return getMessageForNumber(fe)
}

func getMessageForNumber(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return "should be greater than " + fe.Param()
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}
