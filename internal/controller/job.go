package controller

import (
	"net/http"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

type jobRoutesHandler struct {
	jobService service.Job
	validate   *validator.Validate
}

func newJobRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *jobRoutesHandler {
	h := &jobRoutesHandler{jobService: services.Job, validate: v}

	outer.GET("/jobs", h.GetOpenJobs)
	outer.GET("/jobs/:jobId", h.GetJob)

	authed := outer.Group("", requireCaller)
	authed.POST("/jobs/new", h.PostJob)
	authed.GET("/jobs/my", h.GetUserJobs)
	authed.GET("/jobs/my/stats", h.GetUserJobStats)
	authed.PATCH("/jobs/:jobId/edit", h.EditJob)
	authed.DELETE("/jobs/:jobId", h.DeleteJob)

	return h
}

type getOpenJobsInput struct {
	Text     string `query:"text" validate:"max=200"`
	Category string `query:"category" validate:"max=100"`
	Budget   string `query:"budget" validate:"omitempty,oneof=0-500 500-1000 1000-5000 5000+"`
}

// /jobs
func (h *jobRoutesHandler) GetOpenJobs(c echo.Context) error {
	input := getOpenJobsInput{
		Text:     c.QueryParam("text"),
		Category: c.QueryParam("category"),
		Budget:   c.QueryParam("budget"),
	}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	filter := &entity.JobFilter{
		Text:        input.Text,
		Category:    input.Category,
		BudgetRange: entity.BudgetRange(input.Budget),
	}

	jobs, err := h.jobService.GetOpenJobs(c.Request().Context(), filter)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}

	return c.JSON(http.StatusOK, jobs)
}

// /jobs/:jobId
func (h *jobRoutesHandler) GetJob(c echo.Context) error {
	jobId, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a valid uuid"}); e != nil {
			return e
		}

		return err
	}

	job, err := h.jobService.GetJobById(c.Request().Context(), jobId)
	if err == nil {
		return c.JSON(http.StatusOK, job)
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type postJobInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=2000"`
	Category    string `json:"category" validate:"max=100"`
	Budget      int64  `json:"budget" validate:"required,gt=0"`
}

// /jobs/new
func (h *jobRoutesHandler) PostJob(c echo.Context) error {
	var input postJobInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateJobInput{
		Title: input.Title, Description: input.Description,
		Category: input.Category, Budget: input.Budget,
	}

	job, err := h.jobService.CreateJob(c.Request().Context(), callerFromContext(c), model)
	if err == nil {
		return c.JSON(http.StatusOK, job)
	}

	switch err {
	case service.ErrCallerNotClient:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only clients can post jobs"}); e != nil {
			return e
		}
	case service.ErrEmptyTitle, service.ErrEmptyDescription, service.ErrInvalidBudget:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /jobs/my
func (h *jobRoutesHandler) GetUserJobs(c echo.Context) error {
	jobs, err := h.jobService.GetUserJobs(c.Request().Context(), callerFromContext(c))
	if err == nil {
		return c.JSON(http.StatusOK, jobs)
	}

	switch err {
	case service.ErrCallerNotClient:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only clients have posted jobs"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

// /jobs/my/stats
func (h *jobRoutesHandler) GetUserJobStats(c echo.Context) error {
	stats, err := h.jobService.GetUserJobStats(c.Request().Context(), callerFromContext(c))
	if err == nil {
		return c.JSON(http.StatusOK, stats)
	}

	switch err {
	case service.ErrCallerNotClient:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only clients have job stats"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

type editJobInput struct {
	Title       string `json:"title" validate:"max=100"`
	Description string `json:"description" validate:"max=2000"`
	Budget      int64  `json:"budget" validate:"gte=0"`
}

// /jobs/:jobId/edit
func (h *jobRoutesHandler) EditJob(c echo.Context) error {
	jobId, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a valid uuid"}); e != nil {
			return e
		}

		return err
	}

	var input editJobInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	patch := &entity.JobPatch{Title: input.Title, Description: input.Description, Budget: input.Budget}
	job, err := h.jobService.EditJobById(c.Request().Context(), callerFromContext(c), jobId, patch)
	if err == nil {
		return c.JSON(http.StatusOK, job)
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	case service.ErrUserHasNoAccessToJob:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the job owner can edit it"}); e != nil {
			return e
		}
	case service.ErrNoNewChanges, service.ErrInvalidBudget:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /jobs/:jobId
func (h *jobRoutesHandler) DeleteJob(c echo.Context) error {
	jobId, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a valid uuid"}); e != nil {
			return e
		}

		return err
	}

	err = h.jobService.DeleteJobById(c.Request().Context(), callerFromContext(c), jobId)
	if err == nil {
		return c.NoContent(http.StatusNoContent)
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	case service.ErrUserHasNoAccessToJob:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the job owner can delete it"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
