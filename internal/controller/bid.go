package controller

import (
	"net/http"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}

	authed := outer.Group("", requireCaller)
	authed.POST("/bids/new", h.PostBid)
	authed.GET("/bids/my", h.GetUserBids)
	authed.GET("/bids/my/stats", h.GetUserBidStats)
	authed.PATCH("/bids/:bidId/hire", h.HireBid)
	authed.GET("/jobs/:jobId/bids", h.GetJobBids)

	return h
}

type postBidInput struct {
	JobId   string `json:"jobId" validate:"required,uuid"`
	Message string `json:"message" validate:"required,max=2000"`
	Price   int64  `json:"price" validate:"required,gt=0"`
}

// /bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	jobId, _ := uuid.Parse(input.JobId)
	model := &entity.CreateBidInput{JobId: jobId, Message: input.Message, Price: input.Price}

	bid, err := h.bidService.CreateBid(c.Request().Context(), callerFromContext(c), model)
	if err == nil {
		return c.JSON(http.StatusOK, bid)
	}

	switch err {
	case service.ErrCallerNotFreelancer:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only freelancers can submit bids"}); e != nil {
			return e
		}
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	case service.ErrOwnJobBid:
		if e := c.JSON(http.StatusForbidden, errorResponse{"You can't bid on your own job"}); e != nil {
			return e
		}
	case service.ErrJobNotOpen:
		if e := c.JSON(http.StatusConflict, errorResponse{"The job is no longer open for bids"}); e != nil {
			return e
		}
	case service.ErrDuplicatePendingBid:
		if e := c.JSON(http.StatusConflict, errorResponse{"You already have a pending bid on this job"}); e != nil {
			return e
		}
	case service.ErrEmptyMessage, service.ErrInvalidPrice:
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

// /bids/my
func (h *bidRoutesHandler) GetUserBids(c echo.Context) error {
	bids, err := h.bidService.GetUserBids(c.Request().Context(), callerFromContext(c))
	if err == nil {
		return c.JSON(http.StatusOK, bids)
	}

	switch err {
	case service.ErrCallerNotFreelancer:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only freelancers have submitted bids"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

// /bids/my/stats
func (h *bidRoutesHandler) GetUserBidStats(c echo.Context) error {
	stats, err := h.bidService.GetUserBidStats(c.Request().Context(), callerFromContext(c))
	if err == nil {
		return c.JSON(http.StatusOK, stats)
	}

	switch err {
	case service.ErrCallerNotFreelancer:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only freelancers have bid stats"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

// /bids/:bidId/hire
func (h *bidRoutesHandler) HireBid(c echo.Context) error {
	bidId, err := uuid.Parse(c.Param("bidId"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Bid id must be a valid uuid"}); e != nil {
			return e
		}

		return err
	}

	result, err := h.bidService.HireBid(c.Request().Context(), callerFromContext(c), bidId)
	if err == nil {
		return c.JSON(http.StatusOK, result)
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"The bid's job no longer exists"}); e != nil {
			return e
		}
	case service.ErrUserHasNoAccessToJob:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the job owner can hire"}); e != nil {
			return e
		}
	case service.ErrJobAlreadyAssigned:
		if e := c.JSON(http.StatusConflict, errorResponse{"The job is already assigned"}); e != nil {
			return e
		}
	case service.ErrBidNotPending:
		if e := c.JSON(http.StatusConflict, errorResponse{"The bid is not pending"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /jobs/:jobId/bids
func (h *bidRoutesHandler) GetJobBids(c echo.Context) error {
	jobId, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a valid uuid"}); e != nil {
			return e
		}

		return err
	}

	bids, err := h.bidService.GetJobBids(c.Request().Context(), callerFromContext(c), jobId)
	if err == nil {
		return c.JSON(http.StatusOK, bids)
	}

	switch err {
	case service.ErrJobNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"}); e != nil {
			return e
		}
	case service.ErrUserHasNoAccessToJob:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the job owner can see its bids"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
