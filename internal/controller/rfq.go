package controller

import (
	"errors"
	"net/http"

	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/lifecycle"
	"quotation-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type rfqRoutesHandler struct {
	rfqService service.RFQ
	validate   *validator.Validate
}

func newRFQRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *rfqRoutesHandler {
	h := &rfqRoutesHandler{rfqService: services.RFQ, validate: v}

	outer.GET("/rfqs", h.GetRFQs)
	outer.GET("/rfqs/:rfqId", h.GetRFQ)
	outer.GET("/rfqs/:rfqId/status", h.GetRFQStatus)
	outer.PUT("/rfqs/:rfqId/accept", h.AcceptRFQ)
	outer.PUT("/rfqs/:rfqId/reject", h.RejectRFQ)

	return h
}

func rfqErrorStatus(err error) (int, string) {
	var transitionErr *lifecycle.InvalidTransitionError
	switch {
	case errors.Is(err, service.ErrRFQNotFound):
		return http.StatusNotFound, "There is no rfq with given id"
	case errors.As(err, &transitionErr):
		return http.StatusUnprocessableEntity, transitionErr.Error()
	case errors.Is(err, lifecycle.ErrMissingValidityDate):
		return http.StatusBadRequest, "Quotation validity date is required to accept an rfq"
	case errors.Is(err, lifecycle.ErrMissingRejectionComment):
		return http.StatusBadRequest, "A comment is required to reject an rfq"
	}

	return http.StatusInternalServerError, "Error"
}

type getRFQsInput struct {
	Limit    int32    `query:"limit" validate:"gte=0,lte=50"`
	Offset   int32    `query:"offset" validate:"gte=0"`
	Statuses []string `query:"status" validate:"dive,oneof=New Accepted Rejected Submitted Draft RecallPending"`
}

func newGetRFQsInput() getRFQsInput {
	return getRFQsInput{Limit: defaultLimit, Offset: defaultOffset, Statuses: make([]string, 0)}
}

// /rfqs
func (h *rfqRoutesHandler) GetRFQs(c echo.Context) error {
	var input = newGetRFQsInput()
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	rfqs, err := h.rfqService.GetRFQs(c.Request().Context(), input.Statuses, pg)
	if err != nil {
		status, reason := rfqErrorStatus(err)
		if e := c.JSON(status, errorResponse{reason}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, rfqs); e != nil {
		return e
	}

	return nil
}

type getRFQInput struct {
	RfqId string `param:"rfqId" validate:"required,uuid"`
}

// /rfqs/:rfqId
func (h *rfqRoutesHandler) GetRFQ(c echo.Context) error {
	input := getRFQInput{RfqId: c.Param("rfqId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	rfq, err := h.rfqService.GetRFQById(c.Request().Context(), input.RfqId)
	if err != nil {
		status, reason := rfqErrorStatus(err)
		if e := c.JSON(status, errorResponse{reason}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, rfq); e != nil {
		return e
	}

	return nil
}

// /rfqs/:rfqId/status
func (h *rfqRoutesHandler) GetRFQStatus(c echo.Context) error {
	input := getRFQInput{RfqId: c.Param("rfqId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	status, err := h.rfqService.GetRFQStatusById(c.Request().Context(), input.RfqId)
	if err != nil {
		httpStatus, reason := rfqErrorStatus(err)
		if e := c.JSON(httpStatus, errorResponse{reason}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, status); e != nil {
		return e
	}

	return nil
}

type acceptRFQInput struct {
	RfqId                 string `param:"rfqId" validate:"required,uuid"`
	QuotationValidityDate string `json:"quotationValidityDate" validate:"required"`
}

// /rfqs/:rfqId/accept
func (h *rfqRoutesHandler) AcceptRFQ(c echo.Context) error {
	var input acceptRFQInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.RfqId = c.Param("rfqId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	rfq, err := h.rfqService.AcceptRFQ(c.Request().Context(), input.RfqId, input.QuotationValidityDate)
	if err != nil {
		status, reason := rfqErrorStatus(err)
		if e := c.JSON(status, errorResponse{reason}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, rfq); e != nil {
		return e
	}

	return nil
}

type rejectRFQInput struct {
	RfqId   string `param:"rfqId" validate:"required,uuid"`
	Comment string `json:"comment" validate:"required,max=500"`
}

// /rfqs/:rfqId/reject
func (h *rfqRoutesHandler) RejectRFQ(c echo.Context) error {
	var input rejectRFQInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.RfqId = c.Param("rfqId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	rfq, err := h.rfqService.RejectRFQ(c.Request().Context(), input.RfqId, input.Comment)
	if err != nil {
		status, reason := rfqErrorStatus(err)
		if e := c.JSON(status, errorResponse{reason}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, rfq); e != nil {
		return e
	}

	return nil
}
