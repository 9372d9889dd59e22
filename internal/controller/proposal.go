package controller

import (
	"errors"
	"net/http"

	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/lifecycle"
	"quotation-management-api/internal/quoting"
	"quotation-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type proposalRoutesHandler struct {
	proposalService service.Proposal
	validate        *validator.Validate
}

func newProposalRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *proposalRoutesHandler {
	h := &proposalRoutesHandler{proposalService: services.Proposal, validate: v}

	outer.POST("/rfqs/:rfqId/proposal", h.BeginQuoting)
	outer.GET("/rfqs/:rfqId/proposal", h.GetProposal)

	outer.GET("/proposals/:proposalId/items/current", h.CurrentItem)
	outer.PUT("/proposals/:proposalId/items/next", h.NextItem)
	outer.PUT("/proposals/:proposalId/items/previous", h.PreviousItem)
	outer.PUT("/proposals/:proposalId/items", h.SaveItem)
	outer.PUT("/proposals/:proposalId/finish", h.FinishQuoting)

	outer.PATCH("/proposals/:proposalId/details", h.UpdateDetails)
	outer.PUT("/proposals/:proposalId/shipment", h.SetShipment)

	outer.POST("/proposals/:proposalId/submit", h.SubmitProposal)
	outer.POST("/proposals/:proposalId/recall", h.RequestRecall)
	outer.PUT("/proposals/:proposalId/recall/resolve", h.ResolveRecall)

	return h
}

func proposalErrorStatus(err error) (int, string) {
	var transitionErr *lifecycle.InvalidTransitionError
	switch {
	case errors.Is(err, service.ErrRFQNotFound):
		return http.StatusNotFound, "There is no rfq with given id"
	case errors.Is(err, service.ErrProposalNotFound):
		return http.StatusNotFound, "There is no proposal with given id"
	case errors.Is(err, service.ErrLineItemNotFound):
		return http.StatusNotFound, "There is no line item quoting the given rfq item"
	case errors.Is(err, service.ErrRFQNotAccepted):
		return http.StatusUnprocessableEntity, "Accept the rfq before starting a proposal"
	case errors.Is(err, service.ErrProposalNotEditable):
		return http.StatusUnprocessableEntity, "Proposal can't be edited in its current status"
	case errors.Is(err, service.ErrNoActiveQuotingSession):
		return http.StatusConflict, "No active quoting session, reopen the proposal first"
	case errors.Is(err, service.ErrStaleQuotingSession):
		return http.StatusConflict, "Quoting session is stale, reopen the proposal"
	case errors.Is(err, service.ErrInvalidNumber):
		return http.StatusBadRequest, "Numeric fields must be non-negative numbers"
	case errors.Is(err, quoting.ErrNoItemsQuoted):
		return http.StatusUnprocessableEntity, "Price at least one line item before submitting"
	case errors.Is(err, quoting.ErrInvalidValidityDate):
		return http.StatusUnprocessableEntity, "Quotation validity date is missing or in the past"
	case errors.As(err, &transitionErr):
		return http.StatusUnprocessableEntity, transitionErr.Error()
	}

	return http.StatusInternalServerError, "Error"
}

func (h *proposalRoutesHandler) respond(c echo.Context, payload interface{}, err error) error {
	if err != nil {
		status, reason := proposalErrorStatus(err)
		if e := c.JSON(status, errorResponse{reason}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, payload); e != nil {
		return e
	}

	return nil
}

type beginQuotingInput struct {
	RfqId                string `param:"rfqId" validate:"required,uuid"`
	Currency             string `json:"currency" validate:"omitempty,len=3"`
	DefaultVatPercentage string `json:"defaultVatPercentage" validate:"omitempty"`
}

// /rfqs/:rfqId/proposal
func (h *proposalRoutesHandler) BeginQuoting(c echo.Context) error {
	var input beginQuotingInput
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

	model := &entity.BeginQuotingInput{
		RfqId:                input.RfqId,
		Currency:             input.Currency,
		DefaultVatPercentage: input.DefaultVatPercentage,
	}

	proposal, err := h.proposalService.BeginQuoting(c.Request().Context(), model)

	return h.respond(c, proposal, err)
}

type proposalIdInput struct {
	ProposalId string `param:"proposalId" validate:"required,uuid"`
}

// /rfqs/:rfqId/proposal
func (h *proposalRoutesHandler) GetProposal(c echo.Context) error {
	input := getRFQInput{RfqId: c.Param("rfqId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	proposal, err := h.proposalService.GetProposalByRfqId(c.Request().Context(), input.RfqId)

	return h.respond(c, proposal, err)
}

func (h *proposalRoutesHandler) bindProposalId(c echo.Context) (string, error) {
	input := proposalIdInput{ProposalId: c.Param("proposalId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return "", e
		}

		return "", err
	}

	return input.ProposalId, nil
}

// /proposals/:proposalId/items/current
func (h *proposalRoutesHandler) CurrentItem(c echo.Context) error {
	proposalId, err := h.bindProposalId(c)
	if err != nil {
		return err
	}

	step, err := h.proposalService.CurrentItem(c.Request().Context(), proposalId)

	return h.respond(c, step, err)
}

// /proposals/:proposalId/items/next
func (h *proposalRoutesHandler) NextItem(c echo.Context) error {
	proposalId, err := h.bindProposalId(c)
	if err != nil {
		return err
	}

	step, err := h.proposalService.NextItem(c.Request().Context(), proposalId)

	return h.respond(c, step, err)
}

// /proposals/:proposalId/items/previous
func (h *proposalRoutesHandler) PreviousItem(c echo.Context) error {
	proposalId, err := h.bindProposalId(c)
	if err != nil {
		return err
	}

	step, err := h.proposalService.PreviousItem(c.Request().Context(), proposalId)

	return h.respond(c, step, err)
}

type saveLineItemInput struct {
	ProposalId    string `param:"proposalId" validate:"required,uuid"`
	RfqItemId     string `json:"rfqItemId" validate:"required,uuid"`
	ProductName   string `json:"productName" validate:"omitempty,max=200"`
	Brand         string `json:"brand" validate:"omitempty,max=100"`
	Origin        string `json:"origin" validate:"omitempty,max=100"`
	Packaging     string `json:"packaging" validate:"omitempty,max=100"`
	Sku           string `json:"sku" validate:"omitempty,max=100"`
	Quantity      string `json:"quantity" validate:"omitempty"`
	UnitPrice     string `json:"unitPrice" validate:"omitempty"`
	DiscountType  string `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue string `json:"discountValue" validate:"omitempty"`
	VatPercentage string `json:"vatPercentage" validate:"omitempty"`
}

// /proposals/:proposalId/items
func (h *proposalRoutesHandler) SaveItem(c echo.Context) error {
	var input saveLineItemInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.ProposalId = c.Param("proposalId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.SaveLineItemInput{
		RfqItemId:     input.RfqItemId,
		ProductName:   input.ProductName,
		Brand:         input.Brand,
		Origin:        input.Origin,
		Packaging:     input.Packaging,
		Sku:           input.Sku,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		VatPercentage: input.VatPercentage,
	}

	step, err := h.proposalService.SaveItem(c.Request().Context(), input.ProposalId, model)

	return h.respond(c, step, err)
}

// /proposals/:proposalId/finish
func (h *proposalRoutesHandler) FinishQuoting(c echo.Context) error {
	proposalId, err := h.bindProposalId(c)
	if err != nil {
		return err
	}

	proposal, err := h.proposalService.FinishQuoting(c.Request().Context(), proposalId)

	return h.respond(c, proposal, err)
}

type updateProposalDetailsInput struct {
	ProposalId         string `param:"proposalId" validate:"required,uuid"`
	PaymentTerms       string `json:"paymentTerms" validate:"omitempty,max=200"`
	ShipmentMethod     string `json:"shipmentMethod" validate:"omitempty,max=100"`
	TermsAndConditions string `json:"termsAndConditions" validate:"omitempty,max=2000"`
	AdditionalBenefits string `json:"additionalBenefits" validate:"omitempty,max=2000"`
}

// /proposals/:proposalId/details
func (h *proposalRoutesHandler) UpdateDetails(c echo.Context) error {
	var input updateProposalDetailsInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.ProposalId = c.Param("proposalId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.UpdateProposalDetailsInput{
		PaymentTerms:       input.PaymentTerms,
		ShipmentMethod:     input.ShipmentMethod,
		TermsAndConditions: input.TermsAndConditions,
		AdditionalBenefits: input.AdditionalBenefits,
	}

	proposal, err := h.proposalService.UpdateDetails(c.Request().Context(), input.ProposalId, model)

	return h.respond(c, proposal, err)
}

type setShipmentInput struct {
	ProposalId      string `param:"proposalId" validate:"required,uuid"`
	IncludeShipment bool   `json:"includeShipment"`
	ShipmentCharge  string `json:"shipmentCharge" validate:"omitempty"`
}

// /proposals/:proposalId/shipment
func (h *proposalRoutesHandler) SetShipment(c echo.Context) error {
	var input setShipmentInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.ProposalId = c.Param("proposalId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	proposal, err := h.proposalService.SetShipment(c.Request().Context(), input.ProposalId, input.IncludeShipment, input.ShipmentCharge)

	return h.respond(c, proposal, err)
}

// /proposals/:proposalId/submit
func (h *proposalRoutesHandler) SubmitProposal(c echo.Context) error {
	proposalId, err := h.bindProposalId(c)
	if err != nil {
		return err
	}

	proposal, err := h.proposalService.SubmitProposal(c.Request().Context(), proposalId)

	return h.respond(c, proposal, err)
}

// /proposals/:proposalId/recall
func (h *proposalRoutesHandler) RequestRecall(c echo.Context) error {
	proposalId, err := h.bindProposalId(c)
	if err != nil {
		return err
	}

	proposal, err := h.proposalService.RequestRecall(c.Request().Context(), proposalId)

	return h.respond(c, proposal, err)
}

type resolveRecallInput struct {
	ProposalId string `param:"proposalId" validate:"required,uuid"`
	Approved   *bool  `json:"approved" validate:"required"`
}

// /proposals/:proposalId/recall/resolve
func (h *proposalRoutesHandler) ResolveRecall(c echo.Context) error {
	var input resolveRecallInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.ProposalId = c.Param("proposalId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	proposal, err := h.proposalService.ResolveRecall(c.Request().Context(), input.ProposalId, *input.Approved)

	return h.respond(c, proposal, err)
}
