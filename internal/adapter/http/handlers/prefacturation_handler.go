package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	request "prefacturation_service/internal/adapter/http/dto/request"
	response "prefacturation_service/internal/adapter/http/dto/response"
	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/usecase"
	"prefacturation_service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const maxListLimit = 1000

// PrefacturationHandler exposes the prefacturation lifecycle: generation,
// invoice upload, block evaluation and the explicit transitions.
type PrefacturationHandler struct {
	usecase usecase.IPrefacturationUseCase
}

func NewPrefacturationHandler(uc usecase.IPrefacturationUseCase) *PrefacturationHandler {
	return &PrefacturationHandler{usecase: uc}
}

// Generate godoc
// @Summary      Generate a prefacturation from a delivered order
// @Tags         prefacturations
// @Accept       json
// @Produce      json
// @Param        payload  body      request.GeneratePrefacturationRequest  true  "Delivered order"
// @Success      201      {object}  response.PrefacturationResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Router       /prefacturations [post]
func (h *PrefacturationHandler) Generate(c *gin.Context) {
	var payload request.GeneratePrefacturationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[prefacturation][handler] generate invalid payload err=%v", err)
		respondError(c, invalidPayload(err))
		return
	}

	p, err := h.usecase.Generate(c.Request.Context(), payload.ToInput(actorFrom(c)))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPrefacturation(p))
}

// GetByID godoc
// @Summary      Read a prefacturation
// @Tags         prefacturations
// @Produce      json
// @Param        id   path      string  true  "Prefacturation ID"
// @Success      200  {object}  response.PrefacturationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /prefacturations/{id} [get]
func (h *PrefacturationHandler) GetByID(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturation(p))
}

// List godoc
// @Summary      List prefacturations
// @Tags         prefacturations
// @Produce      json
// @Param        status      query     string  false  "Displayed status"
// @Param        carrier_id  query     string  false  "Carrier ID"
// @Param        client_id   query     string  false  "Client ID"
// @Param        limit       query     int     false  "Maximum rows (1-1000)"
// @Success      200         {object}  response.PrefacturationListResponse
// @Router       /prefacturations [get]
func (h *PrefacturationHandler) List(c *gin.Context) {
	filter, ok := filterFrom(c)
	if !ok {
		respondError(c, errInvalidRequest)
		return
	}
	items, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturationList(items))
}

// Stats godoc
// @Summary      Billing dashboard figures
// @Tags         stats
// @Produce      json
// @Success      200  {object}  entities.PrefacturationStats
// @Router       /stats/prefacturations [get]
func (h *PrefacturationHandler) Stats(c *gin.Context) {
	filter, ok := filterFrom(c)
	if !ok {
		respondError(c, errInvalidRequest)
		return
	}
	stats, err := h.usecase.Stats(c.Request.Context(), filter)
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AttachInvoice godoc
// @Summary      Attach the carrier invoice and run discrepancy detection
// @Tags         prefacturations
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Prefacturation ID"
// @Param        payload  body      request.AttachInvoiceRequest  true  "Invoice and OCR values"
// @Success      200      {object}  response.PrefacturationResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/invoice [post]
func (h *PrefacturationHandler) AttachInvoice(c *gin.Context) {
	var payload request.AttachInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[prefacturation][handler] attach-invoice invalid payload id=%s err=%v", c.Param("id"), err)
		respondError(c, invalidPayload(err))
		return
	}

	p, err := h.usecase.AttachInvoice(c.Request.Context(), c.Param("id"), payload.ToEntity(), actorFrom(c))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturation(p))
}

// EvaluateBlocks godoc
// @Summary      Re-evaluate blocks against the collaborators' facts
// @Tags         blocks
// @Produce      json
// @Param        id   path      string  true  "Prefacturation ID"
// @Success      200  {object}  response.PrefacturationResponse
// @Failure      424  {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/blocks/evaluate [post]
func (h *PrefacturationHandler) EvaluateBlocks(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id, _ string) (entities.Prefacturation, error) {
		return h.usecase.EvaluateBlocks(ctx, id)
	})
}

// Validate godoc
// @Summary      Validate a prefacturation with nothing left open
// @Tags         prefacturations
// @Produce      json
// @Param        id   path      string  true  "Prefacturation ID"
// @Success      200  {object}  response.PrefacturationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/validate [post]
func (h *PrefacturationHandler) Validate(c *gin.Context) {
	h.transition(c, h.usecase.Validate)
}

// Finalize godoc
// @Summary      Finalize a validated prefacturation
// @Tags         prefacturations
// @Produce      json
// @Param        id   path      string  true  "Prefacturation ID"
// @Success      200  {object}  response.PrefacturationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/finalize [post]
func (h *PrefacturationHandler) Finalize(c *gin.Context) {
	h.transition(c, h.usecase.Finalize)
}

// Archive godoc
// @Summary      Archive an exported prefacturation
// @Tags         prefacturations
// @Produce      json
// @Param        id   path      string  true  "Prefacturation ID"
// @Success      200  {object}  response.PrefacturationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/archive [post]
func (h *PrefacturationHandler) Archive(c *gin.Context) {
	h.transition(c, h.usecase.Archive)
}

// CarrierTimeout accepts every open discrepancy once the carrier validation
// window is over. Called by the external scheduler.
//
// @Summary      Apply the carrier validation timeout
// @Tags         prefacturations
// @Produce      json
// @Param        id   path      string  true  "Prefacturation ID"
// @Success      200  {object}  response.PrefacturationResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/carrier-timeout [post]
func (h *PrefacturationHandler) CarrierTimeout(c *gin.Context) {
	h.transition(c, func(ctx context.Context, id, _ string) (entities.Prefacturation, error) {
		return h.usecase.ForceAcceptAllOpen(ctx, id)
	})
}

// Export godoc
// @Summary      Mark a finalized prefacturation as exported to accounting
// @Tags         prefacturations
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Prefacturation ID"
// @Param        payload  body      request.ExportRequest  true  "Export reference"
// @Success      200      {object}  response.PrefacturationResponse
// @Router       /prefacturations/{id}/export [post]
func (h *PrefacturationHandler) Export(c *gin.Context) {
	var payload request.ExportRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, invalidPayload(err))
		return
	}
	h.transition(c, func(ctx context.Context, id, actor string) (entities.Prefacturation, error) {
		return h.usecase.MarkExported(ctx, id, payload.ExportRef, actor)
	})
}

func (h *PrefacturationHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, id, actor string) (entities.Prefacturation, error),
) {
	p, err := apply(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturation(p))
}

func filterFrom(c *gin.Context) (interfaces.PrefacturationFilter, bool) {
	filter := interfaces.PrefacturationFilter{
		Status:    entities.PrefacturationStatus(strings.TrimSpace(c.Query("status"))),
		CarrierID: strings.TrimSpace(c.Query("carrier_id")),
		ClientID:  strings.TrimSpace(c.Query("client_id")),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return interfaces.PrefacturationFilter{}, false
		}
		filter.Limit = limit
	}
	return filter, true
}
