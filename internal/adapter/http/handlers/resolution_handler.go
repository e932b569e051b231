package handlers

import (
	"net/http"

	request "prefacturation_service/internal/adapter/http/dto/request"
	response "prefacturation_service/internal/adapter/http/dto/response"
	"prefacturation_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ResolutionHandler handles the carrier and logistician actions on
// discrepancies and blocks.
type ResolutionHandler struct {
	usecase usecase.IResolutionUseCase
}

func NewResolutionHandler(uc usecase.IResolutionUseCase) *ResolutionHandler {
	return &ResolutionHandler{usecase: uc}
}

// AcceptDiscrepancy godoc
// @Summary      Carrier accepts a discrepancy
// @Tags         discrepancies
// @Produce      json
// @Param        id     path      string  true  "Prefacturation ID"
// @Param        index  path      int     true  "Discrepancy index"
// @Success      200    {object}  response.PrefacturationResponse
// @Failure      409    {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/discrepancies/{index}/accept [post]
func (h *ResolutionHandler) AcceptDiscrepancy(c *gin.Context) {
	idx, ok := indexParam(c)
	if !ok {
		respondError(c, errInvalidIndex)
		return
	}
	p, err := h.usecase.AcceptDiscrepancy(c.Request.Context(), c.Param("id"), idx, actorFrom(c))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturation(p))
}

// ContestDiscrepancy godoc
// @Summary      Carrier contests a discrepancy
// @Tags         discrepancies
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Prefacturation ID"
// @Param        index    path      int                                true  "Discrepancy index"
// @Param        payload  body      request.ContestDiscrepancyRequest  true  "Reason and supporting documents"
// @Success      200      {object}  response.PrefacturationResponse
// @Router       /prefacturations/{id}/discrepancies/{index}/contest [post]
func (h *ResolutionHandler) ContestDiscrepancy(c *gin.Context) {
	idx, ok := indexParam(c)
	if !ok {
		respondError(c, errInvalidIndex)
		return
	}
	var payload request.ContestDiscrepancyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, invalidPayload(err))
		return
	}
	p, err := h.usecase.ContestDiscrepancy(c.Request.Context(), c.Param("id"), idx, payload.ToInput(actorFrom(c)))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturation(p))
}

// ResolveDiscrepancy godoc
// @Summary      Logistician resolves a contested discrepancy
// @Tags         discrepancies
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Prefacturation ID"
// @Param        index    path      int                                true  "Discrepancy index"
// @Param        payload  body      request.ResolveDiscrepancyRequest  true  "Decision"
// @Success      200      {object}  response.PrefacturationResponse
// @Router       /prefacturations/{id}/discrepancies/{index}/resolve [post]
func (h *ResolutionHandler) ResolveDiscrepancy(c *gin.Context) {
	idx, ok := indexParam(c)
	if !ok {
		respondError(c, errInvalidIndex)
		return
	}
	var payload request.ResolveDiscrepancyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, invalidPayload(err))
		return
	}
	p, err := h.usecase.ResolveDiscrepancy(c.Request.Context(), c.Param("id"), idx, payload.ToInput(actorFrom(c)))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturation(p))
}

// Unblock godoc
// @Summary      Lift an active block
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Prefacturation ID"
// @Param        payload  body      request.UnblockRequest  true  "Block type or index, and reason"
// @Success      200      {object}  response.PrefacturationResponse
// @Router       /prefacturations/{id}/unblock [post]
func (h *ResolutionHandler) Unblock(c *gin.Context) {
	var payload request.UnblockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, invalidPayload(err))
		return
	}
	p, err := h.usecase.Unblock(c.Request.Context(), c.Param("id"), payload.ToInput(actorFrom(c)))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPrefacturation(p))
}

// RaiseManualBlock godoc
// @Summary      Raise a manual block
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Prefacturation ID"
// @Param        payload  body      request.ManualBlockRequest  true  "Reason"
// @Success      201      {object}  response.PrefacturationResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /prefacturations/{id}/blocks [post]
func (h *ResolutionHandler) RaiseManualBlock(c *gin.Context) {
	var payload request.ManualBlockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, invalidPayload(err))
		return
	}
	p, err := h.usecase.RaiseManualBlock(c.Request.Context(), c.Param("id"), payload.Reason, actorFrom(c))
	if err != nil {
		respondError(c, mapPrefacturationError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPrefacturation(p))
}
