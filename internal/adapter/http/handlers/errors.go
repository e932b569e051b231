package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"prefacturation_service/internal/domain/reconciliation"
	"prefacturation_service/internal/usecase"
	"prefacturation_service/pkg"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the caller identity recorded in the audit trail.
const HeaderUserID = "X-User-ID"

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidIndex   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Discrepancy index must be an integer", http.StatusBadRequest)
)

func invalidPayload(err error) *pkg.AppError {
	return pkg.NewDomainError("VALIDATION_ERROR", "Invalid payload", err, http.StatusBadRequest)
}

func mapPrefacturationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPrefacturationID), errors.Is(err, usecase.ErrInvalidOrderID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPrefacturationNotFound):
		return pkg.NewDomainErrorSimple("PREFACTURATION_NOT_FOUND", "Prefacturation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPrefacturationAlreadyExists):
		return pkg.NewDomainErrorSimple("PREFACTURATION_ALREADY_EXISTS", "Prefacturation already exists for this order", http.StatusConflict)
	case errors.Is(err, reconciliation.ErrValidation):
		return pkg.NewDomainError("VALIDATION_ERROR", "Invalid input", err, http.StatusUnprocessableEntity)
	case errors.Is(err, reconciliation.ErrInvalidSnapshot):
		return pkg.NewDomainError("INVALID_SNAPSHOT", "Calculation snapshot is incomplete", err, http.StatusUnprocessableEntity)
	case errors.Is(err, reconciliation.ErrInvalidState):
		return pkg.NewDomainError("INVALID_STATE", "Operation not allowed in the current state", err, http.StatusConflict)
	case errors.Is(err, reconciliation.ErrMissingFacts):
		return pkg.NewDomainError("MISSING_FACTS", "Required external facts are unavailable", err, http.StatusFailedDependency)
	case errors.Is(err, reconciliation.ErrConcurrentModification):
		return pkg.NewDomainError("CONCURRENT_MODIFICATION", "Prefacturation was modified concurrently, retry the operation", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func actorFrom(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(HeaderUserID))
}

func indexParam(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, false
	}
	return idx, true
}
