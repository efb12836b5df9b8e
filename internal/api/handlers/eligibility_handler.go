package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zatekoja/Claimsadministration/internal/application/services"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/eligibility"
	apperrors "github.com/zatekoja/Claimsadministration/pkg/errors"
)

// EligibilityChecker defines the interface for eligibility operations
type EligibilityChecker interface {
	CheckEligibility(ctx context.Context, req *services.EligibilityCheckRequest) (*entities.EligibilityResult, error)
	InvalidateBenefitConfiguration(ctx context.Context, id string) error
}

// DecisionReader reads recorded decisions and audit trails
type DecisionReader interface {
	GetByRequestID(ctx context.Context, requestID string) (*entities.AuditLogEntry, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entities.AuditLogEntry, error)
}

// EligibilityHandler handles eligibility check requests
type EligibilityHandler struct {
	checker EligibilityChecker
	audit   DecisionReader
}

// NewEligibilityHandler creates a new eligibility handler
func NewEligibilityHandler(checker EligibilityChecker, audit DecisionReader) *EligibilityHandler {
	return &EligibilityHandler{
		checker: checker,
		audit:   audit,
	}
}

// CheckEligibility handles POST /api/eligibility/check
func (h *EligibilityHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	var req services.EligibilityCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.checker.CheckEligibility(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// an ineligible decision is still a successful check
	respondWithJSON(w, http.StatusOK, result)
}

// GetDecision handles GET /api/eligibility/decisions/{requestId}
func (h *EligibilityHandler) GetDecision(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("requestId")
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "request ID is required")
		return
	}

	entry, err := h.audit.GetByRequestID(r.Context(), requestID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

// InvalidateBenefitConfiguration handles DELETE /api/benefit-configurations/{id}/cache
func (h *EligibilityHandler) InvalidateBenefitConfiguration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "benefit configuration ID is required")
		return
	}

	if err := h.checker.InvalidateBenefitConfiguration(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps domain errors to HTTP status codes. Business-rule
// failures and illegal transitions carry their structured detail in the body
// so callers can match on codes instead of parsing messages.
func respondWithAppError(w http.ResponseWriter, err error) {
	var failure *eligibility.Failure
	if errors.As(err, &failure) {
		respondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  failure.Message,
			"code":   failure.Code,
			"detail": failure.Detail,
		})
		return
	}

	var invalid *entities.InvalidTransitionError
	if errors.As(err, &invalid) {
		respondWithJSON(w, http.StatusConflict, map[string]interface{}{
			"error":         invalid.Error(),
			"from":          invalid.From,
			"to":            invalid.To,
			"required_role": invalid.RequiredRole,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeUnauthorized:
			respondWithError(w, http.StatusForbidden, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, appErr.Message)
		}
		return
	}

	respondWithError(w, http.StatusInternalServerError, err.Error())
}
