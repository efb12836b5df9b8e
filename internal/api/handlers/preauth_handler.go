package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// PreAuthLifecycle defines the interface for pre-authorization operations
type PreAuthLifecycle interface {
	RequestPreAuth(ctx context.Context, preAuth *entities.PreAuthorization) (*entities.EligibilityResult, error)
	TransitionPreAuth(ctx context.Context, id string, to entities.PreAuthStatus, actor entities.ActorRole) (*entities.PreAuthorization, error)
	GetPreAuth(ctx context.Context, id string) (*entities.PreAuthorization, error)
}

// PreAuthHandler handles pre-authorization requests
type PreAuthHandler struct {
	service PreAuthLifecycle
	audit   DecisionReader
}

// NewPreAuthHandler creates a new pre-authorization handler
func NewPreAuthHandler(service PreAuthLifecycle, audit DecisionReader) *PreAuthHandler {
	return &PreAuthHandler{
		service: service,
		audit:   audit,
	}
}

// RequestPreAuth handles POST /api/pre-authorizations
func (h *PreAuthHandler) RequestPreAuth(w http.ResponseWriter, r *http.Request) {
	var preAuth entities.PreAuthorization
	if err := json.NewDecoder(r.Body).Decode(&preAuth); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.RequestPreAuth(r.Context(), &preAuth)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"pre_authorization": preAuth,
		"eligibility":       result,
	})
}

// TransitionPreAuth handles POST /api/pre-authorizations/{id}/transition
func (h *PreAuthHandler) TransitionPreAuth(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "pre-authorization ID is required")
		return
	}

	var body struct {
		To entities.PreAuthStatus `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.To == "" {
		respondWithError(w, http.StatusBadRequest, "target status is required")
		return
	}

	preAuth, err := h.service.GetPreAuth(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	actor := preAuthActorFromRequest(r, preAuth.Status, body.To)
	if actor == "" {
		respondWithError(w, http.StatusBadRequest, "X-Actor-Role header is required")
		return
	}

	updated, err := h.service.TransitionPreAuth(r.Context(), id, body.To, actor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// GetPreAuth handles GET /api/pre-authorizations/{id}
func (h *PreAuthHandler) GetPreAuth(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "pre-authorization ID is required")
		return
	}

	preAuth, err := h.service.GetPreAuth(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, preAuth)
}

// GetPreAuthAudit handles GET /api/pre-authorizations/{id}/audit
func (h *PreAuthHandler) GetPreAuthAudit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "pre-authorization ID is required")
		return
	}

	entries, err := h.audit.ListByEntity(r.Context(), "pre-authorization", id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// preAuthActorFromRequest mirrors actorFromRequest for the pre-authorization
// lifecycle table
func preAuthActorFromRequest(r *http.Request, from, to entities.PreAuthStatus) entities.ActorRole {
	role := r.Header.Get(actorRoleHeader)
	if role == "" {
		return ""
	}
	if role == superAdminRole {
		if required, ok := from.RequiredRole(to); ok {
			return required
		}
	}
	return entities.ActorRole(role)
}
