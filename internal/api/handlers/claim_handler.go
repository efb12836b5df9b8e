package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/domain/repositories"
)

// actorRoleHeader carries the caller's role on lifecycle operations
const actorRoleHeader = "X-Actor-Role"

// superAdminRole is an API-layer capability, not a state machine role: a
// super-admin acts as whatever role the requested transition requires. The
// lifecycle tables themselves never know about it.
const superAdminRole = "SUPER_ADMIN"

// ClaimLifecycle defines the interface for claim operations
type ClaimLifecycle interface {
	CreateClaim(ctx context.Context, claim *entities.Claim) error
	SubmitClaim(ctx context.Context, claimID string, actor entities.ActorRole) (*entities.EligibilityResult, error)
	TransitionClaim(ctx context.Context, claimID string, to entities.ClaimStatus, actor entities.ActorRole) (*entities.Claim, error)
	GetClaim(ctx context.Context, id string) (*entities.Claim, error)
	ListClaims(ctx context.Context, filter repositories.ClaimFilter) ([]*entities.Claim, error)
}

// ClaimHandler handles claim requests
type ClaimHandler struct {
	service ClaimLifecycle
	audit   DecisionReader
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(service ClaimLifecycle, audit DecisionReader) *ClaimHandler {
	return &ClaimHandler{
		service: service,
		audit:   audit,
	}
}

// CreateClaim handles POST /api/claims
func (h *ClaimHandler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	var claim entities.Claim
	if err := json.NewDecoder(r.Body).Decode(&claim); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreateClaim(r.Context(), &claim); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, claim)
}

// SubmitClaim handles POST /api/claims/{id}/submit
func (h *ClaimHandler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	claimID := r.PathValue("id")
	if claimID == "" {
		respondWithError(w, http.StatusBadRequest, "claim ID is required")
		return
	}

	actor := actorFromRequest(r, entities.ClaimStatusDraft, entities.ClaimStatusSubmitted)
	if actor == "" {
		respondWithError(w, http.StatusBadRequest, "X-Actor-Role header is required")
		return
	}

	result, err := h.service.SubmitClaim(r.Context(), claimID, actor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// TransitionClaim handles POST /api/claims/{id}/transition
func (h *ClaimHandler) TransitionClaim(w http.ResponseWriter, r *http.Request) {
	claimID := r.PathValue("id")
	if claimID == "" {
		respondWithError(w, http.StatusBadRequest, "claim ID is required")
		return
	}

	var body struct {
		To entities.ClaimStatus `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.To == "" {
		respondWithError(w, http.StatusBadRequest, "target status is required")
		return
	}

	claim, err := h.service.GetClaim(r.Context(), claimID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	actor := actorFromRequest(r, claim.Status, body.To)
	if actor == "" {
		respondWithError(w, http.StatusBadRequest, "X-Actor-Role header is required")
		return
	}

	updated, err := h.service.TransitionClaim(r.Context(), claimID, body.To, actor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// GetClaim handles GET /api/claims/{id}
func (h *ClaimHandler) GetClaim(w http.ResponseWriter, r *http.Request) {
	claimID := r.PathValue("id")
	if claimID == "" {
		respondWithError(w, http.StatusBadRequest, "claim ID is required")
		return
	}

	claim, err := h.service.GetClaim(r.Context(), claimID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, claim)
}

// ListClaims handles GET /api/claims
func (h *ClaimHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ClaimFilter{
		MemberID:   r.URL.Query().Get("member_id"),
		PolicyID:   r.URL.Query().Get("policy_id"),
		ProviderID: r.URL.Query().Get("provider_id"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := entities.ClaimStatus(statusStr)
		filter.Status = &status
	}

	claims, err := h.service.ListClaims(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"claims": claims,
	})
}

// GetClaimAudit handles GET /api/claims/{id}/audit
func (h *ClaimHandler) GetClaimAudit(w http.ResponseWriter, r *http.Request) {
	claimID := r.PathValue("id")
	if claimID == "" {
		respondWithError(w, http.StatusBadRequest, "claim ID is required")
		return
	}

	entries, err := h.audit.ListByEntity(r.Context(), "claim", claimID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// actorFromRequest resolves the acting role for a claim transition. A
// super-admin caller is granted the role the transition requires; everyone
// else acts as the role they declare and the state machine enforces it.
func actorFromRequest(r *http.Request, from, to entities.ClaimStatus) entities.ActorRole {
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
