package handlers

import (
	"net/http"
	"strconv"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/domain/repositories"
)

// MemberHandler handles member and policy lookup requests
type MemberHandler struct {
	memberRepo repositories.MemberRepository
	policyRepo repositories.PolicyRepository
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberRepo repositories.MemberRepository, policyRepo repositories.PolicyRepository) *MemberHandler {
	return &MemberHandler{
		memberRepo: memberRepo,
		policyRepo: policyRepo,
	}
}

// GetMember handles GET /api/members/{id}
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "member ID is required")
		return
	}

	member, err := h.memberRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

// ListMembers handles GET /api/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.MemberFilter{
		EmployerID: r.URL.Query().Get("employer_id"),
		PolicyID:   r.URL.Query().Get("policy_id"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := entities.MemberStatus(statusStr)
		filter.Status = &status
	}

	members, err := h.memberRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"members": members,
	})
}

// GetPolicy handles GET /api/policies/{id}
func (h *MemberHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "policy ID is required")
		return
	}

	policy, err := h.policyRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, policy)
}

// GetBenefitConfiguration handles GET /api/benefit-configurations/{id}
func (h *MemberHandler) GetBenefitConfiguration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "benefit configuration ID is required")
		return
	}

	config, err := h.policyRepo.GetBenefitConfiguration(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, config)
}

func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
