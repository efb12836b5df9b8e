package routes

import (
	"net/http"

	"github.com/zatekoja/Claimsadministration/internal/api/handlers"
	"github.com/zatekoja/Claimsadministration/internal/api/middleware"
	"github.com/zatekoja/Claimsadministration/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	eligibilityHandler *handlers.EligibilityHandler
	claimHandler       *handlers.ClaimHandler
	preAuthHandler     *handlers.PreAuthHandler
	memberHandler      *handlers.MemberHandler
	sseHandler         *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	eligibilityHandler *handlers.EligibilityHandler,
	claimHandler *handlers.ClaimHandler,
	preAuthHandler *handlers.PreAuthHandler,
	memberHandler *handlers.MemberHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		eligibilityHandler: eligibilityHandler,
		claimHandler:       claimHandler,
		preAuthHandler:     preAuthHandler,
		memberHandler:      memberHandler,
		sseHandler:         sseHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Eligibility endpoints
	r.mux.HandleFunc("POST /api/eligibility/check", r.eligibilityHandler.CheckEligibility)
	r.mux.HandleFunc("GET /api/eligibility/decisions/{requestId}", r.eligibilityHandler.GetDecision)

	// Claim endpoints
	r.mux.HandleFunc("POST /api/claims", r.claimHandler.CreateClaim)
	r.mux.HandleFunc("GET /api/claims", r.claimHandler.ListClaims)
	r.mux.HandleFunc("GET /api/claims/{id}", r.claimHandler.GetClaim)
	r.mux.HandleFunc("POST /api/claims/{id}/submit", r.claimHandler.SubmitClaim)
	r.mux.HandleFunc("POST /api/claims/{id}/transition", r.claimHandler.TransitionClaim)
	r.mux.HandleFunc("GET /api/claims/{id}/audit", r.claimHandler.GetClaimAudit)

	// Pre-authorization endpoints
	r.mux.HandleFunc("POST /api/pre-authorizations", r.preAuthHandler.RequestPreAuth)
	r.mux.HandleFunc("GET /api/pre-authorizations/{id}", r.preAuthHandler.GetPreAuth)
	r.mux.HandleFunc("POST /api/pre-authorizations/{id}/transition", r.preAuthHandler.TransitionPreAuth)
	r.mux.HandleFunc("GET /api/pre-authorizations/{id}/audit", r.preAuthHandler.GetPreAuthAudit)

	// Member and policy lookup endpoints
	r.mux.HandleFunc("GET /api/members", r.memberHandler.ListMembers)
	r.mux.HandleFunc("GET /api/members/{id}", r.memberHandler.GetMember)
	r.mux.HandleFunc("GET /api/policies/{id}", r.memberHandler.GetPolicy)
	r.mux.HandleFunc("GET /api/benefit-configurations/{id}", r.memberHandler.GetBenefitConfiguration)
	r.mux.HandleFunc("DELETE /api/benefit-configurations/{id}/cache", r.eligibilityHandler.InvalidateBenefitConfiguration)

	// SSE streaming endpoints (only available when the event bus is up)
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/claims", r.sseHandler.StreamAllClaimUpdates)
		r.mux.HandleFunc("GET /api/stream/claims/{id}", r.sseHandler.StreamClaimUpdates)
		r.mux.HandleFunc("GET /api/stream/pre-authorizations", r.sseHandler.StreamPreAuthUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
