package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/common"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/interfaces"
	"github.com/kofort9/nonprofit-vetting-mcp/internal/services/propublica"
)

// VettingHandler serves the screening endpoints. It fetches organization
// data through the provider and hands it to the vetting service; all
// screening semantics live in the service.
type VettingHandler struct {
	provider interfaces.OrganizationProvider
	vetting  interfaces.VettingService
	logger   arbor.ILogger
}

func NewVettingHandler(provider interfaces.OrganizationProvider, vetting interfaces.VettingService) *VettingHandler {
	return &VettingHandler{
		provider: provider,
		vetting:  vetting,
		logger:   common.GetLogger(),
	}
}

// VetHandler handles GET /api/vet/{ein} and GET /api/vet/{ein}/redflags.
func (h *VettingHandler) VetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/vet/")
	path = strings.Trim(path, "/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "EIN is required")
		return
	}

	ein, redFlagsOnly := strings.CutSuffix(path, "/redflags")
	if strings.Contains(ein, "/") {
		WriteError(w, http.StatusNotFound, "unknown vetting endpoint")
		return
	}

	org, filings, err := h.provider.GetOrganization(r.Context(), ein)
	if err != nil {
		h.writeProviderError(w, ein, err)
		return
	}

	if redFlagsOnly {
		result := h.vetting.EvaluateRedFlagsOnly(org, filings, time.Now())
		WriteJSON(w, http.StatusOK, result)
		return
	}

	result := h.vetting.EvaluateTier1(org, filings, time.Now())
	WriteJSON(w, http.StatusOK, result)
}

// SearchHandler handles GET /api/search?q={query}.
func (h *VettingHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	results, err := h.provider.SearchOrganizations(r.Context(), query)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("Organization search failed")
		WriteError(w, http.StatusBadGateway, "upstream search failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

func (h *VettingHandler) writeProviderError(w http.ResponseWriter, ein string, err error) {
	switch {
	case errors.Is(err, propublica.ErrNotFound):
		WriteError(w, http.StatusNotFound, "no organization found for EIN "+ein)
	case errors.Is(err, propublica.ErrInvalidEIN):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Warn().Err(err).Str("ein", ein).Msg("Organization lookup failed")
		WriteError(w, http.StatusBadGateway, "upstream lookup failed")
	}
}
