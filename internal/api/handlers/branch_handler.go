package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bluehands/branchfinder/internal/adapters/export"
	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"github.com/rs/zerolog/log"
)

// BranchSearcher is the search pipeline used by the handler
type BranchSearcher interface {
	Search(ctx context.Context, req services.SearchRequest) *entities.SearchResult
	ListRegions(ctx context.Context) *entities.RegionList
}

// Exporter writes annotated branches in a downloadable format
type Exporter interface {
	Write(w io.Writer, branches []entities.AnnotatedBranch) error
}

// BranchHandler handles branch search HTTP requests
type BranchHandler struct {
	searcher BranchSearcher
	exporter Exporter
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(searcher BranchSearcher, exporter Exporter) *BranchHandler {
	return &BranchHandler{
		searcher: searcher,
		exporter: exporter,
	}
}

// SearchBranches handles GET /api/branches/search
func (h *BranchHandler) SearchBranches(w http.ResponseWriter, r *http.Request) {
	req, err := readSearchParams(r).toRequest()
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	result := h.searcher.Search(r.Context(), req)
	if result.SessionID != "" {
		w.Header().Set(SessionHeader, result.SessionID)
	}

	status := http.StatusOK
	if result.Status == entities.SearchStatusInvalidCriteria {
		status = http.StatusBadRequest
	}
	respondWithJSON(w, status, result)
}

// ExportBranches handles GET /api/branches/export; every matching branch is written
func (h *BranchHandler) ExportBranches(w http.ResponseWriter, r *http.Request) {
	req, err := readSearchParams(r).toRequest()
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	// pagination does not apply to exports
	req.SessionID = ""
	req.Navigation = entities.Navigation{}

	result := h.searcher.Search(r.Context(), req)
	switch result.Status {
	case entities.SearchStatusIdle:
		respondWithAppError(w, apperrors.NewValidationError("choose a region, a service or a search term before exporting"))
		return
	case entities.SearchStatusInvalidCriteria:
		respondWithAppError(w, apperrors.NewValidationError(result.Message))
		return
	case entities.SearchStatusRepositoryUnavailable:
		respondWithAppError(w, apperrors.NewUnavailableError(result.Warning, nil))
		return
	}

	filename := fmt.Sprintf("branches-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := h.exporter.Write(w, result.Results); err != nil {
		log.Error().Err(err).Msg("failed to write branch export")
	}
}

// ListRegions handles GET /api/regions
func (h *BranchHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.searcher.ListRegions(r.Context()))
}

// ListCapabilities handles GET /api/capabilities
func (h *BranchHandler) ListCapabilities(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"capabilities": entities.CapabilityOptions(),
	})
}
