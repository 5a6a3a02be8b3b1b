package services

import (
	"context"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	"github.com/bluehands/branchfinder/internal/infrastructure/observability"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// User-facing messages
const (
	MessageChooseFilter    = "👈 지역을 선택하거나 검색어를 입력하세요."
	MessageNoResults       = "검색 결과가 없습니다."
	MessageUnavailable     = "⚠️ 지점 정보를 불러오지 못했습니다. 잠시 후 다시 시도해주세요."
	MessageLocationPending = "⚠️ 위치 권한 대기 중... (기본값: 서울 강남)"
	MessageRegionsFallback = "⚠️ 지역 목록을 불러오지 못해 기본 지역을 표시합니다."
)

// SearchOptions configures the search pipeline
type SearchOptions struct {
	PageSize        int
	BlockSize       int
	FallbackCenter  entities.Coordinate
	FallbackRegions []string
	// RequireCriteria skips the repository while no filter is chosen
	RequireCriteria bool
}

// DefaultSearchOptions returns the stock page/block sizes and fallbacks
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		PageSize:        entities.DefaultPageSize,
		BlockSize:       entities.DefaultBlockSize,
		FallbackCenter:  entities.DefaultMapCenter,
		FallbackRegions: []string{"서울", "부산", "경기"},
		RequireCriteria: true,
	}
}

// SearchRequest is one search or page navigation from a client
type SearchRequest struct {
	Criteria     entities.SearchCriteria
	UserLocation *entities.Coordinate
	SessionID    string
	Navigation   entities.Navigation
}

// BranchSearchService runs the criteria → query → annotate → paginate pipeline
type BranchSearchService struct {
	repo     repositories.BranchRepository
	sessions *PageSessionService
	opts     SearchOptions
	metrics  *observability.Metrics
}

// NewBranchSearchService creates a new branch search service.
// sessions and metrics may be nil.
func NewBranchSearchService(repo repositories.BranchRepository, sessions *PageSessionService, opts SearchOptions, metrics *observability.Metrics) *BranchSearchService {
	if opts.PageSize <= 0 {
		opts.PageSize = entities.DefaultPageSize
	}
	if opts.BlockSize <= 0 {
		opts.BlockSize = entities.DefaultBlockSize
	}
	if !opts.FallbackCenter.IsFinite() || opts.FallbackCenter == (entities.Coordinate{}) {
		opts.FallbackCenter = entities.DefaultMapCenter
	}
	return &BranchSearchService{
		repo:     repo,
		sessions: sessions,
		opts:     opts,
		metrics:  metrics,
	}
}

// Search never fails; problems are reported through the result status
func (s *BranchSearchService) Search(ctx context.Context, req SearchRequest) *entities.SearchResult {
	ctx, span := observability.StartSpan(ctx, "BranchSearchService.Search")
	defer span.End()
	logger := observability.LoggerFromContext(ctx)

	user := req.UserLocation
	if user != nil && !user.IsFinite() {
		user = nil
	}

	result := &entities.SearchResult{
		Criteria:    req.Criteria.Normalized(),
		SessionID:   req.SessionID,
		UserLocated: user != nil,
		Markers:     []entities.MapMarker{},
	}
	if user == nil {
		result.Warning = MessageLocationPending
	}
	defer func() {
		observability.SetSpanAttributes(span,
			attribute.String("search.status", string(result.Status)),
			attribute.Int("search.total_items", result.Page.TotalItems),
			attribute.Int("search.page", result.Page.PageIndex),
		)
		observability.RecordSearchStatus(ctx, s.metrics, string(result.Status))
	}()

	if s.opts.RequireCriteria && req.Criteria.IsEmpty() {
		result.Status = entities.SearchStatusIdle
		result.Message = MessageChooseFilter
		s.fill(ctx, result, req, nil, user)
		return result
	}

	query, err := BuildQuery(req.Criteria)
	if err != nil {
		observability.RecordError(span, err)
		result.Status = entities.SearchStatusInvalidCriteria
		result.Message = err.Error()
		s.fill(ctx, result, req, nil, user)
		return result
	}

	start := time.Now()
	records, err := s.repo.Search(ctx, query)
	observability.RecordDBMetric(ctx, s.metrics, "search", time.Since(start))
	if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		observability.RecordError(span, err)
		result.Status = entities.SearchStatusInvalidCriteria
		result.Message = err.Error()
		s.fill(ctx, result, req, nil, user)
		return result
	}
	if err != nil {
		observability.RecordError(span, err)
		logger.Warn().Err(err).Msg("branch repository unavailable")
		result.Status = entities.SearchStatusRepositoryUnavailable
		result.Warning = MessageUnavailable
		s.fill(ctx, result, req, nil, user)
		return result
	}

	annotated := Annotate(records, user)
	if dropped := len(records) - len(annotated); dropped > 0 {
		logger.Debug().Int("dropped", dropped).Msg("skipped branches without valid coordinates")
	}

	if len(annotated) == 0 {
		result.Status = entities.SearchStatusNoResults
		result.Message = MessageNoResults
	} else {
		result.Status = entities.SearchStatusOK
	}
	s.fill(ctx, result, req, annotated, user)
	return result
}

// fill computes the page, window, markers and map center for annotated
func (s *BranchSearchService) fill(ctx context.Context, result *entities.SearchResult, req SearchRequest, annotated []entities.AnnotatedBranch, user *entities.Coordinate) {
	if annotated == nil {
		annotated = []entities.AnnotatedBranch{}
	}
	totalPages := TotalPages(len(annotated), s.opts.PageSize)

	pageIndex := 1
	if s.sessions != nil && result.Status != entities.SearchStatusInvalidCriteria {
		session := s.sessions.Resolve(ctx, PageRequest{
			SessionID:   req.SessionID,
			CriteriaKey: req.Criteria.Fingerprint(),
			TotalPages:  totalPages,
			BlockSize:   s.opts.BlockSize,
			Navigation:  req.Navigation,
		})
		result.SessionID = session.ID
		pageIndex = session.PageIndex
	} else if s.sessions == nil {
		pageIndex = Navigate(1, totalPages, s.opts.BlockSize, req.Navigation)
	}

	result.Page = Paginate(annotated, s.opts.PageSize, pageIndex)
	result.Window = ComputeWindow(result.Page.PageIndex, result.Page.TotalPages, s.opts.BlockSize)
	result.Results = annotated
	for _, b := range annotated {
		result.Markers = append(result.Markers, b.Marker())
	}
	result.MapCenter = s.mapCenter(annotated, user)
}

// mapCenter picks the first result, then the user, then the fallback
func (s *BranchSearchService) mapCenter(annotated []entities.AnnotatedBranch, user *entities.Coordinate) entities.Coordinate {
	if len(annotated) > 0 {
		return annotated[0].Location
	}
	if user != nil {
		return *user
	}
	return s.opts.FallbackCenter
}

// ListRegions returns the region selector content, falling back to the
// configured regions when the repository fails or has none
func (s *BranchSearchService) ListRegions(ctx context.Context) *entities.RegionList {
	ctx, span := observability.StartSpan(ctx, "BranchSearchService.ListRegions")
	defer span.End()

	list := &entities.RegionList{All: entities.RegionAll}

	start := time.Now()
	regions, err := s.repo.ListRegions(ctx)
	observability.RecordDBMetric(ctx, s.metrics, "list_regions", time.Since(start))
	if err != nil {
		observability.RecordError(span, err)
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to list regions, using fallback")
	}

	if err != nil || len(regions) == 0 {
		list.Regions = append([]string(nil), s.opts.FallbackRegions...)
		list.Warning = MessageRegionsFallback
		return list
	}
	list.Regions = regions
	return list
}

// Options returns the effective pipeline configuration
func (s *BranchSearchService) Options() SearchOptions {
	return s.opts
}
