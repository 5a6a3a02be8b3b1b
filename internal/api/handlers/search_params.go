package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/bluehands/branchfinder/internal/application/services"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// SessionHeader carries the page session between requests
const SessionHeader = "X-Session-ID"

var validate = validator.New(validator.WithRequiredStructEnabled())

// searchParams is the raw query string of a search or export request
type searchParams struct {
	Term         string   `validate:"max=200"`
	Capabilities []string `validate:"max=10"`
	Region       string   `validate:"max=100"`
	Lat          string   `validate:"omitempty,latitude"`
	Lng          string   `validate:"omitempty,longitude"`
	Page         string   `validate:"omitempty,numeric"`
	Nav          string   `validate:"omitempty,oneof=page prev_block next_block"`
	Session      string   `validate:"omitempty,uuid"`
}

func readSearchParams(r *http.Request) searchParams {
	q := r.URL.Query()

	var caps []string
	for _, v := range q["capability"] {
		caps = append(caps, strings.Split(v, ",")...)
	}

	session := q.Get("session")
	if session == "" {
		session = r.Header.Get(SessionHeader)
	}

	return searchParams{
		Term:         q.Get("q"),
		Capabilities: caps,
		Region:       q.Get("region"),
		Lat:          strings.TrimSpace(q.Get("lat")),
		Lng:          strings.TrimSpace(q.Get("lng")),
		Page:         q.Get("page"),
		Nav:          q.Get("nav"),
		Session:      session,
	}
}

// toRequest validates the parameters and converts them to a search request.
// A lone latitude or longitude is treated as an unknown user location.
func (p searchParams) toRequest() (services.SearchRequest, error) {
	if err := validate.Struct(p); err != nil {
		return services.SearchRequest{}, apperrors.NewValidationError(err.Error())
	}

	caps, err := services.ParseCapabilities(p.Capabilities)
	if err != nil {
		return services.SearchRequest{}, err
	}

	req := services.SearchRequest{
		Criteria: entities.SearchCriteria{
			Term:         p.Term,
			Capabilities: caps,
			Region:       p.Region,
		},
		SessionID: p.Session,
	}

	if p.Lat != "" && p.Lng != "" {
		if loc, ok := (entities.RawCoordinate{Latitude: p.Lat, Longitude: p.Lng}).Parse(); ok {
			req.UserLocation = &loc
		}
	}

	kind, _ := entities.ParseNavigationKind(p.Nav)
	if p.Page != "" {
		page, err := parsePage(p.Page)
		if err != nil {
			return services.SearchRequest{}, err
		}
		if kind == entities.NavigateNone {
			kind = entities.NavigateToPage
		}
		req.Navigation.Page = page
	}
	req.Navigation.Kind = kind
	if kind == entities.NavigateToPage && p.Page == "" {
		return services.SearchRequest{}, apperrors.NewValidationError("nav=page requires a page number")
	}

	return req, nil
}

// parsePage saturates integers too large for int; the pager clamps them later
func parsePage(raw string) (int, error) {
	page, err := strconv.Atoi(raw)
	if err == nil {
		return page, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(raw, "-") {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}
	return 0, apperrors.NewValidationError("page must be an integer")
}
