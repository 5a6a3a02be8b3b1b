package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
)

const (
	perPage  = 250
	maxPages = 200
)

// DocumentIndex is the part of the Typesense client the adapter needs
type DocumentIndex interface {
	SearchDocuments(ctx context.Context, filterBy string, page, perPage int) ([]map[string]interface{}, error)
}

// TypesenseBranchAdapter serves branch searches from a Typesense collection.
// Region names still come from the primary store.
type TypesenseBranchAdapter struct {
	index   DocumentIndex
	regions repositories.RegionRepository
}

// NewTypesenseBranchAdapter creates a new Typesense-backed branch repository
func NewTypesenseBranchAdapter(index DocumentIndex, regions repositories.RegionRepository) *TypesenseBranchAdapter {
	return &TypesenseBranchAdapter{index: index, regions: regions}
}

// ListRegions delegates to the primary store
func (a *TypesenseBranchAdapter) ListRegions(ctx context.Context) ([]string, error) {
	return a.regions.ListRegions(ctx)
}

// Search pushes capability and region filters to Typesense and applies the
// term as a literal case-insensitive substring match on name or address.
func (a *TypesenseBranchAdapter) Search(ctx context.Context, q repositories.QueryDescriptor) ([]entities.BranchRecord, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(q.Term)
	var records []entities.BranchRecord
	for page := 1; page <= maxPages; page++ {
		docs, err := a.index.SearchDocuments(ctx, filter, page, perPage)
		if err != nil {
			return nil, apperrors.NewUnavailableError("failed to search branches", err)
		}
		for _, doc := range docs {
			rec, ok := documentToRecord(doc)
			if !ok || !matchesTerm(rec, term) {
				continue
			}
			records = append(records, rec)
		}
		if len(docs) < perPage {
			break
		}
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func buildFilter(q repositories.QueryDescriptor) (string, error) {
	var parts []string
	for _, k := range q.Capabilities {
		col, err := k.Column()
		if err != nil {
			return "", apperrors.NewInternalError("failed to build search filter", err)
		}
		parts = append(parts, col+":=true")
	}
	if q.Region != "" {
		// filter_by has no escape for the closing backtick
		if strings.Contains(q.Region, "`") {
			return "", apperrors.NewValidationError("region must not contain a backtick")
		}
		parts = append(parts, fmt.Sprintf("region:=`%s`", q.Region))
	}
	return strings.Join(parts, " && "), nil
}

func matchesTerm(rec entities.BranchRecord, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Name), lowerTerm) ||
		strings.Contains(strings.ToLower(rec.Address), lowerTerm)
}

// BranchDocument converts a branch into its Typesense document
func BranchDocument(rec entities.BranchRecord) map[string]interface{} {
	doc := map[string]interface{}{
		"id":        strconv.FormatInt(rec.ID, 10),
		"branch_id": rec.ID,
		"name":      rec.Name,
		"address":   rec.Address,
		"phone":     rec.Phone,
		"latitude":  rec.Coordinate.Latitude,
		"longitude": rec.Coordinate.Longitude,
		"type_id":   rec.TypeID,
		"region":    rec.Region,
	}
	for _, k := range entities.AllCapabilities {
		doc[string(k)] = rec.Capabilities.Has(k)
	}
	return doc
}

// documentToRecord decodes a search hit. Numbers arrive as float64 from JSON.
func documentToRecord(doc map[string]interface{}) (entities.BranchRecord, bool) {
	id, ok := number(doc["branch_id"])
	if !ok {
		return entities.BranchRecord{}, false
	}

	rec := entities.BranchRecord{
		ID:   int64(id),
		Name: str(doc["name"]),
		Coordinate: entities.RawCoordinate{
			Latitude:  str(doc["latitude"]),
			Longitude: str(doc["longitude"]),
		},
		Address:      str(doc["address"]),
		Phone:        str(doc["phone"]),
		Region:       str(doc["region"]),
		Capabilities: entities.CapabilityFlags{},
	}
	if typeID, ok := number(doc["type_id"]); ok {
		rec.TypeID = int(typeID)
	}
	for _, k := range entities.AllCapabilities {
		if v, ok := doc[string(k)].(bool); ok {
			rec.Capabilities[k] = v
		}
	}
	return rec, true
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
