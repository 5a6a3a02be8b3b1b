package database

import (
	"context"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

const truncateBranchesSQL = `TRUNCATE TABLE branches, regions RESTART IDENTITY CASCADE`

// Import writes regions and branches in one transaction and returns the
// number of branches inserted. Regions are created in the given order, so the
// order of the region selector follows it. Regions named only by branches are
// appended after the listed ones. With reset the tables are emptied first.
func (a *BranchAdapter) Import(ctx context.Context, regions []string, branches []entities.BranchRecord, reset bool) (int, error) {
	tx, err := a.client.X().BeginTxx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewUnavailableError("failed to begin import", err)
	}
	defer func() { _ = tx.Rollback() }()

	if reset {
		if _, err := tx.ExecContext(ctx, truncateBranchesSQL); err != nil {
			return 0, apperrors.NewUnavailableError("failed to reset branch tables", err)
		}
	}

	regionIDs := make(map[string]int64)
	for _, name := range importRegionOrder(regions, branches) {
		query, args, err := dialect.Insert("regions").
			Prepared(true).
			Rows(goqu.Record{"name": name}).
			OnConflict(goqu.DoUpdate("name", goqu.Record{"name": goqu.L("EXCLUDED.name")})).
			Returning("id").
			ToSQL()
		if err != nil {
			return 0, apperrors.NewInternalError("failed to build region insert", err)
		}
		var id int64
		if err := tx.GetContext(ctx, &id, query, args...); err != nil {
			return 0, apperrors.NewUnavailableError("failed to upsert region "+name, err)
		}
		regionIDs[name] = id
	}

	inserted := 0
	if len(branches) > 0 {
		rows := make([]interface{}, 0, len(branches))
		for _, b := range branches {
			rows = append(rows, branchRecord(b, regionIDs))
		}
		query, args, err := dialect.Insert("branches").Prepared(true).Rows(rows...).ToSQL()
		if err != nil {
			return 0, apperrors.NewInternalError("failed to build branch insert", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, apperrors.NewUnavailableError("failed to insert branches", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, apperrors.NewInternalError("failed to count inserted branches", err)
		}
		inserted = int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewUnavailableError("failed to commit import", err)
	}
	return inserted, nil
}

func branchRecord(b entities.BranchRecord, regionIDs map[string]int64) goqu.Record {
	rec := goqu.Record{
		"name":      b.Name,
		"latitude":  b.Coordinate.Latitude,
		"longitude": b.Coordinate.Longitude,
		"address":   b.Address,
		"phone":     b.Phone,
		"type_id":   b.TypeID,
		"region_id": nil,
	}
	if id, ok := regionIDs[b.Region]; ok {
		rec["region_id"] = id
	}
	for _, k := range entities.AllCapabilities {
		rec[string(k)] = b.Capabilities.Has(k)
	}
	return rec
}

// importRegionOrder lists regions first, then any new region named by a branch
func importRegionOrder(regions []string, branches []entities.BranchRecord) []string {
	seen := make(map[string]struct{}, len(regions))
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, r := range regions {
		add(r)
	}
	for _, b := range branches {
		add(b.Region)
	}
	return out
}
