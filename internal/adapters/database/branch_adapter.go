package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	"github.com/bluehands/branchfinder/internal/infrastructure/clients/postgres"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
)

var dialect = goqu.Dialect("postgres")

// branchRow mirrors one row of the branch search query
type branchRow struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	Latitude      sql.NullString `db:"latitude"`
	Longitude     sql.NullString `db:"longitude"`
	Address       sql.NullString `db:"address"`
	Phone         sql.NullString `db:"phone"`
	TypeID        sql.NullInt64  `db:"type_id"`
	Region        sql.NullString `db:"region"`
	IsEV          sql.NullBool   `db:"is_ev"`
	IsHydrogen    sql.NullBool   `db:"is_hydrogen"`
	IsFrame       sql.NullBool   `db:"is_frame"`
	IsCSExcellent sql.NullBool   `db:"is_cs_excellent"`
	IsNLine       sql.NullBool   `db:"is_n_line"`
}

func (r branchRow) toEntity() entities.BranchRecord {
	return entities.BranchRecord{
		ID:   r.ID,
		Name: r.Name,
		Coordinate: entities.RawCoordinate{
			Latitude:  r.Latitude.String,
			Longitude: r.Longitude.String,
		},
		Address: r.Address.String,
		Phone:   r.Phone.String,
		TypeID:  int(r.TypeID.Int64),
		Region:  r.Region.String,
		Capabilities: entities.CapabilityFlags{
			entities.CapabilityEV:          r.IsEV.Bool,
			entities.CapabilityHydrogen:    r.IsHydrogen.Bool,
			entities.CapabilityFrame:       r.IsFrame.Bool,
			entities.CapabilityCSExcellent: r.IsCSExcellent.Bool,
			entities.CapabilityNLine:       r.IsNLine.Bool,
		},
	}
}

// BranchAdapter implements BranchRepository on PostgreSQL
type BranchAdapter struct {
	client *postgres.Client
}

// NewBranchAdapter creates a new branch adapter
func NewBranchAdapter(client *postgres.Client) *BranchAdapter {
	return &BranchAdapter{client: client}
}

var _ repositories.BranchRepository = (*BranchAdapter)(nil)

// ListRegions returns region names in insertion order
func (a *BranchAdapter) ListRegions(ctx context.Context) ([]string, error) {
	query, args, err := dialect.From("regions").
		Prepared(true).
		Select("name").
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build region query", err)
	}

	conn, err := a.client.X().Connx(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to acquire database connection", err)
	}
	defer conn.Close()

	var regions []string
	if err := conn.SelectContext(ctx, &regions, query, args...); err != nil {
		return nil, apperrors.NewUnavailableError("failed to list regions", err)
	}
	return regions, nil
}

// Search runs the descriptor against the branches table
func (a *BranchAdapter) Search(ctx context.Context, q repositories.QueryDescriptor) ([]entities.BranchRecord, error) {
	query, args, err := buildSearchQuery(q)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build branch query", err)
	}

	conn, err := a.client.X().Connx(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to acquire database connection", err)
	}
	defer conn.Close()

	var rows []branchRow
	if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewUnavailableError("failed to query branches", err)
	}

	records := make([]entities.BranchRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.toEntity())
	}
	return records, nil
}

// ListAll returns every branch; the search indexer uses it
func (a *BranchAdapter) ListAll(ctx context.Context) ([]entities.BranchRecord, error) {
	return a.Search(ctx, repositories.QueryDescriptor{})
}

// buildSearchQuery renders the descriptor as a parameterized statement.
// Values are bound; capability columns come from the closed enumeration only.
func buildSearchQuery(q repositories.QueryDescriptor) (string, []interface{}, error) {
	ds := dialect.From(goqu.T("branches").As("b")).
		Prepared(true).
		LeftJoin(
			goqu.T("regions").As("r"),
			goqu.On(goqu.I("b.region_id").Eq(goqu.I("r.id"))),
		).
		Select(
			goqu.I("b.id"),
			goqu.I("b.name"),
			goqu.I("b.latitude"),
			goqu.I("b.longitude"),
			goqu.I("b.address"),
			goqu.I("b.phone"),
			goqu.I("b.type_id"),
			goqu.I("r.name").As("region"),
			goqu.I("b.is_ev"),
			goqu.I("b.is_hydrogen"),
			goqu.I("b.is_frame"),
			goqu.I("b.is_cs_excellent"),
			goqu.I("b.is_n_line"),
		)

	var conds []exp.Expression
	if q.Term != "" {
		pattern := "%" + escapeLike(q.Term) + "%"
		conds = append(conds, goqu.Or(
			goqu.I("b.name").ILike(pattern),
			goqu.I("b.address").ILike(pattern),
		))
	}
	for _, k := range q.Capabilities {
		col, err := k.Column()
		if err != nil {
			return "", nil, err
		}
		conds = append(conds, goqu.I("b."+col).IsTrue())
	}
	if q.Region != "" {
		conds = append(conds, goqu.I("r.name").Eq(q.Region))
	}
	if len(conds) > 0 {
		ds = ds.Where(conds...)
	}

	return ds.Order(goqu.I("b.id").Asc()).ToSQL()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the term match literally inside a LIKE pattern
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
