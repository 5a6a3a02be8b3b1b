package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchAdapter_Import(t *testing.T) {
	adapter, mock, inUse := newMockAdapter(t)

	branches := []entities.BranchRecord{
		{Name: "강남점", Region: "서울", Capabilities: entities.CapabilityFlags{entities.CapabilityEV: true}},
		{Name: "해운대점", Region: "부산"},
		{Name: "제주점", Region: "제주"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(truncateBranchesSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	for i, name := range []string{"서울", "부산", "제주"} {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "regions"`)).
			WithArgs(name).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "branches"`)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := adapter.Import(context.Background(), []string{"서울", "부산"}, branches, true)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Zero(t, inUse())
}

func TestBranchAdapter_Import_RollsBackOnFailure(t *testing.T) {
	adapter, mock, _ := newMockAdapter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "regions"`)).
		WithArgs("서울").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "branches"`)).WillReturnError(errors.New("check constraint"))
	mock.ExpectRollback()

	_, err := adapter.Import(context.Background(), nil, []entities.BranchRecord{{Name: "강남점", Region: "서울"}}, false)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBranchRecord(t *testing.T) {
	rec := branchRecord(entities.BranchRecord{
		Name:         "강남점",
		Coordinate:   entities.RawCoordinate{Latitude: "37.4979", Longitude: "127.0276"},
		TypeID:       1,
		Region:       "서울",
		Capabilities: entities.CapabilityFlags{entities.CapabilityFrame: true},
	}, map[string]int64{"서울": 4})

	assert.Equal(t, int64(4), rec["region_id"])
	assert.Equal(t, true, rec["is_frame"])
	assert.Equal(t, false, rec["is_ev"])
	assert.Equal(t, "37.4979", rec["latitude"])

	orphan := branchRecord(entities.BranchRecord{Name: "x", Region: "없음"}, nil)
	assert.Nil(t, orphan["region_id"])
}

func TestImportRegionOrder(t *testing.T) {
	order := importRegionOrder(
		[]string{"서울", "부산", "서울"},
		[]entities.BranchRecord{{Region: "경기"}, {Region: "부산"}, {Region: ""}},
	)
	assert.Equal(t, []string{"서울", "부산", "경기"}, order)
}
