package export

import (
	"bytes"
	"testing"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExporter_Write(t *testing.T) {
	km := 1.25
	branches := []entities.AnnotatedBranch{
		{
			BranchRecord:       entities.BranchRecord{ID: 7, Name: "블루핸즈 강남점", Address: "서울 강남구", Phone: "02-000-0000", Region: "서울"},
			Location:           entities.Coordinate{Latitude: 37.4979, Longitude: 127.0276},
			DistanceFromUserKm: &km,
			DistanceLabel:      "1.2km",
			Category:           entities.CategorySpecialist,
			Badges:             []string{"⚡ 전기차 전담", "🔨 판금/차체 수리"},
		},
		{
			BranchRecord:  entities.BranchRecord{ID: 8, Name: "블루핸즈 역삼점"},
			DistanceLabel: entities.DistanceLabelPermissionNeeded,
			Category:      entities.CategoryDefault,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().Write(&buf, branches))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "블루핸즈 강남점", rows[1][1])
	assert.Equal(t, "specialist", rows[1][5])
	assert.Equal(t, "1.2km", rows[1][9])
	assert.Equal(t, "⚡ 전기차 전담, 🔨 판금/차체 수리", rows[1][10])
	assert.Equal(t, "8", rows[2][0])
	assert.Equal(t, entities.DistanceLabelPermissionNeeded, rows[2][9])
}

func TestExcelExporter_EmptyResultHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
