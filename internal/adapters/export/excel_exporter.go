package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported branches
const SheetName = "Branches"

// ContentType is the MIME type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []interface{}{
	"ID", "Name", "Address", "Phone", "Region", "Category",
	"Latitude", "Longitude", "Distance (km)", "Distance", "Services",
}

// ExcelExporter writes annotated branches as an XLSX workbook
type ExcelExporter struct{}

// NewExcelExporter creates a new exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Write streams one row per branch, in result order, to w
func (e *ExcelExporter) Write(w io.Writer, branches []entities.AnnotatedBranch) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, b := range branches {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var distance interface{}
		if b.DistanceFromUserKm != nil {
			distance = *b.DistanceFromUserKm
		}
		row := []interface{}{
			b.ID, b.Name, b.Address, b.Phone, b.Region, string(b.Category),
			b.Location.Latitude, b.Location.Longitude, distance, b.DistanceLabel,
			strings.Join(b.Badges, ", "),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
