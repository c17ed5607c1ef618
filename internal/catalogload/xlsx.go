package catalogload

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/zoukba0014/personal-shopper-optimal/internal/skyline"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX parses the first sheet of a catalogue workbook into Rows, using
// the same fixed header/column convention as LoadCSV. Adapted from the
// teacher's internal/parsers/xlsx.Parser sheet-selection and per-row mapping
// idiom.
func LoadXLSX(content []byte) (Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{}, fmt.Errorf("read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return Result{}, nil
	}

	colIndex := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := colIndex[col]; !ok {
			return Result{}, fmt.Errorf("missing required column: %s", col)
		}
	}

	result := Result{}
	for i := 1; i < len(rows); i++ {
		rowNumber := i + 1
		raw := rows[i]
		if isEmptyXLSXRow(raw) {
			continue
		}
		row, err := parseXLSXFields(raw, colIndex)
		if err != nil {
			result.Errors = append(result.Errors, RowError{RowNumber: rowNumber, Message: err.Error()})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func isEmptyXLSXRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseXLSXFields(fields []string, idx map[string]int) (Row, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	storeID := get("store_id")
	if storeID == "" {
		return Row{}, fmt.Errorf("store_id is required")
	}
	productID := get("product_id")
	if productID == "" {
		return Row{}, fmt.Errorf("product_id is required")
	}

	storeX, err := strconv.ParseFloat(get("store_x"), 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid store_x: %w", err)
	}
	storeY, err := strconv.ParseFloat(get("store_y"), 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid store_y: %w", err)
	}
	unitCost, err := strconv.ParseFloat(get("unit_cost"), 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid unit_cost: %w", err)
	}
	qty, err := strconv.Atoi(get("quantity"))
	if err != nil {
		return Row{}, fmt.Errorf("invalid quantity: %w", err)
	}

	return Row{
		StoreID:   skyline.StoreID(storeID),
		StoreX:    storeX,
		StoreY:    storeY,
		ProductID: skyline.ProductID(productID),
		Product:   get("product_name"),
		UnitCost:  unitCost,
		Quantity:  qty,
	}, nil
}
