package catalogload

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zoukba0014/personal-shopper-optimal/internal/skyline"
)

// csvColumns is the fixed header order a catalogue CSV must use:
// store_id,store_x,store_y,product_id,product_name,unit_cost,quantity
var csvColumns = []string{"store_id", "store_x", "store_y", "product_id", "product_name", "unit_cost", "quantity"}

// LoadCSV parses catalogue content into Rows, skipping (and reporting) any
// row that fails to parse rather than aborting the whole file, the same
// partial-failure posture as the teacher's csv.Parser.ParseWithStoreID.
// The source encoding is auto-detected (UTF-8 passthrough, Windows-1250
// fallback); use LoadCSVWithEncoding when the source encoding is known.
func LoadCSV(content []byte) Result {
	return LoadCSVWithEncoding(content, EncodingAuto)
}

// LoadCSVWithEncoding parses catalogue content declared to be in enc, for
// feeds whose encoding is known up front (e.g. ISO-8859-2 exports from older
// point-of-sale systems) rather than left to auto-detection.
func LoadCSVWithEncoding(content []byte, enc Encoding) Result {
	decoded, err := decode(content, enc)
	if err != nil {
		return Result{Errors: []RowError{{RowNumber: 0, Field: "encoding", Message: err.Error()}}}
	}
	content = decoded

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	lines := strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")

	result := Result{}
	if len(lines) == 0 {
		return result
	}

	delimiter := detectDelimiter(lines)
	header := splitCSVLine(lines[0], delimiter, '"')
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, col := range csvColumns {
		if _, ok := colIndex[col]; !ok {
			result.Errors = append(result.Errors, RowError{RowNumber: 1, Field: col, Message: "missing required column: " + col})
			return result
		}
	}

	for i := 1; i < len(lines); i++ {
		rowNumber := i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := splitCSVLine(line, delimiter, '"')
		row, err := parseCSVFields(fields, colIndex)
		if err != nil {
			result.Errors = append(result.Errors, RowError{RowNumber: rowNumber, Message: err.Error()})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

func parseCSVFields(fields []string, idx map[string]int) (Row, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	storeID := get("store_id")
	if storeID == "" {
		return Row{}, rowErrorf("store_id is required")
	}
	productID := get("product_id")
	if productID == "" {
		return Row{}, rowErrorf("product_id is required")
	}

	storeX, err := strconv.ParseFloat(get("store_x"), 64)
	if err != nil {
		return Row{}, rowErrorf("invalid store_x: %v", err)
	}
	storeY, err := strconv.ParseFloat(get("store_y"), 64)
	if err != nil {
		return Row{}, rowErrorf("invalid store_y: %v", err)
	}
	unitCost, err := strconv.ParseFloat(get("unit_cost"), 64)
	if err != nil {
		return Row{}, rowErrorf("invalid unit_cost: %v", err)
	}
	qty, err := strconv.Atoi(get("quantity"))
	if err != nil {
		return Row{}, rowErrorf("invalid quantity: %v", err)
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

// detectDelimiter picks the field delimiter by checking which of comma,
// semicolon, or tab occurs with the most consistent per-line count across
// the first few non-empty lines, adapted from the teacher's
// internal/parsers/csv.DetectDelimiter.
func detectDelimiter(lines []string) rune {
	sample := make([]string, 0, 5)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sample = append(sample, trimmed)
		if len(sample) >= 5 {
			break
		}
	}
	if len(sample) == 0 {
		return ','
	}

	best := ','
	bestConsistency := 0.0
	for _, delim := range []rune{',', ';', '\t'} {
		counts := make([]int, len(sample))
		sum := 0
		for i, line := range sample {
			counts[i] = strings.Count(line, string(delim))
			sum += counts[i]
		}
		avg := float64(sum) / float64(len(counts))
		if avg == 0 {
			continue
		}
		variance := 0.0
		for _, c := range counts {
			diff := float64(c) - avg
			variance += diff * diff
		}
		variance /= float64(len(counts))

		consistency := avg / (1.0 + variance)
		if consistency > bestConsistency {
			bestConsistency = consistency
			best = delim
		}
	}
	return best
}

// splitCSVLine splits a CSV line handling quoted fields, adapted from the
// teacher's internal/parsers/csv delimiter-aware line splitter.
func splitCSVLine(line string, delimiter rune, quoteChar rune) []string {
	fields := make([]string, 0, len(csvColumns))
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); {
		r, width := utf8.DecodeRuneInString(line[i:])
		i += width

		if inQuotes {
			if r == quoteChar {
				if i < len(line) {
					nextR, _ := utf8.DecodeRuneInString(line[i:])
					if nextR == quoteChar {
						current.WriteRune(quoteChar)
						i += utf8.RuneLen(nextR)
						continue
					}
				}
				inQuotes = false
				continue
			}
			current.WriteRune(r)
			continue
		}

		switch r {
		case quoteChar:
			inQuotes = true
		case delimiter:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}

func rowErrorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
