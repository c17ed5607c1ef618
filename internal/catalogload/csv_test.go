package catalogload

import (
	"testing"

	"github.com/zoukba0014/personal-shopper-optimal/internal/skyline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const sampleCSV = `store_id,store_x,store_y,product_id,product_name,unit_cost,quantity
near,1,0,milk,Milk,2.00,10
far,5,0,milk,Milk,1.00,10
far,5,0,eggs,Eggs,3.50,4
`

func TestLoadCSV_ParsesValidRows(t *testing.T) {
	result := LoadCSV([]byte(sampleCSV))
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, skyline.StoreID("near"), result.Rows[0].StoreID)
	assert.Equal(t, 2.00, result.Rows[0].UnitCost)
}

func TestLoadCSV_ReportsRowErrorsWithoutAbortingFile(t *testing.T) {
	content := `store_id,store_x,store_y,product_id,product_name,unit_cost,quantity
near,1,0,milk,Milk,2.00,10
bad,not-a-number,0,milk,Milk,1.00,5
far,5,0,eggs,Eggs,3.50,4
`
	result := LoadCSV([]byte(content))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].RowNumber)
	require.Len(t, result.Rows, 2)
}

func TestLoadCSV_MissingColumnFailsImmediately(t *testing.T) {
	content := "store_id,store_x,store_y,product_id,product_name,unit_cost\nnear,1,0,milk,Milk,2.00\n"
	result := LoadCSV([]byte(content))
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "quantity")
}

func TestLoadCSV_DetectsSemicolonDelimiter(t *testing.T) {
	content := "store_id;store_x;store_y;product_id;product_name;unit_cost;quantity\n" +
		"near;1;0;milk;Milk;2.00;10\n" +
		"far;5;0;eggs;Eggs;3.50;4\n"
	result := LoadCSV([]byte(content))
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, skyline.StoreID("near"), result.Rows[0].StoreID)
	assert.Equal(t, 2.00, result.Rows[0].UnitCost)
}

func TestLoadCSV_AutoDetectsWindows1250Content(t *testing.T) {
	// 0xC8 is "Č" in Windows-1250 but not valid standalone UTF-8, so the
	// auto-detect path in detectAndDecode must fall back to Windows-1250.
	content := []byte("store_id,store_x,store_y,product_id,product_name,unit_cost,quantity\n" +
		"near,1,0,choc,\xC8okolada,2.00,10\n")
	result := LoadCSV(content)
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Čokolada", result.Rows[0].Product)
}

func TestLoadCSVWithEncoding_DecodesISO88592Content(t *testing.T) {
	encoded, _, err := transform.Bytes(charmap.ISO8859_2.NewEncoder(), []byte("Čokolada"))
	require.NoError(t, err)

	content := append([]byte("store_id,store_x,store_y,product_id,product_name,unit_cost,quantity\n"+
		"near,1,0,choc,"), append(encoded, []byte(",2.00,10\n")...)...)

	result := LoadCSVWithEncoding(content, EncodingISO88592)
	require.Empty(t, result.Errors)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Čokolada", result.Rows[0].Product)
}

func TestBuildStores_AggregatesInventoryAndLocation(t *testing.T) {
	result := LoadCSV([]byte(sampleCSV))
	stores := BuildStores(result.Rows)

	require.Len(t, stores, 2)
	far := stores["far"]
	require.NotNil(t, far)
	assert.Equal(t, skyline.Location{X: 5, Y: 0}, far.Location)
	assert.Equal(t, 10, far.AvailableQty("milk"))
	assert.Equal(t, 4, far.AvailableQty("eggs"))
}

func TestSummarize_ComputesErrorRate(t *testing.T) {
	s := Summarize(Result{Rows: []Row{{}, {}, {}}, Errors: []RowError{{RowNumber: 2, Message: "bad"}}})
	assert.Equal(t, 4, s.TotalRows)
	assert.Equal(t, 1, s.FailedRows)
	assert.Equal(t, 0.25, s.ErrorRate)
}
