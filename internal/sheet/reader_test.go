package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/igorsal/api-console/internal/models"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffSource, Make ,IPCCode/Part #,Stock\n" +
		"B1,MK, 100 ,4\n" +
		"\n" +
		"   \n" +
		"B2,\"Acme, Inc\",200\n" +
		"B3,MK,300,1,extra\n"

	rows, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.CSVRow{"Source": "B1", "Make": "MK", "IPCCode/Part #": "100", "Stock": "4"}, rows[0])
	assert.Equal(t, "Acme, Inc", rows[1][models.ColMake])
	assert.Equal(t, "", rows[1][models.ColStock])
	assert.Len(t, rows[2], 4)
}

func TestParseCSVNeedsHeaderAndData(t *testing.T) {
	for _, input := range []string{"", "\n\n", "Source,Make\n", "  \nSource,Make\n  \n"} {
		rows, err := ParseCSV(strings.NewReader(input))

		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Source", "IPCCode/Part #", "Price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{" B1 ", "P-100", 129.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"B2", "P-200"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ParseXLSX(&buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B1", rows[0][models.ColSource])
	assert.Equal(t, "P-100", rows[0][models.ColPartNumber])
	assert.Equal(t, "129.5", rows[0][models.ColPrice])
	assert.Equal(t, "", rows[1][models.ColPrice])
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	_, err := ParseXLSX(strings.NewReader("not a zip"))

	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
}

func TestParseByExtension(t *testing.T) {
	rows, err := Parse("Inventory.CSV", strings.NewReader("Source\nB1\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = Parse("rows.txt", strings.NewReader("Source\nB1\n"))
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
}
