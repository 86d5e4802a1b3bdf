package report_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/saldeo-connector/internal/money"
	"github.com/rezonia/saldeo-connector/internal/payments"
	"github.com/rezonia/saldeo-connector/internal/report"
)

func testRecords(t *testing.T) []payments.FinishedPayment {
	t.Helper()
	created, err := time.Parse(time.RFC3339, "2025-01-10T12:30:00Z")
	require.NoError(t, err)
	return []payments.FinishedPayment{
		{
			GUID:             "a1b2",
			Created:          created,
			Finished:         true,
			InvoiceRequested: true,
			CompanyName:      "ACME Sp. z o.o.",
			Email:            "faktury@acme.pl",
			Street:           "Prosta 1",
			PostCode:         "00-001",
			City:             "Warszawa",
			Country:          "Polska",
			NIP:              "5252248481",
			Amount:           money.MustFromString("499.00"),
			ProductName:      "Pro",
			Quantity:         1,
		},
		{
			GUID:     "c3d4",
			Created:  created.Add(24 * time.Hour),
			Finished: true,
			Email:    "anon@example.com",
			Amount:   money.MustFromString("99.00"),
			Quantity: 1,
		},
	}
}

func cellValue(t *testing.T, f *excelize.File, col, row int) string {
	t.Helper()
	cell, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	v, err := f.GetCellValue(report.SheetName, cell)
	require.NoError(t, err)
	return v
}

func TestFill_NewWorkbook(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, report.Fill(testRecords(t), "", out, "FV/2025"))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	// Header row.
	assert.Equal(t, "Lp.", cellValue(t, f, 1, 1))

	// Invoice row.
	assert.Equal(t, "1", cellValue(t, f, 1, 2))
	assert.Equal(t, "FV/2025", cellValue(t, f, 2, 2))
	assert.Equal(t, "2025-01-10", cellValue(t, f, 6, 2))
	assert.Equal(t, "2025-01-11", cellValue(t, f, 8, 2))
	assert.Equal(t, "ACME Sp. z o.o.", cellValue(t, f, 9, 2))
	assert.Equal(t, "Prosta 1", cellValue(t, f, 11, 2))
	assert.Equal(t, "5252248481", cellValue(t, f, 14, 2))
	assert.Equal(t, "499.00", cellValue(t, f, 33, 2))

	// Receipt-only row falls back to placeholder buyer fields.
	assert.Equal(t, "anon@example.com", cellValue(t, f, 9, 3))
	assert.Equal(t, "Paragon", cellValue(t, f, 11, 3))
	assert.Equal(t, "00-000", cellValue(t, f, 12, 3))
	assert.Equal(t, "Paragon", cellValue(t, f, 37, 3))

	// Totals row under the amounts column.
	assert.Equal(t, "598.00", cellValue(t, f, 33, 4))
}

func TestFill_ExistingTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "template.xlsx")

	tf := excelize.NewFile()
	require.NoError(t, tf.SetSheetName(tf.GetSheetName(0), report.SheetName))
	require.NoError(t, tf.SetCellValue(report.SheetName, "A1", "Lp."))
	require.NoError(t, tf.SaveAs(template))
	require.NoError(t, tf.Close())

	out := filepath.Join(dir, "out.xlsx")
	require.NoError(t, report.Fill(testRecords(t), template, out, "FV/2025"))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Lp.", cellValue(t, f, 1, 1))
	assert.Equal(t, "FV/2025", cellValue(t, f, 2, 2))
}

func TestFill_MissingTemplate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.xlsx")
	err := report.Fill(testRecords(t), "/nonexistent/template.xlsx", out, "FV/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template")
}

func TestFill_LongCompanyNameTruncated(t *testing.T) {
	records := testRecords(t)[:1]
	records[0].CompanyName = "Bardzo Długa Nazwa Firmy Handlowo Usługowej Sp. z o.o. Sp. k."

	out := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, report.Fill(records, "", out, "FV/2025"))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, []rune(cellValue(t, f, 9, 2)), 39)
}
