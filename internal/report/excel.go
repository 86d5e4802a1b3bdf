// Package report renders finished payments into an XLSX invoicing report.
// The layout mirrors the accounting template: headers in row 1, data from
// row 2, one row per payment.
package report

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/saldeo-connector/internal/money"
	"github.com/rezonia/saldeo-connector/internal/payments"
)

// SheetName is the worksheet the template is expected to carry; the first
// sheet is used when it is absent.
const SheetName = "Faktury"

const (
	colOrdinal     = 1
	colSuffix      = 2
	colIssueDate   = 6
	colSaleDate    = 7
	colDueDate     = 8
	colBuyerShort  = 9
	colBuyerFull   = 10
	colStreet      = 11
	colPostCode    = 12
	colCity        = 13
	colNIP         = 14
	colCountry     = 16
	colEmail       = 17
	colCurrency    = 27
	colProductName = 28
	colQuantity    = 30
	colUnit        = 31
	colNetPrice    = 33
	colVATRate     = 34
	colPayment     = 35
	colRemarks     = 37
)

// Fill writes payments into the XLSX template at templatePath and saves the
// result to outputPath. With an empty templatePath a fresh workbook with a
// header row is created. invoiceSuffix is stamped on every row.
func Fill(records []payments.FinishedPayment, templatePath, outputPath, invoiceSuffix string) error {
	f, sheet, err := openTemplate(templatePath)
	if err != nil {
		return err
	}
	defer f.Close()

	amounts := make([]decimal.Decimal, 0, len(records))
	for i, p := range records {
		row := 2 + i
		amounts = append(amounts, p.Amount)

		set := func(col int, value interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			f.SetCellValue(sheet, cell, value)
		}

		set(colOrdinal, i+1)
		set(colSuffix, invoiceSuffix)
		set(colIssueDate, p.Created.Format("2006-01-02"))
		set(colSaleDate, p.Created.Format("2006-01-02"))
		set(colDueDate, p.Created.AddDate(0, 0, 1).Format("2006-01-02"))
		set(colBuyerShort, buyerName(p))
		set(colBuyerFull, buyerName(p))
		set(colNIP, p.NIP)
		set(colCountry, p.Country)
		set(colCurrency, "PLN")
		set(colProductName, p.ProductName)
		set(colQuantity, p.Quantity)
		set(colUnit, "szt")
		set(colNetPrice, money.Format(p.Amount))
		set(colVATRate, "23%")
		set(colPayment, "Karta kredytowa")

		if p.InvoiceRequested {
			set(colStreet, p.Street)
			set(colPostCode, p.PostCode)
			set(colCity, p.City)
			set(colEmail, p.Email)
		} else {
			// Receipt-only rows get the placeholder buyer address.
			set(colStreet, "Paragon")
			set(colPostCode, "00-000")
			set(colCity, "Paragon")
			set(colRemarks, "Paragon")
		}
	}

	if len(records) > 0 {
		cell, _ := excelize.CoordinatesToCellName(colNetPrice, 2+len(records))
		f.SetCellValue(sheet, cell, money.Format(money.Sum(amounts)))
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func buyerName(p payments.FinishedPayment) string {
	if !p.InvoiceRequested {
		return p.Email
	}
	name := p.CompanyName
	if r := []rune(name); len(r) > 40 {
		name = string(r[:39])
	}
	return name
}

func openTemplate(templatePath string) (*excelize.File, string, error) {
	if templatePath == "" {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		if err := f.SetSheetName(sheet, SheetName); err != nil {
			f.Close()
			return nil, "", fmt.Errorf("failed to prepare workbook: %w", err)
		}
		writeHeader(f)
		return f, SheetName, nil
	}

	if _, err := os.Stat(templatePath); err != nil {
		return nil, "", fmt.Errorf("template not readable: %w", err)
	}
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open template: %w", err)
	}
	sheet := SheetName
	if idx, err := f.GetSheetIndex(SheetName); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	return f, sheet, nil
}

func writeHeader(f *excelize.File) {
	headers := map[int]string{
		colOrdinal:     "Lp.",
		colSuffix:      "Seria",
		colIssueDate:   "Data wystawienia",
		colSaleDate:    "Data sprzedaży",
		colDueDate:     "Termin płatności",
		colBuyerShort:  "Nabywca (nazwa skrócona)",
		colBuyerFull:   "Nazwa pełna",
		colStreet:      "Adres",
		colPostCode:    "Kod pocztowy",
		colCity:        "Miejscowość",
		colNIP:         "NIP",
		colCountry:     "Kraj",
		colEmail:       "Adres e-mail",
		colCurrency:    "Waluta",
		colProductName: "Nazwa towaru",
		colQuantity:    "Ilość",
		colUnit:        "Jm.",
		colNetPrice:    "Cena jedn. netto",
		colVATRate:     "Stawka VAT",
		colPayment:     "Forma płatności",
		colRemarks:     "Uwagi",
	}
	for col, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		f.SetCellValue(SheetName, cell, title)
	}
}
