package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-auditor/constants"
	"github.com/joseph-ayodele/invoice-auditor/internal/entity"
	"github.com/joseph-ayodele/invoice-auditor/internal/pipeline"
)

// DocumentData is one document's collated extraction output.
type DocumentData struct {
	Prefix    string            `json:"prefix"`
	Fields    entity.FieldSet   `json:"fields"`
	LineItems []entity.LineItem `json:"line_items"`
}

// PrefixReport is a verification report tagged with its document prefix.
type PrefixReport struct {
	Prefix string `json:"prefix"`
	entity.VerificationReport
}

// Service collates per-prefix artifacts into combined JSON and XLSX exports.
// A missing artifact means "no data for this document", never an error.
type Service struct {
	outputDir string
	logger    *slog.Logger
}

func NewService(outputDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{outputDir: outputDir, logger: logger}
}

// Prefixes derives document prefixes from the fields artifacts present in
// the output directory, sorted.
func (s *Service) Prefixes() ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}
	var prefixes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); strings.HasSuffix(name, constants.SuffixFields) {
			prefixes = append(prefixes, strings.TrimSuffix(name, constants.SuffixFields))
		}
	}
	sort.Strings(prefixes)
	return prefixes, nil
}

// Collect loads whatever artifacts exist for the given prefixes.
func (s *Service) Collect(prefixes []string) ([]DocumentData, []PrefixReport, error) {
	var docs []DocumentData
	var reports []PrefixReport
	for _, prefix := range prefixes {
		doc := DocumentData{Prefix: prefix, Fields: entity.FieldSet{}, LineItems: []entity.LineItem{}}
		if fields, err := pipeline.ReadFields(pipeline.FieldsPath(s.outputDir, prefix)); err == nil {
			doc.Fields = fields
		} else if !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("collect fields for %q: %w", prefix, err)
		}
		if items, err := pipeline.ReadLineItems(pipeline.LineItemsPath(s.outputDir, prefix)); err == nil {
			doc.LineItems = items
		} else if !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("collect line items for %q: %w", prefix, err)
		}
		docs = append(docs, doc)

		if report, err := readReport(pipeline.ReportPath(s.outputDir, prefix)); err == nil {
			reports = append(reports, PrefixReport{Prefix: prefix, VerificationReport: report})
		} else if !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("collect report for %q: %w", prefix, err)
		}
	}
	return docs, reports, nil
}

// Export writes the combined JSON exports and the XLSX workbook for the
// given prefixes.
func (s *Service) Export(prefixes []string) error {
	start := time.Now()
	docs, reports, err := s.Collect(prefixes)
	if err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(s.outputDir, "extracted_data.json"), docs); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.outputDir, "verifiability_report.json"), reports); err != nil {
		return err
	}

	xlsxBytes, err := s.BuildXLSX(docs)
	if err != nil {
		return err
	}
	xlsxPath := filepath.Join(s.outputDir, "extracted_data.xlsx")
	if err := os.WriteFile(xlsxPath, xlsxBytes, 0o644); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	s.logger.Info("export.ok",
		"documents", len(docs),
		"reports", len(reports),
		"out", xlsxPath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// fieldColumns is the Fields sheet column order after the prefix column.
var fieldColumns = []string{
	constants.FieldInvoiceNumber,
	constants.FieldDate,
	constants.FieldGSTNumber,
	constants.FieldPONumber,
	constants.FieldBillTo,
	constants.FieldShipTo,
	constants.FieldBillToAddress,
	constants.FieldShipToAddress,
	constants.FieldSubtotal,
	constants.FieldGSTAmount,
	constants.FieldDiscount,
	constants.FieldTotal,
}

// BuildXLSX returns a workbook with a Fields sheet (one row per document)
// and a LineItems sheet (one row per item).
func (s *Service) BuildXLSX(docs []DocumentData) ([]byte, error) {
	f := excelize.NewFile()

	const fieldsSheet = "Fields"
	if err := renameDefaultSheet(f, fieldsSheet); err != nil {
		return nil, err
	}
	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(fieldsSheet, 1, 1, "prefix")
	for i, name := range fieldColumns {
		write(fieldsSheet, i+2, 1, name)
	}
	for r, doc := range docs {
		write(fieldsSheet, 1, r+2, doc.Prefix)
		for c, name := range fieldColumns {
			fv := doc.Fields.Get(name)
			if fv.Value != nil {
				write(fieldsSheet, c+2, r+2, *fv.Value)
			}
		}
	}

	const itemsSheet = "LineItems"
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}
	itemHeaders := []string{"prefix", "description", "qty", "unit_price", "row_total", "valid"}
	for i, h := range itemHeaders {
		write(itemsSheet, i+1, 1, h)
	}
	row := 2
	for _, doc := range docs {
		for _, item := range doc.LineItems {
			write(itemsSheet, 1, row, doc.Prefix)
			write(itemsSheet, 2, row, item.Description)
			write(itemsSheet, 3, row, item.Qty)
			write(itemsSheet, 4, row, item.UnitPrice)
			write(itemsSheet, 5, row, item.RowTotal)
			write(itemsSheet, 6, row, item.Valid)
			row++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(fieldsSheet, "A", "A", 24) // prefix
	_ = f.SetColWidth(fieldsSheet, "B", "M", 18)
	_ = f.SetColWidth(itemsSheet, "A", "A", 24)
	_ = f.SetColWidth(itemsSheet, "B", "B", 40) // description

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func renameDefaultSheet(f *excelize.File, name string) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return err
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	return nil
}
