package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/bizops-api/internal/models"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
	"github.com/noah-isme/bizops-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

const (
	exportPageSize = 100
	// DefaultExportRowLimit caps how many rows one export reads.
	DefaultExportRowLimit = 5000
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

// ExportRequest selects what to export.
type ExportRequest struct {
	Table  string
	Filter string
	Format string
}

// ExportResult is a rendered file ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders listings as downloadable files.
type ExportService struct {
	reader   listingReader
	csv      datasetRenderer
	pdf      datasetRenderer
	rowLimit int
	now      func() time.Time
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers default to the pkg/export ones.
func NewExportService(reader listingReader, csv, pdf datasetRenderer, rowLimit int, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if rowLimit <= 0 {
		rowLimit = DefaultExportRowLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reader: reader, csv: csv, pdf: pdf, rowLimit: rowLimit, now: time.Now, logger: logger}
}

// Export reads the whole listing, up to the row limit, and renders it.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	table, filter, err := parseListingTarget(req.Table, req.Filter)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = ExportFormatCSV
	}
	var renderer datasetRenderer
	switch format {
	case ExportFormatCSV:
		renderer = s.csv
	case ExportFormatPDF:
		renderer = s.pdf
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	dataset, err := s.collect(ctx, table, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read "+string(table))
	}
	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("listing exported",
		zap.String("table", string(table)),
		zap.String("filter", string(filter)),
		zap.String("format", format),
		zap.Int("rows", len(dataset.Rows)),
	)
	return &ExportResult{
		Filename:    fmt.Sprintf("%s-%s-%s.%s", table, filter, s.now().UTC().Format("20060102-150405"), format),
		ContentType: renderer.ContentType(),
		Body:        body,
		Rows:        len(dataset.Rows),
	}, nil
}

func (s *ExportService) collect(ctx context.Context, table models.BaseTable, filter models.FilterMode) (export.Dataset, error) {
	dataset := export.Dataset{
		Title:   fmt.Sprintf("%s (%s)", strings.ToUpper(string(table[:1]))+string(table[1:]), filter),
		Headers: append(tableHeaders(table), "archived_at", "archived_by", "archive_reason"),
	}

	for page := 1; len(dataset.Rows) < s.rowLimit; page++ {
		opts := models.ListOptions{Page: page, PageSize: exportPageSize}
		var (
			cells    [][]string
			archived []models.Archivable
			total    int
			err      error
		)
		switch table {
		case models.TableSubmissions:
			var rows []models.Submission
			rows, total, err = s.reader.ListSubmissions(ctx, filter, opts)
			for i := range rows {
				r := &rows[i]
				cells = append(cells, []string{r.ID, r.ClientID, r.Title, string(r.Status), r.Amount.StringFixed(2), formatTime(r.SubmittedAt), r.CreatedAt.UTC().Format(time.RFC3339)})
				archived = append(archived, r)
			}
		case models.TableOrders:
			var rows []models.Order
			rows, total, err = s.reader.ListOrders(ctx, filter, opts)
			for i := range rows {
				r := &rows[i]
				cells = append(cells, []string{r.ID, r.ClientID, r.OrderNumber, r.Status, r.TotalAmount.StringFixed(2), formatTime(r.DueDate), r.CreatedAt.UTC().Format(time.RFC3339)})
				archived = append(archived, r)
			}
		case models.TableProofs:
			var rows []models.Proof
			rows, total, err = s.reader.ListProofs(ctx, filter, opts)
			for i := range rows {
				r := &rows[i]
				cells = append(cells, []string{r.ID, r.OrderID, fmt.Sprintf("%d", r.Version), r.Status, r.FileURL, r.CreatedAt.UTC().Format(time.RFC3339)})
				archived = append(archived, r)
			}
		}
		if err != nil {
			return export.Dataset{}, err
		}

		for i, row := range cells {
			if len(dataset.Rows) >= s.rowLimit {
				break
			}
			info := models.GetArchiveInfo(archived[i])
			if info != nil {
				row = append(row, formatTime(info.ArchivedAt), lo.FromPtr(info.ArchivedBy), lo.FromPtr(info.ArchiveReason))
			} else {
				row = append(row, "", "", "")
			}
			dataset.Rows = append(dataset.Rows, row)
			dataset.Muted = append(dataset.Muted, info != nil)
		}
		if len(cells) < exportPageSize || page*exportPageSize >= total {
			break
		}
	}
	return dataset, nil
}

func tableHeaders(table models.BaseTable) []string {
	switch table {
	case models.TableSubmissions:
		return []string{"id", "client_id", "title", "status", "amount", "submitted_at", "created_at"}
	case models.TableOrders:
		return []string{"id", "client_id", "order_number", "status", "total_amount", "due_date", "created_at"}
	default:
		return []string{"id", "order_id", "version", "status", "file_url", "created_at"}
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
