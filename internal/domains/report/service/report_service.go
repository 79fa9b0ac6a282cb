// Package service builds the inventory workbook served to admins and archived nightly.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	bookModel "book-inventory/internal/domains/book/model"
	"book-inventory/internal/shared/format"
)

const (
	SheetName   = "Inventory"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{"ID", "Title", "Authors", "Genres", "Languages", "Stock", "Price", "Published"}

// BookSource is satisfied by the book repository
type BookSource interface {
	ListBooks(ctx context.Context, search string) ([]bookModel.Book, error)
}

// Uploader is satisfied by *storage.MinIOStorage
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type Service interface {
	// Build renders every book into one xlsx workbook
	Build(ctx context.Context) ([]byte, error)
	// Archive builds the workbook and stores it under ArchiveKey(now)
	Archive(ctx context.Context, now time.Time) (string, error)
}

type reportService struct {
	books   BookSource
	storage Uploader
}

// NewReportService - storage may be nil when object storage is not configured; Archive then fails
func NewReportService(books BookSource, storage Uploader) Service {
	return &reportService{books: books, storage: storage}
}

// ArchiveKey is the object key of the report for day now (UTC)
func ArchiveKey(now time.Time) string {
	return "reports/inventory-" + now.UTC().Format("20060102") + ".xlsx"
}

func (s *reportService) Build(ctx context.Context) ([]byte, error) {
	books, err := s.books.ListBooks(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	f, err := buildWorkbook(books)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) Archive(ctx context.Context, now time.Time) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("archive report: object storage not configured")
	}

	data, err := s.Build(ctx)
	if err != nil {
		return "", err
	}

	key := ArchiveKey(now)
	url, err := s.storage.Upload(ctx, key, data, ContentType)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.Info().Str("key", key).Int("bytes", len(data)).Msg("[ReportService] inventory report archived")
	return url, nil
}

func buildWorkbook(books []bookModel.Book) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(SheetName, "A1", last, style)
	}

	for i, b := range books {
		row := []interface{}{
			b.ID,
			b.Title,
			format.JoinOr(b.Authors, ""),
			format.JoinOr(b.Genres, ""),
			format.JoinOr(b.Languages, ""),
			b.Stock,
			b.Price.InexactFloat64(),
			format.ISODate(b.PublishedAt),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "B", "E", 30)
	return f, nil
}
