package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"MarketRadar/internal/domain"
	"MarketRadar/internal/ports"
)

var header = []string{
	"stock", "title", "publisher", "url", "published",
	"score", "priority", "reasons", "sentiment",
}

// WriteCSV streams the visible articles of a batch to w.
func WriteCSV(w io.Writer, batch domain.Batch) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, stock := range batch.Stocks {
		for _, art := range stock.Articles {
			record := []string{
				art.Article.Stock,
				art.Article.Title,
				art.Article.Publisher,
				art.Article.URL,
				art.Article.Published,
				strconv.Itoa(art.Score),
				string(art.Priority),
				strings.Join(art.Reasons, " • "),
				string(art.Sentiment.Label),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FileExporter writes each batch to a fixed path, replacing the previous one.
type FileExporter struct {
	path string
}

var _ ports.Exporter = (*FileExporter)(nil)

// NewFileExporter targets the given path.
func NewFileExporter(path string) *FileExporter {
	return &FileExporter{path: path}
}

// Export writes the batch as CSV.
func (e *FileExporter) Export(batch domain.Batch) error {
	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", e.path, err)
	}

	if err := WriteCSV(f, batch); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", e.path, err)
	}
	return nil
}
