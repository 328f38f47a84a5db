package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for catalog files that are not .json,
// .csv or .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// LoadFile loads a catalog, choosing the decoder from the file extension.
func LoadFile(path string) (*Catalog, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".csv", ".xlsx":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch ext {
	case ".json":
		return LoadJSON(f)
	case ".csv":
		return LoadCSV(f)
	default:
		return LoadXLSX(f)
	}
}

// LoadJSON decodes a JSON array of {"itemId", "lesson", "media"} objects.
func LoadJSON(r io.Reader) (*Catalog, error) {
	var items []domain.VocabularyItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog JSON: %w", err)
	}
	return New(items), nil
}

// LoadCSV reads rows of itemId,lesson,media where media is a list of
// key=value pairs separated by semicolons. A leading header row whose
// first cell is "itemId" is skipped.
func LoadCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog CSV: %w", err)
	}
	return New(itemsFromRows(rows)), nil
}

// LoadXLSX reads the first worksheet of an Excel workbook using the same
// column layout as LoadCSV.
func LoadXLSX(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return New(nil), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheets[0], err)
	}
	return New(itemsFromRows(rows)), nil
}

func itemsFromRows(rows [][]string) []domain.VocabularyItem {
	items := make([]domain.VocabularyItem, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "itemId") {
			continue
		}
		item := domain.VocabularyItem{ItemID: cell(row, 0), Lesson: cell(row, 1)}
		if media := parseMedia(cell(row, 2)); len(media) > 0 {
			item.Media = media
		}
		items = append(items, item)
	}
	return items
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseMedia parses "video=hello.mp4;image=hello.png".
func parseMedia(s string) map[string]string {
	if s == "" {
		return nil
	}
	media := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(part, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			continue
		}
		media[key] = value
	}
	return media
}
