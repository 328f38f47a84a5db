package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	c, err := LoadJSON(strings.NewReader(`[
		{"itemId": "hello", "lesson": "greetings", "media": {"video": "hello.mp4"}},
		{"itemId": "thanks"},
		{"itemId": "hello", "lesson": "ignored"}
	]`))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	item, ok := c.Lookup("hello")
	require.True(t, ok)
	assert.Equal(t, "greetings", item.Lesson)
	assert.Equal(t, map[string]string{"video": "hello.mp4"}, item.Media)

	_, err = LoadJSON(strings.NewReader(`{"itemId": "not an array"}`))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	c, err := LoadCSV(strings.NewReader("itemId,lesson,media\nhello,greetings,video=hello.mp4;image=hello.png\nthanks\n,skipped,\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "thanks"}, domain.ItemIDs(c.Items()))

	item, _ := c.Lookup("hello")
	assert.Equal(t, map[string]string{"video": "hello.mp4", "image": "hello.png"}, item.Media)
}

func TestLoadXLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"itemId", "lesson", "media"},
		{"hello", "greetings", "video=hello.mp4"},
		{"thanks", "greetings", ""},
		{"  please ", "manners", "bad-entry;image=please.png"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	c, err := LoadXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "thanks", "please"}, domain.ItemIDs(c.Items()))

	please, ok := c.Lookup("please")
	require.True(t, ok)
	assert.Equal(t, "manners", please.Lesson)
	assert.Equal(t, map[string]string{"image": "please.png"}, please.Media)

	thanks, _ := c.Lookup("thanks")
	assert.Nil(t, thanks.Media)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"itemId":"hello"}]`), 0o600))
	c, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	csvPath := filepath.Join(dir, "catalog.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("a\nb\n"), 0o600))
	c, err = LoadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadFile(filepath.Join(dir, "catalog.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestParseMedia(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseMedia(""))
	assert.Equal(t, map[string]string{"video": "a.mp4"}, parseMedia(" video = a.mp4 ; =x; y= ;junk"))
}
