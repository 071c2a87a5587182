package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ticket_booking/internal/catalog"
)

func TestDefaultEvents(t *testing.T) {
	events := catalog.DefaultEvents()

	require.Len(t, events, 12)
	assert.Equal(t, "Rock Concert 2025", events[0].Name)
	assert.Equal(t, "50.00", events[0].BasePrice.StringFixed(2))
	assert.Equal(t, 500, events[0].TotalSeats)
	assert.Equal(t, "2025-07-15", events[0].Date.Format("2006-01-02"))
	assert.Equal(t, "Technology Conference", events[11].Name)
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadFile(t *testing.T) {
	path := writeSeed(t, `
events:
  - name: Comedy Show
    date: "2025-07-25"
    venue: Comedy Club
    base_price: "30.50"
    total_seats: 200
  - name: Magic Show
    date: "2025-08-12"
    venue: Entertainment Center
    base_price: "35.00"
    total_seats: 350
`)

	events, err := catalog.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Comedy Show", events[0].Name)
	assert.Equal(t, "30.50", events[0].BasePrice.StringFixed(2))
	assert.Equal(t, 350, events[1].TotalSeats)
}

func TestLoadFile_InvalidDate(t *testing.T) {
	path := writeSeed(t, `
events:
  - name: Comedy Show
    date: "25/07/2025"
    base_price: "30.00"
    total_seats: 200
`)

	_, err := catalog.LoadFile(path)
	assert.ErrorContains(t, err, "invalid date")
}

func TestLoadFile_Empty(t *testing.T) {
	path := writeSeed(t, "events: []\n")

	_, err := catalog.LoadFile(path)
	assert.Error(t, err)
}

func TestLoad_DefaultsWithoutPath(t *testing.T) {
	events, err := catalog.Load("")
	require.NoError(t, err)
	assert.Len(t, events, 12)
}

func TestLoad_RepositorySeedFile(t *testing.T) {
	events, err := catalog.Load(filepath.Join("..", "..", "configs", "catalog.yaml"))
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
