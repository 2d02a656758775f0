package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galleria/internal/models"
)

func TestGenerateCatalog(t *testing.T) {
	g := NewCatalogGenerator()

	out, err := g.GenerateCatalog(CatalogData{
		OwnerName:   "Alice",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Artworks: []*models.Artwork{
			{
				ID:         1,
				Title:      "Wheat Field with Cypresses",
				Artist:     "Vincent van Gogh",
				ObjectDate: "1889",
				Medium:     "Oil on canvas",
				Notes:      "acquired via museum import",
			},
			{ID: 2, Title: "Untitled sketch"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateCatalog_EmptyCollection(t *testing.T) {
	g := NewCatalogGenerator()

	out, err := g.GenerateCatalog(CatalogData{
		OwnerName:   "Alice",
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
