package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galleria/internal/models"
)

const artworkColumnsList = "id, user_id, museum_object_id, title, artist, object_date, medium, image_url, notes, created_at, updated_at"

func newArtworkMock(t *testing.T) (*ArtworkRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewArtworkRepository(db), mock
}

func TestArtworkRepository_Create(t *testing.T) {
	repo, mock := newArtworkMock(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO artworks").
		WithArgs(1, int64(436535), "Wheat Field with Cypresses", "Vincent van Gogh", "1889", "Oil on canvas", "https://example.org/img.jpg", "from the permanent collection").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	a := &models.Artwork{
		UserID:         1,
		MuseumObjectID: 436535,
		Title:          "Wheat Field with Cypresses",
		Artist:         "Vincent van Gogh",
		ObjectDate:     "1889",
		Medium:         "Oil on canvas",
		ImageURL:       "https://example.org/img.jpg",
		Notes:          "from the permanent collection",
	}
	require.NoError(t, repo.Create(a))
	assert.Equal(t, int64(3), a.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_GetByIDScopesToOwner(t *testing.T) {
	repo, mock := newArtworkMock(t)

	mock.ExpectQuery("SELECT " + artworkColumnsList).
		WithArgs(int64(3), 2).
		WillReturnError(sql.ErrNoRows)

	a, err := repo.GetByID(3, 2)
	require.NoError(t, err)
	assert.Nil(t, a)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_ListByUser(t *testing.T) {
	repo, mock := newArtworkMock(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "museum_object_id", "title", "artist", "object_date",
		"medium", "image_url", "notes", "created_at", "updated_at",
	}).
		AddRow(int64(2), 1, int64(0), "Untitled", "", "", "", "", "", now, now).
		AddRow(int64(1), 1, int64(436535), "Wheat Field with Cypresses", "Vincent van Gogh", "1889", "Oil on canvas", "", "", now, now)
	mock.ExpectQuery("SELECT "+artworkColumnsList).
		WithArgs(1, 50, 0).
		WillReturnRows(rows)

	list, err := repo.ListByUser(1, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, "Vincent van Gogh", list[1].Artist)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_UpdateMissingRow(t *testing.T) {
	repo, mock := newArtworkMock(t)

	mock.ExpectExec("UPDATE artworks").
		WithArgs("T", "A", "", "", "", "", int64(9), 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(&models.Artwork{ID: 9, UserID: 1, Title: "T", Artist: "A"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_Delete(t *testing.T) {
	repo, mock := newArtworkMock(t)

	mock.ExpectExec("DELETE FROM artworks").
		WithArgs(int64(3), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(3, 1))

	mock.ExpectExec("DELETE FROM artworks").
		WithArgs(int64(3), 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(3, 1), sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
