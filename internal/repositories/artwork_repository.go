package repositories

import (
	"database/sql"
	"fmt"

	"galleria/internal/models"
)

type ArtworkRepository struct {
	db *sql.DB
}

func NewArtworkRepository(db *sql.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

func (r *ArtworkRepository) Create(a *models.Artwork) error {
	const q = `
		INSERT INTO artworks (user_id, museum_object_id, title, artist, object_date, medium, image_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRow(q,
		a.UserID, a.MuseumObjectID, a.Title, a.Artist, a.ObjectDate, a.Medium, a.ImageURL, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("create artwork: %w", err)
	}
	return nil
}

// GetByID is owner-scoped: other users' pieces are invisible, not forbidden.
func (r *ArtworkRepository) GetByID(id int64, userID int) (*models.Artwork, error) {
	const q = `
		SELECT id, user_id, museum_object_id, title, artist, object_date, medium, image_url, notes, created_at, updated_at
		FROM artworks
		WHERE id = $1 AND user_id = $2
	`
	var a models.Artwork
	err := r.db.QueryRow(q, id, userID).Scan(
		&a.ID, &a.UserID, &a.MuseumObjectID, &a.Title, &a.Artist, &a.ObjectDate,
		&a.Medium, &a.ImageURL, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get artwork: %w", err)
	}
	return &a, nil
}

func (r *ArtworkRepository) ListByUser(userID, limit, offset int) ([]*models.Artwork, error) {
	const q = `
		SELECT id, user_id, museum_object_id, title, artist, object_date, medium, image_url, notes, created_at, updated_at
		FROM artworks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(q, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	defer rows.Close()

	var res []*models.Artwork
	for rows.Next() {
		a := &models.Artwork{}
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.MuseumObjectID, &a.Title, &a.Artist, &a.ObjectDate,
			&a.Medium, &a.ImageURL, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ArtworkRepository) Update(a *models.Artwork) error {
	const q = `
		UPDATE artworks
		SET title=$1, artist=$2, object_date=$3, medium=$4, image_url=$5, notes=$6, updated_at=NOW()
		WHERE id=$7 AND user_id=$8
	`
	res, err := r.db.Exec(q, a.Title, a.Artist, a.ObjectDate, a.Medium, a.ImageURL, a.Notes, a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("update artwork: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ArtworkRepository) Delete(id int64, userID int) error {
	res, err := r.db.Exec(`DELETE FROM artworks WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ArtworkRepository) CountByUser(userID int) (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM artworks WHERE user_id=$1`, userID).Scan(&c)
	return c, err
}
