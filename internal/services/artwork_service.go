package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"galleria/internal/models"
	"galleria/internal/museum"
	"galleria/internal/pdf"
	"galleria/internal/repositories"
)

var ErrArtworkNotFound = errors.New("artwork not found")

type ArtworkService interface {
	Create(a *models.Artwork) error
	ImportFromMuseum(userID int, objectID int64, notes string) (*models.Artwork, error)
	GetByID(id int64, userID int) (*models.Artwork, error)
	List(userID, limit, offset int) ([]*models.Artwork, error)
	Update(a *models.Artwork) error
	Delete(id int64, userID int) error
	ExportCatalog(user *models.User) ([]byte, error)
}

type artworkService struct {
	repo   *repositories.ArtworkRepository
	museum *museum.Client
	pdfGen pdf.Generator
}

func NewArtworkService(repo *repositories.ArtworkRepository, museumClient *museum.Client, pdfGen pdf.Generator) ArtworkService {
	return &artworkService{repo: repo, museum: museumClient, pdfGen: pdfGen}
}

func (s *artworkService) Create(a *models.Artwork) error {
	if a.Title == "" {
		return fmt.Errorf("title is required")
	}
	return s.repo.Create(a)
}

// ImportFromMuseum fills a new piece from the museum object record.
func (s *artworkService) ImportFromMuseum(userID int, objectID int64, notes string) (*models.Artwork, error) {
	obj, err := s.museum.GetObject(objectID)
	if err != nil {
		return nil, err
	}
	a := &models.Artwork{
		UserID:         userID,
		MuseumObjectID: obj.ObjectID,
		Title:          obj.Title,
		Artist:         obj.ArtistDisplayName,
		ObjectDate:     obj.ObjectDate,
		Medium:         obj.Medium,
		ImageURL:       obj.PrimaryImageSmall,
		Notes:          notes,
	}
	if err := s.repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *artworkService) GetByID(id int64, userID int) (*models.Artwork, error) {
	a, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrArtworkNotFound
	}
	return a, nil
}

func (s *artworkService) List(userID, limit, offset int) ([]*models.Artwork, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUser(userID, limit, offset)
}

func (s *artworkService) Update(a *models.Artwork) error {
	if err := s.repo.Update(a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtworkNotFound
		}
		return err
	}
	return nil
}

func (s *artworkService) Delete(id int64, userID int) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtworkNotFound
		}
		return err
	}
	return nil
}

func (s *artworkService) ExportCatalog(user *models.User) ([]byte, error) {
	artworks, err := s.repo.ListByUser(user.ID, 100, 0)
	if err != nil {
		return nil, err
	}
	return s.pdfGen.GenerateCatalog(pdf.CatalogData{
		OwnerName:   user.Name,
		GeneratedAt: time.Now(),
		Artworks:    artworks,
	})
}
