package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"galleria/internal/models"
	"galleria/internal/services"
)

type ArtworkHandler struct {
	artworks services.ArtworkService
}

func NewArtworkHandler(artworks services.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks}
}

type artworkRequest struct {
	Title      string `json:"title" binding:"required"`
	Artist     string `json:"artist"`
	ObjectDate string `json:"object_date"`
	Medium     string `json:"medium"`
	ImageURL   string `json:"image_url"`
	Notes      string `json:"notes"`
}

// @Summary      Add a piece to the collection
// @Tags         Artworks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Artwork
// @Failure      400  {object}  map[string]string
// @Router       /artworks [post]
func (h *ArtworkHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req artworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := &models.Artwork{
		UserID:     user.ID,
		Title:      req.Title,
		Artist:     req.Artist,
		ObjectDate: req.ObjectDate,
		Medium:     req.Medium,
		ImageURL:   req.ImageURL,
		Notes:      req.Notes,
	}
	if err := h.artworks.Create(a); err != nil {
		log.Printf("[artworks][create] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create artwork"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// Import pulls the object record from the museum API and files it into the
// caller's collection.
func (h *ArtworkHandler) Import(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req struct {
		ObjectID int64  `json:"object_id" binding:"required"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.artworks.ImportFromMuseum(user.ID, req.ObjectID, req.Notes)
	if err != nil {
		log.Printf("[artworks][import] error user_id=%d object_id=%d: %v", user.ID, req.ObjectID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch museum object"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *ArtworkHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.artworks.List(user.ID, limit, offset)
	if err != nil {
		log.Printf("[artworks][list] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list artworks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": list})
}

func (h *ArtworkHandler) GetByID(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork id"})
		return
	}

	a, err := h.artworks.GetByID(id, user.ID)
	if err != nil {
		if err == services.ErrArtworkNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
			return
		}
		log.Printf("[artworks][get] error user_id=%d id=%d: %v", user.ID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load artwork"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ArtworkHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork id"})
		return
	}

	var req artworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := &models.Artwork{
		ID:         id,
		UserID:     user.ID,
		Title:      req.Title,
		Artist:     req.Artist,
		ObjectDate: req.ObjectDate,
		Medium:     req.Medium,
		ImageURL:   req.ImageURL,
		Notes:      req.Notes,
	}
	if err := h.artworks.Update(a); err != nil {
		if err == services.ErrArtworkNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
			return
		}
		log.Printf("[artworks][update] error user_id=%d id=%d: %v", user.ID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update artwork"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artwork updated"})
}

func (h *ArtworkHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artwork id"})
		return
	}

	if err := h.artworks.Delete(id, user.ID); err != nil {
		if err == services.ErrArtworkNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
			return
		}
		log.Printf("[artworks][delete] error user_id=%d id=%d: %v", user.ID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete artwork"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artwork deleted"})
}

// ExportCatalog streams the collection as a PDF catalogue.
func (h *ArtworkHandler) ExportCatalog(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	data, err := h.artworks.ExportCatalog(user)
	if err != nil {
		log.Printf("[artworks][export] error user_id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=collection_%d.pdf", user.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}
