package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"galleria/internal/museum"
)

type MuseumHandler struct {
	client *museum.Client
}

func NewMuseumHandler(client *museum.Client) *MuseumHandler {
	return &MuseumHandler{client: client}
}

// @Summary      Search the museum collection
// @Tags         Museum
// @Produce      json
// @Param        q  query  string  true  "search terms"
// @Success      200  {object}  museum.SearchResult
// @Router       /museum/search [get]
func (h *MuseumHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	res, err := h.client.Search(q)
	if err != nil {
		log.Printf("[museum][search] error q=%q: %v", q, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "museum API unavailable"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MuseumHandler) GetObject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid object id"})
		return
	}

	obj, err := h.client.GetObject(id)
	if err != nil {
		log.Printf("[museum][object] error id=%d: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
		return
	}
	c.JSON(http.StatusOK, obj)
}
