package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	cfg             *config.Config
}

func NewCategoryHandler(categoryService *service.CategoryService, cfg *config.Config) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		cfg:             cfg,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categoryService.GetWithPostCount()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	category, err := h.categoryService.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// GetPosts lists the posts of one category, paginated.
func (h *CategoryHandler) GetPosts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.PostPerPage

	posts, total, err := h.categoryService.GetPosts(uint(id), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}
