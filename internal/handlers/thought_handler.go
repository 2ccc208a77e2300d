package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/service"
)

type ThoughtHandler struct {
	thoughtService *service.ThoughtService
	cfg            *config.Config
}

func NewThoughtHandler(thoughtService *service.ThoughtService, cfg *config.Config) *ThoughtHandler {
	return &ThoughtHandler{
		thoughtService: thoughtService,
		cfg:            cfg,
	}
}

func (h *ThoughtHandler) Create(c *gin.Context) {
	var req models.ThoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thought, err := h.thoughtService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"thought": thought})
}

func (h *ThoughtHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.ThoughtPerPage

	thoughts, total, err := h.thoughtService.List(page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"thoughts": thoughts,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *ThoughtHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thought id"})
		return
	}

	var req models.ThoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thought, err := h.thoughtService.Update(uint(id), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"thought": thought})
}

func (h *ThoughtHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thought id"})
		return
	}

	if err := h.thoughtService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "thought deleted"})
}
