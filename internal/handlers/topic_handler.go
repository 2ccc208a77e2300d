package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/service"
	"cleanlog-backend/pkg/logger"
)

type TopicHandler struct {
	topicService  *service.TopicService
	uploadService *service.UploadService
	cfg           *config.Config
}

func NewTopicHandler(topicService *service.TopicService, uploadService *service.UploadService, cfg *config.Config) *TopicHandler {
	return &TopicHandler{
		topicService:  topicService,
		uploadService: uploadService,
		cfg:           cfg,
	}
}

// Create accepts a multipart form so the topic image can arrive with the
// topic itself. The row is committed before the image touches disk.
func (h *TopicHandler) Create(c *gin.Context) {
	var req models.CreateTopicRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := h.topicService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		filename, err := h.uploadService.SaveImage(file, topic.Name)
		if err != nil {
			logger.Error(err, "Failed to store topic image", map[string]interface{}{"topic_id": topic.ID})
			c.JSON(http.StatusCreated, gin.H{"topic": topic, "warning": "topic created but image could not be stored"})
			return
		}

		if err := h.topicService.SetTheme(topic.ID, filename); err != nil {
			h.uploadService.DeleteImage(topic.Name, filename)
			respondError(c, err)
			return
		}
		topic.Theme = filename
	}

	c.JSON(http.StatusCreated, gin.H{"topic": topic})
}

func (h *TopicHandler) GetAll(c *gin.Context) {
	topics, err := h.topicService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *TopicHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	topic, err := h.topicService.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

func (h *TopicHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	var req models.UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic, err := h.topicService.Update(uint(id), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

func (h *TopicHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	if err := h.topicService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "topic deleted"})
}

// GetPosts lists the posts of one topic, paginated.
func (h *TopicHandler) GetPosts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.PostPerPage

	posts, total, err := h.topicService.GetPosts(uint(id), page, perPage)
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
