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

type PostHandler struct {
	postService    *service.PostService
	topicService   *service.TopicService
	commentService *service.CommentService
	uploadService  *service.UploadService
	cfg            *config.Config
}

func NewPostHandler(postService *service.PostService, topicService *service.TopicService, commentService *service.CommentService, uploadService *service.UploadService, cfg *config.Config) *PostHandler {
	return &PostHandler{
		postService:    postService,
		topicService:   topicService,
		commentService: commentService,
		uploadService:  uploadService,
		cfg:            cfg,
	}
}

// Create accepts a multipart form with an optional header image. The
// post row is committed first; a failed image save leaves the post
// without a theme rather than leaving a file without a post.
func (h *PostHandler) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		topic, err := h.topicService.GetByID(post.TopicID)
		if err != nil {
			respondError(c, err)
			return
		}

		filename, err := h.uploadService.SaveImage(file, topic.Name)
		if err != nil {
			logger.Error(err, "Failed to store post image", map[string]interface{}{"post_id": post.ID})
			c.JSON(http.StatusCreated, gin.H{"post": post, "warning": "post created but image could not be stored"})
			return
		}

		if err := h.postService.SetTheme(post.ID, filename); err != nil {
			h.uploadService.DeleteImage(topic.Name, filename)
			respondError(c, err)
			return
		}
		post.Theme = filename
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *PostHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.PostPerPage

	posts, total, err := h.postService.GetAll(page, perPage)
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

// GetArchive is the flat reverse-chronological listing with a large
// page size, mirroring the blog's archive page.
func (h *PostHandler) GetArchive(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.ArchivePerPage

	posts, total, err := h.postService.GetAll(page, perPage)
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

// GetManaged is the admin-side listing, same ordering as the public one
// but paginated for the management view.
func (h *PostHandler) GetManaged(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.ManagePostPerPage

	posts, total, err := h.postService.GetAll(page, perPage)
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

func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	commentCount, err := h.commentService.CountForPost(post.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "comment_count": commentCount})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Update(uint(id), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func (h *PostHandler) ToggleComments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	canComment, err := h.postService.ToggleComments(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"can_comment": canComment})
}
