package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cleanlog-backend/internal/config"
	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
	"cleanlog-backend/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
	cfg            *config.Config
}

func NewCommentHandler(commentService *service.CommentService, cfg *config.Config) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		cfg:            cfg,
	}
}

// Create handles both anonymous and admin comments; the optional auth
// middleware decides which one this is.
func (h *CommentHandler) Create(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isAdmin := c.GetBool("is_admin")

	comment, err := h.commentService.Create(uint(postID), req, isAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "comment published"
	if !comment.Reviewed {
		message = "thanks, your comment will be published after review"
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment, "message": message})
}

// GetByPostID lists the reviewed comments of a post, oldest first.
func (h *CommentHandler) GetByPostID(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.CommentPerPage

	comments, total, err := h.commentService.ListVisible(uint(postID), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// GetForModeration lists comments for the admin, filterable by
// `filter=all|unreviewed|admin`, newest first.
func (h *CommentHandler) GetForModeration(c *gin.Context) {
	filter := repository.ModerationFilter(c.DefaultQuery("filter", "all"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := h.cfg.ManageItemsPerPage

	comments, total, err := h.commentService.ListForModeration(filter, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *CommentHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := h.commentService.Approve(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment approved"})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := h.commentService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
