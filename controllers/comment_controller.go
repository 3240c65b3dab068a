package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SirTebz/CommunityNoticeboard/middleware"
	"github.com/SirTebz/CommunityNoticeboard/models"
	"github.com/SirTebz/CommunityNoticeboard/services"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// CommentService is the part of services.CommentService the controller needs.
type CommentService interface {
	Create(ctx context.Context, actor services.Actor, postID uint, content string) (*models.Comment, error)
	Delete(ctx context.Context, actor services.Actor, commentID uint) (uint, error)
}

// CommentController manages comments attached to posts.
type CommentController struct {
	comments CommentService
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(comments CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// CreateComment allows authenticated users to comment on posts.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}

	comment, err := c.comments.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), postID, req.Content)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	renderComment(comment)
	utils.Created(ctx, gin.H{"comment": comment})
}

// DeleteComment allows the comment author or an admin to delete a comment.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "commentId")
	if !ok {
		return
	}
	postID, err := c.comments.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		respondError(ctx, err, "comment")
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted", "post_id": postID})
}
