package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SirTebz/CommunityNoticeboard/middleware"
	"github.com/SirTebz/CommunityNoticeboard/models"
	"github.com/SirTebz/CommunityNoticeboard/services"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// PostService is the part of services.PostService the controller needs.
type PostService interface {
	List(ctx context.Context, f services.Filter) (*services.Listing, error)
	Get(ctx context.Context, actor services.Actor, id uint) (*services.PostDetails, error)
	GetForEdit(ctx context.Context, actor services.Actor, id uint) (*models.Post, error)
	Create(ctx context.Context, actor services.Actor, in services.PostInput) (*models.Post, error)
	Edit(ctx context.Context, actor services.Actor, id uint, in services.PostInput) (*models.Post, error)
	Delete(ctx context.Context, actor services.Actor, id uint) error
	TogglePin(ctx context.Context, actor services.Actor, id uint) (*models.Post, error)
}

// PostController exposes the post listing and lifecycle.
type PostController struct {
	posts PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(posts PostService) *PostController {
	return &PostController{posts: posts}
}

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// input maps the payload to the service input. Title and content are kept as
// typed; an unknown category is passed through so the service reports it as
// a field error.
func (r postRequest) input() services.PostInput {
	category, ok := models.ParseCategory(r.Category)
	if !ok {
		category = models.Category(strings.TrimSpace(r.Category))
	}
	return services.PostInput{
		Title:    r.Title,
		Content:  r.Content,
		Category: category,
	}
}

// ListCategories returns the fixed category set.
func (p *PostController) ListCategories(ctx *gin.Context) {
	items := make([]gin.H, 0, len(models.Categories))
	for _, c := range models.Categories {
		items = append(items, gin.H{"code": c.Code(), "name": c})
	}
	utils.Success(ctx, gin.H{"items": items})
}

// ListPosts returns pinned and regular posts, optionally filtered by category and search term.
func (p *PostController) ListPosts(ctx *gin.Context) {
	var filter services.Filter
	if raw := strings.TrimSpace(ctx.Query("category")); raw != "" {
		category, ok := models.ParseCategory(raw)
		if !ok {
			utils.Error(ctx, http.StatusBadRequest, 40020, "invalid category")
			return
		}
		filter.Category = &category
	}
	filter.Search = ctx.Query("search")

	listing, err := p.posts.List(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	renderPosts(listing.Pinned)
	renderPosts(listing.Regular)
	utils.Success(ctx, listing)
}

// GetPost returns a single post with comments and the caller's capabilities.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	details, err := p.posts.Get(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	renderPost(&details.Post)
	utils.Success(ctx, details)
}

// EditPost returns the editable post for its owner or an admin.
func (p *PostController) EditPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	post, err := p.posts.GetForEdit(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	renderPost(post)
	utils.Success(ctx, gin.H{"post": post})
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}
	post, err := p.posts.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), req.input())
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	renderPost(post)
	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost allows the owner or an admin to edit a post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}
	post, err := p.posts.Edit(ctx.Request.Context(), middleware.CurrentActor(ctx), id, req.input())
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	renderPost(post)
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the owner or an admin to delete a post and its comments.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := p.posts.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		respondError(ctx, err, "post")
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// TogglePin pins or unpins a post. Admin only.
func (p *PostController) TogglePin(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	post, err := p.posts.TogglePin(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	renderPost(post)
	message := "post unpinned"
	if post.IsPinned {
		message = "post pinned"
	}
	utils.Success(ctx, gin.H{"post": post, "message": message})
}
