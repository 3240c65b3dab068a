package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SirTebz/CommunityNoticeboard/models"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// StatsController provides noticeboard statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate counts.
func (s *StatsController) GetStats(ctx *gin.Context) {
	db := s.db.WithContext(ctx.Request.Context())
	var users, posts, pinned, comments int64

	counts := []struct {
		name  string
		query *gorm.DB
		out   *int64
	}{
		{"users", db.Model(&models.User{}), &users},
		{"posts", db.Model(&models.Post{}), &posts},
		{"pinned posts", db.Model(&models.Post{}).Where("is_pinned = ?", true), &pinned},
		{"comments", db.Model(&models.Comment{}), &comments},
	}
	for _, c := range counts {
		if err := c.query.Count(c.out).Error; err != nil {
			respondError(ctx, fmt.Errorf("count %s: %w", c.name, err), "stats")
			return
		}
	}

	utils.Success(ctx, gin.H{
		"user_count":    users,
		"post_count":    posts,
		"pinned_count":  pinned,
		"comment_count": comments,
	})
}
