package controllers

import (
	"github.com/SirTebz/CommunityNoticeboard/models"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// renderPost fills content_html, the sanitized rendering clients display.
// Bodies are stored exactly as submitted.
func renderPost(p *models.Post) {
	p.ContentHTML = utils.Sanitize(p.Content)
	for i := range p.Comments {
		renderComment(&p.Comments[i])
	}
}

func renderPosts(posts []models.Post) {
	for i := range posts {
		renderPost(&posts[i])
	}
}

func renderComment(c *models.Comment) {
	c.ContentHTML = utils.Sanitize(c.Content)
}
