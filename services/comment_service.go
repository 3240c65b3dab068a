package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SirTebz/CommunityNoticeboard/metrics"
	"github.com/SirTebz/CommunityNoticeboard/models"
)

// CommentInput carries the body of a new comment.
type CommentInput struct {
	Content string `json:"content" validate:"required,notblank,max=1000"`
}

// CommentService implements the comment lifecycle. Comments are never edited.
type CommentService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewCommentService creates a CommentService backed by db.
func NewCommentService(db *gorm.DB, opts ...Option) *CommentService {
	o := buildOptions(opts)
	return &CommentService{db: db, log: o.log, now: o.now}
}

// Create attaches a comment by actor to an existing post.
func (s *CommentService) Create(ctx context.Context, actor Actor, postID uint, content string) (*models.Comment, error) {
	if !actor.Authenticated() {
		return nil, ErrForbidden
	}
	if err := validateStruct(CommentInput{Content: content}); err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:    postID,
		UserID:    actor.ID,
		Content:   content,
		CreatedAt: s.now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := postExists(tx, postID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return fmt.Errorf("create comment on post %d: %w", postID, err)
		}
		if err := tx.Preload("User").First(&comment, comment.ID).Error; err != nil {
			return notFoundOr(err, "reload comment %d", comment.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CommentsCreatedTotal.Inc()
	s.log.Info("comment created",
		zap.Uint("comment_id", comment.ID),
		zap.Uint("post_id", postID),
		zap.String("user_id", actor.ID),
	)
	return &comment, nil
}

// Delete removes a comment when actor is its author or an admin.
// It returns the id of the post the comment belonged to.
func (s *CommentService) Delete(ctx context.Context, actor Actor, commentID uint) (uint, error) {
	var postID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cmt models.Comment
		if err := tx.First(&cmt, commentID).Error; err != nil {
			return notFoundOr(err, "load comment %d", commentID)
		}
		if !CanModify(actor, cmt.UserID) {
			return ErrForbidden
		}
		res := tx.Delete(&models.Comment{}, commentID)
		if res.Error != nil {
			return fmt.Errorf("delete comment %d: %w", commentID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		postID = cmt.PostID
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.CommentsDeletedTotal.Inc()
	s.log.Info("comment deleted", zap.Uint("comment_id", commentID), zap.String("user_id", actor.ID))
	return postID, nil
}
