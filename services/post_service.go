package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SirTebz/CommunityNoticeboard/metrics"
	"github.com/SirTebz/CommunityNoticeboard/models"
)

// PostInput carries the user-editable fields of a post.
type PostInput struct {
	Title    string          `json:"title" validate:"required,notblank,max=200"`
	Content  string          `json:"content" validate:"required,notblank,max=5000"`
	Category models.Category `json:"category" validate:"required,category"`
}

// Filter narrows a listing. Nil Category and a blank Search mean "no filter".
type Filter struct {
	Category *models.Category
	Search   string
}

// Listing is the result of List: pinned and regular posts, newest first.
type Listing struct {
	Pinned   []models.Post    `json:"pinned"`
	Regular  []models.Post    `json:"regular"`
	Category *models.Category `json:"category,omitempty"`
	Search   string           `json:"search"`
}

// PostDetails is a post with its comments and what the viewer may do with it.
type PostDetails struct {
	Post      models.Post `json:"post"`
	CanEdit   bool        `json:"can_edit"`
	CanDelete bool        `json:"can_delete"`
	CanPin    bool        `json:"can_pin"`
}

// PostService implements listing and the post lifecycle.
type PostService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewPostService creates a PostService backed by db.
func NewPostService(db *gorm.DB, opts ...Option) *PostService {
	o := buildOptions(opts)
	return &PostService{db: db, log: o.log, now: o.now}
}

// List returns every post matching f, split into pinned and regular.
// A non-blank search term is matched as given, case-sensitively, against
// title and content.
func (s *PostService) List(ctx context.Context, f Filter) (*Listing, error) {
	var posts []models.Post
	q := s.db.WithContext(ctx).Preload("User").Order("id ASC")
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	term := f.Search
	if strings.TrimSpace(term) != "" {
		kept := posts[:0]
		for _, p := range posts {
			if strings.Contains(p.Title, term) || strings.Contains(p.Content, term) {
				kept = append(kept, p)
			}
		}
		posts = kept
	}

	// stable: equal timestamps keep id order
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	if err := s.attachCommentCounts(ctx, posts); err != nil {
		return nil, err
	}

	listing := &Listing{
		Pinned:   []models.Post{},
		Regular:  []models.Post{},
		Category: f.Category,
		Search:   term,
	}
	for _, p := range posts {
		if p.IsPinned {
			listing.Pinned = append(listing.Pinned, p)
		} else {
			listing.Regular = append(listing.Regular, p)
		}
	}
	return listing, nil
}

func (s *PostService) attachCommentCounts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	var rows []struct {
		PostID uint
		N      int64
	}
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.N
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

// Create stores a new unpinned post owned by actor.
func (s *PostService) Create(ctx context.Context, actor Actor, in PostInput) (*models.Post, error) {
	if !actor.Authenticated() {
		return nil, ErrForbidden
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:    actor.ID,
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		IsPinned:  false,
		CreatedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if err := s.db.WithContext(ctx).Preload("User").First(&post, post.ID).Error; err != nil {
		return nil, notFoundOr(err, "reload post %d", post.ID)
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.Category)).Inc()
	s.log.Info("post created",
		zap.Uint("post_id", post.ID),
		zap.String("user_id", actor.ID),
		zap.String("category", string(post.Category)),
	)
	return &post, nil
}

// Get returns a post with its author and comments (oldest first) together
// with the actor's capabilities. actor may be anonymous.
func (s *PostService) Get(ctx context.Context, actor Actor, id uint) (*PostDetails, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Comments.User").
		First(&post, id).Error
	if err != nil {
		return nil, notFoundOr(err, "load post %d", id)
	}
	post.CommentCount = int64(len(post.Comments))

	modify := CanModify(actor, post.UserID)
	return &PostDetails{
		Post:      post,
		CanEdit:   modify,
		CanDelete: modify,
		CanPin:    CanPin(actor),
	}, nil
}

// GetForEdit returns the post when actor may modify it.
func (s *PostService) GetForEdit(ctx context.Context, actor Actor, id uint) (*models.Post, error) {
	post, err := findPost(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor, post.UserID) {
		return nil, ErrForbidden
	}
	return post, nil
}

// Edit overwrites title, content and category and stamps updatedAt.
// Concurrent edits resolve last-writer-wins; an edit racing a delete fails with ErrNotFound.
func (s *PostService) Edit(ctx context.Context, actor Actor, id uint, in PostInput) (*models.Post, error) {
	var updated models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, id)
		if err != nil {
			return err
		}
		if !CanModify(actor, post.UserID) {
			return ErrForbidden
		}
		if err := validateStruct(in); err != nil {
			return err
		}

		res := tx.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
			"title":      in.Title,
			"content":    in.Content,
			"category":   in.Category,
			"updated_at": s.now(),
		})
		if res.Error != nil {
			return fmt.Errorf("update post %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			// MySQL reports 0 for unchanged rows, so confirm the row is really gone
			if exists, err := postExists(tx, id); err != nil {
				return err
			} else if !exists {
				return ErrNotFound
			}
		}
		if err := tx.Preload("User").First(&updated, id).Error; err != nil {
			return notFoundOr(err, "reload post %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PostsEditedTotal.Inc()
	s.log.Info("post edited", zap.Uint("post_id", id), zap.String("user_id", actor.ID))
	return &updated, nil
}

// Delete removes the post and all of its comments in one transaction.
func (s *PostService) Delete(ctx context.Context, actor Actor, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, id)
		if err != nil {
			return err
		}
		if !CanModify(actor, post.UserID) {
			return ErrForbidden
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of post %d: %w", id, err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete post %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	s.log.Info("post deleted", zap.Uint("post_id", id), zap.String("user_id", actor.ID))
	return nil
}

// TogglePin flips isPinned. Only admins may pin.
func (s *PostService) TogglePin(ctx context.Context, actor Actor, id uint) (*models.Post, error) {
	var updated models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findPost(tx, id); err != nil {
			return err
		}
		if !CanPin(actor) {
			return ErrForbidden
		}
		res := tx.Model(&models.Post{}).Where("id = ?", id).Update("is_pinned", gorm.Expr("NOT is_pinned"))
		if res.Error != nil {
			return fmt.Errorf("toggle pin of post %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Preload("User").First(&updated, id).Error; err != nil {
			return notFoundOr(err, "reload post %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	state := "unpinned"
	if updated.IsPinned {
		state = "pinned"
	}
	metrics.PinTogglesTotal.WithLabelValues(state).Inc()
	s.log.Info("post pin toggled", zap.Uint("post_id", id), zap.String("state", state))
	return &updated, nil
}

func findPost(tx *gorm.DB, id uint) (*models.Post, error) {
	var post models.Post
	if err := tx.First(&post, id).Error; err != nil {
		return nil, notFoundOr(err, "load post %d", id)
	}
	return &post, nil
}

func postExists(tx *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := tx.Model(&models.Post{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check post %d: %w", id, err)
	}
	return n > 0, nil
}

// notFoundOr maps gorm.ErrRecordNotFound to ErrNotFound and wraps anything else.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
