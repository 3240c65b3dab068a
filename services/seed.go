package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SirTebz/CommunityNoticeboard/models"
)

// SeedOptions controls the demo bootstrap. Accounts whose password is empty are skipped.
type SeedOptions struct {
	AdminPassword  string
	UserPassword   string
	AdminUsernames []string
}

const (
	seedAdminName = "admin"
	seedUserName  = "user"
)

// Seed creates the demo accounts and, on an empty board, the sample posts.
// Running it again changes nothing.
func Seed(ctx context.Context, db *gorm.DB, users *UserService, opts SeedOptions, extra ...Option) error {
	o := buildOptions(extra)
	now := o.now()

	admin, err := ensureUser(ctx, db, users, seedAdminName, "admin@noticeboard.local", opts.AdminPassword)
	if err != nil {
		return err
	}
	if admin != nil {
		if err := users.AssignRole(ctx, admin.ID, models.RoleAdmin); err != nil {
			return err
		}
	}
	member, err := ensureUser(ctx, db, users, seedUserName, "user@noticeboard.local", opts.UserPassword)
	if err != nil {
		return err
	}

	for _, name := range opts.AdminUsernames {
		var u models.User
		err := db.WithContext(ctx).Where("username = ?", name).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			o.log.Warn("configured admin does not exist", zap.String("username", name))
			continue
		}
		if err != nil {
			return fmt.Errorf("load admin %s: %w", name, err)
		}
		if err := users.AssignRole(ctx, u.ID, models.RoleAdmin); err != nil {
			return err
		}
	}

	if admin == nil || member == nil {
		return nil
	}
	var posts int64
	if err := db.WithContext(ctx).Model(&models.Post{}).Count(&posts).Error; err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if posts > 0 {
		return nil
	}

	samples := []models.Post{
		{
			Title:     "Welcome to the Community Noticeboard!",
			Content:   "This is your central hub for community announcements, events, and discussions. Feel free to share updates and connect with your neighbors.",
			Category:  models.CategoryAnnouncement,
			IsPinned:  true,
			CreatedAt: now.AddDate(0, 0, -7),
			UserID:    admin.ID,
		},
		{
			Title:     "Community Cleanup Day - This Saturday",
			Content:   "Join us this Saturday at 9 AM for our monthly community cleanup. We'll be focusing on the park area. Gloves and bags will be provided!",
			Category:  models.CategoryEvent,
			CreatedAt: now.AddDate(0, 0, -2),
			UserID:    admin.ID,
		},
		{
			Title:     "New Recycling Guidelines",
			Content:   "The city has updated recycling guidelines. Please make sure to rinse all containers and separate plastics by number. More details on the city website.",
			Category:  models.CategoryNews,
			IsPinned:  true,
			CreatedAt: now.AddDate(0, 0, -5),
			UserID:    member.ID,
		},
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(&samples).Error; err != nil {
		return fmt.Errorf("seed sample posts: %w", err)
	}
	o.log.Info("seeded sample posts", zap.Int("count", len(samples)))
	return nil
}

func ensureUser(ctx context.Context, db *gorm.DB, users *UserService, username, email, password string) (*models.User, error) {
	var u models.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load %s: %w", username, err)
	}
	if password == "" {
		return nil, nil
	}
	return users.Register(ctx, RegisterInput{Username: username, Email: email, Password: password})
}
