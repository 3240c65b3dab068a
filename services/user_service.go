package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SirTebz/CommunityNoticeboard/metrics"
	"github.com/SirTebz/CommunityNoticeboard/models"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// RegisterInput is the shape of a new local account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UserService is the identity provider: accounts, credentials and roles.
type UserService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserService creates a UserService backed by db.
func NewUserService(db *gorm.DB, opts ...Option) *UserService {
	o := buildOptions(opts)
	return &UserService{db: db, log: o.log}
}

// Register creates an account with the User role.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var taken int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&taken).Error
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if taken > 0 {
		return nil, fmt.Errorf("username or email already registered: %w", ErrConflict)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        []models.UserRole{{Name: models.RoleUser}},
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return &user, nil
}

// Authenticate checks a username-or-email and password pair.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	var user models.User
	err := s.db.WithContext(ctx).Preload("Roles").
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", login, err)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		metrics.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get returns a user with roles loaded.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "load user %s", id)
	}
	return &user, nil
}

// LoadActor resolves the current roles of id. It is called on every
// authenticated request so role changes apply immediately.
func (s *UserService) LoadActor(ctx context.Context, id string) (Actor, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return Actor{}, err
	}
	return Actor{ID: user.ID, Roles: user.RoleNames()}, nil
}

// AssignRole grants role to the user; granting an existing role is a no-op.
func (s *UserService) AssignRole(ctx context.Context, userID, role string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return fmt.Errorf("check user %s: %w", userID, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		r := models.UserRole{UserID: userID, Name: role}
		if err := tx.Where(&r).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("assign role %s to %s: %w", role, userID, err)
		}
		return nil
	})
}

// Delete removes a user together with their posts (and those posts' comments)
// and role rows. It is refused with ErrUserHasComments while the user still
// authors comments.
func (s *UserService) Delete(ctx context.Context, actor Actor, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return notFoundOr(err, "load user %s", userID)
		}
		if !CanModify(actor, user.ID) {
			return ErrForbidden
		}

		var authored int64
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", userID).Count(&authored).Error; err != nil {
			return fmt.Errorf("count comments of %s: %w", userID, err)
		}
		if authored > 0 {
			return ErrUserHasComments
		}

		owned := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("post_id IN (?)", owned).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments on posts of %s: %w", userID, err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("delete posts of %s: %w", userID, err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("delete roles of %s: %w", userID, err)
		}
		if err := tx.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("delete user %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("user deleted", zap.String("user_id", userID), zap.String("by", actor.ID))
	return nil
}
