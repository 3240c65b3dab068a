package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SirTebz/CommunityNoticeboard/config"
	"github.com/SirTebz/CommunityNoticeboard/models"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.PasswordCost = bcrypt.MinCost
	db, err := config.OpenDatabase(config.AppConfig{DBDriver: "sqlite", DatabaseURI: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// fixedClock returns a clock that advances one minute per call starting at base.
func fixedClock(base time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := base.Add(time.Duration(n) * time.Minute)
		n++
		return t
	}
}

func mustRegister(t *testing.T, users *UserService, name string) Actor {
	t.Helper()
	u, err := users.Register(context.Background(), RegisterInput{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "secret123",
	})
	require.NoError(t, err)
	return Actor{ID: u.ID, Roles: u.RoleNames()}
}

func mustAdmin(t *testing.T, users *UserService, name string) Actor {
	t.Helper()
	a := mustRegister(t, users, name)
	require.NoError(t, users.AssignRole(context.Background(), a.ID, models.RoleAdmin))
	actor, err := users.LoadActor(context.Background(), a.ID)
	require.NoError(t, err)
	return actor
}

func mustPost(t *testing.T, posts *PostService, actor Actor, title, content string, cat models.Category) *models.Post {
	t.Helper()
	p, err := posts.Create(context.Background(), actor, PostInput{Title: title, Content: content, Category: cat})
	require.NoError(t, err)
	return p
}
