package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirTebz/CommunityNoticeboard/models"
)

func TestCommentService_Create(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := mustPost(t, f.posts, f.alice, "Question", "anyone?", models.CategoryHelp)

	c, err := f.comments.Create(ctx, f.bob, p.ID, "yes, me")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, p.ID, c.PostID)
	assert.Equal(t, f.bob.ID, c.UserID)
	assert.Equal(t, "yes, me", c.Content)
	assert.Equal(t, "bob", c.User.Username)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCommentService_CreateOnMissingPost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.comments.Create(ctx, f.bob, 4242, "hello?")
	assert.ErrorIs(t, err, ErrNotFound)

	var n int64
	require.NoError(t, f.comments.db.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCommentService_CreateValidation(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := mustPost(t, f.posts, f.alice, "Question", "anyone?", models.CategoryHelp)

	for _, body := range []string{"", "  \n ", strings.Repeat("x", 1001)} {
		_, err := f.comments.Create(ctx, f.bob, p.ID, body)
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, err := f.comments.Create(ctx, f.bob, p.ID, strings.Repeat("x", 1000))
	assert.NoError(t, err)

	d, err := f.posts.Get(ctx, Actor{}, p.ID)
	require.NoError(t, err)
	assert.Len(t, d.Post.Comments, 1)
}

func TestCommentService_CreateRequiresIdentity(t *testing.T) {
	f := newPostFixture(t)
	p := mustPost(t, f.posts, f.alice, "Question", "anyone?", models.CategoryHelp)

	_, err := f.comments.Create(context.Background(), Actor{}, p.ID, "hi")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCommentService_Delete(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := mustPost(t, f.posts, f.alice, "Question", "anyone?", models.CategoryHelp)
	c, err := f.comments.Create(ctx, f.bob, p.ID, "answer")
	require.NoError(t, err)

	_, err = f.comments.Delete(ctx, f.alice, c.ID)
	assert.ErrorIs(t, err, ErrForbidden, "post owner is not the comment owner")

	postID, err := f.comments.Delete(ctx, f.bob, c.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, postID)

	_, err = f.comments.Delete(ctx, f.bob, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentService_DeleteByAdmin(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := mustPost(t, f.posts, f.alice, "Question", "anyone?", models.CategoryHelp)
	c, err := f.comments.Create(ctx, f.bob, p.ID, "spam")
	require.NoError(t, err)

	_, err = f.comments.Delete(ctx, f.admin, c.ID)
	require.NoError(t, err)

	d, err := f.posts.Get(ctx, Actor{}, p.ID)
	require.NoError(t, err)
	assert.Empty(t, d.Post.Comments)
}
