package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"myposts/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, *DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "data", "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), db
}

func ids(posts []models.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestNew_CreatesDirectoryAndFile(t *testing.T) {
	_, db := setupTestRepo(t)

	_, err := os.Stat(db.Path())
	assert.NoError(t, err)
	assert.Equal(t, "test.db", filepath.Base(db.Path()))
}

func TestMigrate_IsIdempotent(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreatePost(ctx, models.PostInput{Text: "survives"})
	require.NoError(t, err)

	require.NoError(t, db.Migrate())

	n, err := repo.CountPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSchema_RejectsNullText(t *testing.T) {
	_, db := setupTestRepo(t)

	_, err := db.Exec(`INSERT INTO myposts (title, text, tags) VALUES ('t', NULL, '')`)
	assert.Error(t, err)
}

func TestPostCRUD(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	t.Run("Create and fetch", func(t *testing.T) {
		id, err := repo.CreatePost(ctx, models.PostInput{Title: "", Text: "hello", Tags: ""})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		post, err := repo.GetPost(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, models.Post{ID: 1, Title: "", Text: "hello", Tags: ""}, *post)
	})

	t.Run("Update in place", func(t *testing.T) {
		err := repo.UpdatePost(ctx, 1, models.PostInput{Title: "hi", Text: "hello world", Tags: "x"})
		require.NoError(t, err)

		post, err := repo.GetPost(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, "hi", post.Title)
		assert.Equal(t, "hello world", post.Text)
		assert.Equal(t, "x", post.Tags)
	})

	t.Run("Update missing id", func(t *testing.T) {
		err := repo.UpdatePost(ctx, 999, models.PostInput{Text: "nothing"})
		assert.True(t, errors.Is(err, ErrNoRows))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.DeletePost(ctx, 1))

		post, err := repo.GetPost(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, post)

		posts, err := repo.ListPosts(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids(posts), int64(1))
	})

	t.Run("Delete missing id", func(t *testing.T) {
		err := repo.DeletePost(ctx, 1)
		assert.True(t, errors.Is(err, ErrNoRows))
	})

	t.Run("Ids are not reused", func(t *testing.T) {
		id, err := repo.CreatePost(ctx, models.PostInput{Text: "second"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), id)
	})
}

func TestListPosts_EmptyAndOrdered(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	posts, err := repo.ListPosts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	for _, text := range []string{"a", "b", "c"} {
		_, err := repo.CreatePost(ctx, models.PostInput{Text: text})
		require.NoError(t, err)
	}

	posts, err = repo.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(posts))
}

func TestGetPost_NullColumnsReadAsEmpty(t *testing.T) {
	repo, db := setupTestRepo(t)

	_, err := db.Exec(`INSERT INTO myposts (text) VALUES ('only text')`)
	require.NoError(t, err)

	post, err := repo.GetPost(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "", post.Title)
	assert.Equal(t, "", post.Tags)
}

func TestSearchPosts(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	seed := []models.PostInput{
		{Title: "Shopping", Text: "buy milk", Tags: "home"},
		{Title: "", Text: "meeting notes", Tags: "work,urgent"},
		{Title: "Discount", Text: "100% off", Tags: ""},
		{Title: "snake_case", Text: "naming", Tags: "code"},
	}
	for _, in := range seed {
		_, err := repo.CreatePost(ctx, in)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		keyword string
		want    []int64
	}{
		{"Matches title", "Shop", []int64{1}},
		{"Matches text", "milk", []int64{1}},
		{"Matches tags", "urgent", []int64{2}},
		{"Case-insensitive for ASCII", "MEETING", []int64{2}},
		{"Matches several posts", "o", []int64{1, 2, 3, 4}},
		{"Percent is literal", "%", []int64{3}},
		{"Underscore is literal", "_", []int64{4}},
		{"No match", "absent", []int64{}},
		{"Empty keyword lists everything", "", []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.SearchPosts(ctx, tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(posts))
		})
	}
}

func TestRepository_ClosedDatabase(t *testing.T) {
	repo, db := setupTestRepo(t)
	require.NoError(t, db.Close())

	ctx := context.Background()

	_, err := repo.CreatePost(ctx, models.PostInput{Text: "x"})
	assert.Error(t, err)

	_, err = repo.ListPosts(ctx)
	assert.Error(t, err)

	_, err = repo.GetPost(ctx, 1)
	assert.Error(t, err)
}
