package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"myposts/models"
)

// ErrNoRows is returned by UpdatePost and DeletePost when no row has the given id.
var ErrNoRows = errors.New("no matching post")

const selectPosts = `SELECT id, COALESCE(title, ''), text, COALESCE(tags, '') FROM myposts`

// likeEscaper makes LIKE wildcards in a keyword match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ==================== POSTS ====================

// CreatePost inserts a post and returns the id assigned by the store
func (r *Repository) CreatePost(ctx context.Context, in models.PostInput) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO myposts (title, text, tags) VALUES (?, ?, ?)`,
		in.Title, in.Text, in.Tags,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost replaces title, text and tags of an existing post
func (r *Repository) UpdatePost(ctx context.Context, id int64, in models.PostInput) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE myposts SET title = ?, text = ?, tags = ? WHERE id = ?`,
		in.Title, in.Text, in.Tags, id,
	)
	if err != nil {
		return err
	}
	return expectAffected(res, id)
}

// DeletePost permanently removes a post
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM myposts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, id)
}

// GetPost returns the post with the given id, or nil when there is none
func (r *Repository) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.QueryRowContext(ctx, selectPosts+` WHERE id = ?`, id).Scan(
		&post.ID, &post.Title, &post.Text, &post.Tags,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// ListPosts returns every post in insertion order
func (r *Repository) ListPosts(ctx context.Context) ([]models.Post, error) {
	return r.queryPosts(ctx, selectPosts+` ORDER BY id ASC`)
}

// SearchPosts returns posts whose title, text or tags contain keyword.
// An empty keyword matches every post.
func (r *Repository) SearchPosts(ctx context.Context, keyword string) ([]models.Post, error) {
	if keyword == "" {
		return r.ListPosts(ctx)
	}

	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	return r.queryPosts(ctx, selectPosts+`
		WHERE title LIKE ? ESCAPE '\'
		   OR text LIKE ? ESCAPE '\'
		   OR tags LIKE ? ESCAPE '\'
		ORDER BY id ASC
	`, pattern, pattern, pattern)
}

// CountPosts returns the number of stored posts
func (r *Repository) CountPosts(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM myposts`).Scan(&n)
	return n, err
}

func (r *Repository) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Text, &post.Tags); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func expectAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNoRows, id)
	}
	return nil
}
