package services

import (
	"context"
	"errors"
	"strings"

	"myposts/database"
	"myposts/models"
)

// PostService sanitizes and validates post input, persists it and
// announces successful changes
type PostService struct {
	repo      PostRepository
	validator InputValidator
	notifier  Notifier
}

// NewPostService creates a new post service. notifier may be nil.
func NewPostService(repo PostRepository, validator InputValidator, notifier Notifier) *PostService {
	return &PostService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
	}
}

// Sanitize trims every editable field
func Sanitize(title, text, tags string) models.PostInput {
	return models.PostInput{
		Title: strings.TrimSpace(title),
		Text:  strings.TrimSpace(text),
		Tags:  strings.TrimSpace(tags),
	}
}

// Create stores a new post and returns it with its assigned id
func (ps *PostService) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	in = Sanitize(in.Title, in.Text, in.Tags)
	if err := ps.validator.Validate(&in); err != nil {
		return nil, err
	}

	id, err := ps.repo.CreatePost(ctx, in)
	if err != nil {
		return nil, err
	}

	ps.changed()

	return &models.Post{ID: id, Title: in.Title, Text: in.Text, Tags: in.Tags}, nil
}

// Update replaces the editable fields of an existing post
func (ps *PostService) Update(ctx context.Context, id int64, in models.PostInput) (*models.Post, error) {
	in = Sanitize(in.Title, in.Text, in.Tags)
	if err := ps.validator.Validate(&in); err != nil {
		return nil, err
	}

	if err := ps.repo.UpdatePost(ctx, id, in); err != nil {
		return nil, notFound(err)
	}

	ps.changed()

	return &models.Post{ID: id, Title: in.Title, Text: in.Text, Tags: in.Tags}, nil
}

// Delete permanently removes a post. Deleting an id that is already gone
// succeeds without a change notification.
func (ps *PostService) Delete(ctx context.Context, id int64) error {
	if err := ps.repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil
		}
		return err
	}

	ps.changed()
	return nil
}

// Get returns a post, or nil when the id is not stored
func (ps *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return ps.repo.GetPost(ctx, id)
}

// List returns all posts
func (ps *PostService) List(ctx context.Context) ([]models.Post, error) {
	return ps.repo.ListPosts(ctx)
}

// Search returns posts containing keyword in title, text or tags.
// A blank keyword behaves like List.
func (ps *PostService) Search(ctx context.Context, keyword string) ([]models.Post, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ps.repo.ListPosts(ctx)
	}
	return ps.repo.SearchPosts(ctx, keyword)
}

func (ps *PostService) changed() {
	if ps.notifier != nil {
		ps.notifier.Broadcast(models.EventRefreshPosts)
	}
}

func notFound(err error) error {
	if errors.Is(err, database.ErrNoRows) {
		return ErrPostNotFound
	}
	return err
}
