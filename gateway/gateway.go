package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"myposts/models"
	"myposts/services"
	"myposts/validator"

	"github.com/google/uuid"
)

// PostService is the storage-facing side of the gateway
type PostService interface {
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, in models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Search(ctx context.Context, keyword string) ([]models.Post, error)
}

type outcome string

const (
	outcomeOK       outcome = "ok"
	outcomeRejected outcome = "rejected"
	outcomeFailed   outcome = "failed"
)

// handlerFunc handles one request kind and returns the reply payload.
// A non-nil error on a read means payload is the empty fallback.
type handlerFunc func(ctx context.Context, payload json.RawMessage) (any, outcome, error)

type route struct {
	reply  string
	handle handlerFunc
}

// Gateway turns named requests into PostService calls and correlates every
// reply with its request id
type Gateway struct {
	posts   PostService
	logger  *slog.Logger
	metrics *Metrics
	routes  map[string]route
}

// New creates a gateway. metrics may be nil.
func New(posts PostService, logger *slog.Logger, metrics *Metrics) *Gateway {
	g := &Gateway{
		posts:   posts,
		logger:  logger,
		metrics: metrics,
	}
	g.routes = map[string]route{
		AddPost:     {reply: PostAdded, handle: g.addPost},
		EditPost:    {reply: PostEdited, handle: g.editPost},
		DeletePost:  {reply: PostDeleted, handle: g.deletePost},
		GetPost:     {reply: PostData, handle: g.getPost},
		GetAllPosts: {reply: AllPosts, handle: g.getAllPosts},
		SearchPosts: {reply: SearchResults, handle: g.searchPosts},
	}
	return g
}

// Dispatch handles req and returns its reply. It always returns; failures
// are reported inside the reply.
func (g *Gateway) Dispatch(ctx context.Context, req Request) Reply {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	r, ok := g.routes[req.Name]
	if !ok {
		g.logger.Warn("unknown request", "request_id", req.ID, "name", req.Name)
		g.metrics.observe("unknown", string(outcomeRejected), 0)
		return Reply{ID: req.ID, Name: ReplyError, Error: fmt.Sprintf("unknown request %q", req.Name)}
	}

	start := time.Now()
	payload, result, err := r.handle(ctx, req.Payload)
	g.metrics.observe(req.Name, string(result), time.Since(start))

	reply := Reply{ID: req.ID, Name: r.reply, Payload: payload}

	switch result {
	case outcomeRejected:
		g.logger.Debug("request rejected", "request_id", req.ID, "name", req.Name, "error", err)
	case outcomeFailed:
		g.logger.Error("request failed", "request_id", req.ID, "name", req.Name, "error", err)
	}

	// mutations carry their error inside MutationResult
	if _, isMutation := payload.(models.MutationResult); !isMutation && err != nil {
		reply.Error = err.Error()
	}

	return reply
}

// Submit handles req in the background. The returned channel yields exactly
// one reply and is then closed.
func (g *Gateway) Submit(ctx context.Context, req Request) <-chan Reply {
	out := make(chan Reply, 1)
	go func() {
		defer close(out)
		out <- g.Dispatch(ctx, req)
	}()
	return out
}

// ==================== MUTATIONS ====================

func (g *Gateway) addPost(ctx context.Context, raw json.RawMessage) (any, outcome, error) {
	var p postPayload
	if err := decode(raw, &p); err != nil {
		return failure(err), outcomeRejected, err
	}

	post, err := g.posts.Create(ctx, p.input())
	if err != nil {
		return failure(err), classify(err), err
	}
	return models.MutationResult{Success: true, ID: post.ID}, outcomeOK, nil
}

func (g *Gateway) editPost(ctx context.Context, raw json.RawMessage) (any, outcome, error) {
	var p postPayload
	if err := decode(raw, &p); err != nil {
		return failure(err), outcomeRejected, err
	}

	if _, err := g.posts.Update(ctx, int64(p.ID), p.input()); err != nil {
		return failure(err), classify(err), err
	}
	return models.MutationResult{Success: true}, outcomeOK, nil
}

func (g *Gateway) deletePost(ctx context.Context, raw json.RawMessage) (any, outcome, error) {
	var id postIDPayload
	if err := decode(raw, &id); err != nil {
		return failure(err), outcomeRejected, err
	}

	if err := g.posts.Delete(ctx, int64(id)); err != nil {
		return failure(err), classify(err), err
	}
	return models.MutationResult{Success: true}, outcomeOK, nil
}

// ==================== READS ====================

func (g *Gateway) getPost(ctx context.Context, raw json.RawMessage) (any, outcome, error) {
	var id postIDPayload
	if err := decode(raw, &id); err != nil {
		return nil, outcomeRejected, err
	}

	post, err := g.posts.Get(ctx, int64(id))
	if err != nil {
		return nil, outcomeFailed, err
	}
	if post == nil {
		// untyped nil so the reply payload compares equal to nil
		return nil, outcomeOK, nil
	}
	return post, outcomeOK, nil
}

func (g *Gateway) getAllPosts(ctx context.Context, _ json.RawMessage) (any, outcome, error) {
	posts, err := g.posts.List(ctx)
	if err != nil {
		return []models.Post{}, outcomeFailed, err
	}
	return posts, outcomeOK, nil
}

func (g *Gateway) searchPosts(ctx context.Context, raw json.RawMessage) (any, outcome, error) {
	var keyword keywordPayload
	if err := decode(raw, &keyword); err != nil {
		return []models.Post{}, outcomeRejected, err
	}

	posts, err := g.posts.Search(ctx, string(keyword))
	if err != nil {
		return []models.Post{}, outcomeFailed, err
	}
	return posts, outcomeOK, nil
}

// ==================== HELPERS ====================

// decode leaves v untouched when the request carried no payload
func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func failure(err error) models.MutationResult {
	return models.MutationResult{Success: false, Error: err.Error()}
}

func classify(err error) outcome {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, services.ErrPostNotFound) {
		return outcomeRejected
	}
	return outcomeFailed
}
