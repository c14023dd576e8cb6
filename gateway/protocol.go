package gateway

import (
	"encoding/json"

	"myposts/models"
)

// Request names accepted by the gateway and the reply names they produce.
const (
	AddPost     = "add-post"
	EditPost    = "edit-post"
	DeletePost  = "delete-post"
	GetPost     = "get-post"
	GetAllPosts = "get-all-posts"
	SearchPosts = "search-posts"

	PostAdded     = "post-added"
	PostEdited    = "post-edited"
	PostDeleted   = "post-deleted"
	PostData      = "post-data"
	AllPosts      = "all-posts"
	SearchResults = "search-results"

	// ReplyError answers requests whose name is not recognised.
	ReplyError = "error"
)

// Request is a named operation issued by a UI. ID correlates the reply;
// the gateway assigns one when it is empty.
type Request struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Reply answers exactly one Request and carries its ID.
// Error is set when a read fell back to its empty payload because the query failed.
type Reply struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Payload any    `json:"payload"`
	Error   string `json:"error,omitempty"`
}

// postPayload is the body of add-post and edit-post.
type postPayload struct {
	ID    models.PostID `json:"id"`
	Title models.Text   `json:"title"`
	Text  models.Text   `json:"text"`
	Tags  models.Text   `json:"tags"`
}

func (p postPayload) input() models.PostInput {
	return models.PostInput{
		Title: string(p.Title),
		Text:  string(p.Text),
		Tags:  string(p.Tags),
	}
}

// postIDPayload accepts either a bare id or {"id": ...}.
type postIDPayload models.PostID

func (p *postIDPayload) UnmarshalJSON(data []byte) error {
	var obj struct {
		ID models.PostID `json:"id"`
	}
	if len(data) > 0 && data[0] == '{' {
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*p = postIDPayload(obj.ID)
		return nil
	}

	var id models.PostID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*p = postIDPayload(id)
	return nil
}

// keywordPayload accepts either a bare keyword or {"keyword": ...}.
type keywordPayload models.Text

func (k *keywordPayload) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Keyword models.Text `json:"keyword"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*k = keywordPayload(obj.Keyword)
		return nil
	}

	var t models.Text
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*k = keywordPayload(t)
	return nil
}
