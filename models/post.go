package models

// EventRefreshPosts tells listening UIs that stored posts changed and should be re-fetched.
const EventRefreshPosts = "refresh-posts"

// Post is a stored note: a title, a required text body and a free-form tags string.
type Post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Tags  string `json:"tags"`
}

// PostInput carries the editable fields of a post after sanitation.
type PostInput struct {
	Title string `json:"title" validate:"trimmed"`
	Text  string `json:"text" validate:"notblank,trimmed"`
	Tags  string `json:"tags" validate:"trimmed"`
}

// MutationResult is the reply payload of add-post, edit-post and delete-post.
type MutationResult struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type StoreInfo struct {
	DataDir     string `json:"data_dir"`
	DBPath      string `json:"db_path"`
	Posts       int    `json:"posts"`
	Subscribers int    `json:"subscribers"`
}
