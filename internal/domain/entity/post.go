package entity

// PostAuthor is nil on a Post whose author is unknown to the server.
type PostAuthor struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Post struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	PostedBy  *PostAuthor `json:"posted_by"`
	CreatedAt string      `json:"created_at,omitempty"`
}

// AuthorName returns the display name of the author, or "" when the post has none.
func (p Post) AuthorName() string {
	if p.PostedBy == nil {
		return ""
	}
	return joinName(p.PostedBy.FirstName, p.PostedBy.LastName)
}

type CommentAuthor struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Comment struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	PostID    string         `json:"post_id"`
	Media     string         `json:"media,omitempty"`
	Author    *CommentAuthor `json:"author,omitempty"`
	UpdatedAt string         `json:"updated_at"`
}

type CreatePostRequest struct {
	Text string `json:"text"`
}

type CreateCommentRequest struct {
	Text  string `json:"text"`
	Media string `json:"media,omitempty"`
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
