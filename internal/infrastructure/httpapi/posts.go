package httpapi

import (
	"context"

	"github.com/oksasatya/cohortly/internal/domain/entity"
)

// Posts never fails: on error it logs and returns an empty list.
func (c *Client) Posts(ctx context.Context, cohortID string) ([]entity.Post, error) {
	list, err := get[[]entity.Post](ctx, c, EndpointPosts, []entity.Post{}, cohortID)
	return nonNilOnSuccess(list, err)
}

func (c *Client) CreatePost(ctx context.Context, cohortID, text string) (*entity.Post, error) {
	return send[*entity.Post](ctx, c, EndpointCreatePost, entity.CreatePostRequest{Text: text}, cohortID)
}

// Comments never fails: on error it logs and returns an empty list.
func (c *Client) Comments(ctx context.Context, postID string) ([]entity.Comment, error) {
	list, err := get[[]entity.Comment](ctx, c, EndpointComments, []entity.Comment{}, postID)
	return nonNilOnSuccess(list, err)
}

func (c *Client) CreateComment(ctx context.Context, postID string, in entity.CreateCommentRequest) (*entity.Comment, error) {
	return send[*entity.Comment](ctx, c, EndpointCreateComment, in, postID)
}
