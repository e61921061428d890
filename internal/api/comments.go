package api

import (
	"context"
	"net/url"
)

// TopLevelComments returns the flat comment list in the order the server
// defines; no client-side sort is imposed.
func (c *Client) TopLevelComments(ctx context.Context, videoID string) ([]Comment, error) {
	var comments []Comment
	err := c.get(ctx, "/api/comments/video/"+url.PathEscape(videoID)+"/top-level", &comments)
	return comments, err
}

func (c *Client) CreateComment(ctx context.Context, req CommentRequest) (Comment, error) {
	var comment Comment
	err := c.post(ctx, "/api/comments", req, &comment)
	return comment, err
}
