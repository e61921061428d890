package api

import (
	"context"
	"net/url"
)

func (c *Client) HasLiked(ctx context.Context, userID, videoID string) (bool, error) {
	var liked bool
	q := url.Values{"userId": {userID}, "videoId": {videoID}}
	err := c.get(ctx, "/api/likes/check?"+q.Encode(), &liked)
	return liked, err
}

// ToggleLike flips the viewer's like and returns the server's authoritative
// resulting state and count.
func (c *Client) ToggleLike(ctx context.Context, req LikeRequest) (LikeResponse, error) {
	var resp LikeResponse
	err := c.post(ctx, "/api/likes/toggle", req, &resp)
	return resp, err
}

func (c *Client) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var following bool
	q := url.Values{"followerId": {followerID}, "followingId": {followingID}}
	err := c.get(ctx, "/api/follows/check?"+q.Encode(), &following)
	return following, err
}

func (c *Client) ToggleFollow(ctx context.Context, req FollowRequest) (FollowResponse, error) {
	var resp FollowResponse
	err := c.post(ctx, "/api/follows/toggle", req, &resp)
	return resp, err
}
