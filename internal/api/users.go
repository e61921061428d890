package api

import (
	"context"
	"net/url"
)

func (c *Client) UserByID(ctx context.Context, id string) (User, error) {
	var user User
	err := c.get(ctx, "/api/users/"+url.PathEscape(id), &user)
	return user, err
}

func (c *Client) UserByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := c.get(ctx, "/api/users/username/"+url.PathEscape(username), &user)
	return user, err
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var users []User
	err := c.get(ctx, "/api/users/search?query="+url.QueryEscape(query), &users)
	return users, err
}

func (c *Client) UserStats(ctx context.Context, id string) (UserStats, error) {
	var stats UserStats
	err := c.get(ctx, "/api/users/"+url.PathEscape(id)+"/stats", &stats)
	return stats, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) (User, error) {
	var user User
	err := c.do(ctx, "PUT", "/api/users/"+url.PathEscape(id), update, &user)
	return user, err
}
