package api

// User is the summary the backend embeds on videos and comments.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Bio       string `json:"bio,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type UserStats struct {
	FollowerCount  int `json:"followerCount"`
	FollowingCount int `json:"followingCount"`
	VideoCount     int `json:"videoCount"`
	TotalLikes     int `json:"totalLikes"`
}

type Video struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	ViewCount    int    `json:"viewCount"`
	CreatedAt    string `json:"createdAt"`
	User         *User  `json:"user,omitempty"`
}

// OwnerID resolves the owning-user id, preferring the embedded summary.
func (v Video) OwnerID() string {
	if v.User != nil && v.User.ID != "" {
		return v.User.ID
	}
	return v.UserID
}

type VideoStats struct {
	ViewCount    int `json:"viewCount"`
	LikeCount    int `json:"likeCount"`
	CommentCount int `json:"commentCount"`
}

type Comment struct {
	ID              string `json:"id"`
	Content         string `json:"content"`
	UserID          string `json:"userId"`
	VideoID         string `json:"videoId"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
	CreatedAt       string `json:"createdAt"`
	User            *User  `json:"user,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
	Error string `json:"error,omitempty"`
}

type TokenValidation struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

type LikeRequest struct {
	UserID  string `json:"userId"`
	VideoID string `json:"videoId"`
}

// LikeResponse carries the server's authoritative post-toggle state.
type LikeResponse struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"likeCount"`
}

type FollowRequest struct {
	FollowerID  string `json:"followerId"`
	FollowingID string `json:"followingId"`
}

type FollowResponse struct {
	IsFollowing   bool `json:"isFollowing"`
	FollowerCount int  `json:"followerCount"`
}

type CommentRequest struct {
	Content         string `json:"content"`
	UserID          string `json:"userId"`
	VideoID         string `json:"videoId"`
	ParentCommentID string `json:"parentCommentId,omitempty"`
}

// UserUpdate holds the profile fields the settings screen may change.
// Nil pointers are omitted so the backend keeps the current value.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
