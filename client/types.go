package client

import "time"

// User is the account profile returned by the backend.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a single uploaded image post. Exactly one of URL or Filename is
// expected to resolve to a displayable location; see ItemImageURL.
type Item struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

// itemsResponse is the envelope of GET /items/.
type itemsResponse struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// tokenResponse is the payload of a successful login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// errorResponse carries the backend's error detail field.
type errorResponse struct {
	Detail string `json:"detail"`
}
