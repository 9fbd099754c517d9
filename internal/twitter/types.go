package twitter

import "time"

// Item is one saved tweet as returned by the platform API.
type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Author is an expanded user record joined to items by AuthorID. The
// expansion may legitimately omit an item's author.
type Author struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
}

type meResponse struct {
	Data struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"data"`
}

type itemsResponse struct {
	Data     []Item `json:"data"`
	Includes struct {
		Users []Author `json:"users"`
	} `json:"includes"`
}
