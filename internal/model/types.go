package model

import "time"

// SyncKind selects which collection of saved items is pulled from the platform.
type SyncKind string

const (
	SyncBookmarks SyncKind = "bookmarks"
	SyncLikes     SyncKind = "likes"
)

// Valid reports whether k is a known sync kind.
func (k SyncKind) Valid() bool { return k == SyncBookmarks || k == SyncLikes }

// OAuth1Credentials is the four-part OAuth 1.0a credential set. All four
// fields must be present for the set to be usable.
type OAuth1Credentials struct {
	ConsumerKey    string `json:"consumerKey"`
	ConsumerSecret string `json:"consumerSecret"`
	AccessToken    string `json:"accessToken"`
	AccessSecret   string `json:"accessSecret"`
}

// Complete reports whether all four fields are non-empty.
func (c OAuth1Credentials) Complete() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// Empty reports whether no field is set at all.
func (c OAuth1Credentials) Empty() bool {
	return c.ConsumerKey == "" && c.ConsumerSecret == "" && c.AccessToken == "" && c.AccessSecret == ""
}

// SyncRequest is one sync invocation. Credentials may be supplied directly
// (bearer token or OAuth1 quadruple); when absent the stored credential for
// the user is used.
type SyncRequest struct {
	UserID string             `json:"userId"`
	Kind   SyncKind           `json:"syncKind"`
	Token  string             `json:"token,omitempty"`
	OAuth1 *OAuth1Credentials `json:"oauth1,omitempty"`
}

// SyncResult reports the outcome of a completed sync.
type SyncResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Credential is a stored integration credential, one row per (user, provider).
// Written by the one-shot OAuth2 exchange flow; the sync engine only reads it.
type Credential struct {
	UserID       string     `json:"userId"`
	Provider     string     `json:"provider"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken *string    `json:"refreshToken,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// Save is the local representation of one synced item. (UserID, SourceID) is
// the dedup key: repeated syncs of the same upstream item upsert one row.
type Save struct {
	UserID         string    `json:"userId"`
	SourceID       string    `json:"sourceId"`
	URL            string    `json:"url"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	SiteName       string    `json:"siteName"`
	Author         string    `json:"author"`
	AuthorHandle   *string   `json:"authorHandle,omitempty"`
	AuthorImageURL *string   `json:"authorImageUrl,omitempty"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"createdAt"`
}
