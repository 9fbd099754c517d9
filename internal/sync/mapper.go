package sync

import (
	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/twitter"
)

const (
	siteName  = "Twitter"
	sourceTag = "twitter_sync"

	// sourceIDPrefix makes the dedup key deterministic: for a fixed user and
	// upstream item id, repeated syncs produce byte-identical keys.
	sourceIDPrefix = "item_"

	excerptMaxChars = 200
)

// MapItems transforms upstream items and their author expansions into save
// rows for userID. Pure function: an item whose author is missing from the
// expansion gets defaults instead of failing.
func MapItems(items []twitter.Item, authors []twitter.Author, userID string) []*model.Save {
	byID := make(map[string]twitter.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	out := make([]*model.Save, 0, len(items))
	for _, it := range items {
		row := &model.Save{
			UserID:    userID,
			SourceID:  sourceIDPrefix + it.ID,
			URL:       "https://twitter.com/i/web/status/" + it.ID,
			Title:     "Saved item",
			Content:   it.Text,
			Excerpt:   truncateChars(it.Text, excerptMaxChars),
			SiteName:  siteName,
			Author:    "Unknown",
			Source:    sourceTag,
			CreatedAt: it.CreatedAt,
		}
		if a, ok := byID[it.AuthorID]; ok {
			handle := a.Username
			row.Title = "Item from @" + handle
			row.Author = a.Name
			row.AuthorHandle = &handle
			if a.ProfileImageURL != "" {
				img := a.ProfileImageURL
				row.AuthorImageURL = &img
			}
		}
		out = append(out, row)
	}
	return out
}

// truncateChars cuts s to at most max characters (runes, not bytes) without
// appending an ellipsis.
func truncateChars(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
