// Package storetest holds a compliance suite run against every store
// adapter.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. makeStore should provide a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()
	handle := "ada"
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	row := &model.Save{
		UserID:       userID,
		SourceID:     "item_9",
		URL:          "https://twitter.com/i/web/status/9",
		Title:        "Item from @ada",
		Content:      "hello world",
		Excerpt:      "hello world",
		SiteName:     "Twitter",
		Author:       "Ada Lovelace",
		AuthorHandle: &handle,
		Source:       "twitter_sync",
		CreatedAt:    created,
	}

	// Upsert and read back
	if err := s.Saves().UpsertBatch(ctx, []*model.Save{row}); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}
	lst, err := s.Saves().ListByUser(ctx, userID, "")
	if err != nil || len(lst) != 1 {
		t.Fatalf("ListByUser: n=%d err=%v", len(lst), err)
	}
	if lst[0].SourceID != "item_9" || lst[0].Author != "Ada Lovelace" {
		t.Fatalf("ListByUser: unexpected row %+v", lst[0])
	}

	// Second upsert with the same key overwrites instead of duplicating
	row2 := *row
	row2.Title = "Item from @ada (edited)"
	row2.Author = "Ada"
	if err := s.Saves().UpsertBatch(ctx, []*model.Save{&row2}); err != nil {
		t.Fatalf("UpsertBatch overwrite: %v", err)
	}
	lst, err = s.Saves().ListByUser(ctx, userID, "twitter_sync")
	if err != nil || len(lst) != 1 {
		t.Fatalf("ListByUser after overwrite: n=%d err=%v", len(lst), err)
	}
	if lst[0].Title != "Item from @ada (edited)" || lst[0].Author != "Ada" {
		t.Fatalf("overwrite not applied: %+v", lst[0])
	}

	// Source filter excludes other tags
	lst, err = s.Saves().ListByUser(ctx, userID, "kindle_import")
	if err != nil || len(lst) != 0 {
		t.Fatalf("ListByUser with foreign source: n=%d err=%v", len(lst), err)
	}

	// Empty batch is a no-op
	if err := s.Saves().UpsertBatch(ctx, nil); err != nil {
		t.Fatalf("UpsertBatch empty: %v", err)
	}

	// Credentials: absent lookup returns nil without error
	got, err := s.Credentials().Get(ctx, userID, "twitter")
	if err != nil || got != nil {
		t.Fatalf("Get absent credential: got=%v err=%v", got, err)
	}

	// Put, read back, overwrite
	exp := created.Add(2 * time.Hour)
	refresh := "refresh-1"
	cred := &model.Credential{
		UserID:       userID,
		Provider:     "twitter",
		AccessToken:  "tok-1",
		RefreshToken: &refresh,
		ExpiresAt:    &exp,
	}
	if _, err := s.Credentials().Put(ctx, cred); err != nil {
		t.Fatalf("Put credential: %v", err)
	}
	got, err = s.Credentials().Get(ctx, userID, "twitter")
	if err != nil || got == nil || got.AccessToken != "tok-1" {
		t.Fatalf("Get credential: got=%+v err=%v", got, err)
	}
	if got.RefreshToken == nil || *got.RefreshToken != "refresh-1" {
		t.Fatalf("Get credential refresh token: %+v", got)
	}

	cred.AccessToken = "tok-2"
	if _, err := s.Credentials().Put(ctx, cred); err != nil {
		t.Fatalf("Put credential overwrite: %v", err)
	}
	got, err = s.Credentials().Get(ctx, userID, "twitter")
	if err != nil || got == nil || got.AccessToken != "tok-2" {
		t.Fatalf("Get credential after overwrite: got=%+v err=%v", got, err)
	}

	// ListUsers sees the user once
	users, err := s.Credentials().ListUsers(ctx, "twitter")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	var seen int
	for _, u := range users {
		if u == userID {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("ListUsers: user seen %d times", seen)
	}
}
