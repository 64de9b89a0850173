package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Priteshsurale/blogging-website/internal/db"
	"github.com/Priteshsurale/blogging-website/internal/models"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "store.db"), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	if err := db.InitDatabase(gdb); err != nil {
		t.Fatal(err)
	}
	return New(gdb)
}

func mustUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), name, name+"@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestUsers_CreateAndLookup(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "alice")

	byEmail, err := s.Users.ByEmail(ctx, "alice@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("ByEmail: %v %v", byEmail, err)
	}
	if _, err := s.Users.ByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) || !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrNotFound wrapping gorm.ErrRecordNotFound, got %v", err)
	}
	_, err = s.Users.Create(ctx, "alice", "other@example.com", "hash")
	if !errors.Is(err, ErrConflict) || !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected ErrConflict for duplicate username, got %v", err)
	}
	if _, err := s.Users.Create(ctx, "alice2", "alice@example.com", "hash"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}

	taken, err := s.Users.UsernameTaken(ctx, "alice", u.ID)
	if err != nil || taken {
		t.Errorf("own username reported as taken: %v %v", taken, err)
	}
	taken, _ = s.Users.UsernameTaken(ctx, "alice", 0)
	if !taken {
		t.Error("username should be taken")
	}
}

func TestUsers_UpdateAccountAndPassword(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "bob")

	carol := mustUser(t, s, "carol")
	carol.Username = "bob"
	if err := s.Users.UpdateAccount(ctx, carol); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict when taking bob's username, got %v", err)
	}

	u.Username = "robert"
	u.ImageFile = "abc.png"
	if err := s.Users.UpdateAccount(ctx, u); err != nil {
		t.Fatal(err)
	}
	if err := s.Users.SetPassword(ctx, u.ID, "newhash"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Users.ByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "robert" || got.ImageFile != "abc.png" || got.Password != "newhash" {
		t.Errorf("unexpected user %+v", got)
	}
	if err := s.Users.SetPassword(ctx, 999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPosts_CRUDAndPagination(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")

	for i := 1; i <= 7; i++ {
		if _, err := s.Posts.Create(ctx, alice.ID, fmt.Sprintf("post %d", i), "body"); err != nil {
			t.Fatal(err)
		}
	}
	bobPost, err := s.Posts.Create(ctx, bob.ID, "bob's", "body")
	if err != nil {
		t.Fatal(err)
	}

	page, err := s.Posts.ListByAuthor(ctx, alice.ID, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 7 || len(page.Items) != 5 || page.Pages() != 2 || !page.HasNext() || page.HasPrev() {
		t.Errorf("unexpected first page: total=%d items=%d pages=%d", page.Total, len(page.Items), page.Pages())
	}
	if page.Items[0].Title != "post 7" {
		t.Errorf("newest post should come first, got %q", page.Items[0].Title)
	}
	if page.Items[0].Author.Username != "alice" {
		t.Errorf("author not preloaded: %+v", page.Items[0].Author)
	}

	page, _ = s.Posts.ListByAuthor(ctx, alice.ID, 2, 5)
	if len(page.Items) != 2 || page.HasNext() {
		t.Errorf("second page has %d items", len(page.Items))
	}

	all, _ := s.Posts.List(ctx, 1, 5)
	if all.Total != 8 {
		t.Errorf("total = %d", all.Total)
	}

	bobPost.Title = "edited"
	if err := s.Posts.Update(ctx, bobPost); err != nil {
		t.Fatal(err)
	}
	got, err := s.Posts.Get(ctx, bobPost.ID)
	if err != nil || got.Title != "edited" || got.Author.ID != bob.ID {
		t.Fatalf("Get after update: %+v %v", got, err)
	}

	if err := s.Posts.Delete(ctx, bobPost.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Posts.Get(ctx, bobPost.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Posts.Delete(ctx, bobPost.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "carol")

	sess, err := s.Sessions.Create(ctx, u.ID, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Sessions.User(ctx, sess.ID)
	if err != nil || got.ID != u.ID {
		t.Fatalf("User: %v %v", got, err)
	}

	s.Sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := s.Sessions.User(ctx, sess.ID); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	n, err := s.Sessions.CleanupExpired(ctx)
	if err != nil || n != 1 {
		t.Errorf("cleanup removed %d: %v", n, err)
	}
	if _, err := s.Sessions.User(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPage_IterPages(t *testing.T) {
	p := &Page{Number: 6, PerPage: 5, Total: 50}
	got := fmt.Sprint(p.IterPages())
	if got != "[1 0 4 5 6 7 8 0 10]" {
		t.Errorf("IterPages = %s", got)
	}
	empty := &Page{Number: 1, PerPage: 5}
	if len(empty.IterPages()) != 0 || empty.HasNext() {
		t.Error("empty page should have no navigation")
	}
}
