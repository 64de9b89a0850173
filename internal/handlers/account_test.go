package handlers_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Priteshsurale/blogging-website/internal/forms"
)

func multipartAccount(t *testing.T, username, email, filename string, picture []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("username", username)
	mw.WriteField("email", email)
	if filename != "" {
		fw, err := mw.CreateFormFile("picture", filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(picture)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/account", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAccount_RequiresLogin(t *testing.T) {
	app := setupApp(t)
	expectRedirect(t, app.get("/account"), "/login?next=%2Faccount")
}

func TestAccount_ShowsCurrentValues(t *testing.T) {
	app := setupApp(t)
	user := app.createUser(t, "alice")

	w := app.get("/account", app.loginCookie(t, user))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `value="alice@example.com"`) || !strings.Contains(body, "/static/profile_pics/default.jpg") {
		t.Error("account form not pre-filled")
	}
}

func TestAccount_UpdateWithAvatar(t *testing.T) {
	app := setupApp(t)
	user := app.createUser(t, "alice")

	var pic bytes.Buffer
	if err := png.Encode(&pic, image.NewRGBA(image.Rect(0, 0, 300, 300))); err != nil {
		t.Fatal(err)
	}

	req := multipartAccount(t, "alice2", "alice2@example.com", "me.png", pic.Bytes())
	w := app.do(req, app.loginCookie(t, user))
	expectRedirect(t, w, "/account")

	updated, err := app.Store.Users.ByID(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Username != "alice2" || updated.Email != "alice2@example.com" {
		t.Errorf("account not updated: %+v", updated)
	}
	if updated.ImageFile == "default.jpg" || !strings.HasSuffix(updated.ImageFile, ".png") {
		t.Fatalf("image_file = %q", updated.ImageFile)
	}

	f, err := os.Open(filepath.Join(app.Avatars.Dir, updated.ImageFile))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 125 || cfg.Height != 125 {
		t.Errorf("avatar saved as %dx%d", cfg.Width, cfg.Height)
	}

	if w := app.get("/static/profile_pics/" + updated.ImageFile); w.Code != http.StatusOK {
		t.Errorf("avatar not served: %d", w.Code)
	}
}

func TestAccount_RejectsTakenUsername(t *testing.T) {
	app := setupApp(t)
	app.createUser(t, "bob")
	user := app.createUser(t, "alice")

	w := app.do(multipartAccount(t, "bob", "alice@example.com", "", nil), app.loginCookie(t, user))
	if w.Code != http.StatusOK {
		t.Fatalf("expected form redisplay, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "That username is taken") {
		t.Error("missing username error")
	}
}

func TestAccount_RejectsUnsupportedPicture(t *testing.T) {
	app := setupApp(t)
	user := app.createUser(t, "alice")

	w := app.do(multipartAccount(t, "alice", "alice@example.com", "evil.exe", []byte("MZ")), app.loginCookie(t, user))
	if w.Code != http.StatusOK {
		t.Fatalf("expected form redisplay, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "approved extension") {
		t.Error("missing extension error")
	}
}

func TestAccount_RejectsPictureOverLimit(t *testing.T) {
	app := setupApp(t)
	user := app.createUser(t, "alice")

	picture := bytes.Repeat([]byte{0}, forms.MaxUploadSize+512<<10)
	w := app.do(multipartAccount(t, "alice", "alice@example.com", "big.png", picture), app.loginCookie(t, user))
	if w.Code != http.StatusOK {
		t.Fatalf("expected form redisplay, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "File is too large.") {
		t.Error("missing size error")
	}
	got, err := app.Store.Users.ByID(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ImageFile != user.ImageFile {
		t.Errorf("avatar changed to %q", got.ImageFile)
	}
}
