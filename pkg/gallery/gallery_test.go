package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/gallery-client/internal/credential"
	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []apiclient.Toast
}

func (r *recordingNotifier) Notify(_ context.Context, t apiclient.Toast) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}

func envelope(t *testing.T, w http.ResponseWriter, code int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"code": code, "message": message, "data": data}); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func newClient(t *testing.T, h http.HandlerFunc) (*apiclient.Client, *credential.MemoryStore, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := credential.NewMemoryStore()
	n := &recordingNotifier{}
	c := apiclient.New(apiclient.Options{
		BaseURL:     srv.URL + "/api",
		Timeout:     2 * time.Second,
		Credentials: store,
		Notifier:    n,
	})
	return c, store, n
}

func TestSessionLoginStoresToken(t *testing.T) {
	var verifyAuth string
	c, store, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/debug/users/login":
			var body credentials
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Name != "testuser" || body.Password != "password123" {
				envelope(t, w, 1001, "invalid name or password", nil)
				return
			}
			envelope(t, w, 0, "ok", map[string]string{"token": "tok-1"})
		case "/api/users/verify":
			verifyAuth = r.Header.Get("Authorization")
			envelope(t, w, 0, "ok", map[string]bool{"valid": true})
		default:
			http.NotFound(w, r)
		}
	})
	session := NewSession(NewAuthService(c), store, nil)
	ctx := context.Background()

	if err := session.Login(ctx, "testuser", "password123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok, _ := store.Credential(ctx); tok != "tok-1" {
		t.Fatalf("stored token = %q", tok)
	}
	if !session.Authenticated() || session.User() != "testuser" {
		t.Fatalf("session not authenticated")
	}

	restored := NewSession(NewAuthService(c), store, nil)
	ok, err := restored.CheckStatus(ctx)
	if err != nil || !ok {
		t.Fatalf("CheckStatus = %v, %v", ok, err)
	}
	if verifyAuth != "Bearer tok-1" {
		t.Fatalf("verify sent Authorization %q", verifyAuth)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if tok, _ := store.Credential(ctx); tok != "" || session.Authenticated() {
		t.Fatalf("logout left token %q", tok)
	}
}

func TestSessionLoginFailureClearsState(t *testing.T) {
	c, store, n := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		envelope(t, w, 1001, "invalid name or password", nil)
	})
	_ = store.SaveCredential("stale")
	session := NewSession(NewAuthService(c), store, nil)

	err := session.Login(context.Background(), "testuser", "wrong")
	var appErr *apiclient.ApplicationError
	if !errors.As(err, &appErr) || appErr.Message != "invalid name or password" {
		t.Fatalf("expected ApplicationError, got %v", err)
	}
	if tok, _ := store.Credential(context.Background()); tok != "" {
		t.Fatalf("failed login kept token %q", tok)
	}
	if n.count() != 1 {
		t.Fatalf("expected 1 toast, got %d", n.count())
	}
}

func TestLoginWithoutToken(t *testing.T) {
	c, _, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		envelope(t, w, 0, "ok", map[string]string{})
	})
	if _, err := NewAuthService(c).Login(context.Background(), "a", "b"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestCheckStatusInvalidTokenLogsOutQuietly(t *testing.T) {
	c, store, n := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		envelope(t, w, 401, "token expired", nil)
	})
	_ = store.SaveCredential("old")
	session := NewSession(NewAuthService(c), store, nil)

	ok, err := session.CheckStatus(context.Background())
	if ok || err == nil {
		t.Fatalf("CheckStatus = %v, %v", ok, err)
	}
	if tok, _ := store.Credential(context.Background()); tok != "" {
		t.Fatalf("token not cleared")
	}
	if n.count() != 0 {
		t.Fatalf("verification must not toast, got %d", n.count())
	}
}

func TestCheckStatusWithoutToken(t *testing.T) {
	hits := 0
	c, store, _ := newClient(t, func(http.ResponseWriter, *http.Request) { hits++ })
	ok, err := NewSession(NewAuthService(c), store, nil).CheckStatus(context.Background())
	if ok || err != nil || hits != 0 {
		t.Fatalf("CheckStatus = %v, %v, hits %d", ok, err, hits)
	}
}

func TestRegisterDefaultsMessage(t *testing.T) {
	c, store, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		envelope(t, w, 0, "ok", map[string]string{})
	})
	msg, err := NewSession(NewAuthService(c), store, nil).Register(context.Background(), "new", "pw")
	if err != nil || msg != "Registration successful!" {
		t.Fatalf("Register = %q, %v", msg, err)
	}
}

func TestListPhotosQuery(t *testing.T) {
	var query string
	c, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/photos" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		query = r.URL.RawQuery
		envelope(t, w, 0, "ok", map[string]any{
			"photos": []map[string]any{{"id": "photo_1", "url": "u", "tags": []string{"sea"}}},
			"total":  21,
		})
	})

	page, err := NewService(c).ListPhotos(context.Background(), PhotoQuery{Page: 3, CategoryID: "category_1", Tags: []string{"sea", " ", "sun"}})
	if err != nil {
		t.Fatalf("ListPhotos: %v", err)
	}
	if query != "categoryId=category_1&limit=10&page=3&tags=sea&tags=sun" {
		t.Fatalf("query = %q", query)
	}
	if page.Total != 21 || len(page.Photos) != 1 || page.Photos[0].ID != "photo_1" {
		t.Fatalf("page = %#v", page)
	}
}

func TestUpdateAndDeletePhoto(t *testing.T) {
	var seen []string
	c, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.EscapedPath())
		switch r.Method {
		case http.MethodPut:
			var u map[string]any
			_ = json.NewDecoder(r.Body).Decode(&u)
			envelope(t, w, 0, "ok", map[string]any{"id": "photo 1", "categoryId": u["categoryId"], "tags": u["tags"]})
		case http.MethodDelete:
			envelope(t, w, 0, "ok", true)
		}
	})
	svc := NewService(c)
	ctx := context.Background()

	cat := "category_2"
	photo, err := svc.UpdatePhoto(ctx, "photo 1", PhotoUpdate{CategoryID: &cat, Tags: []string{"city"}})
	if err != nil {
		t.Fatalf("UpdatePhoto: %v", err)
	}
	if photo.CategoryID == nil || *photo.CategoryID != cat || len(photo.Tags) != 1 {
		t.Fatalf("photo = %#v", photo)
	}
	if err := svc.DeletePhoto(ctx, "photo 1"); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if err := svc.DeletePhoto(ctx, " "); err == nil {
		t.Fatalf("expected empty id error")
	}
	want := []string{"PUT /api/photos/photo%201", "DELETE /api/photos/photo%201"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("requests = %v", seen)
	}
}

func TestCategoriesAndTags(t *testing.T) {
	c, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/categories":
			envelope(t, w, 0, "ok", []Category{{ID: "category_1", Name: "landscape"}})
		case "POST /api/categories":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["name"] == "landscape" {
				envelope(t, w, 409, "category name already exists", nil)
				return
			}
			envelope(t, w, 0, "ok", Category{ID: "category_9", Name: body["name"]})
		case "GET /api/tags":
			envelope(t, w, 0, "ok", []string{"nature", "sunset"})
		case "POST /api/tags":
			envelope(t, w, 0, "ok", true)
		default:
			http.NotFound(w, r)
		}
	})
	svc := NewService(c)
	ctx := context.Background()

	cats, err := svc.Categories(ctx)
	if err != nil || len(cats) != 1 {
		t.Fatalf("Categories = %#v, %v", cats, err)
	}
	created, err := svc.CreateCategory(ctx, " pets ")
	if err != nil || created.Name != "pets" {
		t.Fatalf("CreateCategory = %#v, %v", created, err)
	}
	if _, err := svc.CreateCategory(ctx, "landscape"); err == nil {
		t.Fatalf("expected duplicate category error")
	}
	tags, err := svc.PopularTags(ctx)
	if err != nil || len(tags) != 2 {
		t.Fatalf("PopularTags = %#v, %v", tags, err)
	}
	if err := svc.AddPopularTag(ctx, "pets"); err != nil {
		t.Fatalf("AddPopularTag: %v", err)
	}
}

func TestUploadReportsProgress(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 4096)
	c, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/images" {
			t.Errorf("path = %s", r.URL.Path)
		}
		file, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer file.Close()
		got, _ := io.ReadAll(file)
		if hdr.Filename != "sunset.jpg" || len(got) != len(content) {
			t.Errorf("received %s with %d bytes", hdr.Filename, len(got))
		}
		envelope(t, w, 0, "ok", UploadResult{Message: "uploaded", FileID: "f-1"})
	})

	var last Progress
	res, err := NewUploadService(c).Upload(context.Background(), UploadFile{
		Name:   "sunset.jpg",
		Reader: bytes.NewReader(content),
		Size:   int64(len(content)),
	}, func(p Progress) { last = p })
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.FileID != "f-1" {
		t.Fatalf("result = %#v", res)
	}
	if last.Loaded != int64(len(content)) || last.Percent != 100 {
		t.Fatalf("last progress = %#v", last)
	}
}

func TestNewProgressUnknownSize(t *testing.T) {
	if p := newProgress(10, 0); p.Percent != -1 || p.Loaded != 10 {
		t.Fatalf("progress = %#v", p)
	}
	if p := newProgress(1, 3); p.Percent != 33 {
		t.Fatalf("progress = %#v", p)
	}
}
