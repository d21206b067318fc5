package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore/internal/app"
	"bookstore/pkg/domain"
	"bookstore/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	appCore, err := app.New(app.Config{
		JWTSecret:  "test-secret-key",
		SessionTTL: time.Hour,
		PageSize:   2,
		Store:      store.NewMemoryStore(),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(New(Config{App: appCore}).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func signUp(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/signup", "", map[string]string{
		"name":     "Gamba",
		"email":    email,
		"password": "123456",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup expected 201, got %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatalf("expected signup token")
	}
	return body.Token
}

func createBook(t *testing.T, srv *httptest.Server, token, title string) domain.Book {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/books", token, map[string]any{
		"title":       title,
		"description": "This is " + title,
		"author":      "Caveman",
		"price":       200,
		"category":    "Adventure",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create book expected 201, got %d", resp.StatusCode)
	}
	var book domain.Book
	decodeBody(t, resp, &book)
	return book
}

func TestSignupAndSignin(t *testing.T) {
	srv := newTestServer(t)
	signUp(t, srv, "gamba@gmail.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/auth/signin", "", map[string]string{
		"email":    "gamba@gmail.com",
		"password": "123456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatalf("expected signin token")
	}
}

func TestSignupValidationAndConflict(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/signup", "", map[string]string{
		"name":     "Gamba",
		"email":    "not-an-email",
		"password": "123",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid signup expected 400, got %d", resp.StatusCode)
	}

	signUp(t, srv, "gamba@gmail.com")
	resp = doJSON(t, http.MethodPost, srv.URL+"/auth/signup", "", map[string]string{
		"name":     "Other",
		"email":    "gamba@gmail.com",
		"password": "abcdef",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup expected 409, got %d", resp.StatusCode)
	}
}

func TestSigninRejectsBadCredentialsUniformly(t *testing.T) {
	srv := newTestServer(t)
	signUp(t, srv, "gamba@gmail.com")

	for _, creds := range []map[string]string{
		{"email": "gamba@gmail.com", "password": "wrong-pass"},
		{"email": "nobody@gmail.com", "password": "123456"},
	} {
		resp := doJSON(t, http.MethodGet, srv.URL+"/auth/signin", "", creds)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("signin with %v expected 401, got %d", creds, resp.StatusCode)
		}
	}
}

func TestBooksRequireBearerToken(t *testing.T) {
	srv := newTestServer(t)
	for _, route := range []struct {
		method, path string
	}{
		{http.MethodGet, "/books"},
		{http.MethodPost, "/books"},
		{http.MethodGet, "/books/some-id"},
		{http.MethodPut, "/books/some-id"},
		{http.MethodDelete, "/books/some-id"},
	} {
		resp := doJSON(t, route.method, srv.URL+route.path, "", nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s expected 401, got %d", route.method, route.path, resp.StatusCode)
		}
	}
}

func TestBookCRUDLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv, "gamba@gmail.com")

	book := createBook(t, srv, token, "Book 4")
	if book.ID == "" || book.OwnerID == "" {
		t.Fatalf("expected generated id and ownerId, got %+v", book)
	}
	if book.Title != "Book 4" || book.Price != 200 || book.Category != domain.CategoryAdventure {
		t.Fatalf("input fields not preserved: %+v", book)
	}

	resp := doJSON(t, http.MethodGet, srv.URL+"/books/"+book.ID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get expected 200, got %d", resp.StatusCode)
	}
	var fetched domain.Book
	decodeBody(t, resp, &fetched)
	if fetched.ID != book.ID {
		t.Fatalf("fetched id = %q, want %q", fetched.ID, book.ID)
	}

	resp = doJSON(t, http.MethodPut, srv.URL+"/books/"+book.ID, token, map[string]string{
		"title": "Updated name",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update expected 200, got %d", resp.StatusCode)
	}
	var updated domain.Book
	decodeBody(t, resp, &updated)
	if updated.Title != "Updated name" {
		t.Fatalf("updated title = %q", updated.Title)
	}
	if updated.Author != book.Author {
		t.Fatalf("author must survive a partial update, got %+v", updated)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/books/"+book.ID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete expected 200, got %d", resp.StatusCode)
	}
	var confirmation map[string]string
	decodeBody(t, resp, &confirmation)
	if confirmation["msg"] == "" {
		t.Fatalf("expected delete confirmation message, got %v", confirmation)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/books/"+book.ID, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", resp.StatusCode)
	}
}

func TestBookHiddenAcrossOwners(t *testing.T) {
	srv := newTestServer(t)
	aliceToken := signUp(t, srv, "alice@example.com")
	bobToken := signUp(t, srv, "bob@example.com")
	book := createBook(t, srv, aliceToken, "Alice Book")

	for _, route := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]string{"title": "Taken"}},
		{http.MethodDelete, nil},
	} {
		resp := doJSON(t, route.method, srv.URL+"/books/"+book.ID, bobToken, route.body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s by other owner expected 404, got %d", route.method, resp.StatusCode)
		}
	}
}

func TestBookListPaginationAndKeyword(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv, "gamba@gmail.com")
	for i := 1; i <= 3; i++ {
		createBook(t, srv, token, fmt.Sprintf("Book %d", i))
	}
	createBook(t, srv, token, "The Caveman Diaries")

	var books []domain.Book
	resp := doJSON(t, http.MethodGet, srv.URL+"/books?page=1", token, nil)
	decodeBody(t, resp, &books)
	if len(books) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(books))
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/books?page=2", token, nil)
	decodeBody(t, resp, &books)
	if len(books) != 2 {
		t.Fatalf("page 2 size = %d, want 2", len(books))
	}

	// page defaults to 1 when absent or non-numeric
	resp = doJSON(t, http.MethodGet, srv.URL+"/books?page=abc", token, nil)
	decodeBody(t, resp, &books)
	if len(books) != 2 || books[0].Title != "Book 1" {
		t.Fatalf("non-numeric page should behave as page 1, got %+v", books)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/books?keyword=caveman", token, nil)
	decodeBody(t, resp, &books)
	if len(books) != 1 || books[0].Title != "The Caveman Diaries" {
		t.Fatalf("keyword match = %+v", books)
	}
}

func TestBookMalformedID(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv, "gamba@gmail.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/books/not-an-id", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed id expected 400, got %d", resp.StatusCode)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	srv := newTestServer(t)
	token := signUp(t, srv, "gamba@gmail.com")

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/logout", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout expected 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/books", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("revoked token expected 401, got %d", resp.StatusCode)
	}
}
