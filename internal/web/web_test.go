package web

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"task-desk.com/task-desk/internal/client"
	config "task-desk.com/task-desk/internal/configs"
	httpapi "task-desk.com/task-desk/internal/http"
	"task-desk.com/task-desk/internal/logging"
	"task-desk.com/task-desk/internal/session"
	"task-desk.com/task-desk/internal/view"
	"task-desk.com/task-desk/pkg/constants"
	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

type browser struct {
	t    *testing.T
	base string
	http *http.Client
}

func setup(t *testing.T) *browser {
	t.Helper()

	db, err := config.NewDatabaseClient(":memory:", &model.User{}, &model.Task{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	log := logging.Discard()

	stub := httptest.NewServer(httpapi.NewServer(db, httpapi.Options{
		Prefix:     "/api",
		JWTSecret:  "test",
		BcryptCost: bcrypt.MinCost,
		RateLimit:  1000,
	}, log))
	t.Cleanup(stub.Close)

	api := client.New(stub.URL+"/api", client.WithLogger(log))
	h := NewHandler(api, session.NewCookieStore(session.CookieOptions{}), time.Hour, log)
	front := httptest.NewServer(NewServer(h, 1000, log))
	t.Cleanup(front.Close)

	jar, _ := cookiejar.New(nil)
	return &browser{t: t, base: front.URL, http: &http.Client{Jar: jar}}
}

func (b *browser) do(method, path string, body, out any) int {
	b.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, b.base+path, &buf)
	req.Header.Set("Content-Type", "application/json")

	res, err := b.http.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			b.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return res.StatusCode
}

type dashboardBody struct {
	User         *model.User  `json:"user"`
	Tasks        []model.Task `json:"tasks"`
	Showing      int          `json:"showing"`
	EmptyMessage string       `json:"emptyMessage"`
	Stats        struct {
		Total     int `json:"total"`
		Pending   int `json:"pending"`
		Completed int `json:"completed"`
	} `json:"stats"`
}

func (b *browser) register() {
	b.t.Helper()

	var user model.User
	code := b.do(http.MethodPost, "/auth/register", model.RegisterForm{
		Username: "ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1",
	}, &user)
	if code != http.StatusOK || user.Email != "ada@example.com" {
		b.t.Fatalf("register: %d %+v", code, user)
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	b := setup(t)

	var msg map[string]string
	if code := b.do(http.MethodGet, "/dashboard", nil, &msg); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if msg["message"] == "" {
		t.Error("expected an error message")
	}
}

func TestDashboardFlow(t *testing.T) {
	b := setup(t)
	b.register()

	var dash dashboardBody
	if code := b.do(http.MethodGet, "/dashboard", nil, &dash); code != http.StatusOK {
		t.Fatalf("dashboard: %d", code)
	}
	if dash.User == nil || dash.User.Username != "ada" {
		t.Errorf("unexpected user %+v", dash.User)
	}
	if dash.EmptyMessage != "You have no tasks yet. Create a new task to get started!" {
		t.Errorf("unexpected empty message %q", dash.EmptyMessage)
	}

	var first, second model.Task
	if code := b.do(http.MethodPost, "/tasks", model.TaskInput{Title: "Buy milk"}, &first); code != http.StatusCreated {
		t.Fatalf("create: %d", code)
	}
	if code := b.do(http.MethodPost, "/tasks", model.TaskInput{Title: "Write report", Status: constants.StatusCompleted}, &second); code != http.StatusCreated {
		t.Fatalf("create: %d", code)
	}

	var msg map[string]string
	if code := b.do(http.MethodPost, "/tasks", model.TaskInput{Title: " "}, &msg); code != http.StatusBadRequest || msg["message"] != "Task title is required" {
		t.Errorf("blank title: %d %v", code, msg)
	}

	dash = dashboardBody{}
	b.do(http.MethodGet, "/dashboard?status=Completed", nil, &dash)
	if dash.Showing != 1 || dash.Tasks[0].ID != second.ID {
		t.Errorf("completed filter: %+v", dash.Tasks)
	}
	if dash.Stats.Total != 2 || dash.Stats.Completed != 1 || dash.Stats.Pending != 1 {
		t.Errorf("unexpected stats %+v", dash.Stats)
	}

	dash = dashboardBody{}
	b.do(http.MethodGet, "/dashboard?search=xyz", nil, &dash)
	if dash.Showing != 0 || dash.EmptyMessage != "No tasks match your filters. Try adjusting your search or filter criteria." {
		t.Errorf("search without match: %+v", dash)
	}

	dash = dashboardBody{}
	b.do(http.MethodGet, "/dashboard?sort=title&dir=asc", nil, &dash)
	if len(dash.Tasks) != 2 || dash.Tasks[0].Title != "Buy milk" {
		t.Errorf("title sort: %+v", dash.Tasks)
	}

	if code := b.do(http.MethodGet, "/dashboard?sort=priority", nil, &msg); code != http.StatusBadRequest {
		t.Errorf("unknown sort key: expected 400, got %d", code)
	}

	var updated model.Task
	if code := b.do(http.MethodPut, "/tasks/"+first.ID, model.TaskInput{Title: "Buy oat milk", Status: constants.StatusInProgress}, &updated); code != http.StatusOK {
		t.Fatalf("update: %d", code)
	}
	if updated.Title != "Buy oat milk" || updated.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("unexpected update %+v", updated)
	}

	if code := b.do(http.MethodDelete, "/tasks/missing", nil, &msg); code != http.StatusNotFound || msg["message"] != "Failed to delete task" {
		t.Errorf("delete unknown: %d %v", code, msg)
	}

	var del model.DeleteResult
	if code := b.do(http.MethodDelete, "/tasks/"+first.ID, nil, &del); code != http.StatusOK {
		t.Errorf("delete: %d", code)
	}

	dash = dashboardBody{}
	b.do(http.MethodGet, "/dashboard", nil, &dash)
	if dash.Showing != 1 || dash.Tasks[0].ID != second.ID {
		t.Errorf("after delete: %+v", dash.Tasks)
	}
}

func TestLoginAndLogout(t *testing.T) {
	b := setup(t)
	b.register()

	if code := b.do(http.MethodPost, "/auth/logout", nil, nil); code != http.StatusOK {
		t.Fatalf("logout: %d", code)
	}
	if code := b.do(http.MethodGet, "/auth/profile", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("profile after logout: expected 401, got %d", code)
	}

	var msg map[string]string
	if code := b.do(http.MethodPost, "/auth/login", model.LoginRequest{Email: "ada@example.com", Password: "wrong1"}, &msg); code != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", code)
	}
	if msg["message"] != "Invalid email or password" {
		t.Errorf("unexpected message %q", msg["message"])
	}

	if code := b.do(http.MethodPost, "/auth/login", model.LoginRequest{Email: "ada@example.com", Password: "secret1"}, nil); code != http.StatusOK {
		t.Fatalf("login: %d", code)
	}

	var user model.User
	if code := b.do(http.MethodGet, "/auth/profile", nil, &user); code != http.StatusOK || user.Username != "ada" {
		t.Errorf("profile: %d %+v", code, user)
	}
}

func TestProfileRefetchedWithoutUserCookie(t *testing.T) {
	b := setup(t)
	b.register()

	// Drop the user snapshot and keep only the token.
	u, _ := http.NewRequest(http.MethodGet, b.base, nil)
	for _, c := range b.http.Jar.Cookies(u.URL) {
		if c.Name == session.UserCookie {
			b.http.Jar.SetCookies(u.URL, []*http.Cookie{{Name: session.UserCookie, Value: "", Path: "/", MaxAge: -1}})
		}
	}

	var user model.User
	if code := b.do(http.MethodGet, "/auth/profile", nil, &user); code != http.StatusOK || user.Email != "ada@example.com" {
		t.Errorf("profile: %d %+v", code, user)
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func TestRegisterChecksPasswordConfirmation(t *testing.T) {
	b := setup(t)

	cases := []struct {
		name    string
		confirm string
		want    string
	}{
		{"missing", "", "Please confirm your password"},
		{"mismatch", "secret2", "Passwords do not match"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var res errorResponse
			code := b.do(http.MethodPost, "/auth/register", model.RegisterForm{
				Username: "ada", Email: "ada@example.com", Password: "secret1", ConfirmPassword: tc.confirm,
			}, &res)
			if code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
			if res.Fields["confirmPassword"] != tc.want {
				t.Errorf("confirmPassword = %q, want %q", res.Fields["confirmPassword"], tc.want)
			}
		})
	}

	var res errorResponse
	code := b.do(http.MethodPost, "/auth/register", model.RegisterForm{Username: "al", Email: "nope"}, &res)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	want := map[string]string{
		"username":        "Username must be at least 3 characters",
		"email":           "Email is invalid",
		"password":        "Password is required",
		"confirmPassword": "Please confirm your password",
	}
	for field, msg := range want {
		if res.Fields[field] != msg {
			t.Errorf("%s = %q, want %q", field, res.Fields[field], msg)
		}
	}

	// Nothing reached the store: the account can still be created.
	b.register()
}

func TestDashboardToggleSortAndBadges(t *testing.T) {
	b := setup(t)
	b.register()

	for _, title := range []string{"Alpha", "Beta"} {
		if code := b.do(http.MethodPost, "/tasks", model.TaskInput{Title: title, Status: constants.StatusInProgress}, nil); code != http.StatusCreated {
			t.Fatalf("create %s: %d", title, code)
		}
	}

	var dash struct {
		Params view.Params `json:"params"`
		Tasks  []struct {
			Title string                `json:"title"`
			Style constants.StatusStyle `json:"style"`
		} `json:"tasks"`
	}

	if code := b.do(http.MethodGet, "/dashboard?toggle=title", nil, &dash); code != http.StatusOK {
		t.Fatalf("dashboard: %d", code)
	}
	if dash.Params.SortKey != view.SortByTitle || dash.Params.Direction != view.Ascending || dash.Tasks[0].Title != "Alpha" {
		t.Errorf("toggle onto a new key should sort ascending: %+v", dash)
	}

	if code := b.do(http.MethodGet, "/dashboard?sort=title&dir=asc&toggle=title", nil, &dash); code != http.StatusOK {
		t.Fatalf("dashboard: %d", code)
	}
	if dash.Params.Direction != view.Descending || dash.Tasks[0].Title != "Beta" {
		t.Errorf("toggling the active key should flip the direction: %+v", dash)
	}

	want := constants.StatusInProgress.Style()
	for _, task := range dash.Tasks {
		if task.Style != want {
			t.Errorf("%s: style %+v, want %+v", task.Title, task.Style, want)
		}
	}

	if code := b.do(http.MethodGet, "/dashboard?toggle=priority", nil, nil); code != http.StatusBadRequest {
		t.Errorf("unknown toggle key: expected 400, got %d", code)
	}
}

// brokenStore answers every task call with err and knows one user.
type brokenStore struct {
	err error
}

func (s brokenStore) ListTasks(context.Context) ([]model.Task, error) { return nil, s.err }
func (s brokenStore) CreateTask(context.Context, model.TaskInput) (*model.Task, error) {
	return nil, s.err
}
func (s brokenStore) UpdateTask(context.Context, string, model.TaskInput) (*model.Task, error) {
	return nil, s.err
}
func (s brokenStore) DeleteTask(context.Context, string) (*model.DeleteResult, error) {
	return nil, s.err
}
func (s brokenStore) Register(context.Context, model.RegisterRequest) (*model.AuthResponse, error) {
	return nil, errors.New("not used")
}
func (s brokenStore) Login(context.Context, string, string) (*model.AuthResponse, error) {
	return nil, errors.New("not used")
}
func (s brokenStore) Profile(context.Context) (*model.User, error) {
	return &model.User{ID: "u1", Username: "ada"}, nil
}

func signedInRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()

	raw, _ := json.Marshal(model.User{ID: "u1", Username: "ada", Email: "ada@example.com"})
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "token"})
	req.AddCookie(&http.Cookie{Name: session.UserCookie, Value: base64.RawURLEncoding.EncodeToString(raw)})
	return req
}

func TestDashboardLoadFailure(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		cleared bool
	}{
		{"store down", exceptions.Network("could not reach the task store", nil), http.StatusBadGateway, false},
		{"store error", exceptions.FromStatus(http.StatusServiceUnavailable, "maintenance"), http.StatusServiceUnavailable, false},
		{"token rejected", exceptions.FromStatus(http.StatusUnauthorized, "Not authorized, token failed"), http.StatusUnauthorized, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := logging.Discard()
			h := NewHandler(brokenStore{err: tc.err}, session.NewCookieStore(session.CookieOptions{}), time.Hour, log)
			e := NewServer(h, 1000, log)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, signedInRequest(t, http.MethodGet, "/dashboard"))

			if rec.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, rec.Code)
			}
			var res errorResponse
			_ = json.Unmarshal(rec.Body.Bytes(), &res)
			if res.Message != "Failed to load tasks. Please try again later." {
				t.Errorf("unexpected banner %q", res.Message)
			}

			expired := map[string]bool{}
			for _, c := range rec.Result().Cookies() {
				if c.MaxAge < 0 {
					expired[c.Name] = true
				}
			}
			if tc.cleared && (!expired[session.TokenCookie] || !expired[session.UserCookie]) {
				t.Errorf("session cookies should be cleared, got %v", rec.Result().Cookies())
			}
			if !tc.cleared && len(expired) != 0 {
				t.Errorf("session should survive a store outage, got %v", rec.Result().Cookies())
			}
		})
	}
}

func TestDeleteFailureMessage(t *testing.T) {
	log := logging.Discard()
	h := NewHandler(brokenStore{err: exceptions.Network("could not reach the task store", nil)}, session.NewCookieStore(session.CookieOptions{}), time.Hour, log)
	e := NewServer(h, 1000, log)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, signedInRequest(t, http.MethodDelete, "/tasks/a"))

	var res errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if rec.Code != http.StatusBadGateway || res.Message != "Failed to delete task" {
		t.Errorf("got %d %q", rec.Code, res.Message)
	}
}
