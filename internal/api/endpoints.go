package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
)

// Banner is the body of GET /.
type Banner struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (c *Client) Ping(ctx context.Context) (Banner, error) {
	var out Banner
	if err := c.callPublic(ctx, "ping backend", http.MethodGet, "/", "", nil, &out); err != nil {
		return Banner{}, err
	}
	return out, nil
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type userResponse struct {
	User model.User `json:"user"`
}

type createdResponse[T any] struct {
	Message string `json:"message"`
	Entry   T      `json:"entry"`
}

// Login exchanges credentials for a token. A rejected login is a
// RequestError carrying the backend's message, never ErrAuthExpired.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, string, error) {
	in := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.callPublic(ctx, "login", http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return model.User{}, "", err
	}
	if out.Token == "" {
		return model.User{}, "", &RequestError{Op: "login", Status: http.StatusOK, Message: "no token in response"}
	}
	return out.User, out.Token, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (model.User, string, error) {
	in := map[string]string{"username": username, "email": email, "password": password}
	var out authResponse
	if err := c.callPublic(ctx, "register", http.MethodPost, "/auth/register", "", in, &out); err != nil {
		return model.User{}, "", err
	}
	if out.Token == "" {
		return model.User{}, "", &RequestError{Op: "register", Status: http.StatusOK, Message: "no token in response"}
	}
	return out.User, out.Token, nil
}

// Verify checks token directly; the session store uses it at startup before
// any token is installed.
func (c *Client) Verify(ctx context.Context, token string) (model.User, error) {
	var out userResponse
	if err := c.callPublic(ctx, "verify token", http.MethodGet, "/auth/verify", token, nil, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var out userResponse
	if err := c.call(ctx, "get profile", http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

func (c *Client) ListEntries(ctx context.Context) ([]model.NutritionEntry, error) {
	var out []model.NutritionEntry
	if err := c.call(ctx, "list entries", http.MethodGet, "/entries", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TodayEntries(ctx context.Context) ([]model.NutritionEntry, error) {
	var out []model.NutritionEntry
	if err := c.call(ctx, "list today's entries", http.MethodGet, "/entries/today", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EntriesOn(ctx context.Context, day time.Time) ([]model.NutritionEntry, error) {
	var out []model.NutritionEntry
	path := "/entries/" + model.FormatDay(day)
	if err := c.call(ctx, "list entries by date", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EntriesInRange(ctx context.Context, start, end time.Time) (map[string][]model.NutritionEntry, error) {
	out := map[string][]model.NutritionEntry{}
	if err := c.call(ctx, "list entries in range", http.MethodGet, "/entries/date-range", rangeQuery(start, end), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEntry(ctx context.Context, in model.NewNutritionEntry) (model.NutritionEntry, error) {
	var out createdResponse[model.NutritionEntry]
	if err := c.call(ctx, "create entry", http.MethodPost, "/entries", nil, in, &out); err != nil {
		return model.NutritionEntry{}, err
	}
	return out.Entry, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	return c.call(ctx, fmt.Sprintf("delete entry %d", id), http.MethodDelete, "/entries/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (c *Client) ListProgress(ctx context.Context) ([]model.ProgressEntry, error) {
	var out []model.ProgressEntry
	if err := c.call(ctx, "list progress", http.MethodGet, "/progress", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProgressOn(ctx context.Context, day time.Time) ([]model.ProgressEntry, error) {
	var out []model.ProgressEntry
	path := "/progress/" + model.FormatDay(day)
	if err := c.call(ctx, "list progress by date", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProgressInRange(ctx context.Context, start, end time.Time) (map[string][]model.ProgressEntry, error) {
	out := map[string][]model.ProgressEntry{}
	if err := c.call(ctx, "list progress in range", http.MethodGet, "/progress/date-range", rangeQuery(start, end), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProgress(ctx context.Context, in model.NewProgressEntry) (model.ProgressEntry, error) {
	var out createdResponse[model.ProgressEntry]
	if err := c.call(ctx, "create progress", http.MethodPost, "/progress", nil, in, &out); err != nil {
		return model.ProgressEntry{}, err
	}
	return out.Entry, nil
}

func (c *Client) DeleteProgress(ctx context.Context, id int64) error {
	return c.call(ctx, fmt.Sprintf("delete progress %d", id), http.MethodDelete, "/progress/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (c *Client) GetGoals(ctx context.Context) (model.Goals, error) {
	var out model.Goals
	if err := c.call(ctx, "get goals", http.MethodGet, "/goals", nil, nil, &out); err != nil {
		return model.Goals{}, err
	}
	return out, nil
}

// SaveGoals replaces the stored goals wholesale. The backend answers with a
// message only; read the goals back with GetGoals.
func (c *Client) SaveGoals(ctx context.Context, g model.Goals) error {
	return c.call(ctx, "save goals", http.MethodPost, "/goals", nil, g, nil)
}

func (c *Client) Summary(ctx context.Context, days int) (model.SummaryStats, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out model.SummaryStats
	if err := c.call(ctx, "get summary", http.MethodGet, "/stats/summary", q, nil, &out); err != nil {
		return model.SummaryStats{}, err
	}
	return out, nil
}

// LookupNutrition asks the backend's nutrition proxy to resolve a free-text
// food description.
func (c *Client) LookupNutrition(ctx context.Context, query string) (model.NutritionLookup, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.NutritionLookup{}, fmt.Errorf("lookup query is required")
	}
	var out model.NutritionLookup
	in := map[string]string{"query": query}
	if err := c.call(ctx, "lookup nutrition", http.MethodPost, "/api/nutritionix", nil, in, &out); err != nil {
		return model.NutritionLookup{}, err
	}
	return out, nil
}

func rangeQuery(start, end time.Time) url.Values {
	q := url.Values{}
	q.Set("start_date", model.FormatDay(start))
	q.Set("end_date", model.FormatDay(end))
	return q
}
