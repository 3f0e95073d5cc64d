// Command smoke walks the main API flows against a running server and
// prints each step in color. It signs its own token with JWT_SECRET.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"robinrocks-be/internal/config"
	"robinrocks-be/internal/pkg/serverutils"

	"github.com/fatih/color"
)

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *client) send(method, path, contentType string, body io.Reader) (int, envelope, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return 0, envelope{}, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, envelope{}, err
	}
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, env, err
	}
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env, nil
}

func (c *client) json(method, path string, body interface{}) (int, envelope, error) {
	if body == nil {
		return c.send(method, path, "", nil)
	}
	b, err := json.Marshal(body)
	if err != nil {
		return 0, envelope{}, err
	}
	return c.send(method, path, "application/json", bytes.NewReader(b))
}

var failures int

func step(title string, status int, env envelope, err error, want int) bool {
	color.Yellow("\n%s", title)
	if err != nil {
		color.Red("Failed: %v", err)
		failures++
		return false
	}
	if status != want {
		color.Red("Status %d, want %d: %s", status, want, env.Message)
		failures++
		return false
	}
	color.Green("Status: %d %s", status, env.Message)
	return true
}

func main() {
	cfg := config.Load()
	baseURL := flag.String("url", "http://localhost:"+cfg.App.Port+"/api", "API base URL")
	userID := flag.String("user", "smoke-user", "user_id claim of the signed token")
	flag.Parse()

	token, err := serverutils.IssueToken(cfg.Auth.JwtSecret, *userID, time.Hour)
	if err != nil {
		color.Red("Cannot sign token: %v", err)
		os.Exit(1)
	}
	c := &client{baseURL: *baseURL, token: token, http: &http.Client{Timeout: 10 * time.Second}}

	color.Cyan("🚀 Smoke test against %s as %s", *baseURL, *userID)

	status, env, err := c.json(http.MethodGet, "/dashboard", nil)
	step("[DASHBOARD] Overview", status, env, err, http.StatusOK)

	// Recording: remote device so the smoke run can upload audio.
	status, env, err = c.json(http.MethodPost, "/recording/sessions", map[string]string{"title": "Smoke visit", "device": "remote"})
	var session struct {
		ID string `json:"id"`
	}
	if step("[RECORDING] Start", status, env, err, http.StatusCreated) {
		_ = json.Unmarshal(env.Data, &session)
	}
	if session.ID != "" {
		base := "/recording/sessions/" + session.ID
		status, env, err = c.send(http.MethodPost, base+"/chunks", "application/octet-stream", bytes.NewReader([]byte("smoke-audio")))
		step("[RECORDING] Upload chunk", status, env, err, http.StatusAccepted)
		for _, action := range []string{"pause", "resume", "stop"} {
			status, env, err = c.json(http.MethodPost, base+"/"+action, nil)
			step("[RECORDING] "+action, status, env, err, http.StatusOK)
		}
		status, env, err = c.json(http.MethodDelete, base, nil)
		step("[RECORDING] Close", status, env, err, http.StatusOK)
	}

	status, env, err = c.json(http.MethodGet, "/tasks", nil)
	step("[TASKS] List", status, env, err, http.StatusOK)

	status, env, err = c.json(http.MethodGet, "/contracts?status=expiring", nil)
	step("[CONTRACTS] Expiring", status, env, err, http.StatusOK)

	status, env, err = c.json(http.MethodPost, "/comparisons/chat", map[string]string{"message": "Which property do you recommend?"})
	step("[COMPARISON] Ask advisor", status, env, err, http.StatusAccepted)

	status, env, err = c.json(http.MethodPost, "/competitor-analysis/scrape", map[string]interface{}{"sources": []string{"funda-business"}, "city": "amsterdam"})
	if step("[COMPETITORS] Start scrape", status, env, err, http.StatusAccepted) {
		time.Sleep(3 * time.Second)
		status, env, err = c.json(http.MethodGet, "/competitor-analysis/scrape", nil)
		step("[COMPETITORS] Job status", status, env, err, http.StatusOK)
	}

	lead := &client{baseURL: *baseURL, http: c.http}
	status, env, err = lead.json(http.MethodPost, "/lead-generation", map[string]interface{}{
		"name":         "Smoke Test",
		"email":        "smoke@example.nl",
		"phone":        "+31600000000",
		"propertyType": "Office Space",
		"budget":       "€1,500 - €3,000/month",
		"location":     "Utrecht",
		"size":         "120 m²",
		"timeline":     "1-3 months",
	})
	step("[LEADS] Submit (public)", status, env, err, http.StatusCreated)

	if failures > 0 {
		color.Red("\n❌ %d step(s) failed", failures)
		os.Exit(1)
	}
	color.Cyan("\n✅ Smoke run complete")
}
