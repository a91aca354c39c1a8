package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/customerconnect/internal/client/api"
	"github.com/dmitrijs2005/customerconnect/internal/client/config"
	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/client/services"
	"github.com/dmitrijs2005/customerconnect/internal/client/session"
	"github.com/dmitrijs2005/customerconnect/internal/client/storage"
	"github.com/dmitrijs2005/customerconnect/internal/logging"
)

// ---- fake backend ----

type backend struct {
	mu        sync.Mutex
	tokens    map[string]bool
	hits      map[string]int
	segments  []models.Segment
	camps     []models.Campaign
	profile   models.Profile
	lastBody  map[string]any
	lastRange string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) decode(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	b.lastBody = body
	b.mu.Unlock()
	return body
}

func (b *backend) last() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func (b *backend) timeRange() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRange
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

// revoke invalidates every issued token, as if they all expired.
func (b *backend) revoke() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]bool{}
}

func (b *backend) issue(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = true
}

func (b *backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		ok := b.tokens[token]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{
		tokens: map[string]bool{},
		hits:   map[string]int{},
		segments: []models.Segment{{
			ID: "s1", Name: "High value", CustomerCount: 486,
			Criteria: models.SegmentCriteria{Logic: "AND", Rules: []models.SegmentRule{{Field: "totalSpent", Operator: "gte", Value: "1000"}}},
		}},
		camps: []models.Campaign{{
			ID: "c1", Name: "Summer Sale", Type: "email", Status: "draft",
			Segment: models.CampaignSegment{ID: "s1", Name: "High value"},
			Stats:   models.CampaignStats{Sent: 2500, Opened: 1200, Clicked: 300},
		}},
		profile: models.Profile{Name: "Jane Doe", Email: "jane@x.io", Title: "Marketing"},
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.hits[req.Method+" "+req.URL.Path]++
			b.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
			body := b.decode(req)
			if body["password"] != "pw" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
				return
			}
			b.issue("T1")
			writeJSON(w, http.StatusOK, map[string]any{
				"_id": "u1", "name": "Jane Doe", "email": body["email"], "token": "T1", "isAdmin": false,
			})
		})
		r.Post("/auth/register", func(w http.ResponseWriter, req *http.Request) {
			body := b.decode(req)
			b.issue("T2")
			writeJSON(w, http.StatusCreated, map[string]any{
				"_id": "u2", "name": body["name"], "email": body["email"], "token": "T2", "isAdmin": false,
			})
		})
		r.Post("/auth/google/callback", func(w http.ResponseWriter, req *http.Request) {
			body := b.decode(req)
			if body["code"] != "good" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid authorization code"})
				return
			}
			b.issue("TG")
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "TG",
				"user":  map[string]any{"_id": "g1", "name": "Gina", "email": "g@x.io", "isAdmin": true, "picture": "https://lh3/g.png"},
			})
		})
		r.Post("/auth/google", func(w http.ResponseWriter, req *http.Request) {
			body := b.decode(req)
			if body["accessToken"] != "at" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid Google token"})
				return
			}
			b.issue("TG")
			writeJSON(w, http.StatusOK, map[string]any{"_id": "g1", "name": "Gina", "email": "g@x.io", "token": "TG"})
		})

		r.Group(func(r chi.Router) {
			r.Use(b.requireToken)

			r.Get("/analytics/dashboard", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, models.DashboardStats{
					TotalCustomers: 2100, ActiveCampaigns: 32, CustomerSegments: 18, AvgEngagement: 68.4,
					CustomerGrowth:   []models.GrowthPoint{{Month: "Jan", Customers: 1200}},
					RecentActivities: []models.Activity{{ID: 1, Action: "New customer registered", Time: "2 min ago"}},
				})
			})
			r.Get("/analytics", func(w http.ResponseWriter, req *http.Request) {
				b.mu.Lock()
				b.lastRange = req.URL.Query().Get("timeRange")
				b.mu.Unlock()
				writeJSON(w, http.StatusOK, models.AnalyticsReport{
					TotalCustomers: 2100, TotalRevenue: 125000.5,
					CampaignPerformance: []models.ChannelPerformance{{Name: "Email", Sent: 15000, Opened: 9500, Clicked: 3200}},
					SegmentDistribution: []models.SegmentShare{{Name: "High value", Value: 486}},
				})
			})
			r.Get("/customers", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, []models.Customer{
					{ID: "k1", Name: "Alice Johnson", Email: "alice@x.io", Location: "Riga", TotalSpent: 1500, OrderCount: 7},
					{ID: "k2", Name: "Bob Smith", Email: "bob@x.io", Location: "Oslo", TotalSpent: 80, OrderCount: 1},
				})
			})
			r.Get("/segments", func(w http.ResponseWriter, _ *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writeJSON(w, http.StatusOK, b.segments)
			})
			r.Post("/segments", func(w http.ResponseWriter, req *http.Request) {
				var s models.Segment
				_ = json.NewDecoder(req.Body).Decode(&s)
				b.mu.Lock()
				s.ID = "s2"
				b.segments = append(b.segments, s)
				b.mu.Unlock()
				writeJSON(w, http.StatusCreated, s)
			})
			r.Put("/segments/{id}", func(w http.ResponseWriter, req *http.Request) {
				var s models.Segment
				_ = json.NewDecoder(req.Body).Decode(&s)
				b.mu.Lock()
				defer b.mu.Unlock()
				for i := range b.segments {
					if b.segments[i].ID == chi.URLParam(req, "id") {
						s.ID = b.segments[i].ID
						s.CustomerCount = b.segments[i].CustomerCount
						b.segments[i] = s
						writeJSON(w, http.StatusOK, s)
						return
					}
				}
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "Segment not found"})
			})
			r.Post("/segments/preview", func(w http.ResponseWriter, req *http.Request) {
				b.decode(req)
				writeJSON(w, http.StatusOK, models.SegmentPreview{Count: 1, Customers: []models.Customer{{Name: "Alice Johnson", Email: "alice@x.io"}}})
			})
			r.Delete("/segments/{id}", func(w http.ResponseWriter, req *http.Request) {
				if chi.URLParam(req, "id") != "s1" {
					writeJSON(w, http.StatusNotFound, map[string]string{"message": "Segment not found"})
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})
			r.Get("/campaigns", func(w http.ResponseWriter, _ *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writeJSON(w, http.StatusOK, b.camps)
			})
			r.Post("/campaigns", func(w http.ResponseWriter, req *http.Request) {
				body := b.decode(req)
				writeJSON(w, http.StatusCreated, models.Campaign{ID: "c2", Name: body["name"].(string), Status: body["status"].(string)})
			})
			r.Post("/campaigns/{id}/send", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"message": "sent"})
			})
			r.Delete("/campaigns/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			r.Post("/ai/chat", func(w http.ResponseWriter, req *http.Request) {
				body := b.decode(req)
				writeJSON(w, http.StatusOK, map[string]string{"response": "You asked: " + body["query"].(string)})
			})
			r.Get("/users/profile", func(w http.ResponseWriter, _ *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writeJSON(w, http.StatusOK, b.profile)
			})
			r.Put("/users/profile", func(w http.ResponseWriter, req *http.Request) {
				var p models.Profile
				_ = json.NewDecoder(req.Body).Decode(&p)
				b.mu.Lock()
				b.profile = p
				b.mu.Unlock()
				writeJSON(w, http.StatusOK, p)
			})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return b, srv
}

// ---- app harness ----

type harness struct {
	srv       *httptest.Server
	statePath string
	repo      *storage.SQLiteRepository
	out       *bytes.Buffer
	app       *App
}

// newHarness wires the app the way NewApp does with the default config (no
// query cache), reading input from script.
func newHarness(t *testing.T, srv *httptest.Server, statePath string, script ...string) *harness {
	t.Helper()
	return newCachedHarness(t, srv, statePath, 0, script...)
}

func newCachedHarness(t *testing.T, srv *httptest.Server, statePath string, cacheTTL time.Duration, script ...string) *harness {
	t.Helper()
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, statePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	client := api.New(srv.URL+"/api", 2*time.Second, cacheTTL, logging.Nop())
	repo := storage.NewSQLiteRepository(db)
	manager := session.NewManager(client, repo, logging.Nop())
	client.UseSession(manager)

	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	a := newApp(manager, services.NewWorkspaceService(client, logging.Nop()), in, out, logging.Nop())
	a.invalidate = client.InvalidateCache
	a.config = &config.Config{APIBaseURL: srv.URL + "/api", StatePath: statePath, RequestTimeout: 2 * time.Second, CacheTTL: cacheTTL}

	return &harness{srv: srv, statePath: statePath, repo: repo, out: out, app: a}
}

func statePath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "state.db")
}

// stubPasswords makes getPassword return the given passwords in order.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })

	var mu sync.Mutex
	getPassword = func(w io.Writer) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := []byte(passwords[0])
		passwords = passwords[1:]
		return pw, nil
	}
}
