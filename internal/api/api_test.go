// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/resolver"
)

// fakePosters returns a URL derived from the id and records lookups.
type fakePosters struct {
	mu  sync.Mutex
	ids []int
}

func (f *fakePosters) Resolve(_ context.Context, id int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	return "https://img.test/" + strings.Repeat("p", id)
}

func testArtifacts(t *testing.T) *catalog.Artifacts {
	t.Helper()

	idx, err := catalog.NewSimilarityIndex([][]float64{
		{1.0, 0.1, 0.9, 0.5},
		{0.1, 1.0, 0.2, 0.1},
		{0.9, 0.2, 1.0, 0.3},
		{0.5, 0.1, 0.3, 1.0},
	})
	if err != nil {
		t.Fatalf("NewSimilarityIndex: %v", err)
	}
	return &catalog.Artifacts{
		Catalog: catalog.NewCatalog([]catalog.MovieRecord{
			{ID: 1, Title: "Inception", Tags: "sci-fi thriller dream"},
			{ID: 2, Title: "Up", Tags: "adventure comedy animation"},
			{ID: 3, Title: "Interstellar", Tags: "sci-fi drama space"},
			{ID: 4, Title: "Heat", Tags: "crime thriller"},
		}),
		Index: idx,
	}
}

func testBackend(t *testing.T) *Backend {
	t.Helper()

	arts := testArtifacts(t)
	res, err := resolver.New(arts.Catalog.Titles(), resolver.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}
	engine, err := recommend.NewEngine(arts, res, genre.Default(), nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return &Backend{Artifacts: arts, Resolver: res, Engine: engine}
}

// newTestServer returns a router with a loaded backend.
func newTestServer(t *testing.T, posters *fakePosters) http.Handler {
	t.Helper()

	h := NewHandler(nil, nil, nil, DefaultHandlerConfig())
	if posters != nil {
		h = NewHandler(nil, nil, posters, DefaultHandlerConfig())
	}
	h.SetBackend(testBackend(t))

	cfg := DefaultRouterConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(h, cfg)
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeRecommendations(t *testing.T, env envelope) models.RecommendationsData {
	t.Helper()
	var data models.RecommendationsData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data
}

func itemTitles(items []models.RecommendationItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestRecommendations_GET(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantMode   string
		wantKind   string
		wantTitles []string
		wantCode   string
	}{
		{
			name:       "exact title",
			target:     "/api/v1/recommendations?q=inception",
			wantStatus: http.StatusOK,
			wantMode:   "similar",
			wantKind:   "exact",
			wantTitles: []string{"Interstellar", "Heat", "Up"},
		},
		{
			name:       "fuzzy title",
			target:     "/api/v1/recommendations?q=Incepton",
			wantStatus: http.StatusOK,
			wantMode:   "similar",
			wantKind:   "fuzzy",
			wantTitles: []string{"Interstellar", "Heat", "Up"},
		},
		{
			name:       "title with genre filter",
			target:     "/api/v1/recommendations?q=inception&genres=Thriller",
			wantStatus: http.StatusOK,
			wantMode:   "similar",
			wantKind:   "exact",
			wantTitles: []string{"Heat"},
		},
		{
			name:       "unknown title",
			target:     "/api/v1/recommendations?q=zzzzzzzzzz",
			wantStatus: http.StatusOK,
			wantMode:   "similar",
			wantKind:   "none",
			wantTitles: []string{},
		},
		{
			name:       "genres only",
			target:     "/api/v1/recommendations?genres=Sci-Fi",
			wantStatus: http.StatusOK,
			wantMode:   "genre",
			wantTitles: []string{"Inception", "Interstellar"},
		},
		{
			name:       "repeated genres",
			target:     "/api/v1/recommendations?genres=Comedy&genres=Crime",
			wantStatus: http.StatusOK,
			wantMode:   "genre",
			wantTitles: []string{"Up", "Heat"},
		},
		{
			name:       "empty",
			target:     "/api/v1/recommendations?q=%20%20",
			wantStatus: http.StatusBadRequest,
			wantCode:   "EMPTY_QUERY",
		},
		{
			name:       "unknown genre matches nothing",
			target:     "/api/v1/recommendations?genres=Noir",
			wantStatus: http.StatusOK,
			wantMode:   "genre",
			wantTitles: []string{},
		},
		{
			name:       "title with unknown genre",
			target:     "/api/v1/recommendations?q=inception&genres=Noir",
			wantStatus: http.StatusOK,
			wantMode:   "similar",
			wantKind:   "exact",
			wantTitles: []string{},
		},
		{
			name:       "known and unknown genres",
			target:     "/api/v1/recommendations?genres=Comedy,Noir",
			wantStatus: http.StatusOK,
			wantMode:   "genre",
			wantTitles: []string{"Up"},
		},
		{
			name:       "labels are case sensitive",
			target:     "/api/v1/recommendations?genres=comedy",
			wantStatus: http.StatusOK,
			wantMode:   "genre",
			wantTitles: []string{},
		},
		{
			name:       "long title",
			target:     "/api/v1/recommendations?q=" + strings.Repeat("z", 500),
			wantStatus: http.StatusOK,
			wantMode:   "similar",
			wantKind:   "none",
			wantTitles: []string{},
		},
		{
			name:       "bad posters flag",
			target:     "/api/v1/recommendations?q=up&posters=maybe",
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, env := doRequest(t, router, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Fatalf("error = %+v, want code %s", env.Error, tt.wantCode)
				}
				return
			}

			data := decodeRecommendations(t, env)
			if data.Mode != tt.wantMode || data.MatchKind != tt.wantKind {
				t.Errorf("mode/kind = %s/%s, want %s/%s", data.Mode, data.MatchKind, tt.wantMode, tt.wantKind)
			}
			got := itemTitles(data.Items)
			if strings.Join(got, "|") != strings.Join(tt.wantTitles, "|") {
				t.Errorf("titles = %v, want %v", got, tt.wantTitles)
			}
			if data.Count != len(data.Items) {
				t.Errorf("count = %d, items = %d", data.Count, len(data.Items))
			}
			if data.Items == nil || data.Genres == nil {
				t.Error("items and genres must encode as arrays")
			}
		})
	}
}

func TestRecommendations_EmptyQueryMessage(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)
	_, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations", "")
	if env.Error == nil || env.Error.Message != "Please type a movie name or select a genre first" {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestRecommendations_POST(t *testing.T) {
	t.Parallel()

	posters := &fakePosters{}
	router := newTestServer(t, posters)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/recommendations",
		`{"query":"Inception","genres":["Sci-Fi"],"posters":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}

	data := decodeRecommendations(t, env)
	if len(data.Items) != 1 || data.Items[0].Title != "Interstellar" {
		t.Fatalf("items = %+v", data.Items)
	}
	if data.Items[0].PosterRef != 3 || data.Items[0].PosterURL != "https://img.test/ppp" {
		t.Errorf("item = %+v", data.Items[0])
	}
	if data.MatchedTitle != "Inception" {
		t.Errorf("matched_title = %q", data.MatchedTitle)
	}
	if len(posters.ids) != 1 || posters.ids[0] != 3 {
		t.Errorf("poster lookups = %v", posters.ids)
	}
}

func TestRecommendations_PostersOffByDefault(t *testing.T) {
	t.Parallel()

	posters := &fakePosters{}
	router := newTestServer(t, posters)

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/recommendations?q=up", "")
	data := decodeRecommendations(t, env)
	for _, item := range data.Items {
		if item.PosterURL != "" {
			t.Errorf("unexpected poster_url on %q", item.Title)
		}
	}
	if len(posters.ids) != 0 {
		t.Errorf("poster lookups = %v, want none", posters.ids)
	}
}

func TestRecommendations_POSTInvalid(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed", `{"query":`, "INVALID_JSON"},
		{"wrong type", `{"query":42}`, "INVALID_JSON"},
		{"empty", `{}`, "EMPTY_QUERY"},
		{"too many genres", `{"genres":["Noir"` + strings.Repeat(`,"Noir"`, 64) + `]}`, "VALIDATION_ERROR"},
		{"oversized body", `{"query":"` + strings.Repeat("a", maxBodyBytes) + `"}`, "INVALID_JSON"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doRequest(t, router, http.MethodPost, "/api/v1/recommendations", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestRecommendations_TimeoutReachesClient(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, HandlerConfig{RequestTimeout: time.Nanosecond})
	h.SetBackend(testBackend(t))
	cfg := DefaultRouterConfig()
	cfg.RateLimitDisabled = true

	server := httptest.NewUnstartedServer(NewRouter(h, cfg))
	server.Config.WriteTimeout = time.Second
	server.Start()
	t.Cleanup(server.Close)

	resp, err := server.Client().Get(server.URL + "/api/v1/recommendations?q=inception")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusGatewayTimeout || env.Error == nil || env.Error.Code != "TIMEOUT" {
		t.Errorf("status = %d, error = %+v", resp.StatusCode, env.Error)
	}
}

func TestRecommendations_NotReady(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, DefaultHandlerConfig())
	router := NewRouter(h, DefaultRouterConfig())

	for _, target := range []string{"/api/v1/recommendations?q=up", "/api/v1/resolve?q=up"} {
		rec, env := doRequest(t, router, http.MethodGet, target, "")
		if rec.Code != http.StatusServiceUnavailable || env.Error == nil || env.Error.Code != "NOT_READY" {
			t.Errorf("%s: status = %d, error = %+v", target, rec.Code, env.Error)
		}
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	store := catalog.NewStore()
	h := NewHandler(store, nil, nil, HandlerConfig{Version: "1.2.3"})
	h.SetBreakerState(func() string { return "closed" })
	h.SetPosterCacheStats(func() cache.Stats { return cache.Stats{Hits: 3, Misses: 1, Size: 1} })
	router := NewRouter(h, DefaultRouterConfig())

	decodeHealth := func(env envelope) models.HealthStatus {
		var hs models.HealthStatus
		if err := json.Unmarshal(env.Data, &hs); err != nil {
			t.Fatalf("decode health: %v", err)
		}
		return hs
	}

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK || decodeHealth(env).Status != "alive" {
		t.Errorf("live: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = doRequest(t, router, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable || decodeHealth(env).Status != "loading" {
		t.Errorf("ready before load: %d %s", rec.Code, rec.Body.String())
	}

	arts := testArtifacts(t)
	if _, err := store.Load(context.Background(), func(context.Context) (*catalog.Artifacts, error) { return arts, nil }); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h.SetBackend(testBackend(t))

	rec, env = doRequest(t, router, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready after load: %d %s", rec.Code, rec.Body.String())
	}
	hs := decodeHealth(env)
	if hs.Status != "ready" || !hs.Ready || hs.Version != "1.2.3" || hs.PosterBreaker != "closed" {
		t.Errorf("health = %+v", hs)
	}
	if hs.Catalog == nil || hs.Catalog.Movies != 4 || hs.Catalog.SimilarityDim != 4 || hs.Catalog.Degraded {
		t.Errorf("catalog = %+v", hs.Catalog)
	}
	if hs.PosterCache == nil || *hs.PosterCache != (models.PosterCacheHealth{Size: 1, Hits: 3, Misses: 1}) {
		t.Errorf("poster_cache = %+v", hs.PosterCache)
	}
	if hs.Engine == nil || hs.Engine.Requests != 0 {
		t.Errorf("engine = %+v, want no requests yet", hs.Engine)
	}

	doRequest(t, router, http.MethodGet, "/api/v1/recommendations?q=inception", "")
	doRequest(t, router, http.MethodGet, "/api/v1/recommendations?q=qqqqqqqq", "")
	_, env = doRequest(t, router, http.MethodGet, "/api/v1/health/ready", "")
	want := models.EngineHealth{Requests: 2, Similar: 2, Unresolved: 1, Empty: 1}
	if hs := decodeHealth(env); hs.Engine == nil || *hs.Engine != want {
		t.Errorf("engine = %+v, want %+v", hs.Engine, want)
	}
}

func TestHealth_FailedLoad(t *testing.T) {
	t.Parallel()

	store := catalog.NewStore()
	loadErr := errors.New("movies.json: no such file")
	_, _ = store.Load(context.Background(), func(context.Context) (*catalog.Artifacts, error) { return nil, loadErr })

	router := NewRouter(NewHandler(store, nil, nil, DefaultHandlerConfig()), DefaultRouterConfig())

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	var hs models.HealthStatus
	if err := json.Unmarshal(env.Data, &hs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hs.Status != "failed" || hs.Error != loadErr.Error() {
		t.Errorf("health = %+v", hs)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}
}

func TestHealth_Degraded(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, DefaultHandlerConfig())
	backend := testBackend(t)
	idx, err := catalog.NewSimilarityIndex([][]float64{{1, 0.5}, {0.5, 1}})
	if err != nil {
		t.Fatalf("NewSimilarityIndex: %v", err)
	}
	backend.Artifacts = &catalog.Artifacts{Catalog: backend.Artifacts.Catalog, Index: idx}
	h.SetBackend(backend)

	rec, env := doRequest(t, NewRouter(h, DefaultRouterConfig()), http.MethodGet, "/api/v1/health/ready", "")
	var hs models.HealthStatus
	if err := json.Unmarshal(env.Data, &hs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || hs.Status != "degraded" || !hs.Catalog.Degraded {
		t.Errorf("status = %d, health = %+v", rec.Code, hs)
	}
}

func TestGenres(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)
	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/genres", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var genres []models.GenreInfo
	if err := json.Unmarshal(env.Data, &genres); err != nil {
		t.Fatalf("decode: %v", err)
	}
	labels := genre.Default().Labels()
	if len(genres) != len(labels) {
		t.Fatalf("got %d genres, want %d", len(genres), len(labels))
	}
	for i, g := range genres {
		if g.Label != labels[i] || len(g.Synonyms) == 0 {
			t.Errorf("genres[%d] = %+v", i, g)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)

	tests := []struct {
		target     string
		wantStatus int
		want       models.ResolveData
	}{
		{"/api/v1/resolve?q=HEAT", http.StatusOK, models.ResolveData{Query: "HEAT", Resolved: true, Title: "Heat", Position: 3, MatchKind: "exact", Similarity: 1}},
		{"/api/v1/resolve?q=qqqqqqqq", http.StatusOK, models.ResolveData{Query: "qqqqqqqq", Position: -1, MatchKind: "none"}},
		{"/api/v1/resolve?q=" + strings.Repeat("q", 300), http.StatusOK, models.ResolveData{Query: strings.Repeat("q", 300), Position: -1, MatchKind: "none"}},
		{"/api/v1/resolve", http.StatusBadRequest, models.ResolveData{}},
	}
	for _, tt := range tests {
		rec, env := doRequest(t, router, http.MethodGet, tt.target, "")
		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.target, rec.Code, tt.wantStatus)
			continue
		}
		if tt.wantStatus != http.StatusOK {
			continue
		}
		var got models.ResolveData
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Query != tt.want.Query || got.Resolved != tt.want.Resolved || got.Title != tt.want.Title ||
			got.Position != tt.want.Position || got.MatchKind != tt.want.MatchKind {
			t.Errorf("%s: got %+v, want %+v", tt.target, got, tt.want)
		}
	}
}

func TestMoviePoster(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, &fakePosters{})

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/movies/2/poster", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var data models.PosterData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.MovieID != 2 || data.URL != "https://img.test/pp" {
		t.Errorf("data = %+v", data)
	}

	for _, target := range []string{"/api/v1/movies/0/poster", "/api/v1/movies/abc/poster"} {
		rec, env := doRequest(t, router, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("%s: status = %d, error = %+v", target, rec.Code, env.Error)
		}
	}
}

func TestMoviePoster_FallbackWithoutResolver(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)
	_, env := doRequest(t, router, http.MethodGet, "/api/v1/movies/7/poster", "")
	var data models.PosterData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.URL != poster.FallbackURL {
		t.Errorf("url = %q", data.URL)
	}
}

func TestRouter_RequestIDAndETag(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q", got)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Metadata.RequestID != "abc-123" {
		t.Errorf("metadata.request_id = %q", env.Metadata.RequestID)
	}
	if etag := rec.Header().Get("ETag"); !strings.HasPrefix(etag, `"`) {
		t.Errorf("ETag = %q", etag)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("404: %d %+v", rec.Code, env.Error)
	}

	rec, _ = doRequest(t, router, http.MethodDelete, "/api/v1/recommendations", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("405: %d", rec.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, DefaultHandlerConfig())
	h.SetBackend(testBackend(t))
	router := NewRouter(h, RouterConfig{
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})

	for i := 0; i < 2; i++ {
		if rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/genres", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/genres", "")
	if rec.Code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("status = %d, error = %+v", rec.Code, env.Error)
	}

	// Health checks are exempt.
	if rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestRouterConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         RouterConfig
		wantOrigins int
		wantReqs    int
		wantWindow  time.Duration
	}{
		{"zero value", RouterConfig{}, 1, 100, time.Minute},
		{"disabled keeps defaults", RouterConfig{RateLimitDisabled: true}, 1, 100, time.Minute},
		{"explicit", RouterConfig{CORSOrigins: []string{"a", "b"}, RateLimitRequests: 5, RateLimitWindow: time.Second}, 2, 5, time.Second},
		{"negative", RouterConfig{RateLimitRequests: -1, RateLimitWindow: -time.Second}, 1, 100, time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.cfg.withDefaults()
			if len(got.CORSOrigins) != tt.wantOrigins || got.RateLimitRequests != tt.wantReqs || got.RateLimitWindow != tt.wantWindow {
				t.Errorf("withDefaults() = %+v", got)
			}
			if got.RateLimitDisabled != tt.cfg.RateLimitDisabled {
				t.Errorf("RateLimitDisabled changed: %+v", got)
			}
		})
	}
}

func TestRouter_ZeroConfigRateLimits(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, DefaultHandlerConfig())
	h.SetBackend(testBackend(t))
	router := NewRouter(h, RouterConfig{})

	for i := 0; i < 100; i++ {
		if rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/genres", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	if rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/genres", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("request 101 status = %d, want 429", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	router := newTestServer(t, nil)
	doRequest(t, router, http.MethodGet, "/api/v1/recommendations?q=up", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `endpoint="/api/v1/recommendations"`) {
		t.Errorf("metrics status = %d", rec.Code)
	}
}

func TestParseGenreList(t *testing.T) {
	t.Parallel()

	got := parseGenreList([]string{" Sci-Fi , ,Comedy", "Horror", ""})
	want := []string{"Sci-Fi", "Comedy", "Horror"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("parseGenreList = %v, want %v", got, want)
	}
	if parseGenreList(nil) != nil {
		t.Error("parseGenreList(nil) should be nil")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue = %q", got)
	}
}
