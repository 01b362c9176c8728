package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alkime/podcasts/internal/config"
	"github.com/alkime/podcasts/internal/podcast"
	"github.com/alkime/podcasts/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend stands in for the podcast generation service.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate-podcast", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
			Type string `json:"type"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		if strings.TrimSpace(body.Text) == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"success":false,"error":"text is required"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"audio_file":   "podcast_1.wav",
			"podcast_type": body.Type,
		})
	})
	mux.HandleFunc("GET /audio/podcast_1.wav", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = io.WriteString(w, "RIFF\x24\x00\x00\x00WAVEfmt ")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	srv     *server.Server
	backend *httptest.Server
	public  string
}

func newTestServer(t *testing.T, basePath string) testEnv {
	t.Helper()

	// Create a test logger (discard output)
	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	return newTestServerWithLogger(t, basePath, logger)
}

func newTestServerWithLogger(t *testing.T, basePath string, logger *slog.Logger) testEnv {
	t.Helper()

	backend := fakeBackend(t)
	public := t.TempDir()

	cfg := &config.Config{
		Env:            "test",
		Port:           "8080",
		BasePath:       basePath,
		PublicDir:      public,
		BaseOrigin:     backend.URL,
		AllowedOrigins: []string{"http://localhost:3000"},
		HSTSMaxAge:     31536000,
		CSPMode:        "relaxed",
		LogLevel:       "info",
	}

	client := podcast.NewClient(cfg.BaseOrigin, podcast.WithLogger(logger))

	return testEnv{
		srv:     server.New(cfg, logger, client),
		backend: backend,
		public:  public,
	}
}

func (e testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestServer(t, "/")

	w := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code, "Health endpoint should return 200 OK")
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "podcasts")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	env := newTestServer(t, "/")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := env.do(req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRootRedirectsToPodcast(t *testing.T) {
	env := newTestServer(t, "/")

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/podcast", w.Header().Get("Location"))
}

func TestUnknownPathRedirectsToPodcast(t *testing.T) {
	env := newTestServer(t, "/")

	w := env.do(httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/podcast", w.Header().Get("Location"))
}

func TestUnknownPathLogsResolution(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	env := newTestServerWithLogger(t, "/", logger)

	w := env.do(httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	require.Equal(t, http.StatusFound, w.Code)

	var entry map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(logs.String()), "\n") {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		if e["msg"] == "Unknown location, redirecting" {
			entry = e
		}
	}

	require.NotNil(t, entry)
	assert.Equal(t, false, entry["matched"])
	assert.Equal(t, "/does-not-exist", entry["redirected_from"])
	assert.Equal(t, "/podcast", entry["to"])
}

func TestViewsRender(t *testing.T) {
	env := newTestServer(t, "/")

	w := env.do(httptest.NewRequest(http.MethodGet, "/podcast", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Generate a podcast")
	assert.Contains(t, w.Body.String(), `action="/podcast"`)
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "media-src 'self' "+env.backend.URL)

	w = env.do(httptest.NewRequest(http.MethodGet, "/podcast-detail?file=podcast_1.wav&type=dual", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), env.backend.URL+"/audio/podcast_1.wav")
	assert.Contains(t, w.Body.String(), "/api/podcasts/podcast_1.wav/download")
	assert.Contains(t, w.Body.String(), "dual")

	w = env.do(httptest.NewRequest(http.MethodGet, "/podcast-detail", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No podcast selected")
}

func TestPodcastFormSubmit(t *testing.T) {
	env := newTestServer(t, "/")

	form := url.Values{"text": {"Hello listeners"}, "type": {"dual"}}
	req := httptest.NewRequest(http.MethodPost, "/podcast", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := env.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/podcast-detail?file=podcast_1.wav&type=dual", w.Header().Get("Location"))
}

func TestPodcastFormSubmit_ServerError(t *testing.T) {
	env := newTestServer(t, "/")

	form := url.Values{"text": {"  "}}
	req := httptest.NewRequest(http.MethodPost, "/podcast", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := env.do(req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "text is required")
}

func TestAPIGenerate(t *testing.T) {
	env := newTestServer(t, "/")

	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{"text":"hi","type":"single"}`))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"audioUrl": "`+env.backend.URL+`/audio/podcast_1.wav",
		"audioFile": "podcast_1.wav",
		"podcastType": "single"
	}`, w.Body.String())
}

func TestAPIGenerate_Failures(t *testing.T) {
	env := newTestServer(t, "/")

	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{"text":""}`))
	w := env.do(req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"text is required"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`not json`))
	w = env.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	env.backend.Close()
	req = httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{"text":"hi"}`))
	w = env.do(req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"`+podcast.MsgNetworkFailed+`"}`, w.Body.String())
}

func TestAPIDownload(t *testing.T) {
	env := newTestServer(t, "/")

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/podcasts/podcast_1.wav/download", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=podcast_1.wav", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "audio/wave", w.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF\x24\x00\x00\x00WAVEfmt ", w.Body.String())
}

func TestAPIDownload_NotFound(t *testing.T) {
	env := newTestServer(t, "/")

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/podcasts/missing.wav/download", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Download failed"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestAPICORSPreflight(t *testing.T) {
	env := newTestServer(t, "/")

	req := httptest.NewRequest(http.MethodOptions, "/api/podcasts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := env.do(req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/podcasts", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = env.do(req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStaticAssets(t *testing.T) {
	env := newTestServer(t, "/")
	require.NoError(t, os.WriteFile(filepath.Join(env.public, "app.css"), []byte("body{}"), 0o600))

	w := env.do(httptest.NewRequest(http.MethodGet, "/assets/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBasePath(t *testing.T) {
	env := newTestServer(t, "/app")

	w := env.do(httptest.NewRequest(http.MethodGet, "/app/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/app/podcast", w.Header().Get("Location"))

	w = env.do(httptest.NewRequest(http.MethodGet, "/app/podcast", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/app/podcast"`)

	w = env.do(httptest.NewRequest(http.MethodGet, "/podcast", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/app/podcast", w.Header().Get("Location"))

	w = env.do(httptest.NewRequest(http.MethodGet, "/app/api/podcasts/podcast_1.wav/download", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
