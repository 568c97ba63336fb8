package meeting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/meetscribe/internal/logger"
	"github.com/skillsenselab/meetscribe/internal/server/middleware"
	"github.com/skillsenselab/meetscribe/internal/stt"
)

func newTestEngine(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	NewHandler(svc, logger.NewDefault("test")).Register(engine)
	return engine
}

func postTranscribe(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/transcribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHandlerMissingFields(t *testing.T) {
	engine := newTestEngine(newTestService(&stubSTT{}, &stubLLM{}))

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing audioUrl", `{"openaiApiKey": "sk-test"}`, "audioUrl is required"},
		{"missing openaiApiKey", `{"audioUrl": "https://example.com/a.mp3"}`, "openaiApiKey is required"},
		{"empty object", `{}`, "audioUrl is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postTranscribe(engine, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			body := decodeBody(t, w)
			if body["error"] != tt.wantErr {
				t.Errorf("error = %q, want %q", body["error"], tt.wantErr)
			}
			if _, ok := body["message"]; ok {
				t.Error("validation response must not carry a message field")
			}
		})
	}
}

func TestHandlerInvalidJSON(t *testing.T) {
	engine := newTestEngine(newTestService(&stubSTT{}, &stubLLM{}))

	w := postTranscribe(engine, `{"audioUrl": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Invalid JSON body" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	engine := newTestEngine(newTestService(&stubSTT{}, &stubLLM{}))

	req := httptest.NewRequest(http.MethodGet, "/transcribe", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Method not allowed" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHandlerPreflight(t *testing.T) {
	engine := newTestEngine(newTestService(&stubSTT{}, &stubLLM{}))

	req := httptest.NewRequest(http.MethodOptions, "/transcribe", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Allow-Origin = %q", h.Get("Access-Control-Allow-Origin"))
	}
	if h.Get("Access-Control-Allow-Methods") != "POST, OPTIONS" {
		t.Errorf("Allow-Methods = %q", h.Get("Access-Control-Allow-Methods"))
	}
	if h.Get("Access-Control-Allow-Headers") != "Content-Type" {
		t.Errorf("Allow-Headers = %q", h.Get("Access-Control-Allow-Headers"))
	}
}

func TestHandlerCORSOnErrors(t *testing.T) {
	engine := newTestEngine(newTestService(&stubSTT{}, &stubLLM{}))

	w := postTranscribe(engine, `{}`)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS headers must be present on error responses too")
	}
}

func TestHandlerPipelineFailure(t *testing.T) {
	srv := newAudioServer(t, http.StatusOK, []byte("audio"))
	sttStub := &stubSTT{err: errString("transcription error (status 401): Incorrect API key")}
	engine := newTestEngine(newTestService(sttStub, &stubLLM{}))

	w := postTranscribe(engine, `{"audioUrl": "`+srv.URL+`/rec.mp3", "openaiApiKey": "bad"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Transcription failed" {
		t.Errorf("error = %q", body["error"])
	}
	if body["message"] != "transcription error (status 401): Incorrect API key" {
		t.Errorf("message = %q, want the original failure text", body["message"])
	}
}

func TestHandlerDownloadFailure(t *testing.T) {
	srv := newAudioServer(t, http.StatusNotFound, nil)
	engine := newTestEngine(newTestService(&stubSTT{}, &stubLLM{}))

	w := postTranscribe(engine, `{"audioUrl": "`+srv.URL+`/gone.mp3", "openaiApiKey": "sk-test"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decodeBody(t, w)
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "404") {
		t.Errorf("message = %q, want the upstream 404 surfaced", msg)
	}
}

func TestHandlerSuccess(t *testing.T) {
	srv := newAudioServer(t, http.StatusOK, []byte("audio"))
	sttStub := &stubSTT{resp: &stt.Response{Text: "hello"}}
	llmStub := &stubLLM{content: "A summary."}
	engine := newTestEngine(newTestService(sttStub, llmStub))

	w := postTranscribe(engine, `{"audioUrl": "`+srv.URL+`/rec.mp3", "openaiApiKey": "sk-test"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	raw := w.Body.String()
	if !strings.Contains(raw, `"segments":[]`) {
		t.Errorf("segments must marshal as an empty array, got %s", raw)
	}
	if !strings.Contains(raw, `"speakers":[]`) {
		t.Errorf("speakers must marshal as an empty array, got %s", raw)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("success = false")
	}
	if body["meetingName"] != "Untitled Meeting" {
		t.Errorf("meetingName = %q", body["meetingName"])
	}
	if body["transcript"] != "hello" || body["rawTranscript"] != "hello" {
		t.Errorf("transcripts = (%q, %q)", body["transcript"], body["rawTranscript"])
	}
	if body["language"] != "en" {
		t.Errorf("language = %q", body["language"])
	}
	if body["duration"] != float64(0) {
		t.Errorf("duration = %v", body["duration"])
	}
}

// errString is a tiny error type for stubbing exact failure text.
type errString string

func (e errString) Error() string { return string(e) }
