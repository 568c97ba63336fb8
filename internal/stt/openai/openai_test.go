package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillsenselab/meetscribe/internal/stt"
)

func TestTranscribe(t *testing.T) {
	var gotAuth, gotModel, gotFormat, gotGranularity string
	var gotFilename, gotPartType string
	var gotAudio []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		gotGranularity = r.FormValue("timestamp_granularities[]")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFilename = header.Filename
			gotPartType = header.Header.Get("Content-Type")
			gotAudio, _ = io.ReadAll(file)
			file.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "hello world",
			"segments": [
				{"start": 0, "end": 1.5, "text": "hello"},
				{"start": 1.5, "end": 3, "text": "world"}
			],
			"duration": 3.0,
			"language": "english"
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	resp, err := p.Transcribe(context.Background(), stt.Request{
		Audio:    []byte("audio bytes"),
		Filename: "audio.m4a",
		MIMEType: "audio/mp4",
		APIKey:   "sk-test",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model = %q, want whisper-1", gotModel)
	}
	if gotFormat != "verbose_json" {
		t.Errorf("response_format = %q", gotFormat)
	}
	if gotGranularity != "segment" {
		t.Errorf("timestamp_granularities[] = %q", gotGranularity)
	}
	if gotFilename != "audio.m4a" {
		t.Errorf("filename = %q", gotFilename)
	}
	if gotPartType != "audio/mp4" {
		t.Errorf("file part Content-Type = %q, want the sniffed type", gotPartType)
	}
	if string(gotAudio) != "audio bytes" {
		t.Errorf("audio body = %q", gotAudio)
	}

	if resp.Text != "hello world" {
		t.Errorf("Text = %q", resp.Text)
	}
	if len(resp.Segments) != 2 || resp.Segments[1].End != 3 || resp.Segments[1].Text != "world" {
		t.Errorf("Segments = %+v", resp.Segments)
	}
	if resp.Duration != 3.0 {
		t.Errorf("Duration = %v", resp.Duration)
	}
	if resp.Language != "english" {
		t.Errorf("Language = %q", resp.Language)
	}
}

func TestTranscribeDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": "just text"}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	resp, err := p.Transcribe(context.Background(), stt.Request{
		Audio:    []byte("x"),
		Filename: "audio.m4a",
		MIMEType: "audio/mp4",
		APIKey:   "sk-test",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Segments == nil || len(resp.Segments) != 0 {
		t.Errorf("Segments = %#v, want empty non-nil slice", resp.Segments)
	}
	if resp.Language != "en" {
		t.Errorf("Language = %q, want en", resp.Language)
	}
	if resp.Duration != 0 {
		t.Errorf("Duration = %v, want 0", resp.Duration)
	}
}

func TestTranscribeModelOverride(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(32 << 20)
		gotModel = r.FormValue("model")
		_, _ = w.Write([]byte(`{"text": "ok"}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Transcribe(context.Background(), stt.Request{
		Audio: []byte("x"), Filename: "a.mp3", MIMEType: "audio/mpeg",
		APIKey: "sk-test", Model: "whisper-large",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotModel != "whisper-large" {
		t.Errorf("model = %q, want the request override", gotModel)
	}
}

func TestTranscribeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key"}}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Transcribe(context.Background(), stt.Request{
		Audio: []byte("x"), Filename: "a.mp3", MIMEType: "audio/mpeg", APIKey: "bad",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "status 401") || !strings.Contains(err.Error(), "Incorrect API key") {
		t.Errorf("error = %q, want status and upstream body", err)
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %q, want /models", r.URL.Path)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("auth rejection should still count as reachable")
	}

	srv.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("closed server should not be reachable")
	}
}

func TestQuoteEscape(t *testing.T) {
	if got := quoteEscape(`au"dio\.mp3`); got != `au\"dio\\.mp3` {
		t.Errorf("quoteEscape = %q", got)
	}
}
