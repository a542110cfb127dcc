package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xpira/linguafx/internal/transcribe"
)

type mockProvider struct {
	lastFilename string
	lastLanguage string
	resp         *transcribe.Response
	err          error
}

func (m *mockProvider) Transcribe(ctx context.Context, req transcribe.Request) (*transcribe.Response, error) {
	m.lastFilename = req.Filename
	m.lastLanguage = req.Language
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockProvider) Name() string { return "mock" }

func TestPlaySuccess(t *testing.T) {
	srv := testServer(t, testConfig())

	body := bytes.NewBufferString(`{"name":"click"}`)
	req := httptest.NewRequest("POST", "/v1/play", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d: %s", http.StatusAccepted, w.Code, w.Body.String())
	}

	var resp PlayResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.RequestID == "" {
		t.Error("expected non-empty request_id")
	}
}

func TestPlayUnknownSound(t *testing.T) {
	srv := testServer(t, testConfig())

	// Unknown sounds are accepted and silently dropped.
	body := bytes.NewBufferString(`{"name":"nosuch"}`)
	req := httptest.NewRequest("POST", "/v1/play", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d: %s", http.StatusAccepted, w.Code, w.Body.String())
	}
}

func TestPlayMissingName(t *testing.T) {
	srv := testServer(t, testConfig())

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest("POST", "/v1/play", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != "name is required" {
		t.Errorf("expected error 'name is required', got '%s'", resp.Error)
	}
}

func TestPlayInvalidJSON(t *testing.T) {
	srv := testServer(t, testConfig())

	body := bytes.NewBufferString(`{invalid json}`)
	req := httptest.NewRequest("POST", "/v1/play", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != "invalid JSON body" {
		t.Errorf("expected error 'invalid JSON body', got '%s'", resp.Error)
	}
}

func TestGetVolume(t *testing.T) {
	srv := testServer(t, testConfig())

	req := httptest.NewRequest("GET", "/v1/volume", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp VolumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Level != 1.0 {
		t.Errorf("expected level 1.0, got %v", resp.Level)
	}
}

func TestSetVolume(t *testing.T) {
	srv := testServer(t, testConfig())

	body := bytes.NewBufferString(`{"level":0.5}`)
	req := httptest.NewRequest("PUT", "/v1/volume", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp VolumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Level != 0.5 {
		t.Errorf("expected level 0.5, got %v", resp.Level)
	}
}

func TestSetVolumeZero(t *testing.T) {
	srv := testServer(t, testConfig())

	// Zero is a valid level and must not be treated as missing.
	body := bytes.NewBufferString(`{"level":0}`)
	req := httptest.NewRequest("PUT", "/v1/volume", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp VolumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Level != 0 {
		t.Errorf("expected level 0, got %v", resp.Level)
	}
}

func TestSetVolumeMissingLevel(t *testing.T) {
	srv := testServer(t, testConfig())

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest("PUT", "/v1/volume", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != "level is required" {
		t.Errorf("expected error 'level is required', got '%s'", resp.Error)
	}
}

func TestSetVolumeOutOfRange(t *testing.T) {
	srv := testServer(t, testConfig())

	body := bytes.NewBufferString(`{"level":1.5}`)
	req := httptest.NewRequest("PUT", "/v1/volume", body)
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != "level must be between 0 and 1" {
		t.Errorf("expected error 'level must be between 0 and 1', got '%s'", resp.Error)
	}
}

// multipartBody builds a multipart form with a file part and optional fields.
func multipartBody(t *testing.T, filename, language string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if language != "" {
		mw.WriteField("language", language)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return &buf, mw.FormDataContentType()
}

func TestTranscribe(t *testing.T) {
	provider := &mockProvider{
		resp: &transcribe.Response{Text: "hola mundo", Language: "spanish", Duration: 1.2},
	}
	srv := testServerWith(t, testConfig(), provider)

	body, contentType := multipartBody(t, "clip.wav", "es", []byte("fake audio bytes"))
	req := httptest.NewRequest("POST", "/v1/transcribe", body)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp TranscribeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Text != "hola mundo" {
		t.Errorf("expected text 'hola mundo', got '%s'", resp.Text)
	}
	if provider.lastFilename != "clip.wav" {
		t.Errorf("provider saw filename '%s', want 'clip.wav'", provider.lastFilename)
	}
	if provider.lastLanguage != "es" {
		t.Errorf("provider saw language '%s', want 'es'", provider.lastLanguage)
	}
}

func TestTranscribeNotConfigured(t *testing.T) {
	srv := testServer(t, testConfig())

	body, contentType := multipartBody(t, "clip.wav", "", []byte("fake audio bytes"))
	req := httptest.NewRequest("POST", "/v1/transcribe", body)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
}

func TestTranscribeUpstreamError(t *testing.T) {
	provider := &mockProvider{err: errors.New("upstream down")}
	srv := testServerWith(t, testConfig(), provider)

	body, contentType := multipartBody(t, "clip.wav", "", []byte("fake audio bytes"))
	req := httptest.NewRequest("POST", "/v1/transcribe", body)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != "transcription failed" {
		t.Errorf("expected error 'transcription failed', got '%s'", resp.Error)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	provider := &mockProvider{resp: &transcribe.Response{Text: "unused"}}
	srv := testServerWith(t, testConfig(), provider)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("language", "es")
	mw.Close()

	req := httptest.NewRequest("POST", "/v1/transcribe", &buf)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Error != "file is required" {
		t.Errorf("expected error 'file is required', got '%s'", resp.Error)
	}
}

func TestTranscribeTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxUploadBytes = 64
	provider := &mockProvider{resp: &transcribe.Response{Text: "unused"}}
	srv := testServerWith(t, cfg, provider)

	body, contentType := multipartBody(t, "clip.wav", "", bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest("POST", "/v1/transcribe", body)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, w.Code)
	}
}
