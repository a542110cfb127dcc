package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/xpira/linguafx/internal/metrics"
	"github.com/xpira/linguafx/internal/playback"
	"github.com/xpira/linguafx/internal/transcribe"
)

// HealthResponse represents the response body for /v1/healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// SoundListResponse lists the registered sound names.
type SoundListResponse struct {
	Sounds []string `json:"sounds"`
	Count  int      `json:"count"`
}

// PlayRequest represents the request body for /v1/play.
type PlayRequest struct {
	Name string `json:"name"`
}

// PlayResponse represents the response body for /v1/play.
type PlayResponse struct {
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

// VolumeRequest represents the request body for PUT /v1/volume.
// Level is a pointer so a missing field is distinguishable from zero.
type VolumeRequest struct {
	Level *float64 `json:"level"`
}

// VolumeResponse represents the current master volume.
type VolumeResponse struct {
	Level float64 `json:"level"`
}

// TranscribeResponse represents the response body for /v1/transcribe.
type TranscribeResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealthz handles GET /v1/healthz requests.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// handleListSounds handles GET /v1/sounds requests.
func (s *Server) handleListSounds(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	names := s.registry.Names()
	json.NewEncoder(w).Encode(SoundListResponse{Sounds: names, Count: len(names)})
}

// handleGetSound handles GET /v1/sounds/{name} requests, serving the
// cached WAV encoding of the named sound.
func (s *Server) handleGetSound(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	audio, err := s.registry.Get(name)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "unknown sound"})
		return
	}

	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
	w.Write(audio.Data)
}

// handlePlay handles POST /v1/play requests.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("failed to decode play request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid JSON body"})
		return
	}

	if req.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "name is required"})
		return
	}

	requestID := uuid.New().String()

	// Unknown names are accepted and dropped by the playback handler.
	s.sounds.Play(req.Name)

	s.logger.Info("play request dispatched",
		"request_id", requestID,
		"sound", req.Name,
	)

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(PlayResponse{
		RequestID: requestID,
		Message:   "playback dispatched",
	})
}

// handleGetVolume handles GET /v1/volume requests.
func (s *Server) handleGetVolume(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(VolumeResponse{Level: s.sounds.Volume()})
}

// handleSetVolume handles PUT /v1/volume requests.
func (s *Server) handleSetVolume(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req VolumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("failed to decode volume request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid JSON body"})
		return
	}

	if req.Level == nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "level is required"})
		return
	}

	if err := s.sounds.SetVolume(*req.Level); err != nil {
		if errors.Is(err, playback.ErrInvalidVolume) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "level must be between 0 and 1"})
			return
		}
		s.logger.Error("failed to set volume", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "failed to set volume"})
		return
	}

	json.NewEncoder(w).Encode(VolumeResponse{Level: s.sounds.Volume()})
}

// handleTranscribe handles POST /v1/transcribe requests. It forwards the
// uploaded audio to the configured transcription provider.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if s.transcriber == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "transcription is not configured"})
		return
	}

	// The request body is capped by the RequestSize middleware on this route.
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "upload exceeds size limit"})
			return
		}
		s.logger.Warn("failed to parse multipart form", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid multipart body"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "file is required"})
		return
	}
	defer file.Close()

	start := time.Now()
	resp, err := s.transcriber.Transcribe(r.Context(), transcribe.Request{
		Audio:    file,
		Filename: header.Filename,
		Language: r.FormValue("language"),
		Prompt:   r.FormValue("prompt"),
	})
	if err != nil {
		metrics.TranscriptionsTotal.WithLabelValues("error").Inc()
		s.logger.Error("transcription failed", "error", err, "filename", header.Filename)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "transcription failed"})
		return
	}

	metrics.TranscriptionsTotal.WithLabelValues("ok").Inc()
	metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("transcription complete",
		"provider", s.transcriber.Name(),
		"filename", header.Filename,
		"text_length", len(resp.Text),
	)

	json.NewEncoder(w).Encode(TranscribeResponse{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	})
}
