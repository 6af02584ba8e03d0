package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
	"github.com/abhisek/langcoach/internal/generator"
	"github.com/abhisek/langcoach/internal/llm"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	log := s.log.WithField("request_id", reqID)

	var req exercise.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		log.WithError(err).Warn("invalid request body")
		writeError(w, http.StatusBadRequest, decodeMessage(err))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		log.WithError(err).Warn("request failed validation")
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	items, err := s.gen.Generate(llm.WithRequestID(r.Context(), reqID), req)
	if err != nil {
		status := statusFor(err)
		log.WithError(err).WithField("status", status).Error("exercise generation failed")
		writeError(w, status, publicMessage(err, status))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// statusFor maps generation errors to HTTP status codes.
func statusFor(err error) int {
	var unsupported *generator.UnsupportedProviderError
	switch {
	case errors.As(err, &unsupported):
		return http.StatusBadRequest
	case llm.IsUpstream(err), errors.Is(err, generator.ErrNoValidExercises):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error, status int) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		return "exercise generation failed upstream"
	default:
		return "internal server error"
	}
}

func decodeMessage(err error) string {
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &syntax), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "invalid request body"
	case errors.As(err, &tooBig):
		return "request body too large"
	default:
		// Enum parse errors ("Unknown provider: X") are meant for clients.
		return err.Error()
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be between %d and %d", fe.Field(), exercise.MinTotal, exercise.MaxTotal))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
