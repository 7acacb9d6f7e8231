package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"focus_forge/internal/auth"
	"focus_forge/internal/storage"
	"focus_forge/internal/usecases"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads one JSON object from the body. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &usecases.ValidationError{Message: "request body too large"}
		}
		return &usecases.ValidationError{Message: "malformed JSON body"}
	}
	if dec.More() {
		return &usecases.ValidationError{Message: "body must hold a single JSON object"}
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &usecases.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}

// currentUser is set by requireAuth; routes without it never call this.
func currentUser(r *http.Request) string {
	id, _ := auth.UserID(r.Context())
	return id
}

func statusFor(err error) int {
	switch {
	case usecases.IsValidation(err), errors.Is(err, usecases.ErrInvalidSlot):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecases.ErrSlotsFull),
		errors.Is(err, usecases.ErrAlreadyPinned),
		errors.Is(err, usecases.ErrNotPinned),
		errors.Is(err, usecases.ErrSlotOccupied),
		errors.Is(err, usecases.ErrSlotEmpty):
		return http.StatusConflict
	}
	var ce *conflictError
	if errors.As(err, &ce) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

type conflictError struct{ message string }

func (e *conflictError) Error() string { return e.message }

func conflict(format string, args ...any) error {
	return &conflictError{message: fmt.Sprintf(format, args...)}
}

// fail maps err to a status and writes it. Internal errors are logged and
// hidden from the client.
func fail(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorw("request failed", "op", op, "error", err)
		message := "internal error"
		if errors.Is(err, errAINotConfigured) {
			message = err.Error()
		}
		writeError(w, status, message)
		return
	}

	var (
		ve *usecases.ValidationError
		ce *conflictError
	)
	message := err.Error()
	switch {
	case errors.As(err, &ve):
		message = ve.Error()
	case errors.As(err, &ce):
		message = ce.message
	case errors.Is(err, storage.ErrNotFound):
		message = "not found"
	}
	writeError(w, status, message)
}
