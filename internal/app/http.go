package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quotefolio/api/internal/ledger"
	"quotefolio/api/internal/profile"
	"quotefolio/api/internal/search"
	"quotefolio/api/internal/session"
)

const maxAssetSize = 5 << 20

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := s.service.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	// Session routes are public: the gate is what they manipulate.
	if r.Method == http.MethodGet && r.URL.Path == "/api/session" {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": s.service.Authenticated()})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/session/login" {
		if err := s.service.Login(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "LOGIN_FAILED", "Login failed", nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/session/logout" {
		if err := s.service.Logout(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "LOGOUT_FAILED", "Logout failed", nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	// The login page is guest-only: authenticated visitors go home.
	if r.Method == http.MethodGet && r.URL.Path == "/api/login" {
		if s.service.Access(session.GuestOnly) == session.RedirectHome {
			writeJSON(w, http.StatusConflict, map[string]any{"redirect": "/"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	// Everything below is guarded.
	if s.service.Access(session.RequireAuth) == session.RedirectLogin {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"code":     "UNAUTHORIZED",
			"error":    "Authentication required",
			"redirect": "/login",
		})
		return
	}

	parts := splitPath(r.URL.Path)
	if len(parts) < 2 || parts[0] != "api" {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}

	switch parts[1] {
	case "quotes":
		s.handleQuotes(w, r, parts[2:])
	case "activities":
		if r.Method == http.MethodGet && len(parts) == 2 {
			writeJSON(w, http.StatusOK, map[string]any{"activities": s.service.Activities()})
			return
		}
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	case "stats":
		if r.Method == http.MethodGet && len(parts) == 2 {
			writeJSON(w, http.StatusOK, s.service.Stats())
			return
		}
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	case "search":
		s.handleSearch(w, r, parts[2:])
	case "templates":
		s.handleTemplates(w, r, parts[2:])
	case "profile":
		s.handleProfile(w, r, parts[2:])
	case "notifications":
		s.handleNotifications(w, r, parts[2:])
	case "toasts":
		s.handleToasts(w, r, parts[2:])
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

func (s *HTTPServer) handleQuotes(w http.ResponseWriter, r *http.Request, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"quotes": s.service.Quotes()})

	case len(rest) == 0 && r.Method == http.MethodPost:
		var draft ledger.Quote
		if err := decodeBody(r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		created, err := s.service.CreateQuote(r.Context(), draft)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case len(rest) == 1 && r.Method == http.MethodGet:
		q, ok := s.service.QuoteByID(rest[0])
		if !ok {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Quote not found", nil)
			return
		}
		writeJSON(w, http.StatusOK, q)

	case len(rest) == 1 && r.Method == http.MethodPut:
		var patch ledger.QuotePatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		updated, ok := s.service.UpdateQuote(r.Context(), rest[0], patch)
		if !ok {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Quote not found", nil)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case len(rest) == 1 && r.Method == http.MethodDelete:
		deleted := s.service.DeleteQuote(r.Context(), rest[0])
		writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})

	case len(rest) == 2 && rest[1] == "preview" && r.Method == http.MethodGet:
		s.handlePreview(w, r, rest[0])

	case len(rest) == 2 && rest[1] == "history" && r.Method == http.MethodGet:
		limit := 0
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be an integer", nil)
				return
			}
			limit = parsed
		}
		revisions, err := s.service.History(rest[0], limit)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"revisions": revisions})

	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

func (s *HTTPServer) handlePreview(w http.ResponseWriter, r *http.Request, id string) {
	format := strings.TrimSpace(r.URL.Query().Get("format"))
	result, err := s.service.Preview(id, format)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}

	w.Header().Set("Content-Type", result.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) != 0 || r.Method != http.MethodGet {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}

	query := search.Query{
		Text:         strings.TrimSpace(r.URL.Query().Get("q")),
		FilterStatus: strings.TrimSpace(r.URL.Query().Get("status")),
		Limit:        20,
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be an integer", nil)
			return
		}
		query.Limit = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "offset must be an integer", nil)
			return
		}
		query.Offset = parsed
	}

	writeJSON(w, http.StatusOK, s.service.SearchQuotes(query))
}

func (s *HTTPServer) handleTemplates(w http.ResponseWriter, r *http.Request, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"templates": s.service.Templates(),
			"current":   s.service.CurrentTemplate().ID,
		})

	case len(rest) == 1 && rest[0] == "current" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.service.CurrentTemplate())

	case len(rest) == 1 && rest[0] == "current" && r.Method == http.MethodPut:
		var body struct {
			ID string `json:"id"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		// unknown ids leave the current selection in place
		writeJSON(w, http.StatusOK, s.service.SetTemplate(r.Context(), body.ID))

	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

func (s *HTTPServer) handleProfile(w http.ResponseWriter, r *http.Request, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.service.Profile())

	case len(rest) == 0 && r.Method == http.MethodPut:
		var patch profile.Patch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		writeJSON(w, http.StatusOK, s.service.UpdateProfile(r.Context(), patch))

	case len(rest) == 2 && rest[0] == "assets" && r.Method == http.MethodPost:
		contentType := r.Header.Get("Content-Type")
		body := http.MaxBytesReader(w, r.Body, maxAssetSize)
		defer body.Close()

		key, err := s.service.UploadAsset(r.Context(), rest[1], body, r.ContentLength, contentType)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"key": key})

	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

func (s *HTTPServer) handleNotifications(w http.ResponseWriter, r *http.Request, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"notifications": s.service.Notifications(),
			"unread":        s.service.UnreadCount(),
		})

	case len(rest) == 1 && rest[0] == "read-all" && r.Method == http.MethodPost:
		s.service.MarkAllNotificationsRead()
		writeJSON(w, http.StatusOK, map[string]any{"unread": s.service.UnreadCount()})

	case len(rest) == 2 && rest[1] == "read" && r.Method == http.MethodPost:
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "notification id must be an integer", nil)
			return
		}
		s.service.MarkNotificationRead(id)
		writeJSON(w, http.StatusOK, map[string]any{"unread": s.service.UnreadCount()})

	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

func (s *HTTPServer) handleToasts(w http.ResponseWriter, r *http.Request, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"toasts": s.service.Toasts()})

	case len(rest) == 0 && r.Method == http.MethodPost:
		var body struct {
			Message    string `json:"message"`
			Type       string `json:"type"`
			DurationMS int64  `json:"duration"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		created, err := s.service.AddToast(body.Message, body.Type, time.Duration(body.DurationMS)*time.Millisecond)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case len(rest) == 1 && r.Method == http.MethodDelete:
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "toast id must be an integer", nil)
			return
		}
		s.service.RemoveToast(id)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})

	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", validationErr.Error(),
			map[string]string{"field": validationErr.Field}
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
