package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"resumeforge/internal/ai"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/ingest"
	"resumeforge/internal/observability"
	"resumeforge/internal/store"
	"resumeforge/internal/templates"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createUploadHandler wraps the resume upload pipeline with observability
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.upload")
		defer span.End()

		req, cleanup, err := s.parseUploadRequest(r)
		if cleanup != nil {
			defer cleanup()
		}
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("upload.filename", req.OriginalName),
			attribute.String("upload.target_role", req.TargetRole),
			attribute.String("upload.template", req.Template),
			attribute.Bool("upload.existing_user", req.Username != ""),
			attribute.String("operation", "ingest"),
		)

		metrics := om.GetMetrics()
		var result types.IngestResult
		err = metrics.TrackAIOperationWithTokens(ctx, "ingest", func(ctx context.Context) *observability.AIOperationResult {
			output, usage, ingestErr := s.Ingest.Ingest(ctx, req)
			result = output
			return &observability.AIOperationResult{
				Error:      ingestErr,
				TokenUsage: (*observability.TokenUsage)(combineUsage(usage)),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_ingested", false, om,
				attribute.String("error", err.Error()))

			if store.IsNotFound(err) {
				span.SetAttributes(attribute.String("error.type", "not_found"))
				writeErrorResponse(w, "Unknown username", "No profile exists for the given username", http.StatusNotFound)
				return
			}

			var appErr *forgeErrors.AppError
			if errors.As(err, &appErr) && appErr.Type == forgeErrors.ErrorTypeValidation {
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, "Invalid upload", appErr.Message, http.StatusBadRequest)
				return
			}

			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			writeErrorResponse(w, "Failed to process resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_ingested", true, om,
			attribute.Bool("new_user", result.NewUser),
			attribute.Bool("store_saved", result.StoreSaved),
			attribute.String("template", req.Template))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("response.new_user", result.NewUser),
			attribute.Bool("response.store_saved", result.StoreSaved),
		)

		writeJSONResponse(w, http.StatusOK, UploadResponse{
			Success:     true,
			Message:     "Resume processed successfully",
			Data:        result.Data,
			Credentials: result.Credentials,
			StoreSaved:  result.StoreSaved,
			NewUser:     result.NewUser,
		})
	}
}

// parseUploadRequest reads the multipart form and stages the upload in a
// temporary file. The returned cleanup removes that file and must be
// called even on error.
func (s *Server) parseUploadRequest(r *http.Request) (ingest.Request, func(), error) {
	maxMemory := int64(10 << 20)
	if s.MaxRequestSize > 0 && s.MaxRequestSize < maxMemory {
		maxMemory = s.MaxRequestSize
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return ingest.Request{}, nil, fmt.Errorf("upload too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return ingest.Request{}, nil, fmt.Errorf("expected multipart form data: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return ingest.Request{}, nil, fmt.Errorf("missing resume file: the 'file' field is required")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.Logger.Warn("Failed to close uploaded file", "error", closeErr.Error())
		}
	}()

	tmp, err := os.CreateTemp("", "resumeforge-upload-*")
	if err != nil {
		return ingest.Request{}, nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	cleanup := func() {
		if removeErr := os.Remove(tmp.Name()); removeErr != nil && !os.IsNotExist(removeErr) {
			s.Logger.Warn("Failed to remove staged upload", "path", tmp.Name(), "error", removeErr.Error())
		}
	}

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		return ingest.Request{}, cleanup, fmt.Errorf("failed to stage upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ingest.Request{}, cleanup, fmt.Errorf("failed to stage upload: %w", err)
	}

	return ingest.Request{
		FilePath:     tmp.Name(),
		OriginalName: header.Filename,
		Username:     strings.TrimSpace(r.FormValue("username")),
		TargetRole:   strings.TrimSpace(r.FormValue("target_role")),
		Pricing:      r.FormValue("pricing"),
		Template:     r.FormValue("template"),
	}, cleanup, nil
}

// combineUsage sums token usage across the extraction and normalization
// stages so the pipeline reports a single figure per upload.
func combineUsage(usage *ingest.Usage) *ai.TokenUsage {
	if usage == nil || (usage.Extract == nil && usage.Normalize == nil) {
		return nil
	}

	total := &ai.TokenUsage{}
	for _, u := range []*ai.TokenUsage{usage.Extract, usage.Normalize} {
		if u == nil {
			continue
		}
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
		total.TotalTokens += u.TotalTokens
	}
	return total
}

// createLoginHandler wraps credential verification with observability
func (s *Server) createLoginHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.login")
		defer span.End()

		var req LoginRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Username) == "" || req.Password == "" {
			err := fmt.Errorf("missing credentials")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing credentials", "username and password fields are required", http.StatusBadRequest)
			return
		}

		metrics := om.GetMetrics()
		user, err := s.Ingest.Login(ctx, req.Username, req.Password)
		if err != nil {
			// Unknown usernames and wrong passwords get the same answer.
			var appErr *forgeErrors.AppError
			if errors.As(err, &appErr) && appErr.Code == forgeErrors.ErrCodeInvalidLogin {
				metrics.RecordBusinessMetric(ctx, "login_attempted", false, om)
				span.SetAttributes(attribute.Bool("success", false))
				writeErrorResponse(w, "Invalid credentials", "Invalid username or password", http.StatusUnauthorized)
				return
			}

			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "store"))
			writeErrorResponse(w, "Login unavailable", "Could not verify credentials", http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "login_attempted", true, om)
		span.SetAttributes(attribute.Bool("success", true))

		writeJSONResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    user,
		})
	}
}

// createUserHandler serves sanitized user profiles
func (s *Server) createUserHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.user_lookup")
		defer span.End()

		username := r.PathValue("username")
		if strings.TrimSpace(username) == "" {
			writeErrorResponse(w, "Missing username", "A username path segment is required", http.StatusBadRequest)
			return
		}

		user, err := s.Ingest.Lookup(ctx, username)
		if err != nil {
			if store.IsNotFound(err) {
				span.SetAttributes(attribute.String("error.type", "not_found"))
				writeErrorResponse(w, "User not found", "No profile exists for the given username", http.StatusNotFound)
				return
			}
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "store"))
			writeErrorResponse(w, "Lookup failed", "Could not load the requested profile", http.StatusInternalServerError)
			return
		}

		span.SetAttributes(attribute.Bool("success", true))
		writeJSONResponse(w, http.StatusOK, user)
	}
}

// createFeedbackPostHandler accepts new feedback entries
func (s *Server) createFeedbackPostHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.feedback_post")
		defer span.End()

		var req FeedbackRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			writeErrorResponse(w, "Missing message", "message field is required", http.StatusBadRequest)
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			writeErrorResponse(w, "Invalid rating", "rating must be between 1 and 5", http.StatusBadRequest)
			return
		}

		entry := s.Feedback.Add(req.Name, req.Email, req.Message, req.Rating)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "feedback_posted", true, om,
			attribute.Int("rating", req.Rating))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("rating", req.Rating),
		)

		writeJSONResponse(w, http.StatusCreated, entry)
	}
}

// createFeedbackListHandler returns all feedback entries, newest first
func (s *Server) createFeedbackListHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracer := om.Tracer("resumeforge.api")
		_, span := tracer.Start(r.Context(), "api.feedback_list")
		defer span.End()

		entries := s.Feedback.List()
		span.SetAttributes(attribute.Int("feedback.count", len(entries)))

		writeJSONResponse(w, http.StatusOK, map[string]any{
			"feedback": entries,
			"count":    len(entries),
		})
	}
}

// createTemplateListHandler lists the available presentation templates
func (s *Server) createTemplateListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSONResponse(w, http.StatusOK, map[string]any{
			"templates": templates.Names(),
			"default":   templates.DefaultName,
		})
	}
}

// createTemplatePreviewHandler renders a stored profile with the named template
func (s *Server) createTemplatePreviewHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.template_preview")
		defer span.End()

		name := r.PathValue("name")
		if !templates.IsValid(name) {
			writeErrorResponse(w, "Unknown template", fmt.Sprintf("No template named %q", name), http.StatusNotFound)
			return
		}

		username := strings.TrimSpace(r.URL.Query().Get("username"))
		if username == "" {
			writeErrorResponse(w, "Missing username", "A username query parameter is required", http.StatusBadRequest)
			return
		}

		user, err := s.Ingest.Lookup(ctx, username)
		if err != nil {
			if store.IsNotFound(err) {
				writeErrorResponse(w, "User not found", "No profile exists for the given username", http.StatusNotFound)
				return
			}
			span.RecordError(err)
			writeErrorResponse(w, "Lookup failed", "Could not load the requested profile", http.StatusInternalServerError)
			return
		}

		html, err := templates.Render(name, user)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Render failed", "Could not render the requested template", http.StatusInternalServerError)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("template", name),
		)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(html)); err != nil {
			s.Logger.Warn("Failed to write template preview", "error", err.Error())
		}
	}
}

// writeJSONResponse writes a JSON payload with the given status code
func writeJSONResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
