package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	"IdentityIntake/internal/core/domain"
	"IdentityIntake/internal/core/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxSubmissionBytes bounds the multipart body (two JPEG images plus a few
// form fields fit comfortably under this).
const maxSubmissionBytes = 32 << 20

// Intake is the service surface the handlers need.
type Intake interface {
	Submit(ctx context.Context, req *domain.SubmissionRequest) (domain.DerivedIdentity, error)
	Status(ctx context.Context, rawNationalID string) (services.StatusResult, error)
}

// Handler exposes the intake workflows over HTTP.
type Handler struct {
	intake Intake
	log    zerolog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(intake Intake, baseLogger *zerolog.Logger) *Handler {
	return &Handler{
		intake: intake,
		log:    baseLogger.With().Str("component", "http_handler").Logger(),
	}
}

// Register mounts the canonical routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/submit-request/", h.handleSubmit)
	r.Get("/status/{national_id}", h.handleStatus)
	r.Get("/test", h.handleTest)
}

type submitResponse struct {
	Msg string `json:"msg"`
}

type statusResponse struct {
	Status   string `json:"status"`
	Username string `json:"username,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// handleSubmit accepts the multipart submission form: email, last_name,
// national_id, and the two image files.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		h.log.Warn().Err(err).Str("request_id", RequestID(ctx)).Msg("Malformed multipart body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "malformed multipart body"})
		return
	}

	image1, err := readFormFile(r, "image1")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "image1 is required"})
		return
	}
	image2, err := readFormFile(r, "image2")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "image2 is required"})
		return
	}

	req := &domain.SubmissionRequest{
		Email:      r.FormValue("email"),
		LastName:   r.FormValue("last_name"),
		NationalID: r.FormValue("national_id"),
		Image1:     image1,
		Image2:     image2,
		ClientIP:   clientIP(r),
	}

	if _, err := h.intake.Submit(ctx, req); err != nil {
		h.log.Error().Err(err).Str("request_id", RequestID(ctx)).Msg("Submission failed")
		writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{Msg: "your request has been submitted"})
}

// handleStatus looks up the verification state for a raw national ID.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nationalID := chi.URLParam(r, "national_id")

	result, err := h.intake.Status(ctx, nationalID)
	if err != nil {
		h.log.Warn().Err(err).Str("request_id", RequestID(ctx)).Msg("Status lookup failed")
		writeWorkflowError(w, err)
		return
	}

	resp := statusResponse{Status: string(result.State)}
	if result.State == domain.StateAccepted {
		resp.Username = result.Username
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTest is the liveness probe.
func (h *Handler) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
}

// writeWorkflowError maps the workflow error taxonomy onto HTTP statuses.
func writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrDuplicateSubmission):
		writeJSON(w, http.StatusConflict, errorResponse{Detail: domain.ErrDuplicateSubmission.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: domain.ErrNotFound.Error()})
	default:
		// Storage, store, or broker backends failed the call.
		writeJSON(w, http.StatusBadGateway, errorResponse{Detail: "upstream dependency failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// readFormFile loads one named multipart file fully into memory.
func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// clientIP strips the port from the remote address; proxies are out of
// scope, so no forwarded-for headers are consulted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
