package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rajasreeit/crm-backend-go/internal/domain/punch"
	"github.com/rajasreeit/crm-backend-go/internal/handler/http/middleware"
	"github.com/rajasreeit/crm-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	engine  punch.Engine
	queries punch.QueryService
}

func NewPunchHandler(engine punch.Engine, queries punch.QueryService) PunchHandler {
	return &punchHandlerImpl{
		engine:  engine,
		queries: queries,
	}
}

// Punch implements PunchHandler. One endpoint covers both directions; the
// engine decides punch-in versus punch-out from the employee's open cycle.
func (h *punchHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req punch.PunchRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	if v := r.FormValue("workReport"); v != "" {
		req.WorkReport = &v
	}
	if v := r.FormValue("reminderDate"); v != "" {
		req.ReminderDate = &v
	}

	// Both image parts are optional
	if file, header, err := r.FormFile("punchInImage"); err == nil {
		defer file.Close()
		req.PunchInImage = file
		req.PunchInImageHeader = header
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get punch-in image from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	if file, header, err := r.FormFile("punchOutImage"); err == nil {
		defer file.Close()
		req.PunchOutImage = file
		req.PunchOutImageHeader = header
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get punch-out image from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.engine.RecordPunch(r.Context(), middleware.Subject(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.TimeOfPunchOut != nil {
		response.SuccessWithMessage(w, "Punch out successful", result)
		return
	}
	response.Created(w, "Punch in successful", result)
}

// ListMine implements PunchHandler.
func (h *punchHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.ListForSubject(r.Context(), middleware.Subject(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAll implements PunchHandler.
func (h *punchHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.queries.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements PunchHandler.
func (h *punchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.queries.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements PunchHandler.
func (h *punchHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req := punch.UpdatePunchActivityRequest{
		ID: chi.URLParam(r, "id"),
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	if v := r.FormValue("date"); v != "" {
		req.Date = &v
	}
	if v := r.FormValue("timeOfPunchIn"); v != "" {
		req.TimeOfPunchIn = &v
	}
	if v := r.FormValue("timeOfPunchOut"); v != "" {
		req.TimeOfPunchOut = &v
	}

	if file, header, err := r.FormFile("punchInImage"); err == nil {
		defer file.Close()
		req.PunchInImage = file
		req.PunchInImageHeader = header
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get punch-in image from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	if file, header, err := r.FormFile("punchOutImage"); err == nil {
		defer file.Close()
		req.PunchOutImage = file
		req.PunchOutImageHeader = header
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get punch-out image from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.engine.UpdateActivity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch activity updated", result)
}
