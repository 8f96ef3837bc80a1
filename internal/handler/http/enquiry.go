package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rajasreeit/crm-backend-go/internal/domain/enquiry"
	"github.com/rajasreeit/crm-backend-go/internal/handler/http/middleware"
	"github.com/rajasreeit/crm-backend-go/internal/handler/http/response"
)

type EnquiryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type enquiryHandlerImpl struct {
	enquiryService enquiry.Service
}

func NewEnquiryHandler(enquiryService enquiry.Service) EnquiryHandler {
	return &enquiryHandlerImpl{
		enquiryService: enquiryService,
	}
}

// Create implements EnquiryHandler.
func (h *enquiryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req enquiry.CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.enquiryService.Create(r.Context(), middleware.Subject(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Enquiry submitted", result)
}

// ListMine implements EnquiryHandler.
func (h *enquiryHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.enquiryService.ListForSubject(r.Context(), middleware.Subject(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAll implements EnquiryHandler.
func (h *enquiryHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.enquiryService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements EnquiryHandler.
func (h *enquiryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.enquiryService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Enquiry deleted", nil)
}
