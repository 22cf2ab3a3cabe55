package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/transferhub/transferhub-go/internal/api/apierr"
	"github.com/transferhub/transferhub-go/internal/api/request"
	"github.com/transferhub/transferhub-go/internal/api/response"
	"github.com/transferhub/transferhub-go/internal/services/transfer"
)

// TransferHandler handles transfer record endpoints
type TransferHandler struct {
	transferService *transfer.Service
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *transfer.Service) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

// Create handles POST /api/v1/transfers
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.transferService.Create(r.Context(), transfer.CreateInput{
		GuestName:      req.GuestName,
		RoomNumber:     req.RoomNumber,
		PhoneNumber:    req.PhoneNumber,
		TransferDate:   req.TransferDate,
		Passengers:     req.Passengers,
		PickupLocation: req.PickupLocation,
		Destination:    req.Destination,
		FlightNumber:   req.FlightNumber,
		Comments:       req.Comments,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TransferFromModel(created))
}

// List handles GET /api/v1/transfers?status=
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transferService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TransfersFromModel(transfers))
}

// Get handles GET /api/v1/transfers/{id}
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	t, err := h.transferService.Get(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TransferFromModel(t))
}

// Update handles PATCH /api/v1/transfers/{id}
func (h *TransferHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req request.UpdateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.transferService.Update(r.Context(), id, req.Patch())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TransferFromModel(updated))
}

// Delete handles DELETE /api/v1/transfers/{id}
func (h *TransferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.transferService.Delete(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
