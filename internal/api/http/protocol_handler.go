package http

import (
	"net/http"

	"lendshare-backend/internal/service"
)

type ProtocolHandler struct {
	pickupSvc service.PickupProtocolService
	returnSvc service.ReturnProtocolService
}

func NewProtocolHandler(pickupSvc service.PickupProtocolService, returnSvc service.ReturnProtocolService) *ProtocolHandler {
	return &ProtocolHandler{pickupSvc: pickupSvc, returnSvc: returnSvc}
}

type pickupProtocolRequest struct {
	Description                    string `json:"description"`
	AcceptedRefundableDepositCents int32  `json:"accepted_refundable_deposit_cents"`
}

func (h *ProtocolHandler) CreatePickup(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req pickupProtocolRequest
	if !decodeBody(w, r, &req) {
		return
	}
	protocol, err := h.pickupSvc.CreatePickupProtocol(r.Context(), PrincipalFromContext(r.Context()), loanID, req.Description, req.AcceptedRefundableDepositCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, protocol)
}

func (h *ProtocolHandler) GetPickup(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	protocol, err := h.pickupSvc.GetPickupProtocol(r.Context(), PrincipalFromContext(r.Context()), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, protocol)
}

func (h *ProtocolHandler) UpdatePickup(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req pickupProtocolRequest
	if !decodeBody(w, r, &req) {
		return
	}
	protocol, err := h.pickupSvc.UpdatePickupProtocol(r.Context(), PrincipalFromContext(r.Context()), loanID, req.Description, req.AcceptedRefundableDepositCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, protocol)
}

type returnProtocolRequest struct {
	Description                    string `json:"description"`
	ReturnedRefundableDepositCents int32  `json:"returned_refundable_deposit_cents"`
}

func (h *ProtocolHandler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req returnProtocolRequest
	if !decodeBody(w, r, &req) {
		return
	}
	protocol, err := h.returnSvc.CreateReturnProtocol(r.Context(), PrincipalFromContext(r.Context()), loanID, req.Description, req.ReturnedRefundableDepositCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, protocol)
}

func (h *ProtocolHandler) GetReturn(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	protocol, err := h.returnSvc.GetReturnProtocol(r.Context(), PrincipalFromContext(r.Context()), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, protocol)
}

func (h *ProtocolHandler) UpdateReturn(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req returnProtocolRequest
	if !decodeBody(w, r, &req) {
		return
	}
	protocol, err := h.returnSvc.UpdateReturnProtocol(r.Context(), PrincipalFromContext(r.Context()), loanID, req.Description, req.ReturnedRefundableDepositCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, protocol)
}
