package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/service"
)

type LoanHandler struct {
	loanSvc service.LoanService
}

func NewLoanHandler(loanSvc service.LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

type createLoanRequest struct {
	ItemID     int32  `json:"item_id"`
	From       string `json:"from"` // yyyy-mm-dd
	To         string `json:"to"`
	TenantNote string `json:"tenant_note"`
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid from date, expected yyyy-mm-dd"})
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid to date, expected yyyy-mm-dd"})
		return
	}

	loan, err := h.loanSvc.CreateLoan(r.Context(), PrincipalFromContext(r.Context()), req.ItemID, from, to, req.TenantNote)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, err := h.loanSvc.GetLoan(r.Context(), PrincipalFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type updateLoanStatusRequest struct {
	Status domain.LoanStatus `json:"status"`
}

func (h *LoanHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateLoanStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	loan, err := h.loanSvc.UpdateLoanStatus(r.Context(), PrincipalFromContext(r.Context()), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type loanListResponse struct {
	Loans []domain.Loan `json:"loans"`
	Total int32         `json:"total"`
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	status := r.URL.Query().Get("status")
	page, pageSize := pagination(r)

	var (
		loans []domain.Loan
		total int32
		err   error
	)
	if r.URL.Query().Get("role") == "owner" {
		loans, total, err = h.loanSvc.ListLoansByOwner(r.Context(), principal, status, page, pageSize)
	} else {
		loans, total, err = h.loanSvc.ListLoansByTenant(r.Context(), principal, status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, Total: total})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
