package http

import (
	"net/http"

	"lendshare-backend/internal/service"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type createReviewRequest struct {
	Comment string  `json:"comment"`
	Rating  float32 `json:"rating"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req createReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	review, err := h.reviewSvc.CreateReview(r.Context(), PrincipalFromContext(r.Context()), loanID, req.Comment, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListByLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reviews, err := h.reviewSvc.ListLoanReviews(r.Context(), PrincipalFromContext(r.Context()), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
