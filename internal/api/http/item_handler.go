package http

import (
	"net/http"
	"strconv"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/service"
)

type ItemHandler struct {
	itemSvc   service.ItemService
	reviewSvc service.ReviewService
}

func NewItemHandler(itemSvc service.ItemService, reviewSvc service.ReviewService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc, reviewSvc: reviewSvc}
}

type itemRequest struct {
	Name                   string   `json:"name"`
	Alias                  string   `json:"alias"`
	Description            string   `json:"description"`
	Parameters             string   `json:"parameters"`
	PricePerDayCents       int32    `json:"price_per_day_cents"`
	RefundableDepositCents int32    `json:"refundable_deposit_cents"`
	PurchasePriceCents     int32    `json:"purchase_price_cents"`
	SellingPriceCents      int32    `json:"selling_price_cents"`
	Categories             []string `json:"categories"`
}

func (req *itemRequest) toDomain() *domain.Item {
	return &domain.Item{
		Name:                   req.Name,
		Alias:                  req.Alias,
		Description:            req.Description,
		Parameters:             req.Parameters,
		PricePerDayCents:       req.PricePerDayCents,
		RefundableDepositCents: req.RefundableDepositCents,
		PurchasePriceCents:     req.PurchasePriceCents,
		SellingPriceCents:      req.SellingPriceCents,
		Categories:             req.Categories,
	}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item := req.toDomain()
	if err := h.itemSvc.AddItem(r.Context(), PrincipalFromContext(r.Context()), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.itemSvc.GetItem(r.Context(), PrincipalFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req itemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item := req.toDomain()
	item.ID = id
	if err := h.itemSvc.UpdateItem(r.Context(), PrincipalFromContext(r.Context()), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.itemSvc.DeleteItem(r.Context(), PrincipalFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type itemListResponse struct {
	Items []domain.Item `json:"items"`
	Total int32         `json:"total"`
}

func (h *ItemHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	category := r.URL.Query().Get("category")
	var maxPrice int32
	if v, err := strconv.ParseInt(r.URL.Query().Get("max_price_cents"), 10, 32); err == nil && v > 0 {
		maxPrice = int32(v)
	}

	items, total, err := h.itemSvc.ListPublicItems(r.Context(), category, maxPrice, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemListResponse{Items: items, Total: total})
}

func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.itemSvc.ListMyItems(r.Context(), PrincipalFromContext(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemListResponse{Items: items, Total: total})
}

func (h *ItemHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reviews, err := h.reviewSvc.ListItemReviews(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
