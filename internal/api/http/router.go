package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything NewRouter wires up.
type Handlers struct {
	Auth         *AuthHandler
	Item         *ItemHandler
	Category     *CategoryHandler
	Loan         *LoanHandler
	Protocol     *ProtocolHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
}

// NewRouter assembles the full route table. Publicly readable resources run
// behind optional authentication so the authorizer can still distinguish
// owners from strangers; everything that mutates requires a token.
func NewRouter(h Handlers, auth *Authenticator) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Auth
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/admin/login", h.Auth.AdminLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)

	// Public reads (anonymous allowed, principal resolved when present)
	public := api.NewRoute().Subrouter()
	public.Use(auth.Optional)
	public.HandleFunc("/items", h.Item.ListPublic).Methods(http.MethodGet)
	public.HandleFunc("/items/{id:[0-9]+}", h.Item.Get).Methods(http.MethodGet)
	public.HandleFunc("/items/{id:[0-9]+}/reviews", h.Item.ListReviews).Methods(http.MethodGet)
	public.HandleFunc("/item-categories", h.Category.List).Methods(http.MethodGet)
	public.HandleFunc("/item-categories/{id:[0-9]+}", h.Category.Get).Methods(http.MethodGet)

	// Authenticated
	private := api.NewRoute().Subrouter()
	private.Use(auth.Require)
	private.HandleFunc("/items", h.Item.Create).Methods(http.MethodPost)
	private.HandleFunc("/items/{id:[0-9]+}", h.Item.Update).Methods(http.MethodPut)
	private.HandleFunc("/items/{id:[0-9]+}", h.Item.Delete).Methods(http.MethodDelete)
	private.HandleFunc("/my/items", h.Item.ListMine).Methods(http.MethodGet)

	private.HandleFunc("/loans", h.Loan.Create).Methods(http.MethodPost)
	private.HandleFunc("/loans", h.Loan.List).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id:[0-9]+}", h.Loan.Get).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id:[0-9]+}/status", h.Loan.UpdateStatus).Methods(http.MethodPatch)

	private.HandleFunc("/loans/{id:[0-9]+}/pickup-protocol", h.Protocol.CreatePickup).Methods(http.MethodPost)
	private.HandleFunc("/loans/{id:[0-9]+}/pickup-protocol", h.Protocol.GetPickup).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id:[0-9]+}/pickup-protocol", h.Protocol.UpdatePickup).Methods(http.MethodPut)
	private.HandleFunc("/loans/{id:[0-9]+}/return-protocol", h.Protocol.CreateReturn).Methods(http.MethodPost)
	private.HandleFunc("/loans/{id:[0-9]+}/return-protocol", h.Protocol.GetReturn).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id:[0-9]+}/return-protocol", h.Protocol.UpdateReturn).Methods(http.MethodPut)

	private.HandleFunc("/loans/{id:[0-9]+}/reviews", h.Review.Create).Methods(http.MethodPost)
	private.HandleFunc("/loans/{id:[0-9]+}/reviews", h.Review.ListByLoan).Methods(http.MethodGet)

	private.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	private.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	// Admin-scheme only
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/admin/item-categories", h.Category.Create).Methods(http.MethodPost)
	admin.HandleFunc("/admin/item-categories/{id:[0-9]+}", h.Category.Update).Methods(http.MethodPut)
	admin.HandleFunc("/admin/item-categories/{id:[0-9]+}", h.Category.Delete).Methods(http.MethodDelete)

	return r
}
