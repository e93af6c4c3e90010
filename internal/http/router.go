package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/surajbi2/secureIn-backend/internal/handlers"
	"github.com/surajbi2/secureIn-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	passHandler *handlers.PassHandler,
	eventHandler *handlers.EventHandler,
	userHandler *handlers.UserHandler,
	reportHandler *handlers.ReportHandler,
	logHandler *handlers.LogHandler,
	totpHandler *handlers.TOTPHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Public routes
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.Detailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")
	r.Handle("/auth/verify", authMiddleware.Authenticate(http.HandlerFunc(authHandler.Verify))).Methods("GET")

	// Public pass verification: this is the URL embedded in every QR code, so
	// anyone who scans a pass can check it without logging in.
	r.HandleFunc("/api/passes/verify/{passId}", passHandler.Verify).Methods("GET")

	// Pass management - staff and admin
	passAPI := r.PathPrefix("/api/passes").Subrouter()
	passAPI.Use(authMiddleware.Authenticate)
	passAPI.HandleFunc("", passHandler.Create).Methods("POST")
	passAPI.HandleFunc("/active", passHandler.ListActive).Methods("GET")
	passAPI.HandleFunc("/scan/{passId}", passHandler.Scan).Methods("POST")
	passAPI.HandleFunc("/{id:[0-9]+}", passHandler.SoftDelete).Methods("DELETE")
	passAPI.Handle("/{id:[0-9]+}/permanent", authMiddleware.RequireAdmin(http.HandlerFunc(passHandler.HardDelete))).Methods("DELETE")

	// Events
	eventsAPI := r.PathPrefix("/api/events").Subrouter()
	eventsAPI.Use(authMiddleware.Authenticate)
	eventsAPI.HandleFunc("", eventHandler.List).Methods("GET")
	eventsAPI.HandleFunc("", eventHandler.Create).Methods("POST")
	eventsAPI.HandleFunc("/{id:[0-9]+}", eventHandler.Get).Methods("GET")
	eventsAPI.HandleFunc("/{id:[0-9]+}", eventHandler.Update).Methods("PUT")
	eventsAPI.HandleFunc("/{id:[0-9]+}", eventHandler.Delete).Methods("DELETE")

	// User management - admin only
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.Handle("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.List))).Methods("GET")
	usersAPI.Handle("", authMiddleware.RequireAdmin(http.HandlerFunc(authHandler.Register))).Methods("POST")
	usersAPI.Handle("/{id:[0-9]+}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.Deactivate))).Methods("DELETE")

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/dashboard", reportHandler.Dashboard).Methods("GET")
	reportsAPI.HandleFunc("/visitors", reportHandler.VisitorLog).Methods("GET")
	reportsAPI.HandleFunc("/visitors/pdf", reportHandler.VisitorLogPDF).Methods("GET")

	// Audit logs - admin only
	logsAPI := r.PathPrefix("/api/logs").Subrouter()
	logsAPI.Use(authMiddleware.Authenticate)
	logsAPI.Handle("/logins", authMiddleware.RequireAdmin(http.HandlerFunc(logHandler.LoginLogs))).Methods("GET")
	logsAPI.Handle("/actions", authMiddleware.RequireAdmin(http.HandlerFunc(logHandler.AdminActionLogs))).Methods("GET")

	// 2FA management for the logged-in account
	totpAPI := r.PathPrefix("/api/2fa").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/enable", totpHandler.Enable).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	return r
}
