package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	_ "finhealth/docs"
	"finhealth/internal/calculator"
	"finhealth/internal/geo"
	"finhealth/internal/service"
	"finhealth/internal/transport/rest/handler"
	"finhealth/internal/transport/rest/middleware"
	"finhealth/internal/transport/ws"
)

// CORS lists the allowed origins, methods and headers
type CORS struct {
	Origins []string
	Methods []string
	Headers []string
}

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	SubmissionService *service.SubmissionService
	ChatService       *service.ChatService
	Calculators       *calculator.Registry
	WSHub             *ws.Hub
	TrustedProxies    *geo.TrustedProxies
	CORS              CORS
	Logger            *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.TrustedProxies, c.Logger)
	catalogHandler := handler.NewCatalogHandler(c.AssessmentService, c.Logger)
	chatHandler := handler.NewChatHandler(c.ChatService, c.AuthService, c.Logger)
	calculatorHandler := handler.NewCalculatorHandler(c.Calculators, c.Logger)
	adminHandler := handler.NewAdminHandler(c.SubmissionService, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.ChatService, c.AuthService, c.CORS.Origins, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))
	r.Use(middleware.RequestLogger(c.Logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/catalog", catalogHandler.Catalog).Methods("GET", "OPTIONS")
	v1.HandleFunc("/score", catalogHandler.Score).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")
	v1.Handle("/chat", authMW.OptionalChat(http.HandlerFunc(chatHandler.Ask))).Methods("POST", "OPTIONS")
	v1.Handle("/chat/history", authMW.RequireChat(http.HandlerFunc(chatHandler.History))).Methods("GET", "OPTIONS")
	v1.HandleFunc("/calculators", calculatorHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/calculators/{name}", calculatorHandler.Calculate).Methods("POST", "OPTIONS")

	// WebSocket routes
	v1.HandleFunc("/ws/chat", wsHandler.ChatWS).Methods("GET")

	// Session routes (require assessment session token)
	sessionRoutes := v1.PathPrefix("/assessments/current").Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("", assessmentHandler.Current).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/answer", assessmentHandler.Answer).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/next", assessmentHandler.Next).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/back", assessmentHandler.Back).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/submit", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/result", assessmentHandler.Result).Methods("GET", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/submissions", adminHandler.ListSubmissions).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/submissions/{id}", adminHandler.GetSubmission).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg CORS) mux.MiddlewareFunc {
	methods := strings.Join(cfg.Methods, ", ")
	headers := strings.Join(cfg.Headers, ", ")
	wildcard := len(cfg.Origins) == 0
	for _, o := range cfg.Origins {
		if o == "*" {
			wildcard = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origin != "" {
				for _, o := range cfg.Origins {
					if strings.EqualFold(o, origin) {
						w.Header().Set("Access-Control-Allow-Origin", origin)
						w.Header().Add("Vary", "Origin")
						break
					}
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
