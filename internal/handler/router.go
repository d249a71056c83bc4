package handler

import (
	"net/http"

	"github.com/Emil0510/learn-ai/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"learn-ai"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Initialize handlers
	generateHandler := NewGenerateHandler(container.GenerationService, container.Logger, container.Config.GetMaxUploadSize())
	studySetHandler := NewStudySetHandler(container.StudySetService, container.Logger)
	progressHandler := NewProgressHandler(container.ProgressService, container.Logger)

	authMiddleware := AuthMiddleware(container.SupabaseClient, container.Logger)
	optionalAuth := OptionalAuthMiddleware(container.SupabaseClient, container.Logger)

	// Middleware is applied per route: the same path can be optional-auth
	// for reads and required-auth for writes.
	api.Handle("/generate", optionalAuth(http.HandlerFunc(generateHandler.Generate))).Methods("POST")
	api.Handle("/study-sets", authMiddleware(http.HandlerFunc(studySetHandler.GetStudySets))).Methods("GET")
	api.Handle("/study-sets/{id}", optionalAuth(http.HandlerFunc(studySetHandler.GetStudySet))).Methods("GET")
	api.Handle("/study-sets/{id}/progress", optionalAuth(http.HandlerFunc(progressHandler.GetProgress))).Methods("GET")
	// Writes go through optional auth so the service can answer anonymous
	// callers with its own "sign in" message.
	api.Handle("/study-sets/{id}/progress", optionalAuth(http.HandlerFunc(progressHandler.RecordAttempt))).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // Next.js dev server
			"http://localhost:5173",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler(router)
}
