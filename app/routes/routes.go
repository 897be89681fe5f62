package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"lumina/app/controllers"
	"lumina/app/middleware"
	"lumina/app/repositories"
	"lumina/app/services"

	"github.com/gorilla/mux"
)

// SetupAPIRoutes defines the Content API and returns a router serving it
// from the given backend.
func SetupAPIRoutes(backend repositories.Backend, generator services.DraftGenerator, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.ContentTypeJSON)

	router.NotFoundHandler = jsonStatus(http.StatusNotFound, "Not found")
	router.MethodNotAllowedHandler = jsonStatus(http.StatusMethodNotAllowed, "Method not allowed")

	postController := controllers.NewPostController(services.NewPostService(backend, logger), logger)
	commentController := controllers.NewCommentController(services.NewCommentService(backend), logger)
	draftController := controllers.NewDraftController(services.NewDraftService(generator, logger), logger)
	healthController := controllers.NewHealthController(backend)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", healthController.Health).Methods("GET")
	api.HandleFunc("/ready", healthController.Ready).Methods("GET")

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}", postController.Update).Methods("PUT")
	posts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	posts.HandleFunc("/{id}/comments", commentController.Create).Methods("POST")

	// Draft assistant
	api.HandleFunc("/drafts", draftController.Generate).Methods("POST")

	return router
}

// jsonStatus answers every request with status and a {message} body.
func jsonStatus(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(controllers.ErrorBody{Message: message})
	})
}

// SetupWebRoutes defines the server-rendered UI and returns a router.
func SetupWebRoutes(web *controllers.WebController, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))

	router.HandleFunc("/", web.Home).Methods("GET")

	// Posts web endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", web.Create).Methods("POST")
	posts.HandleFunc("/new", web.New).Methods("GET")
	posts.HandleFunc("/new/draft", web.GenerateDraft).Methods("POST")
	posts.HandleFunc("/cancel", web.Cancel).Methods("POST")
	posts.HandleFunc("/{id}", web.Show).Methods("GET")
	posts.HandleFunc("/{id}/edit", web.Edit).Methods("GET")
	posts.HandleFunc("/{id}/edit", web.Update).Methods("POST")
	posts.HandleFunc("/{id}/delete", web.Delete).Methods("POST")
	posts.HandleFunc("/{id}/comments", web.Comment).Methods("POST")

	return router
}
