package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"artculture/cmd/app"
	"artculture/internal/config"
	handlers "artculture/internal/handler"
	"artculture/internal/models"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.HealthCheck(); err != nil {
			handlers.WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(handlers.MessageResponse{Message: "ok"})
	}).Methods(http.MethodGet)

	// auth
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", handler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", handler.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password-confirm", handler.ConfirmPasswordReset).Methods(http.MethodPost)

	// users
	api.HandleFunc("/users/me", handler.Me).Methods(http.MethodGet)
	api.HandleFunc("/users/creators", handler.ListCreators).Methods(http.MethodGet)
	api.HandleFunc("/users/museums", handler.ListMuseums).Methods(http.MethodGet)
	api.HandleFunc("/users/museums/top", handler.TopMuseums).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handler.UpdateProfile).Methods(http.MethodPut)

	// admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(mux.MiddlewareFunc(handlers.RequireRoles(models.RoleAdmin)))
	admin.HandleFunc("/users", handler.AdminListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", handler.AdminChangeRole).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}", handler.AdminDeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/posts", handler.AdminListPosts).Methods(http.MethodGet)
	admin.HandleFunc("/posts/pending", handler.AdminPendingPosts).Methods(http.MethodGet)
	admin.HandleFunc("/posts/{id}/status", handler.AdminModeratePost).Methods(http.MethodPatch)
	admin.HandleFunc("/products", handler.AdminListProducts).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}/status", handler.AdminModerateProduct).Methods(http.MethodPatch)
	admin.HandleFunc("/stats", handler.AdminStats).Methods(http.MethodGet)

	// posts
	api.HandleFunc("/posts", handler.ListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/my", handler.MyPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/top", handler.TopPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/by-role", handler.PostsByAuthorRole).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/images", handler.AddPostImage).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/images/{imageId}", handler.DeletePostImage).Methods(http.MethodDelete)

	// products
	api.HandleFunc("/products", handler.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products", handler.CreateProduct).Methods(http.MethodPost)
	api.HandleFunc("/products/my", handler.MyProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/top", handler.TopProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", handler.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", handler.UpdateProduct).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", handler.DeleteProduct).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}/images", handler.AddProductImage).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}/images/{imageId}", handler.DeleteProductImage).Methods(http.MethodDelete)

	// exhibitions
	api.HandleFunc("/exhibitions", handler.ListExhibitions).Methods(http.MethodGet)
	api.HandleFunc("/exhibitions", handler.CreateExhibition).Methods(http.MethodPost)
	api.HandleFunc("/exhibitions/my", handler.MyExhibitions).Methods(http.MethodGet)
	api.HandleFunc("/exhibitions/top", handler.TopExhibitions).Methods(http.MethodGet)
	api.HandleFunc("/exhibitions/{id}", handler.GetExhibition).Methods(http.MethodGet)
	api.HandleFunc("/exhibitions/{id}", handler.UpdateExhibition).Methods(http.MethodPut)
	api.HandleFunc("/exhibitions/{id}", handler.DeleteExhibition).Methods(http.MethodDelete)
	api.HandleFunc("/exhibitions/{id}/products", handler.ExhibitionProducts).Methods(http.MethodGet)
	api.HandleFunc("/exhibitions/{id}/images", handler.AddExhibitionImage).Methods(http.MethodPost)
	api.HandleFunc("/exhibitions/{id}/images/{imageId}", handler.DeleteExhibitionImage).Methods(http.MethodDelete)

	// likes
	api.HandleFunc("/like/{type}/{id}", handler.ToggleLike).Methods(http.MethodPost)
	api.HandleFunc("/like/{type}/{id}", handler.LikeStatus).Methods(http.MethodGet)
	api.HandleFunc("/like/{type}/{id}/count", handler.LikeCount).Methods(http.MethodGet)

	// art terms
	api.HandleFunc("/art-terms", handler.ListArtTerms).Methods(http.MethodGet)
	api.HandleFunc("/art-terms", handler.CreateArtTerm).Methods(http.MethodPost)
	api.HandleFunc("/art-terms/last", handler.LastArtTerms).Methods(http.MethodGet)
	api.HandleFunc("/art-terms/letter/{letter}", handler.ArtTermsByLetter).Methods(http.MethodGet)
	api.HandleFunc("/art-terms/{id}", handler.GetArtTerm).Methods(http.MethodGet)
	api.HandleFunc("/art-terms/{id}", handler.UpdateArtTerm).Methods(http.MethodPut)
	api.HandleFunc("/art-terms/{id}", handler.DeleteArtTerm).Methods(http.MethodDelete)

	// search
	api.HandleFunc("/search/creators", handler.SearchCreators).Methods(http.MethodGet)
	api.HandleFunc("/search/museums", handler.SearchMuseums).Methods(http.MethodGet)
	api.HandleFunc("/search/products", handler.SearchProducts).Methods(http.MethodGet)

	// geo
	api.HandleFunc("/geo/search", handler.SearchAddress).Methods(http.MethodGet)

	handlerChain := handlers.Chain(
		r,
		handlers.LoggingMiddleware,
		handlers.CORSMiddleware(cfg),
		handlers.RateLimitMiddleware(cfg),
		handlers.AuthMiddleware(services.Auth),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
