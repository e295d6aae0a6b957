package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"artculture/internal/access"
	"artculture/internal/config"
	"artculture/internal/service"
)

type Middleware func(http.Handler) http.Handler

// Chain применяет middleware в порядке объявления
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// публичные эндпоинты, не требующие токена
var publicPaths = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/refresh-token",
	"/api/auth/reset-password",
	"/api/auth/reset-password-confirm",
	"/api/geo/search",
	"/api/search",
	"/api/health",
}

var publicGetPrefixes = []string{
	"/api/posts",
	"/api/products",
	"/api/exhibitions",
	"/api/users/creators",
	"/api/users/museums",
	"/api/art-terms",
}

func isPublic(r *http.Request) bool {
	for _, p := range publicPaths {
		if r.URL.Path == p || strings.HasPrefix(r.URL.Path, p+"/") {
			return true
		}
	}
	if r.Method == http.MethodGet {
		for _, p := range publicGetPrefixes {
			if r.URL.Path == p || strings.HasPrefix(r.URL.Path, p+"/") {
				return true
			}
		}
	}
	return false
}

// AuthMiddleware проверяет Bearer-токен и кладет claims в контекст.
// Личные эндпоинты (me, my-*) под GET-префиксами все равно требуют токен,
// поэтому заголовок разбирается и для публичных путей, если он есть.
func AuthMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if authHeader == "" {
				if isPublic(r) {
					next.ServeHTTP(w, r)
					return
				}
				WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				WriteError(w, "Неверный формат токена", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ClaimsFromToken(parts[1])
			if err != nil {
				WriteError(w, "Недействительный токен", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRoles пропускает только перечисленные роли
func RequireRoles(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := access.FromContext(r.Context())
			if !ok {
				WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			if !access.Allowed(claims.Role, roles...) {
				WriteError(w, "Доступ запрещен", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware - origin берется из конфига, не wildcard
func CORSMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.ClientOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware - общий лимитер на процесс
func RateLimitMiddleware(cfg *config.Config) Middleware {
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				WriteError(w, "Слишком много запросов", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware логирует метод, путь и длительность
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s (%s)", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}
