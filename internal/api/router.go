// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/middleware"
)

// Router wires handlers, middleware, and routes into a chi mux.
type Router struct {
	handler    *Handler
	middleware *middlewareStack
}

// NewRouter creates a router for the given handler.
func NewRouter(handler *Handler, cfg *config.SecurityConfig) *Router {
	return &Router{
		handler:    handler,
		middleware: newMiddlewareStack(cfg),
	}
}

// Setup builds the full route tree.
//
//	POST   /api/v1/auth/register      create account          (public)
//	POST   /api/v1/auth/login         obtain token            (public)
//	POST   /api/v1/auth/logout        revoke token            (authed)
//	GET    /api/v1/users/me           current account         (authed)
//	GET    /api/v1/movies             list catalog            (authed)
//	POST   /api/v1/movies             add to catalog          (authed)
//	GET    /api/v1/movies/{id}        fetch one movie         (authed)
//	...and equivalent CRUD for watchlists, watchlist-movies, ratings,
//	and comments.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.middleware.CORS())
	r.Use(middleware.Compression)

	// Operational endpoints, outside the versioned API surface.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", rt.handler.Health)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	// Account endpoints. Login and register carry the strict limiter so
	// credential stuffing burns out fast.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.With(rt.middleware.RateLimitLogin()).Post("/register", rt.handler.Register)
		r.With(rt.middleware.RateLimitLogin()).Post("/login", rt.handler.Login)
		r.With(rt.handler.auth.RequireAuth).Post("/logout", rt.handler.Logout)
	})

	// Data endpoints. Everything requires authentication; visibility
	// rules beyond that live in the access layer.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.middleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(rt.handler.auth.RequireAuth)

		r.Get("/users/me", rt.handler.CurrentUser)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", rt.handler.ListMovies)
			r.Post("/", rt.handler.CreateMovie)
			r.Get("/{id}", rt.handler.GetMovie)
		})

		r.Route("/watchlists", func(r chi.Router) {
			r.Get("/", rt.handler.ListWatchlists)
			r.Post("/", rt.handler.CreateWatchlist)
			r.Get("/{id}", rt.handler.GetWatchlist)
			r.Patch("/{id}", rt.handler.UpdateWatchlist)
			r.Put("/{id}", rt.handler.UpdateWatchlist)
			r.Delete("/{id}", rt.handler.DeleteWatchlist)
			r.Get("/{id}/movies", rt.handler.GetWatchlistMovies)
		})

		r.Route("/watchlist-movies", func(r chi.Router) {
			r.Get("/", rt.handler.ListWatchlistMovies)
			r.Post("/", rt.handler.AddWatchlistMovie)
			r.Get("/{id}", rt.handler.GetWatchlistMovie)
			r.Delete("/{id}", rt.handler.RemoveWatchlistMovie)
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Get("/", rt.handler.ListRatings)
			r.Post("/", rt.handler.CreateRating)
			r.Get("/{id}", rt.handler.GetRating)
			r.Patch("/{id}", rt.handler.UpdateRating)
			r.Put("/{id}", rt.handler.UpdateRating)
			r.Delete("/{id}", rt.handler.DeleteRating)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", rt.handler.ListComments)
			r.Post("/", rt.handler.CreateComment)
			r.Get("/{id}", rt.handler.GetComment)
			r.Delete("/{id}", rt.handler.DeleteComment)
		})
	})

	return r
}
