package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"CorpMart/pkg/kit"
)

type Server struct {
	C   *Controller
	Log *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.C.Ready(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/", s.catalogPage)
	r.Get("/account", s.accountPage)

	r.Post("/refresh", s.refresh)
	r.Post("/filters", s.updateFilters)
	r.Post("/filters/reset", s.resetFilters)
	r.Post("/best-sellers", s.bestSellers)

	r.Post("/like/{id}", s.toggleLike)
	r.Post("/cart/{id}", s.addToCart)
	r.Post("/cart/{id}/decrement", s.decrementCartItem)
	r.Post("/cart/{id}/remove", s.removeFromCart)
	r.Post("/cart/clear", s.clearCart)
	r.Post("/logout", s.logout)

	return r
}

func (s *Server) catalogPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.C.RenderCatalog(r.Context(), w); err != nil {
		s.renderError(w, r, "render catalog page failed", err)
	}
}

func (s *Server) accountPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.C.RenderAccount(r.Context(), w); err != nil {
		s.renderError(w, r, "render account page failed", err)
	}
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	// The page rendered next reports the failure inline; the refresh
	// endpoint itself always redirects.
	_ = s.C.Refresh(r.Context())
	s.redirectBack(w, r)
}

func (s *Server) updateFilters(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad form", nil)
		return
	}

	s.C.UpdateFilter(FilterUpdate{
		Categories: r.PostForm["category"],
		MinPrice:   r.PostForm.Get("min_price"),
		MaxPrice:   r.PostForm.Get("max_price"),
		Search:     r.PostForm.Get("search"),
		Sort:       r.PostForm.Get("sort"),
	}, ParseTrigger(r.PostForm.Get("trigger")))

	s.redirectBack(w, r)
}

func (s *Server) resetFilters(w http.ResponseWriter, r *http.Request) {
	s.C.ResetFilters()
	s.redirectBack(w, r)
}

func (s *Server) bestSellers(w http.ResponseWriter, r *http.Request) {
	s.C.BestSellers()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.C.State().ToggleLike(r.Context(), id); err != nil {
		s.storageError(w, r, "toggle like failed", id, err)
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	line, err := s.C.State().AddToCart(r.Context(), id)
	if err != nil {
		s.storageError(w, r, "add to cart failed", id, err)
		return
	}

	// Resolution is display-only; the stored id is legal either way.
	if p, ok := s.C.ResolveProduct(id); ok && s.Log != nil {
		s.Log.Info("added to cart",
			zap.String("product_id", id),
			zap.String("name", p.Name),
			zap.Int("quantity", line.Quantity),
		)
	}
	s.redirectBack(w, r)
}

func (s *Server) decrementCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.C.State().DecrementCartItem(r.Context(), id); err != nil {
		s.storageError(w, r, "decrement cart item failed", id, err)
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.C.State().RemoveFromCart(r.Context(), id); err != nil {
		s.storageError(w, r, "remove from cart failed", id, err)
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("confirm") != "true" {
		kit.WriteError(w, r, http.StatusBadRequest, "confirmation required", nil)
		return
	}

	if err := s.C.State().ClearCart(r.Context()); err != nil {
		s.storageError(w, r, "clear cart failed", "", err)
		return
	}
	s.redirectBack(w, r)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.C.State().Logout(r.Context()); err != nil {
		s.storageError(w, r, "logout failed", "", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) storageError(w http.ResponseWriter, r *http.Request, msg, id string, err error) {
	if s.Log != nil {
		fields := []zap.Field{zap.Error(err)}
		if id != "" {
			fields = append(fields, zap.String("product_id", id))
		}
		s.Log.Error(msg, fields...)
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
