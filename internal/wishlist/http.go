package wishlist

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ShopList/pkg/kit"
)

type Server struct {
	Store    Store
	Products ProductFinder
	Log      *zap.Logger
}

func (s *Server) Register(r chi.Router) {
	r.Get("/wishlist/{userId}", s.get)
	r.Post("/wishlist/{userId}/{productId}", s.add)
	r.Delete("/wishlist/{userId}/{productId}", s.remove)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"userId": chi.URLParam(r, "userId")})
		return
	}

	wl, ok, err := s.Store.Get(r.Context(), userID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get wishlist failed", zap.Error(err), zap.Int64("user_id", userID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok || len(wl.Products) == 0 {
		kit.WriteError(w, r, http.StatusNotFound, "no products in wishlist", map[string]any{"userId": userID})
		return
	}
	kit.WriteJSON(w, http.StatusOK, wl.Products)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := s.ids(w, r)
	if !ok {
		return
	}

	p, found, err := s.Products.GetProduct(r.Context(), productID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.Int64("product_id", productID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"productId": productID})
		return
	}

	// The duplicate check lives here, not in the store; the store's
	// membership key still catches two adds racing past this read.
	wl, _, err := s.Store.Get(r.Context(), userID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get wishlist failed", zap.Error(err), zap.Int64("user_id", userID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	for _, m := range wl.Products {
		if m.ID == productID {
			kit.WriteError(w, r, http.StatusBadRequest, "product already in wishlist", map[string]any{"productId": productID})
			return
		}
	}

	if err := s.Store.AddProduct(r.Context(), userID, p); err != nil {
		if errors.Is(err, ErrAlreadyInWishlist) {
			kit.WriteError(w, r, http.StatusBadRequest, "product already in wishlist", map[string]any{"productId": productID})
			return
		}
		if s.Log != nil {
			s.Log.Error("add to wishlist failed", zap.Error(err),
				zap.Int64("user_id", userID), zap.Int64("product_id", productID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("product added to wishlist",
			zap.Int64("user_id", userID), zap.Int64("product_id", productID))
	}
	kit.WriteMessage(w, http.StatusOK, fmt.Sprintf("product %q added to wishlist", p.Name))
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := s.ids(w, r)
	if !ok {
		return
	}

	p, found, err := s.Products.GetProduct(r.Context(), productID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.Int64("product_id", productID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"productId": productID})
		return
	}

	if err := s.Store.RemoveProduct(r.Context(), userID, productID); err != nil {
		if s.Log != nil {
			s.Log.Error("remove from wishlist failed", zap.Error(err),
				zap.Int64("user_id", userID), zap.Int64("product_id", productID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("product removed from wishlist",
			zap.Int64("user_id", userID), zap.Int64("product_id", productID))
	}
	kit.WriteMessage(w, http.StatusOK, fmt.Sprintf("product %q removed from wishlist", p.Name))
}

func (s *Server) ids(w http.ResponseWriter, r *http.Request) (userID, productID int64, ok bool) {
	userID, err := pathID(r, "userId")
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"userId": chi.URLParam(r, "userId")})
		return 0, 0, false
	}

	productID, err = pathID(r, "productId")
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"productId": chi.URLParam(r, "productId")})
		return 0, 0, false
	}

	return userID, productID, true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
