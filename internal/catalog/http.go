package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopList/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Register(r chi.Router) {
	r.Get("/categories", s.listCategories)
	r.Post("/categories", s.createCategory)
	r.Get("/categories/{id}", s.getCategory)

	r.Get("/products", s.listProducts)
	r.Post("/products", s.createProduct)
	r.Get("/products/category/{categoryName}", s.listProductsByCategory)
	r.Get("/products/{id}", s.getProduct)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Store.ListCategories(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list categories failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(categories) == 0 {
		kit.WriteError(w, r, http.StatusNotFound, "no categories available", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, categories)
}

type createCategoryReq struct {
	Name string `json:"name"`
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name required", nil)
		return
	}

	c, err := s.Store.AddCategory(r.Context(), req.Name)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("add category failed", zap.Error(err), zap.String("name", req.Name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("category created", zap.Int64("category_id", c.ID), zap.String("name", c.Name))
	}
	kit.WriteCreated(w, fmt.Sprintf("/categories/%d", c.ID), c)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
		return
	}

	c, ok, err := s.Store.GetCategory(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get category failed", zap.Error(err), zap.Int64("category_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListProducts(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(products) == 0 {
		kit.WriteError(w, r, http.StatusNotFound, "no products available", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

type createProductReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name required", nil)
		return
	}

	p, err := s.Store.AddProduct(r.Context(), Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if errors.Is(err, ErrCategoryNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"categoryId": req.CategoryID})
		return
	}
	if err != nil {
		if s.Log != nil {
			s.Log.Error("add product failed", zap.Error(err), zap.String("name", req.Name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("product created",
			zap.Int64("product_id", p.ID),
			zap.String("name", p.Name),
			zap.Int64("category_id", p.CategoryID),
		)
	}
	kit.WriteCreated(w, fmt.Sprintf("/products/%d", p.ID), p)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
		return
	}

	p, ok, err := s.Store.GetProduct(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.Int64("product_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listProductsByCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "categoryName")

	c, ok, err := s.Store.GetCategoryByName(r.Context(), name)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get category by name failed", zap.Error(err), zap.String("name", name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"name": name})
		return
	}

	products, err := s.Store.ListProductsByCategory(r.Context(), c.ID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products by category failed", zap.Error(err), zap.Int64("category_id", c.ID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(products) == 0 {
		kit.WriteError(w, r, http.StatusNotFound, "no products in category", map[string]any{"name": name})
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}

// pathID parses an integer route parameter. Non-integer ids are treated
// as not-found by the callers, never as a server error.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
