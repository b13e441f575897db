package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemStore backs local development and tests. IDs are serial, starting
// at 1, like the database sequences.
type MemStore struct {
	mu         sync.RWMutex
	nextCatID  int64
	nextProdID int64
	categories map[int64]Category
	products   map[int64]Product
}

func NewMemStore() *MemStore {
	return &MemStore{
		categories: map[int64]Category{},
		products:   map[int64]Product{},
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListCategories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetCategory(ctx context.Context, id int64) (Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	return c, ok, nil
}

func (s *MemStore) GetCategoryByName(ctx context.Context, name string) (Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found Category
		ok    bool
	)
	for _, c := range s.categories {
		if c.Name != name {
			continue
		}
		if !ok || c.ID < found.ID {
			found, ok = c, true
		}
	}
	return found, ok, nil
}

func (s *MemStore) AddCategory(ctx context.Context, name string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCatID++
	c := Category{ID: s.nextCatID, Name: name}
	s.categories[c.ID] = c
	return c, nil
}

func (s *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok, nil
}

func (s *MemStore) ListProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, 8)
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) AddProduct(ctx context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[p.CategoryID]; !ok {
		return Product{}, ErrCategoryNotFound
	}

	s.nextProdID++
	p.ID = s.nextProdID
	s.products[p.ID] = p
	return p, nil
}

func (s *MemStore) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}
