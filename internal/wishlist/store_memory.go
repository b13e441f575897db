package wishlist

import (
	"context"
	"sync"

	"ShopList/internal/catalog"
)

type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	byUser map[int64]*Wishlist
}

func NewMemStore() *MemStore {
	return &MemStore{byUser: map[int64]*Wishlist{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Get(ctx context.Context, userID int64) (Wishlist, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wl, ok := s.byUser[userID]
	if !ok {
		return Wishlist{}, false, nil
	}

	out := Wishlist{ID: wl.ID, UserID: wl.UserID}
	out.Products = append([]catalog.Product(nil), wl.Products...)
	return out, true, nil
}

func (s *MemStore) AddProduct(ctx context.Context, userID int64, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl, ok := s.byUser[userID]
	if !ok {
		s.nextID++
		wl = &Wishlist{ID: s.nextID, UserID: userID}
		s.byUser[userID] = wl
	}

	for _, m := range wl.Products {
		if m.ID == p.ID {
			return ErrAlreadyInWishlist
		}
	}

	wl.Products = append(wl.Products, p)
	return nil
}

func (s *MemStore) RemoveProduct(ctx context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wl, ok := s.byUser[userID]
	if !ok {
		return nil
	}

	for i, m := range wl.Products {
		if m.ID == productID {
			wl.Products = append(wl.Products[:i], wl.Products[i+1:]...)
			return nil
		}
	}
	return nil
}
