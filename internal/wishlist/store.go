package wishlist

import (
	"context"
	"errors"

	"ShopList/internal/catalog"
)

// ErrAlreadyInWishlist backstops the handler's duplicate check when two
// adds for the same user race past it.
var ErrAlreadyInWishlist = errors.New("product already in wishlist")

type Wishlist struct {
	ID       int64             `json:"id"`
	UserID   int64             `json:"userId"`
	Products []catalog.Product `json:"products"`
}

type Store interface {
	Ping(ctx context.Context) error

	// Get returns the user's wishlist with its member products. A user
	// who never added anything has no wishlist: ok is false.
	Get(ctx context.Context, userID int64) (Wishlist, bool, error)

	// AddProduct creates the user's wishlist on first use and records
	// the membership. Membership is set-semantics.
	AddProduct(ctx context.Context, userID int64, p catalog.Product) error

	// RemoveProduct is a no-op when the product is not a member.
	RemoveProduct(ctx context.Context, userID, productID int64) error
}

// ProductFinder is the slice of the catalog the wishlist handlers need.
type ProductFinder interface {
	GetProduct(ctx context.Context, id int64) (catalog.Product, bool, error)
}
