package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrCategoryNotFound is returned by AddProduct when the referenced
// category does not exist.
var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
}

type Store interface {
	Ping(ctx context.Context) error

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, bool, error)
	// GetCategoryByName matches exactly and case-sensitively.
	GetCategoryByName(ctx context.Context, name string) (Category, bool, error)
	AddCategory(ctx context.Context, name string) (Category, error)

	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (Product, bool, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error)
	AddProduct(ctx context.Context, p Product) (Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
