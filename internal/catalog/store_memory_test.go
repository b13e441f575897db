package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMemStore_AddCategoryThenGet(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	c, err := s.AddCategory(ctx, "Books")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if c.ID != 1 {
		t.Fatalf("id=%d want=1", c.ID)
	}

	got, ok, err := s.GetCategory(ctx, c.ID)
	if err != nil || !ok {
		t.Fatalf("get category ok=%v err=%v", ok, err)
	}
	if got.Name != "Books" {
		t.Fatalf("name=%q", got.Name)
	}
}

func TestMemStore_AddCategory_DuplicateNamesAllowed(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	a, _ := s.AddCategory(ctx, "Books")
	b, err := s.AddCategory(ctx, "Books")
	if err != nil {
		t.Fatalf("duplicate name rejected: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("ids not distinct: %d", a.ID)
	}

	// Lookup by name resolves to the earliest record.
	got, ok, _ := s.GetCategoryByName(ctx, "Books")
	if !ok || got.ID != a.ID {
		t.Fatalf("by-name ok=%v id=%d want=%d", ok, got.ID, a.ID)
	}
}

func TestMemStore_GetCategoryByName_ExactMatchOnly(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if _, err := s.AddCategory(ctx, "Tools"); err != nil {
		t.Fatalf("add category: %v", err)
	}

	for _, name := range []string{"tools", "Tool", "TOOLS", " Tools"} {
		if _, ok, _ := s.GetCategoryByName(ctx, name); ok {
			t.Fatalf("lookup %q matched %q", name, "Tools")
		}
	}

	if _, ok, _ := s.GetCategoryByName(ctx, "Tools"); !ok {
		t.Fatalf("exact lookup missed")
	}
}

func TestMemStore_AddProductThenGet(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	c, _ := s.AddCategory(ctx, "Books")

	p, err := s.AddProduct(ctx, Product{
		Name:        "Atlas",
		Description: "world maps",
		Price:       decimal.RequireFromString("9.99"),
		CategoryID:  c.ID,
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if p.ID != 1 {
		t.Fatalf("id=%d want=1", p.ID)
	}

	got, ok, err := s.GetProduct(ctx, p.ID)
	if err != nil || !ok {
		t.Fatalf("get product ok=%v err=%v", ok, err)
	}
	if got.Name != "Atlas" || got.Description != "world maps" || got.CategoryID != c.ID {
		t.Fatalf("fields mismatch: %+v", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("price=%s", got.Price)
	}

	second, _ := s.AddProduct(ctx, Product{Name: "Globe", Price: decimal.New(1999, -2), CategoryID: c.ID})
	if second.ID == p.ID {
		t.Fatalf("ids not distinct: %d", second.ID)
	}
}

func TestMemStore_AddProduct_MissingCategory(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	_, err := s.AddProduct(ctx, Product{Name: "Atlas", CategoryID: 42})
	if err != ErrCategoryNotFound {
		t.Fatalf("err=%v want=ErrCategoryNotFound", err)
	}

	products, _ := s.ListProducts(ctx)
	if len(products) != 0 {
		t.Fatalf("rejected add persisted: %d products", len(products))
	}
}

func TestMemStore_ListProductsByCategory(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	books, _ := s.AddCategory(ctx, "Books")
	tools, _ := s.AddCategory(ctx, "Tools")

	_, _ = s.AddProduct(ctx, Product{Name: "Atlas", CategoryID: books.ID})
	_, _ = s.AddProduct(ctx, Product{Name: "Hammer", CategoryID: tools.ID})
	_, _ = s.AddProduct(ctx, Product{Name: "Almanac", CategoryID: books.ID})

	got, err := s.ListProductsByCategory(ctx, books.ID)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d want=2", len(got))
	}
	for _, p := range got {
		if p.CategoryID != books.ID {
			t.Fatalf("wrong category: %+v", p)
		}
	}

	empty, _ := s.ListProductsByCategory(ctx, 99)
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}
}

func TestMemStore_DeleteProduct(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	c, _ := s.AddCategory(ctx, "Books")
	p, _ := s.AddProduct(ctx, Product{Name: "Atlas", CategoryID: c.ID})

	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.GetProduct(ctx, p.ID); ok {
		t.Fatalf("product still present after delete")
	}

	// Deleting an absent product is a no-op.
	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}
