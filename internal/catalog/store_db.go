package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	pgForeignKeyCode = "23503"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name
			FROM categories
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Category, 0, 16)
		for rows.Next() {
			var c Category
			if err := rows.Scan(&c.ID, &c.Name); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, id int64) (Category, bool, error) {
	var c Category

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name
			FROM categories
			WHERE id = $1
		`, id).Scan(&c.ID, &c.Name)
	})

	if err == sql.ErrNoRows {
		return Category{}, false, nil
	}
	if err != nil {
		return Category{}, false, err
	}
	return c, true, nil
}

func (s *PostgresStore) GetCategoryByName(ctx context.Context, name string) (Category, bool, error) {
	var c Category

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name
			FROM categories
			WHERE name = $1
			ORDER BY id ASC
			LIMIT 1
		`, name).Scan(&c.ID, &c.Name)
	})

	if err == sql.ErrNoRows {
		return Category{}, false, nil
	}
	if err != nil {
		return Category{}, false, err
	}
	return c, true, nil
}

func (s *PostgresStore) AddCategory(ctx context.Context, name string) (Category, error) {
	c := Category{Name: name}

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO categories (name)
			VALUES ($1)
			RETURNING id
		`, name).Scan(&c.ID)
	})

	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx, `
		SELECT id, name, description, price, category_id
		FROM products
		ORDER BY id ASC
	`)
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name, description, price, category_id
			FROM products
			WHERE id = $1
		`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID)
	})

	if err == sql.ErrNoRows {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) ListProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	return s.queryProducts(ctx, `
		SELECT id, name, description, price, category_id
		FROM products
		WHERE category_id = $1
		ORDER BY id ASC
	`, categoryID)
}

// AddProduct relies on the category foreign key: a violation means the
// category is gone and nothing is persisted.
func (s *PostgresStore) AddProduct(ctx context.Context, p Product) (Product, error) {
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO products (name, description, price, category_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.Name, p.Description, p.Price, p.CategoryID).Scan(&p.ID)
	})

	if isForeignKeyViolation(err) {
		return Product{}, ErrCategoryNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM products
			WHERE id = $1
		`, id)
		return err
	})
}

func (s *PostgresStore) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyCode
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
