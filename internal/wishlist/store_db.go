package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"ShopList/internal/catalog"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	pgUniqueCode = "23505"
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

func (s *PostgresStore) Get(ctx context.Context, userID int64) (Wishlist, bool, error) {
	var wl Wishlist

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if err := s.db.QueryRowContext(ctx, `
			SELECT id, user_id
			FROM wishlists
			WHERE user_id = $1
		`, userID).Scan(&wl.ID, &wl.UserID); err != nil {
			return err
		}

		rows, err := s.db.QueryContext(ctx, `
			SELECT p.id, p.name, p.description, p.price, p.category_id
			FROM wishlist_products wp
			JOIN products p ON p.id = wp.product_id
			WHERE wp.wishlist_id = $1
			ORDER BY p.id ASC
		`, wl.ID)
		if err != nil {
			return err
		}
		defer rows.Close()

		wl.Products = make([]catalog.Product, 0, 8)
		for rows.Next() {
			var p catalog.Product
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID); err != nil {
				return err
			}
			wl.Products = append(wl.Products, p)
		}
		return rows.Err()
	})

	if err == sql.ErrNoRows {
		return Wishlist{}, false, nil
	}
	if err != nil {
		return Wishlist{}, false, err
	}
	return wl, true, nil
}

// AddProduct creates the wishlist row and the membership in one
// transaction, so a brand-new user's first add is never dropped.
func (s *PostgresStore) AddProduct(ctx context.Context, userID int64, p catalog.Product) error {
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wishlists (user_id)
			VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING
		`, userID); err != nil {
			return err
		}

		var wishlistID int64
		if err := tx.QueryRowContext(ctx, `
			SELECT id
			FROM wishlists
			WHERE user_id = $1
		`, userID).Scan(&wishlistID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wishlist_products (wishlist_id, product_id)
			VALUES ($1, $2)
		`, wishlistID, p.ID); err != nil {
			return err
		}

		return tx.Commit()
	})

	if isUniqueViolation(err) {
		return ErrAlreadyInWishlist
	}
	return err
}

func (s *PostgresStore) RemoveProduct(ctx context.Context, userID, productID int64) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM wishlist_products wp
			USING wishlists w
			WHERE wp.wishlist_id = w.id
			  AND w.user_id = $1
			  AND wp.product_id = $2
		`, userID, productID)
		return err
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
