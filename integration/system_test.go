//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E_WithDB(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	// Unique names keep reruns against a shared database independent.
	categoryName := "cat_" + uuid.NewString()

	var category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	doJSON(t, http.MethodPost, baseURL+"/categories", map[string]any{
		"name": categoryName,
	}, &category, 201)
	if category.ID == 0 {
		t.Fatalf("category id missing")
	}

	var product struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		CategoryID int64  `json:"categoryId"`
	}
	doJSON(t, http.MethodPost, baseURL+"/products", map[string]any{
		"name":        "Atlas " + uuid.NewString(),
		"description": "integration fixture",
		"price":       9.99,
		"categoryId":  category.ID,
	}, &product, 201)
	if product.ID == 0 {
		t.Fatalf("product id missing")
	}
	if product.CategoryID != category.ID {
		t.Fatalf("categoryId=%d want=%d", product.CategoryID, category.ID)
	}

	var inCategory []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products/category/"+categoryName, nil, &inCategory, 200)
	if len(inCategory) != 1 {
		t.Fatalf("products in category=%d want=1", len(inCategory))
	}

	userID := time.Now().UnixNano() % 1_000_000_000

	wishlistURL := fmt.Sprintf("%s/wishlist/%d/%d", baseURL, userID, product.ID)
	doJSON(t, http.MethodPost, wishlistURL, nil, nil, 200)
	doJSON(t, http.MethodPost, wishlistURL, nil, nil, 400)

	var members []map[string]any
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/wishlist/%d", baseURL, userID), nil, &members, 200)
	if len(members) != 1 {
		t.Fatalf("wishlist members=%d want=1", len(members))
	}

	doJSON(t, http.MethodDelete, wishlistURL, nil, nil, 200)
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/wishlist/%d", baseURL, userID), nil, nil, 404)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("service never became ready: %v", ctx.Err())
		default:
		}

		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func doJSON(t *testing.T, method, url string, body, out any, wantStatus int) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status=%d want=%d body=%s", method, url, resp.StatusCode, wantStatus, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s %s: %v body=%s", method, url, err, raw)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
