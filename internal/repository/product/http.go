package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"storefront/internal/domain"
)

const maxBodyBytes = 8 << 20

// StatusError reports a non-2xx answer from the catalog API.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: GET %s returned %d", e.URL, e.Code)
}

var errEmptyBody = errors.New("catalog: empty response body")

type httpRepo struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTP reads the catalog from a FakeStore-compatible API rooted at baseURL.
func NewHTTP(baseURL string, client *http.Client, logger *log.Logger) Repository {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &httpRepo{baseURL: baseURL, client: client, logger: logger}
}

func (r *httpRepo) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.getJSON(ctx, "/products", &products); err != nil {
		r.logger.Printf("catalog: list error=%v", err)
		return nil, err
	}
	r.logger.Printf("catalog: list count=%d", len(products))
	return products, nil
}

// GetByID maps both a 404 and the API's empty 200 for unknown ids to domain.ErrNotFound.
func (r *httpRepo) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	var p *domain.Product
	err := r.getJSON(ctx, "/products/"+strconv.Itoa(id), &p)
	if err != nil {
		var statusErr *StatusError
		if errors.Is(err, errEmptyBody) || (errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog: get id=%d error=%v", id, err)
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *httpRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.getJSON(ctx, "/products/categories", &categories); err != nil {
		r.logger.Printf("catalog: categories error=%v", err)
		return nil, err
	}
	return categories, nil
}

func (r *httpRepo) getJSON(ctx context.Context, path string, out interface{}) error {
	url := r.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", url, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", url, err)
	}
	return nil
}
