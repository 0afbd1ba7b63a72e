package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/nmoreira/storefront-core/pkg/errors"
)

const defaultPageSize = 10

// Page is the uniform result of one remote fetch call.
type Page struct {
	Items   []Product
	Total   int
	HasMore bool
}

// Source fetches product pages from the remote catalog endpoint.
type Source struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
}

// SourceOption configures optional source behavior.
type SourceOption func(*Source)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *Source) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithPageSize overrides the default page size.
func WithPageSize(size int) SourceOption {
	return func(s *Source) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// NewSource builds a catalog source for the given base URL.
func NewSource(baseURL string, opts ...SourceOption) (*Source, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog base url is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog base url")
	}

	source := &Source{
		baseURL:    trimmed,
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(source)
		}
	}
	return source, nil
}

// PageSize returns the configured page size.
func (s *Source) PageSize() int {
	return s.pageSize
}

// pageEnvelope mirrors the remote response shape.
type pageEnvelope struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// FetchPage retrieves one page of products. Page numbers start at 1. Failures
// come back as coded fetch errors carrying a displayable public message; no
// retry happens here, the caller decides when to try again.
func (s *Source) FetchPage(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		return Page{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("page number must be positive, got %d", page))
	}

	skip := (page - 1) * s.pageSize
	endpoint := fmt.Sprintf("%s/products?limit=%d&skip=%d", s.baseURL, s.pageSize, skip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeFetch, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeFetch, err, "call catalog endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Page{}, pkgerrors.New(pkgerrors.CodeFetch, "catalog responded with status "+strconv.Itoa(resp.StatusCode))
	}

	var envelope pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeFetch, err, "decode catalog response")
	}

	return Page{
		Items:   envelope.Products,
		Total:   envelope.Total,
		HasMore: skip+s.pageSize < envelope.Total,
	}, nil
}
