package transport

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

// AuditResponse is the read-only audit block carried by every catalog resource
type AuditResponse struct {
	Created        time.Time  `json:"created"`
	Updated        time.Time  `json:"updated"`
	Creator        *uuid.UUID `json:"creator"`
	LastModifiedBy *uuid.UUID `json:"last_modified_by"`
}

// CategoryResponse represents a category on the wire
type CategoryResponse struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Products    string `json:"products"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	AuditResponse
}

// ProductResponse represents a product on the wire. Category is the category slug.
type ProductResponse struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Category  string `json:"category"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Price     int64  `json:"price"`
	Active    bool   `json:"active"`
	DetailURL string `json:"detail_url"`
	AuditResponse
}

// Links builds the absolute hyperlinks embedded in responses
type Links struct {
	baseURL string
}

// NewLinks creates a Links. An empty baseURL means scheme and host come from each request.
func NewLinks(baseURL string) *Links {
	return &Links{baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *Links) base(r *http.Request) string {
	if l.baseURL != "" {
		return l.baseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	return scheme + "://" + r.Host
}

// CategoryProducts is the listing of a category's products
func (l *Links) CategoryProducts(r *http.Request, categorySlug string) string {
	return l.base(r) + "/products/category/" + url.PathEscape(categorySlug) + "/"
}

// ProductDetail is the detail endpoint of a product
func (l *Links) ProductDetail(r *http.Request, productSlug string) string {
	return l.base(r) + "/products/" + url.PathEscape(productSlug) + "/"
}

func auditResponse(a domain.Audit) AuditResponse {
	return AuditResponse{
		Created:        a.Created,
		Updated:        a.Updated,
		Creator:        a.CreatorID,
		LastModifiedBy: a.LastModifiedByID,
	}
}

func (l *Links) category(r *http.Request, c *domain.Category) CategoryResponse {
	return CategoryResponse{
		Title:         c.Title,
		Slug:          c.Slug,
		Products:      l.CategoryProducts(r, c.Slug),
		Description:   c.Description,
		Active:        c.Active,
		AuditResponse: auditResponse(c.Audit),
	}
}

func (l *Links) categories(r *http.Request, cs []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, l.category(r, c))
	}
	return out
}

func (l *Links) product(r *http.Request, p *domain.Product) ProductResponse {
	return ProductResponse{
		Title:         p.Title,
		Slug:          p.Slug,
		Category:      p.CategorySlug,
		Size:          p.Size,
		Color:         p.Color,
		Price:         p.Price,
		Active:        p.Active,
		DetailURL:     l.ProductDetail(r, p.Slug),
		AuditResponse: auditResponse(p.Audit),
	}
}

func (l *Links) products(r *http.Request, ps []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, l.product(r, p))
	}
	return out
}
