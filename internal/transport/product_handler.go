package transport

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest is the body of POST and PUT. Category is the slug of an existing category.
type ProductRequest struct {
	Title    string  `json:"title" validate:"required,max=120"`
	Slug     *string `json:"slug" validate:"omitempty,max=50,slug"`
	Category string  `json:"category" validate:"required"`
	Size     string  `json:"size" validate:"required,max=4"`
	Color    string  `json:"color" validate:"required,max=120"`
	Price    *int64  `json:"price" validate:"required,gte=0"`
	Active   *bool   `json:"active"`
}

// ProductPatchRequest is the body of PATCH; absent fields are left unchanged.
type ProductPatchRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=120"`
	Slug     *string `json:"slug" validate:"omitempty,max=50,slug"`
	Category *string `json:"category" validate:"omitempty,min=1"`
	Size     *string `json:"size" validate:"omitempty,min=1,max=4"`
	Color    *string `json:"color" validate:"omitempty,min=1,max=120"`
	Price    *int64  `json:"price" validate:"omitempty,gte=0"`
	Active   *bool   `json:"active"`
}

func (req ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Title:    &req.Title,
		Slug:     req.Slug,
		Category: &req.Category,
		Size:     &req.Size,
		Color:    &req.Color,
		Price:    req.Price,
		Active:   req.Active,
	}
}

func (req ProductPatchRequest) input() service.ProductInput {
	return service.ProductInput{
		Title:    req.Title,
		Slug:     req.Slug,
		Category: req.Category,
		Size:     req.Size,
		Color:    req.Color,
		Price:    req.Price,
		Active:   req.Active,
	}
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productService service.ProductService
	links          *Links
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, links *Links, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		links:          links,
		logger:         logger,
	}
}

// RegisterRoutes mounts the product endpoints. protect guards every mutating route.
func (h *ProductHandler) RegisterRoutes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(protect).Post("/", h.Create)

		r.Get("/category/{slug}", h.ListByCategory)

		r.Get("/{slug}", h.Get)
		r.With(protect).Put("/{slug}", h.Replace)
		r.With(protect).Patch("/{slug}", h.Patch)
		r.With(protect).Delete("/{slug}", h.Delete)
	})
}

// parseProductFilter reads size, color, min_price and max_price from the query string.
// Blank parameters impose no constraint.
func parseProductFilter(query url.Values) (domain.ProductFilter, []middleware.ValidationError) {
	filter := domain.ProductFilter{
		Color: query.Get("color"),
		Size:  query.Get("size"),
	}

	var errs []middleware.ValidationError
	parseBound := func(name string) *int64 {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, middleware.ValidationError{Field: name, Message: "Enter a number"})
			return nil
		}
		return &v
	}

	filter.MinPrice = parseBound("min_price")
	filter.MaxPrice = parseBound("max_price")

	return filter, errs
}

// List returns active products matching the query filters
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseProductFilter(r.URL.Query())
	if len(errs) > 0 {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	products, err := h.productService.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err, h.logger, "List products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.links.products(r, products))
}

// ListByCategory returns the active products of one category. An unknown category yields
// an empty list.
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseProductFilter(r.URL.Query())
	if len(errs) > 0 {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	products, err := h.productService.ListByCategory(r.Context(), chi.URLParam(r, "slug"), filter)
	if err != nil {
		respondServiceError(w, r, err, h.logger, "List category products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.links.products(r, products))
}

// Get returns an active product by slug
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, r, err, h.logger, "Get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.links.product(r, product))
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	product, err := h.productService.Create(r.Context(), req.input())
	if err != nil {
		respondServiceError(w, r, err, h.logger, "Create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("slug", product.Slug),
		zap.String("category", product.CategorySlug),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, h.links.product(r, product))
}

// Replace handles a full update
func (h *ProductHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	h.update(w, r, req.input())
}

// Patch handles a partial update
func (h *ProductHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req ProductPatchRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	h.update(w, r, req.input())
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, in service.ProductInput) {
	slug := chi.URLParam(r, "slug")

	product, err := h.productService.Update(r.Context(), slug, in)
	if err != nil {
		respondServiceError(w, r, err, h.logger, "Update product")
		return
	}

	h.logger.Info("Product updated", zap.String("slug", slug), zap.String("new_slug", product.Slug))
	middleware.RespondWithJSON(w, http.StatusOK, h.links.product(r, product))
}

// Delete hard-deletes an active product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.productService.Delete(r.Context(), slug); err != nil {
		respondServiceError(w, r, err, h.logger, "Delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("slug", slug))
	middleware.RespondNoContent(w)
}
