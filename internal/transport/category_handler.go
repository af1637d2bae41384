package transport

import (
	"net/http"

	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryRequest is the body of POST and PUT. An omitted or empty slug is derived from the title.
type CategoryRequest struct {
	Title       string  `json:"title" validate:"required,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,max=50,slug"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// CategoryPatchRequest is the body of PATCH; absent fields are left unchanged.
type CategoryPatchRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Slug        *string `json:"slug" validate:"omitempty,max=50,slug"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (req CategoryRequest) input() service.CategoryInput {
	return service.CategoryInput{
		Title:       &req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Active:      req.Active,
	}
}

func (req CategoryPatchRequest) input() service.CategoryInput {
	return service.CategoryInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Active:      req.Active,
	}
}

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categoryService service.CategoryService
	links           *Links
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, links *Links, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		links:           links,
		logger:          logger,
	}
}

// RegisterRoutes mounts the category endpoints. protect guards every mutating route.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(protect).Post("/", h.Create)

		r.Get("/{slug}", h.Get)
		r.With(protect).Put("/{slug}", h.Replace)
		r.With(protect).Patch("/{slug}", h.Patch)
		r.With(protect).Delete("/{slug}", h.Delete)
	})
}

// List returns every category in insertion order
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger, "List categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.links.categories(r, categories))
}

// Get returns a single category by slug
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, r, err, h.logger, "Get category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.links.category(r, category))
}

// Create handles category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	category, err := h.categoryService.Create(r.Context(), req.input())
	if err != nil {
		respondServiceError(w, r, err, h.logger, "Create category")
		return
	}

	h.logger.Info("Category created", zap.String("slug", category.Slug))
	middleware.RespondWithJSON(w, http.StatusCreated, h.links.category(r, category))
}

// Replace handles a full update; title is required
func (h *CategoryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	h.update(w, r, req.input())
}

// Patch handles a partial update
func (h *CategoryHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req CategoryPatchRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	h.update(w, r, req.input())
}

func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request, in service.CategoryInput) {
	slug := chi.URLParam(r, "slug")

	category, err := h.categoryService.Update(r.Context(), slug, in)
	if err != nil {
		respondServiceError(w, r, err, h.logger, "Update category")
		return
	}

	h.logger.Info("Category updated", zap.String("slug", slug), zap.String("new_slug", category.Slug))
	middleware.RespondWithJSON(w, http.StatusOK, h.links.category(r, category))
}

// Delete removes a category no product references
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.categoryService.Delete(r.Context(), slug); err != nil {
		respondServiceError(w, r, err, h.logger, "Delete category")
		return
	}

	h.logger.Info("Category deleted", zap.String("slug", slug))
	middleware.RespondNoContent(w)
}
