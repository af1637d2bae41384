package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
)

// ProductInput carries caller supplied product fields. Category is a category slug.
type ProductInput struct {
	Title    *string
	Slug     *string
	Category *string
	Size     *string
	Color    *string
	Price    *int64
	Active   *bool
}

// ProductService defines the interface for product business logic.
// Every read and write goes through the active scope except ListAll.
type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	ListAll(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categorySlug string, filter domain.ProductFilter) ([]*domain.Product, error)
	Get(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, slug string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, slug string) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return s.productRepo.ListActive(ctx, filter)
}

func (s *productService) ListAll(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return s.productRepo.ListAll(ctx, filter)
}

// ListByCategory lists active products of a category. An unknown category yields an empty list.
func (s *productService) ListByCategory(ctx context.Context, categorySlug string, filter domain.ProductFilter) ([]*domain.Product, error) {
	return s.productRepo.FilterByCategory(ctx, categorySlug, filter)
}

func (s *productService) Get(ctx context.Context, slug string) (*domain.Product, error) {
	return s.productRepo.FindBySlug(ctx, slug)
}

// Create validates the input, resolves the category and persists the product
func (s *productService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	product := &domain.Product{Active: true}

	if in.Category == nil {
		return nil, domain.NewValidationError("category", "this field is required")
	}
	if err := s.applyInput(ctx, product, in, true); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, productWriteError(err)
	}

	return product, nil
}

// Update applies the present fields of in to the active product identified by slug
func (s *productService) Update(ctx context.Context, slug string, in ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.applyInput(ctx, product, in, false); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, productWriteError(err)
	}

	return product, nil
}

// Delete hard-deletes the active product identified by slug
func (s *productService) Delete(ctx context.Context, slug string) error {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}

func (s *productService) applyInput(ctx context.Context, product *domain.Product, in ProductInput, creating bool) error {
	if in.Title != nil {
		product.Title = *in.Title
	}
	if err := requireText("title", product.Title); err != nil {
		return err
	}

	if in.Size != nil {
		product.Size = *in.Size
	}
	if in.Color != nil {
		product.Color = *in.Color
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return domain.NewValidationError("price", "ensure this value is greater than or equal to 0")
		}
		product.Price = *in.Price
	}
	if in.Active != nil {
		product.Active = *in.Active
	}

	if in.Category != nil {
		category, err := s.categoryRepo.FindBySlug(ctx, *in.Category)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domain.NewValidationError("category", fmt.Sprintf("object with slug=%s does not exist", *in.Category))
			}
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		product.CategoryID = category.ID
		product.CategorySlug = category.Slug
	}

	if creating || in.Slug != nil {
		var supplied string
		if in.Slug != nil {
			supplied = *in.Slug
		}
		slug, err := resolveSlug(supplied, product.Title)
		if err != nil {
			return err
		}
		product.Slug = slug
	}

	return nil
}

func productWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProductSlugExists):
		return domain.NewValidationError("slug", "product with this slug already exists")
	case errors.Is(err, repository.ErrCategoryNotFound):
		// The category was deleted between lookup and insert.
		return domain.NewValidationError("category", "category does not exist")
	default:
		return err
	}
}
