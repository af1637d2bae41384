package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
)

// CategoryInput carries caller supplied category fields. A nil field is left unchanged on
// update and takes its default on create.
type CategoryInput struct {
	Title       *string
	Slug        *string
	Description *string
	Active      *bool
}

// CategoryService defines the interface for category business logic
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, in CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, slug string, in CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categoryRepo.FindBySlug(ctx, slug)
}

// Create validates the input, derives a missing slug from the title and persists the category
func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	category := &domain.Category{Active: true}
	if err := applyCategoryInput(category, in, true); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, categoryWriteError(err)
	}

	return category, nil
}

// Update applies the present fields of in to the category identified by slug
func (s *categoryService) Update(ctx context.Context, slug string, in CategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := applyCategoryInput(category, in, false); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, categoryWriteError(err)
	}

	return category, nil
}

// Delete removes a category that no product references, active or not
func (s *categoryService) Delete(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	total, err := s.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if total > 0 {
		return repository.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, category.ID)
}

func applyCategoryInput(category *domain.Category, in CategoryInput, creating bool) error {
	if in.Title != nil {
		category.Title = *in.Title
	}
	if err := requireText("title", category.Title); err != nil {
		return err
	}

	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Active != nil {
		category.Active = *in.Active
	}

	// On update the stored slug stays unless the caller sends one, possibly empty.
	if creating || in.Slug != nil {
		var supplied string
		if in.Slug != nil {
			supplied = *in.Slug
		}
		slug, err := resolveSlug(supplied, category.Title)
		if err != nil {
			return err
		}
		category.Slug = slug
	}

	return nil
}

func categoryWriteError(err error) error {
	if errors.Is(err, repository.ErrCategorySlugExists) {
		return domain.NewValidationError("slug", "category with this slug already exists")
	}
	return err
}
