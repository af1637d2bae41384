package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategorySlugExists = errors.New("category with this slug already exists")
	ErrCategoryInUse      = errors.New("category is referenced by products")
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type categoryRepository struct {
	db  *sql.DB
	now Clock
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db, now: utcNow}
}

const categoryColumns = `id, title, slug, description, active, created, updated, creator_id, last_modified_by_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(
		&category.ID,
		&category.Title,
		&category.Slug,
		&category.Description,
		&category.Active,
		&category.Created,
		&category.Updated,
		&category.CreatorID,
		&category.LastModifiedByID,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Create inserts a new category, assigning its ID and stamping its audit fields
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate category id: %w", err)
	}

	category.ID = id
	domain.BeforeCreate(ctx, category, r.now())

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		category.ID,
		category.Title,
		category.Slug,
		category.Description,
		category.Active,
		category.Created,
		category.Updated,
		category.CreatorID,
		category.LastModifiedByID,
	)

	if err != nil {
		if isConstraintViolation(err, pgUniqueViolation, "categories_slug_key") {
			return ErrCategorySlugExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update writes every mutable column of category and re-stamps its audit fields
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	domain.BeforeUpdate(ctx, category, r.now())

	query := `
		UPDATE categories
		SET title = $2, slug = $3, description = $4, active = $5,
		    updated = $6, last_modified_by_id = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		category.ID,
		category.Title,
		category.Slug,
		category.Description,
		category.Active,
		category.Updated,
		category.LastModifiedByID,
	)

	if err != nil {
		if isConstraintViolation(err, pgUniqueViolation, "categories_slug_key") {
			return ErrCategorySlugExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category. Categories still referenced by products are rejected.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isConstraintViolation(err, pgForeignKeyViolation, "") {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// List retrieves all categories in insertion order
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a category by ID
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

// FindBySlug retrieves a category by slug
func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by slug: %w", err)
	}

	return category, nil
}
