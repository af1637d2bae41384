package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductSlugExists = errors.New("product with this slug already exists")
)

// ProductRepository defines the interface for product data access.
//
// Reads are scoped to active products unless the method name says otherwise;
// callers that need inactive rows must use an IncludingInactive/All variant.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	FindBySlugIncludingInactive(ctx context.Context, slug string) (*domain.Product, error)
	ListActive(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	ListAll(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	FilterByCategory(ctx context.Context, categorySlug string, filter domain.ProductFilter) ([]*domain.Product, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type productRepository struct {
	db  *sql.DB
	now Clock
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db, now: utcNow}
}

const productSelect = `
	SELECT p.id, p.title, p.slug, p.category_id, c.slug, p.size, p.color, p.price, p.active,
	       p.created, p.updated, p.creator_id, p.last_modified_by_id
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Slug,
		&product.CategoryID,
		&product.CategorySlug,
		&product.Size,
		&product.Color,
		&product.Price,
		&product.Active,
		&product.Created,
		&product.Updated,
		&product.CreatorID,
		&product.LastModifiedByID,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// productQuery accumulates WHERE predicates and their positional arguments.
type productQuery struct {
	conditions []string
	args       []any
}

func (q *productQuery) add(condition string, arg any) {
	q.args = append(q.args, arg)
	q.conditions = append(q.conditions, fmt.Sprintf(condition, len(q.args)))
}

func (q *productQuery) where() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(q.conditions, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func newProductQuery(activeOnly bool, filter domain.ProductFilter) *productQuery {
	q := &productQuery{}

	if activeOnly {
		q.conditions = append(q.conditions, "p.active = TRUE")
	}
	if filter.CategorySlug != "" {
		q.add("c.slug = $%d", filter.CategorySlug)
	}
	if filter.Color != "" {
		q.add(`p.color ILIKE $%d ESCAPE '\'`, "%"+likeEscaper.Replace(filter.Color)+"%")
	}
	if filter.Size != "" {
		q.add("p.size = $%d", filter.Size)
	}
	if filter.MinPrice != nil {
		q.add("p.price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q.add("p.price <= $%d", *filter.MaxPrice)
	}

	return q
}

// Create inserts a new product, assigning its ID and stamping its audit fields
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate product id: %w", err)
	}

	product.ID = id
	domain.BeforeCreate(ctx, product, r.now())

	query := `
		INSERT INTO products (id, title, slug, category_id, size, color, price, active,
		                      created, updated, creator_id, last_modified_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Title,
		product.Slug,
		product.CategoryID,
		product.Size,
		product.Color,
		product.Price,
		product.Active,
		product.Created,
		product.Updated,
		product.CreatorID,
		product.LastModifiedByID,
	)

	if err != nil {
		return r.translateWriteError("create", err)
	}

	return nil
}

// Update writes every mutable column of product and re-stamps its audit fields
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	domain.BeforeUpdate(ctx, product, r.now())

	query := `
		UPDATE products
		SET title = $2, slug = $3, category_id = $4, size = $5, color = $6,
		    price = $7, active = $8, updated = $9, last_modified_by_id = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Title,
		product.Slug,
		product.CategoryID,
		product.Size,
		product.Color,
		product.Price,
		product.Active,
		product.Updated,
		product.LastModifiedByID,
	)

	if err != nil {
		return r.translateWriteError("update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) translateWriteError(op string, err error) error {
	switch {
	case isConstraintViolation(err, pgUniqueViolation, "products_slug_key"):
		return ErrProductSlugExists
	case isConstraintViolation(err, pgForeignKeyViolation, "fk_products_category"):
		return ErrCategoryNotFound
	default:
		return fmt.Errorf("failed to %s product: %w", op, err)
	}
}

// Delete removes a product regardless of its active flag
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindBySlug retrieves an active product by slug
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findBySlug(ctx, slug, true)
}

// FindBySlugIncludingInactive retrieves a product by slug whatever its active flag
func (r *productRepository) FindBySlugIncludingInactive(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findBySlug(ctx, slug, false)
}

func (r *productRepository) findBySlug(ctx context.Context, slug string, activeOnly bool) (*domain.Product, error) {
	q := newProductQuery(activeOnly, domain.ProductFilter{})
	q.add("p.slug = $%d", slug)

	product, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+q.where(), q.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by slug: %w", err)
	}

	return product, nil
}

// ListActive retrieves active products matching filter in insertion order
func (r *productRepository) ListActive(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return r.list(ctx, newProductQuery(true, filter))
}

// ListAll retrieves products matching filter including inactive ones
func (r *productRepository) ListAll(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return r.list(ctx, newProductQuery(false, filter))
}

// FilterByCategory retrieves active products of the category with the given slug.
// The slug argument takes precedence over filter.CategorySlug.
func (r *productRepository) FilterByCategory(ctx context.Context, categorySlug string, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.CategorySlug = categorySlug
	return r.ListActive(ctx, filter)
}

func (r *productRepository) list(ctx context.Context, q *productQuery) ([]*domain.Product, error) {
	query := productSelect + q.where() + " ORDER BY p.id ASC"

	rows, err := r.db.QueryContext(ctx, query, q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// CountByCategory counts every product referencing the category, active or not
func (r *productRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}
