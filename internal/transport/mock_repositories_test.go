package transport

import (
	"context"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing. They hand out copies so a failed write leaves stored state intact.

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repository.ErrUserAlreadyExists
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Created = time.Now()
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockCategoryRepository struct {
	categories []*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{}
}

func (m *mockCategoryRepository) indexOf(id uuid.UUID) int {
	for i, c := range m.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (m *mockCategoryRepository) slugTaken(slug string, except uuid.UUID) bool {
	for _, c := range m.categories {
		if c.Slug == slug && c.ID != except {
			return true
		}
	}
	return false
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.slugTaken(category.Slug, uuid.Nil) {
		return repository.ErrCategorySlugExists
	}
	category.ID = uuid.New()
	domain.BeforeCreate(ctx, category, time.Now())
	stored := *category
	m.categories = append(m.categories, &stored)
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	i := m.indexOf(category.ID)
	if i < 0 {
		return repository.ErrCategoryNotFound
	}
	if m.slugTaken(category.Slug, category.ID) {
		return repository.ErrCategorySlugExists
	}
	domain.BeforeUpdate(ctx, category, time.Now())
	stored := *category
	m.categories[i] = &stored
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	i := m.indexOf(id)
	if i < 0 {
		return repository.ErrCategoryNotFound
	}
	m.categories = append(m.categories[:i], m.categories[i+1:]...)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	i := m.indexOf(id)
	if i < 0 {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *m.categories[i]
	return &cp, nil
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

type mockProductRepository struct {
	products []*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{}
}

func (m *mockProductRepository) indexOf(id uuid.UUID) int {
	for i, p := range m.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *mockProductRepository) slugTaken(slug string, except uuid.UUID) bool {
	for _, p := range m.products {
		if p.Slug == slug && p.ID != except {
			return true
		}
	}
	return false
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.slugTaken(product.Slug, uuid.Nil) {
		return repository.ErrProductSlugExists
	}
	product.ID = uuid.New()
	domain.BeforeCreate(ctx, product, time.Now())
	stored := *product
	m.products = append(m.products, &stored)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	i := m.indexOf(product.ID)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	if m.slugTaken(product.Slug, product.ID) {
		return repository.ErrProductSlugExists
	}
	domain.BeforeUpdate(ctx, product, time.Now())
	stored := *product
	m.products[i] = &stored
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	i := m.indexOf(id)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	m.products = append(m.products[:i], m.products[i+1:]...)
	return nil
}

func (m *mockProductRepository) find(slug string, activeOnly bool) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug && (p.Active || !activeOnly) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return m.find(slug, true)
}

func (m *mockProductRepository) FindBySlugIncludingInactive(ctx context.Context, slug string) (*domain.Product, error) {
	return m.find(slug, false)
}

func (m *mockProductRepository) list(filter domain.ProductFilter, activeOnly bool) []*domain.Product {
	out := []*domain.Product{}
	for _, p := range m.products {
		if activeOnly && !p.Active {
			continue
		}
		if filter.Matches(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (m *mockProductRepository) ListActive(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return m.list(filter, true), nil
}

func (m *mockProductRepository) ListAll(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return m.list(filter, false), nil
}

func (m *mockProductRepository) FilterByCategory(ctx context.Context, categorySlug string, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.CategorySlug = categorySlug
	return m.list(filter, true), nil
}

func (m *mockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	total := 0
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			total++
		}
	}
	return total, nil
}
