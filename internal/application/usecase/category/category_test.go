package category

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

type mockCategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
	references map[uuid.UUID]int64
	deleteErr  error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: map[uuid.UUID]*entity.Category{},
		references: map[uuid.UUID]int64{},
	}
}

func (m *mockCategoryRepository) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *c
	m.categories[c.ID] = &stored
	return nil
}

func (m *mockCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	found := *c
	return &found, nil
}

func (m *mockCategoryRepository) FindByName(_ context.Context, name string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name {
			found := *c
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepository) List(_ context.Context, t *entity.CategoryType) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Category{}
	for _, c := range m.categories {
		if t == nil || c.Type == *t {
			found := *c
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCategoryRepository) Update(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *c
	m.categories[c.ID] = &stored
	return nil
}

func (m *mockCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) CountTransactions(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.references[id], nil
}

type mockReportCache struct {
	adapter.ReportCache
	invalidations int
	err           error
}

func (m *mockReportCache) Invalidate(context.Context) error {
	m.invalidations++
	return m.err
}

func seedCategory(repo *mockCategoryRepository, name string, t entity.CategoryType) *entity.Category {
	c := entity.NewCategory(name, t)
	repo.categories[c.ID] = c
	return c
}

func categoryCode(t *testing.T, err error) domainerror.CategoryErrorCode {
	t.Helper()
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr), "expected category error, got %v", err)
	return catErr.Code
}

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	repo := newMockCategoryRepository()
	uc := NewCreateCategoryUseCase(repo)

	out, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "  Sales ", Type: "income"})

	require.NoError(t, err)
	assert.Equal(t, "Sales", out.Category.Name)
	assert.Equal(t, entity.CategoryTypeIncome, out.Category.Type)
	assert.Contains(t, repo.categories, out.Category.ID)
}

func TestCreateCategoryValidation(t *testing.T) {
	repo := newMockCategoryRepository()
	seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	uc := NewCreateCategoryUseCase(repo)

	tests := []struct {
		name  string
		input CreateCategoryInput
		code  domainerror.CategoryErrorCode
	}{
		{name: "blank name", input: CreateCategoryInput{Name: " ", Type: "INCOME"}, code: domainerror.ErrCodeMissingCategoryFields},
		{name: "long name", input: CreateCategoryInput{Name: strings.Repeat("n", 101), Type: "INCOME"}, code: domainerror.ErrCodeCategoryNameTooLong},
		{name: "bad type", input: CreateCategoryInput{Name: "Misc", Type: "TRANSFER"}, code: domainerror.ErrCodeInvalidCategoryType},
		{name: "duplicate", input: CreateCategoryInput{Name: "Rent", Type: "EXPENSE"}, code: domainerror.ErrCodeCategoryNameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.code, categoryCode(t, err))
		})
	}
}

func TestListCategoriesFiltersByType(t *testing.T) {
	repo := newMockCategoryRepository()
	seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	seedCategory(repo, "Sales", entity.CategoryTypeIncome)
	uc := NewListCategoriesUseCase(repo)

	out, err := uc.Execute(context.Background(), ListCategoriesInput{Type: "EXPENSE"})
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	assert.Equal(t, "Rent", out.Categories[0].Name)

	all, err := uc.Execute(context.Background(), ListCategoriesInput{})
	require.NoError(t, err)
	assert.Len(t, all.Categories, 2)

	_, err = uc.Execute(context.Background(), ListCategoriesInput{Type: "other"})
	assert.Equal(t, domainerror.ErrCodeInvalidCategoryType, categoryCode(t, err))
}

func TestUpdateCategory(t *testing.T) {
	repo := newMockCategoryRepository()
	rent := seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	seedCategory(repo, "Sales", entity.CategoryTypeIncome)
	cache := &mockReportCache{}
	uc := NewUpdateCategoryUseCase(repo, cache)

	out, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: rent.ID, Name: strPtr("Office rent")})
	require.NoError(t, err)
	assert.Equal(t, "Office rent", out.Category.Name)
	assert.Equal(t, entity.CategoryTypeExpense, out.Category.Type)
	assert.Equal(t, 1, cache.invalidations)

	_, err = uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: rent.ID, Name: strPtr("Sales")})
	assert.Equal(t, domainerror.ErrCodeCategoryNameExists, categoryCode(t, err))

	_, err = uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: uuid.New(), Type: strPtr("INCOME")})
	assert.Equal(t, domainerror.ErrCodeCategoryNotFound, categoryCode(t, err))
}

func TestUpdateCategoryKeepsOwnName(t *testing.T) {
	repo := newMockCategoryRepository()
	rent := seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	uc := NewUpdateCategoryUseCase(repo, &mockReportCache{err: errors.New("redis down")})

	out, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: rent.ID, Name: strPtr("Rent"), Type: strPtr("INCOME")})

	require.NoError(t, err)
	assert.Equal(t, entity.CategoryTypeIncome, out.Category.Type)
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newMockCategoryRepository()
	rent := seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	repo.references[rent.ID] = 2
	cache := &mockReportCache{}
	uc := NewDeleteCategoryUseCase(repo, cache)

	err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: rent.ID})

	assert.Equal(t, domainerror.ErrCodeCategoryInUse, categoryCode(t, err))
	assert.ErrorIs(t, err, domainerror.ErrCategoryInUse)
	assert.Contains(t, repo.categories, rent.ID)
	assert.Zero(t, cache.invalidations)
}

func TestDeleteCategoryForeignKeyRace(t *testing.T) {
	repo := newMockCategoryRepository()
	rent := seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	repo.deleteErr = domainerror.ErrCategoryInUse
	uc := NewDeleteCategoryUseCase(repo, &mockReportCache{})

	err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: rent.ID})

	assert.Equal(t, domainerror.ErrCodeCategoryInUse, categoryCode(t, err))
}

func TestDeleteCategoryUnreferenced(t *testing.T) {
	repo := newMockCategoryRepository()
	rent := seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	cache := &mockReportCache{}
	uc := NewDeleteCategoryUseCase(repo, cache)

	require.NoError(t, uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: rent.ID}))

	assert.NotContains(t, repo.categories, rent.ID)
	assert.Equal(t, 1, cache.invalidations)

	err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: rent.ID})
	assert.Equal(t, domainerror.ErrCodeCategoryNotFound, categoryCode(t, err))
}

func TestGetCategory(t *testing.T) {
	repo := newMockCategoryRepository()
	rent := seedCategory(repo, "Rent", entity.CategoryTypeExpense)
	uc := NewGetCategoryUseCase(repo)

	out, err := uc.Execute(context.Background(), GetCategoryInput{CategoryID: rent.ID})
	require.NoError(t, err)
	assert.Equal(t, "Rent", out.Category.Name)
}
