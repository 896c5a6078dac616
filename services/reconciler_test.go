package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"catalog-importer/models"

	"github.com/google/uuid"
)

// fakeProductStore is an in-memory ProductStore shared by the reconciler and
// importer tests.
type fakeProductStore struct {
	mu         sync.Mutex
	bySlug     map[string]*models.Product
	findErr    error
	createErr  error
	updateErr  error
	publishErr error

	createCalls  int
	updateCalls  int
	publishCalls int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{bySlug: make(map[string]*models.Product)}
}

func (f *fakeProductStore) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.bySlug[slug]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductStore) Create(ctx context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.createCalls++
	copied := *product
	f.bySlug[product.Slug] = &copied
	return nil
}

func (f *fakeProductStore) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCalls++
	for _, p := range f.bySlug {
		if p.ID != id {
			continue
		}
		if v, ok := updates["name"].(string); ok {
			p.Name = v
		}
		if v, ok := updates["price"].(float64); ok {
			p.Price = v
		}
		if v, ok := updates["stock"].(int); ok {
			p.Stock = v
		}
		if v, ok := updates["brand"].(string); ok {
			p.Brand = v
		}
		if v, ok := updates["active"].(bool); ok {
			p.Active = v
		}
		if v, ok := updates["category_ids"].([]uuid.UUID); ok {
			p.CategoryIDs = v
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	}
	return errors.New("product not found")
}

func (f *fakeProductStore) Publish(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.publishCalls++
	for _, p := range f.bySlug {
		if p.ID == id {
			p.Published = true
			return nil
		}
	}
	return errors.New("product not found")
}

func (f *fakeProductStore) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeProductStore) get(slug string) *models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bySlug[slug]
}

// fakeCategoryStore is an in-memory CategoryStore.
type fakeCategoryStore struct {
	mu           sync.Mutex
	categories   []models.Category
	associations map[uuid.UUID][]uuid.UUID
	findAllErr   error
	associateErr error
	findAllCalls int
}

func newFakeCategoryStore(slugs ...string) *fakeCategoryStore {
	store := &fakeCategoryStore{associations: make(map[uuid.UUID][]uuid.UUID)}
	for _, slug := range slugs {
		store.categories = append(store.categories, models.Category{
			ID:   uuid.New(),
			Name: slug,
			Slug: slug,
		})
	}
	return store
}

func (f *fakeCategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findAllCalls++
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeCategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			copied := f.categories[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) Create(ctx context.Context, category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeCategoryStore) HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.associations[categoryID]) > 0, nil
}

func (f *fakeCategoryStore) AssociateProduct(ctx context.Context, categoryID, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.associateErr != nil {
		return f.associateErr
	}
	for _, existing := range f.associations[categoryID] {
		if existing == productID {
			return nil
		}
	}
	f.associations[categoryID] = append(f.associations[categoryID], productID)
	return nil
}

func (f *fakeCategoryStore) handle(slug string) CategoryHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Slug == slug {
			return CategoryHandle{ID: c.ID, Slug: c.Slug}
		}
	}
	return CategoryHandle{}
}

func TestReconcileCreatesNewEntity(t *testing.T) {
	products := newFakeProductStore()
	categories := newFakeCategoryStore("tops")
	r := NewReconciler(products, categories)

	candidate := &CandidateRecord{
		Name:   "Red Shirt",
		Slug:   "red-shirt",
		Price:  10,
		Stock:  3,
		Brand:  "Acme",
		Active: true,
	}
	tops := categories.handle("tops")

	id, action, err := r.Reconcile(context.Background(), candidate, []CategoryHandle{tops})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionCreated {
		t.Fatalf("expected action created, got %q", action)
	}

	stored := products.get("red-shirt")
	if stored == nil {
		t.Fatal("expected product to be stored")
	}
	if stored.ID != id {
		t.Fatalf("returned id %s does not match stored id %s", id, stored.ID)
	}
	if !stored.Published {
		t.Fatal("expected product to be published after create")
	}
	if len(stored.CategoryIDs) != 1 || stored.CategoryIDs[0] != tops.ID {
		t.Fatalf("unexpected category ids: %v", stored.CategoryIDs)
	}
	if got := categories.associations[tops.ID]; len(got) != 1 || got[0] != id {
		t.Fatalf("expected category-side association to %s, got %v", id, got)
	}
}

func TestReconcileUpdatesExistingEntity(t *testing.T) {
	products := newFakeProductStore()
	categories := newFakeCategoryStore("tops", "sale")
	r := NewReconciler(products, categories)

	existing := &models.Product{
		ID:          uuid.New(),
		Name:        "Red Shirt",
		Slug:        "red-shirt",
		Price:       10,
		CategoryIDs: []uuid.UUID{categories.handle("sale").ID},
	}
	products.bySlug["red-shirt"] = existing

	candidate := &CandidateRecord{Name: "Red Shirt", Slug: "red-shirt", Price: 12, Active: true}
	tops := categories.handle("tops")

	id, action, err := r.Reconcile(context.Background(), candidate, []CategoryHandle{tops})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action != ActionUpdated {
		t.Fatalf("expected action updated, got %q", action)
	}
	if id != existing.ID {
		t.Fatalf("expected stable id %s, got %s", existing.ID, id)
	}

	stored := products.get("red-shirt")
	if stored.Price != 12 {
		t.Fatalf("expected price 12 after update, got %v", stored.Price)
	}
	// Full replace: the prior "sale" association is gone.
	if len(stored.CategoryIDs) != 1 || stored.CategoryIDs[0] != tops.ID {
		t.Fatalf("expected category set replaced with [tops], got %v", stored.CategoryIDs)
	}
}

func TestReconcilePublishFailureLeavesDraft(t *testing.T) {
	products := newFakeProductStore()
	products.publishErr = errors.New("store unavailable")
	categories := newFakeCategoryStore()
	r := NewReconciler(products, categories)

	candidate := &CandidateRecord{Name: "Widget", Slug: "widget", Price: 1}
	_, _, err := r.Reconcile(context.Background(), candidate, nil)
	if err == nil {
		t.Fatal("expected publish failure to fail the row")
	}

	// The write is not rolled back: the draft persists unpublished.
	stored := products.get("widget")
	if stored == nil {
		t.Fatal("expected draft to persist after publish failure")
	}
	if stored.Published {
		t.Fatal("expected draft to remain unpublished")
	}
}

func TestReconcileAssociationFailureFailsRow(t *testing.T) {
	products := newFakeProductStore()
	categories := newFakeCategoryStore("tops")
	categories.associateErr = errors.New("category write failed")
	r := NewReconciler(products, categories)

	candidate := &CandidateRecord{Name: "Widget", Slug: "widget", Price: 1}
	_, _, err := r.Reconcile(context.Background(), candidate, []CategoryHandle{categories.handle("tops")})
	if err == nil {
		t.Fatal("expected association failure to fail the row")
	}
}

func TestReconcileLookupFailure(t *testing.T) {
	products := newFakeProductStore()
	products.findErr = errors.New("store down")
	r := NewReconciler(products, newFakeCategoryStore())

	_, _, err := r.Reconcile(context.Background(), &CandidateRecord{Name: "W", Slug: "w", Price: 1}, nil)
	if err == nil {
		t.Fatal("expected lookup failure to fail the row")
	}
	if products.createCalls != 0 || products.publishCalls != 0 {
		t.Fatal("expected no writes after lookup failure")
	}
}
