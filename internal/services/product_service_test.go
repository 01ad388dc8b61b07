package services

import (
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// fakeProductStore serves pages from an in-memory slice already ordered
// most-recent-first, mirroring the repository's ORDER BY id DESC.
type fakeProductStore struct {
	products  []models.Product
	lastQuery models.ListingQuery
	nextID    int64
}

func (s *fakeProductStore) Create(p models.Product) (models.Product, error) {
	s.nextID++
	p.ID = s.nextID
	s.products = append([]models.Product{p}, s.products...)
	return p, nil
}

func (s *fakeProductStore) GetByID(id int64) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, domain.NotFoundError{Resource: "product"}
}

func (s *fakeProductStore) IncrementViews(id int64) error {
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].Views++
			return nil
		}
	}
	return domain.NotFoundError{Resource: "product"}
}

func (s *fakeProductStore) List(q models.ListingQuery) ([]models.Product, int, error) {
	s.lastQuery = q
	total := len(s.products)
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	page := append([]models.Product{}, s.products[start:end]...)
	return page, total, nil
}

func seedProducts(n int) *fakeProductStore {
	store := &fakeProductStore{}
	for i := 0; i < n; i++ {
		_, _ = store.Create(models.Product{Title: "item", Description: "d", Price: int64(i * 10), Continents: 1})
	}
	return store
}

func TestListHasMoreAgainstTotal(t *testing.T) {
	svc := ProductService{Products: seedProducts(10)}

	page, err := svc.List(models.ListingQuery{Skip: 8, Limit: 4})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(page.Products) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Products))
	}
	if page.HasMore {
		t.Fatalf("skip 8 + 2 returned = 10 total, hasMore must be false")
	}
}

func TestListHasMoreTrueWhenRowsRemain(t *testing.T) {
	svc := ProductService{Products: seedProducts(10)}

	page, err := svc.List(models.ListingQuery{Skip: 0, Limit: 4})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(page.Products) != 4 || !page.HasMore {
		t.Fatalf("expected 4 items with hasMore=true, got %d items hasMore=%v", len(page.Products), page.HasMore)
	}
}

func TestListZeroLimitHonestHasMore(t *testing.T) {
	svc := ProductService{Products: seedProducts(3)}

	page, err := svc.List(models.ListingQuery{Skip: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(page.Products) != 0 {
		t.Fatalf("limit 0 must return empty page, got %d", len(page.Products))
	}
	if !page.HasMore {
		t.Fatalf("3 matching rows remain beyond an empty page, hasMore must be true")
	}
}

func TestListNormalizesQuery(t *testing.T) {
	store := seedProducts(1)
	svc := ProductService{Products: store}

	if _, err := svc.List(models.ListingQuery{Skip: -5, Limit: 2, SearchTerm: "  \t "}); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if store.lastQuery.Skip != 0 {
		t.Fatalf("negative skip should normalize to 0, got %d", store.lastQuery.Skip)
	}
	if store.lastQuery.SearchTerm != "" {
		t.Fatalf("whitespace search term should be empty, got %q", store.lastQuery.SearchTerm)
	}
}

func TestListRejectsNegativeLimit(t *testing.T) {
	svc := ProductService{Products: seedProducts(1)}

	_, err := svc.List(models.ListingQuery{Limit: -1})
	if !domain.IsFieldErrors(err) {
		t.Fatalf("expected field errors, got %v", err)
	}
}

func TestListRejectsInvertedPriceRange(t *testing.T) {
	svc := ProductService{Products: seedProducts(1)}

	_, err := svc.List(models.ListingQuery{
		Limit:   4,
		Filters: models.ListingFilters{Price: []models.PriceRange{{Min: 100, Max: 50}}},
	})
	if !domain.IsFieldErrors(err) {
		t.Fatalf("expected field errors, got %v", err)
	}
}

func TestCreateSetsWriterAndDefaults(t *testing.T) {
	store := &fakeProductStore{}
	svc := ProductService{Products: store}

	created, err := svc.Create(models.Product{Title: " Chair ", Description: "wooden", Price: 50, Views: 99, Sold: 99}, 7)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.Writer != 7 {
		t.Fatalf("writer = %d, want 7", created.Writer)
	}
	if created.Continents != 1 {
		t.Fatalf("continents should default to 1, got %d", created.Continents)
	}
	if created.Title != "Chair" {
		t.Fatalf("title should be trimmed, got %q", created.Title)
	}
	if created.Views != 0 || created.Sold != 0 {
		t.Fatalf("views/sold must start at zero, got %d/%d", created.Views, created.Sold)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := ProductService{Products: &fakeProductStore{}}

	_, err := svc.Create(models.Product{Title: "", Description: "", Price: -1}, 1)
	if !domain.IsFieldErrors(err) {
		t.Fatalf("expected field errors, got %v", err)
	}
	fieldErrs := err.(domain.FieldErrors)
	for _, field := range []string{"title", "description", "price"} {
		if fieldErrs[field] == "" {
			t.Fatalf("expected message for %q, got %#v", field, fieldErrs)
		}
	}
}

func TestDetailIncrementsViews(t *testing.T) {
	store := seedProducts(1)
	svc := ProductService{Products: store}

	p, err := svc.Detail(1)
	if err != nil {
		t.Fatalf("detail error: %v", err)
	}
	if p.Views != 1 {
		t.Fatalf("views = %d, want 1 after first detail view", p.Views)
	}
	if store.products[0].Views != 1 {
		t.Fatalf("store views = %d, want 1", store.products[0].Views)
	}
}
