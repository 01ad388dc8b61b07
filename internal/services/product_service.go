package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/utils"
)

// ProductStore is the catalog persistence surface ProductService depends on.
type ProductStore interface {
	Create(p models.Product) (models.Product, error)
	GetByID(id int64) (models.Product, error)
	IncrementViews(id int64) error
	List(q models.ListingQuery) ([]models.Product, int, error)
}

type ProductService struct {
	Products  ProductStore
	RequestID string
}

// List normalizes the query and resolves one listing page. HasMore compares
// skip plus the returned page length against the total match count, so a
// zero limit still reports honestly whether matches exist.
func (s ProductService) List(q models.ListingQuery) (models.ListingPage, error) {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit < 0 {
		return models.ListingPage{}, domain.FieldErrors{"limit": "limit must not be negative"}
	}
	q.SearchTerm = strings.TrimSpace(q.SearchTerm)

	for _, pr := range q.Filters.Price {
		if pr.Min > pr.Max {
			return models.ListingPage{}, domain.FieldErrors{"filters": "price range min must not exceed max"}
		}
	}

	products, total, err := s.Products.List(q)
	if err != nil {
		return models.ListingPage{}, err
	}

	return models.ListingPage{
		Products: products,
		HasMore:  q.Skip+len(products) < total,
	}, nil
}

// Create validates and stores a new product on behalf of writerID.
func (s ProductService) Create(p models.Product, writerID int64) (models.Product, error) {
	p.Title = utils.NormalizeSpace(p.Title)
	p.Description = utils.TrimOrEmpty(p.Description)

	errs := domain.FieldErrors{}
	if p.Title == "" {
		errs["title"] = "title must not be empty"
	} else if utf8.RuneCountInString(p.Title) > 255 {
		errs["title"] = "title must be at most 255 characters"
	}
	if p.Description == "" {
		errs["description"] = "description must not be empty"
	}
	if p.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if len(errs) > 0 {
		return models.Product{}, errs
	}

	if p.Continents == 0 {
		p.Continents = 1
	}
	p.Writer = writerID
	p.Sold = 0
	p.Views = 0

	created, err := s.Products.Create(p)
	if err != nil {
		return models.Product{}, err
	}

	utils.LogEvent(s.RequestID, "product", "create", fmt.Sprintf("product_id=%d writer=%d", created.ID, writerID))
	return created, nil
}

// Detail loads one product and bumps its view counter. The counter bump is
// best-effort; a failed UPDATE does not hide the product.
func (s ProductService) Detail(id int64) (models.Product, error) {
	p, err := s.Products.GetByID(id)
	if err != nil {
		return models.Product{}, err
	}

	if err := s.Products.IncrementViews(id); err != nil {
		utils.LogEvent(s.RequestID, "product", "views_increment_failed", fmt.Sprintf("product_id=%d err=%v", id, err))
	} else {
		p.Views++
	}
	return p, nil
}
