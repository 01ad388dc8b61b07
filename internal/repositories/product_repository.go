package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/lib/pq"
)

// ProductRepository wraps DB access for the product catalog.
type ProductRepository struct {
	DB *sql.DB
}

const productColumns = "id, title, description, price, images, sold, continents, views, writer"

func (r ProductRepository) Create(p models.Product) (models.Product, error) {
	if p.Images == nil {
		p.Images = []string{}
	}
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return models.Product{}, err
	}

	err = r.DB.QueryRow(`
        INSERT INTO products (title, description, price, images, sold, continents, views, writer)
        VALUES ($1, $2, $3, $4, 0, $5, 0, $6)
        RETURNING id
    `, p.Title, p.Description, p.Price, imagesJSON, p.Continents, p.Writer).Scan(&p.ID)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r ProductRepository) GetByID(id int64) (models.Product, error) {
	row := r.DB.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, domain.NotFoundError{Resource: "product", Err: err}
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r ProductRepository) IncrementViews(id int64) error {
	_, err := r.DB.Exec(`UPDATE products SET views = views + 1 WHERE id = $1`, id)
	return err
}

// List runs the count+fetch pair for one listing page. Both statements share
// the WHERE clause built from the query so the total stays consistent with
// the page contents.
func (r ProductRepository) List(q models.ListingQuery) ([]models.Product, int, error) {
	where, args := buildListingConditions(q)

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, q.Skip, q.Limit)
	rows, err := r.DB.Query(fmt.Sprintf(
		`SELECT %s FROM products%s ORDER BY id DESC OFFSET $%d LIMIT $%d`,
		productColumns, where, len(args)+1, len(args)+2,
	), pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// buildListingConditions composes the WHERE clause from search term and
// filters. Empty inputs contribute nothing, so an all-empty query scans the
// whole catalog.
func buildListingConditions(q models.ListingQuery) (string, []any) {
	conds := []string{}
	args := []any{}

	if term := strings.TrimSpace(q.SearchTerm); term != "" {
		args = append(args, "%"+term+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	if len(q.Filters.Continents) > 0 {
		args = append(args, pq.Array(q.Filters.Continents))
		conds = append(conds, fmt.Sprintf("continents = ANY($%d)", len(args)))
	}

	if len(q.Filters.Price) > 0 {
		ranges := make([]string, 0, len(q.Filters.Price))
		for _, pr := range q.Filters.Price {
			args = append(args, pr.Min, pr.Max)
			ranges = append(ranges, fmt.Sprintf("price BETWEEN $%d AND $%d", len(args)-1, len(args)))
		}
		conds = append(conds, "("+strings.Join(ranges, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p         models.Product
		imagesRaw []byte
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &imagesRaw, &p.Sold, &p.Continents, &p.Views, &p.Writer); err != nil {
		return models.Product{}, err
	}
	p.Images = []string{}
	if len(imagesRaw) > 0 {
		if err := json.Unmarshal(imagesRaw, &p.Images); err != nil {
			return models.Product{}, fmt.Errorf("decode images column: %w", err)
		}
	}
	return p, nil
}
