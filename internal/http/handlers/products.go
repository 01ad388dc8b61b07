package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ProductHandler exposes the catalog listing, detail and creation endpoints.
type ProductHandler struct {
	Products services.ProductService
	Docs     services.DocsService
}

const defaultListingLimit = 20

type createProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	Continents  int      `json:"continents"`
}

// GET /api/products
func (h ProductHandler) List(c *gin.Context) {
	q, err := parseListingQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := h.Products
	svc.RequestID = middleware.GetRequestID(c)

	page, err := svc.List(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /api/products
func (h ProductHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req createProductRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.Products
	svc.RequestID = middleware.GetRequestID(c)

	product, err := svc.Create(models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Continents:  req.Continents,
	}, user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GET /api/products/:id
func (h ProductHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	svc := h.Products
	svc.RequestID = middleware.GetRequestID(c)

	product, err := svc.Detail(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GET /api/products/:id/sheet returns a printable product sheet (inline PDF).
func (h ProductHandler) Sheet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	svc := h.Docs
	svc.RequestID = middleware.GetRequestID(c)

	pdfBytes, filename, err := svc.GenerateProductSheet(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// parseListingQuery decodes skip/limit/searchTerm plus the JSON-encoded
// filters parameter the client sends.
func parseListingQuery(c *gin.Context) (models.ListingQuery, error) {
	q := models.ListingQuery{Limit: defaultListingLimit}
	errs := domain.FieldErrors{}

	if raw := strings.TrimSpace(c.Query("skip")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["skip"] = "skip must be an integer"
		} else {
			q.Skip = n
		}
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["limit"] = "limit must be an integer"
		} else {
			q.Limit = n
		}
	}

	q.SearchTerm = c.Query("searchTerm")

	if raw := strings.TrimSpace(c.Query("filters")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Filters); err != nil {
			errs["filters"] = "filters must be valid JSON"
		}
	}

	if len(errs) > 0 {
		return models.ListingQuery{}, errs
	}
	return q, nil
}
