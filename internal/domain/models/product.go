package models

import (
	"encoding/json"
	"fmt"
)

type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	Sold        int      `json:"sold"`
	Continents  int      `json:"continents"`
	Views       int      `json:"views"`
	Writer      int64    `json:"writer"`
}

// PriceRange is an inclusive [min,max] band. On the wire it is a two-element
// JSON array, matching the client's filter payload.
type PriceRange struct {
	Min int64
	Max int64
}

func (p *PriceRange) UnmarshalJSON(data []byte) error {
	var bounds []int64
	if err := json.Unmarshal(data, &bounds); err != nil {
		return err
	}
	if len(bounds) != 2 {
		return fmt.Errorf("price range must have exactly 2 elements, got %d", len(bounds))
	}
	p.Min, p.Max = bounds[0], bounds[1]
	return nil
}

func (p PriceRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int64{p.Min, p.Max})
}

// ListingFilters narrows a listing. Empty slices mean "no constraint".
type ListingFilters struct {
	Continents []int64      `json:"continents"`
	Price      []PriceRange `json:"price"`
}

type ListingQuery struct {
	Skip       int
	Limit      int
	SearchTerm string
	Filters    ListingFilters
}

// ListingPage is one page of products. HasMore is computed against the total
// match count, not the returned page size.
type ListingPage struct {
	Products []Product `json:"products"`
	HasMore  bool      `json:"hasMore"`
}
