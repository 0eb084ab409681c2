package service

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"motorlot/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// Pagination describes one page of a filtered result set.
// Pages is always ceil(Total/Limit).
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page descriptor for a total count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// carSortColumns allow-lists sortBy values for car queries and maps
// them onto column names.
var carSortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"year":      "year",
	"mileage":   "mileage",
	"brand":     "brand",
	"model":     "model",
}

// personSortColumns allow-lists sortBy values for customer and manager
// queries.
var personSortColumns = map[string]string{
	"createdAt": "created_at",
}

// parseListOptions reads page/limit/sortBy/sortOrder. Page clamps to
// >=1 and limit to [1,50]; unparsable values fail open to the defaults
// rather than erroring. Unknown sort fields fall back to created_at.
func parseListOptions(values url.Values, sortColumns map[string]string) repository.ListOptions {
	page := defaultPage
	if v, err := strconv.Atoi(values.Get("page")); err == nil {
		if v < 1 {
			v = 1
		}
		page = v
	}

	limit := defaultLimit
	if v, err := strconv.Atoi(values.Get("limit")); err == nil {
		if v < 1 {
			v = 1
		}
		if v > maxLimit {
			v = maxLimit
		}
		limit = v
	}

	sortBy, ok := sortColumns[values.Get("sortBy")]
	if !ok {
		sortBy = "created_at"
	}

	sortOrder := "desc"
	if values.Get("sortOrder") == "asc" {
		sortOrder = "asc"
	}

	return repository.ListOptions{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

// ParseCarListOptions compiles pagination and sorting for car queries.
func ParseCarListOptions(values url.Values) repository.ListOptions {
	return parseListOptions(values, carSortColumns)
}

// ParsePersonListOptions compiles pagination and sorting for customer
// and manager queries.
func ParsePersonListOptions(values url.Values) repository.ListOptions {
	return parseListOptions(values, personSortColumns)
}

// ParseCarFilters compiles raw query parameters into the typed car
// predicate. Absent parameters leave their dimension unconstrained;
// unparsable numeric values are dropped rather than rejected, so a bad
// bound widens the result instead of erroring.
func ParseCarFilters(values url.Values) repository.CarFilters {
	var f repository.CarFilters

	f.Brand = stringParam(values, "brand")
	f.Model = stringParam(values, "model")
	f.Color = stringParam(values, "color")
	f.BodyType = stringParam(values, "bodyType")
	f.FuelType = stringParam(values, "fuelType")
	f.Transmission = stringParam(values, "transmission")

	f.MinPrice = decimalParam(values, "minPrice")
	f.MaxPrice = decimalParam(values, "maxPrice")
	f.MinYear = intParam(values, "minYear")
	f.MaxYear = intParam(values, "maxYear")
	f.MinMileage = intParam(values, "minMileage")
	f.MaxMileage = intParam(values, "maxMileage")

	// Tri-state: absent means unconstrained, "true" means available,
	// any other value means unavailable.
	if values.Has("isAvailable") {
		available := values.Get("isAvailable") == "true"
		f.IsAvailable = &available
	}

	if v := values.Get("category"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.CategoryID = &id
		}
	}

	return f
}

func stringParam(values url.Values, key string) *string {
	if v := values.Get(key); v != "" {
		return &v
	}
	return nil
}

func intParam(values url.Values, key string) *int {
	if v := values.Get(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return &parsed
		}
	}
	return nil
}

func decimalParam(values url.Values, key string) *decimal.Decimal {
	if v := values.Get(key); v != "" {
		if parsed, err := decimal.NewFromString(v); err == nil {
			return &parsed
		}
	}
	return nil
}
