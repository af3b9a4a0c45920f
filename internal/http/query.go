package http

import (
	"fmt"
	"net/http"
	"strconv"

	"Product_Catalog/internal/models"
)

// parseProductQuery reads the listing parameters; absent parameters stay nil
func parseProductQuery(r *http.Request) (models.ProductQuery, error) {
	values := r.URL.Query()
	q := models.ProductQuery{
		Limit:  models.DefaultPageLimit,
		SortBy: models.SortField(values.Get("sort_by")),
		Order:  models.SortOrder(values.Get("order")),
	}

	var err error
	if q.Skip, err = intParam(values.Get("skip"), "skip", 0); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(values.Get("limit"), "limit", models.DefaultPageLimit); err != nil {
		return q, err
	}
	if q.Limit < 1 {
		return q, fmt.Errorf("limit must be greater than 0")
	}

	if name := values.Get("name"); name != "" {
		q.Name = &name
	}
	if q.MinPrice, err = floatParam(values.Get("min_price"), "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = floatParam(values.Get("max_price"), "max_price"); err != nil {
		return q, err
	}
	if q.CategoryID, err = idParam(values.Get("category_id"), "category_id"); err != nil {
		return q, err
	}
	if q.DepartmentID, err = idParam(values.Get("department_id"), "department_id"); err != nil {
		return q, err
	}

	return q, nil
}

func intParam(raw, name string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func floatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

func idParam(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}
