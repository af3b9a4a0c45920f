package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Department represents a top-level grouping of categories
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category represents a product category inside a department
type Category struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	DepartmentID int64       `json:"department_id"`
	Department   *Department `json:"department,omitempty"`
}

// Product represents a catalog item with its category and department attached
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Stock       int64     `json:"stock"`
	CategoryID  int64     `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
}

// DepartmentCreate is the input for creating a department
type DepartmentCreate struct {
	Name string `json:"name" validate:"required,max=50"`
}

// CategoryCreate is the input for creating a category
type CategoryCreate struct {
	Name         string `json:"name" validate:"required,max=50"`
	DepartmentID int64  `json:"department_id" validate:"required,gt=0"`
}

// ProductCreate is the input for creating a product
type ProductCreate struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       int64    `json:"stock" validate:"gte=0"`
	CategoryID  int64    `json:"category_id" validate:"required,gt=0"`
}

// NullableString tells an absent JSON field apart from an explicit null.
// Set is false when the field was omitted; Set with a nil Value means null.
type NullableString struct {
	Set   bool
	Value *string
}

// SetString returns a NullableString holding s
func SetString(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

// Null returns a NullableString that clears the stored value
func Null() NullableString {
	return NullableString{Set: true}
}

// UnmarshalJSON only runs for fields present in the payload
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// ProductUpdate carries only the fields present in an update request.
// A nil field leaves the stored value untouched. Description is nullable,
// so an explicit null clears it while an omitted description keeps it.
type ProductUpdate struct {
	Name        *string        `json:"name" validate:"omitnil,min=1,max=100"`
	Description NullableString `json:"description"`
	Price       *float64       `json:"price" validate:"omitnil,gte=0"`
	Stock       *int64         `json:"stock" validate:"omitnil,gte=0"`
	CategoryID  *int64         `json:"category_id" validate:"omitnil,gt=0"`
}

// Empty reports whether the update carries no fields
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && !u.Description.Set && u.Price == nil && u.Stock == nil && u.CategoryID == nil
}

// Apply overwrites the fields of p that are present in u
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description.Set {
		p.Description = u.Description.Value
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.CategoryID != nil {
		p.CategoryID = *u.CategoryID
	}
}

// SortField is one of the product attributes a listing can be ordered by
type SortField string

const (
	SortByID          SortField = "id"
	SortByName        SortField = "name"
	SortByDescription SortField = "description"
	SortByPrice       SortField = "price"
	SortByStock       SortField = "stock"
	SortByCategoryID  SortField = "category_id"
)

var sortFields = map[string]SortField{
	string(SortByID):          SortByID,
	string(SortByName):        SortByName,
	string(SortByDescription): SortByDescription,
	string(SortByPrice):       SortByPrice,
	string(SortByStock):       SortByStock,
	string(SortByCategoryID):  SortByCategoryID,
}

// ParseSortField resolves a sort field name, falling back to id for unknown names
func ParseSortField(name string) SortField {
	if field, ok := sortFields[name]; ok {
		return field
	}
	return SortByID
}

// SortOrder is the direction of a listing
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns SortDesc only for the exact string "desc"
func ParseSortOrder(order string) SortOrder {
	if order == string(SortDesc) {
		return SortDesc
	}
	return SortAsc
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ProductQuery describes a filtered, sorted, paginated product listing
type ProductQuery struct {
	Skip         int
	Limit        int
	Name         *string
	MinPrice     *float64
	MaxPrice     *float64
	CategoryID   *int64
	DepartmentID *int64
	SortBy       SortField
	Order        SortOrder
}

// Normalize resolves the sort field and direction to their canonical values
func (q ProductQuery) Normalize() ProductQuery {
	q.SortBy = ParseSortField(string(q.SortBy))
	q.Order = ParseSortOrder(string(q.Order))
	return q
}

// CacheParams returns every listing parameter keyed by its public name
func (q ProductQuery) CacheParams() map[string]interface{} {
	return map[string]interface{}{
		"skip":          q.Skip,
		"limit":         q.Limit,
		"name":          q.Name,
		"min_price":     q.MinPrice,
		"max_price":     q.MaxPrice,
		"category_id":   q.CategoryID,
		"department_id": q.DepartmentID,
		"sort_by":       string(q.SortBy),
		"order":         string(q.Order),
	}
}

// AvgPriceByDepartment is one row of the average price report
type AvgPriceByDepartment struct {
	DepartmentID   int64   `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	AvgPrice       float64 `json:"avg_price"`
}

// TotalStockByCategory is one row of the stock report
type TotalStockByCategory struct {
	CategoryID     int64  `json:"category_id"`
	CategoryName   string `json:"category_name"`
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	TotalStock     int64  `json:"total_stock"`
}

// CountProductsByDepartment is one row of the product count report
type CountProductsByDepartment struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	ProductCount   int64  `json:"product_count"`
}

// TotalValueByDepartment is one row of the inventory value report
type TotalValueByDepartment struct {
	DepartmentID   int64   `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	TotalValue     float64 `json:"total_value"`
}

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
