package catalogCache

import (
	"Product_Catalog/internal/cache"
	"Product_Catalog/internal/models"
)

// Summary report names, one cache key each
const (
	ReportAvgPriceByDepartment   = "avg-price-by-department"
	ReportTotalStockByCategory   = "total-stock-by-category"
	ReportCountByDepartment      = "count-by-department"
	ReportTotalValueByDepartment = "total-value-by-department"
)

// ListKey returns the key of a normalized product listing
func ListKey(q models.ProductQuery) string {
	return cache.MakeKey(string(NamespaceList), q.CacheParams())
}

// SummaryKey returns the key of a summary report, e.g. products:summary:count-by-department
func SummaryKey(report string) string {
	return cache.MakeKey(string(NamespaceSummary)+":"+report, nil)
}
