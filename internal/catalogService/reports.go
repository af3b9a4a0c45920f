package catalogService

import (
	"context"
	"time"

	"Product_Catalog/internal/cache/catalogCache"
	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/models"
)

// report serves one summary from its own key in the summary namespace
func report[T any](ctx context.Context, s *Service, name string, query func(ctx context.Context) ([]T, error)) ([]T, error) {
	start := time.Now()

	rows, err := catalogCache.Fetch(ctx, s.cache, catalogCache.NamespaceSummary, catalogCache.SummaryKey(name), query)
	if err != nil {
		err = storeError("report", err)
		s.logger.LogError(ctx, logger.OpSummaryReport, name, "Failed to build report", err, severityOf(err), nil)
		return nil, err
	}

	s.logger.LogInfo(ctx, logger.OpSummaryReport, "Served report "+name, map[string]interface{}{
		"rows":        len(rows),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return rows, nil
}

// AvgPriceByDepartment returns the mean product price of every department that has products
func (s *Service) AvgPriceByDepartment(ctx context.Context) ([]models.AvgPriceByDepartment, error) {
	return report(ctx, s, catalogCache.ReportAvgPriceByDepartment, s.store.AvgPriceByDepartment)
}

// TotalStockByCategory returns the summed stock of every category that has products
func (s *Service) TotalStockByCategory(ctx context.Context) ([]models.TotalStockByCategory, error) {
	return report(ctx, s, catalogCache.ReportTotalStockByCategory, s.store.TotalStockByCategory)
}

// CountProductsByDepartment returns the product count of every department that has products
func (s *Service) CountProductsByDepartment(ctx context.Context) ([]models.CountProductsByDepartment, error) {
	return report(ctx, s, catalogCache.ReportCountByDepartment, s.store.CountProductsByDepartment)
}

// TotalValueByDepartment returns sum(price * stock) of every department that has products.
// Departments without products are absent rather than reported as zero.
func (s *Service) TotalValueByDepartment(ctx context.Context) ([]models.TotalValueByDepartment, error) {
	return report(ctx, s, catalogCache.ReportTotalValueByDepartment, s.store.TotalValueByDepartment)
}
