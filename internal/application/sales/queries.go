package sales

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// SalesQueryService expone lecturas y estadísticas sobre ventas: filtros puros
// sobre el estado actual, sin efectos.
type SalesQueryService struct {
	sales repository.SaleRepository
}

// NewSalesQueryService construye el servicio de consultas de ventas.
func NewSalesQueryService(sales repository.SaleRepository) *SalesQueryService {
	return &SalesQueryService{sales: sales}
}

// List devuelve todas las ventas.
func (s *SalesQueryService) List(ctx context.Context) ([]*entity.Sale, error) {
	return s.sales.List()
}

// ByCustomer filtra por nombre de cliente (subcadena, sin distinguir mayúsculas).
func (s *SalesQueryService) ByCustomer(ctx context.Context, customerName string) ([]*entity.Sale, error) {
	term := strings.ToLower(customerName)
	return s.filter(func(sale *entity.Sale) bool {
		return strings.Contains(strings.ToLower(sale.CustomerName), term)
	})
}

// ByStatus filtra por estado.
func (s *SalesQueryService) ByStatus(ctx context.Context, status string) ([]*entity.Sale, error) {
	switch status {
	case entity.SaleStatusPending, entity.SaleStatusCompleted, entity.SaleStatusCancelled, entity.SaleStatusRefunded:
	default:
		return nil, domain.ErrInvalidInput
	}
	return s.filter(func(sale *entity.Sale) bool { return sale.Status == status })
}

// ByDateRange filtra ventas con fecha dentro de [start, end).
func (s *SalesQueryService) ByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	return s.filter(func(sale *entity.Sale) bool {
		return !sale.Date.Before(start) && sale.Date.Before(end)
	})
}

// Today devuelve las ventas del día actual.
func (s *SalesQueryService) Today(ctx context.Context) ([]*entity.Sale, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.ByDateRange(ctx, start, start.AddDate(0, 0, 1))
}

// TotalCompletedAmount suma el monto final de todas las ventas COMPLETED.
func (s *SalesQueryService) TotalCompletedAmount(ctx context.Context) (decimal.Decimal, error) {
	completed, err := s.ByStatus(ctx, entity.SaleStatusCompleted)
	if err != nil {
		return decimal.Zero, err
	}
	return sumFinal(completed), nil
}

// TodayCompletedAmount suma el monto final de las ventas COMPLETED de hoy.
func (s *SalesQueryService) TodayCompletedAmount(ctx context.Context) (decimal.Decimal, error) {
	today, err := s.Today(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	completed := make([]*entity.Sale, 0, len(today))
	for _, sale := range today {
		if sale.Status == entity.SaleStatusCompleted {
			completed = append(completed, sale)
		}
	}
	return sumFinal(completed), nil
}

// CompletedCount cuenta las ventas COMPLETED.
func (s *SalesQueryService) CompletedCount(ctx context.Context) (int, error) {
	completed, err := s.ByStatus(ctx, entity.SaleStatusCompleted)
	if err != nil {
		return 0, err
	}
	return len(completed), nil
}

// TopSales devuelve las limit ventas COMPLETED de mayor monto final.
func (s *SalesQueryService) TopSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidInput
	}
	completed, err := s.ByStatus(ctx, entity.SaleStatusCompleted)
	if err != nil {
		return nil, err
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].FinalAmount.GreaterThan(completed[j].FinalAmount)
	})
	if len(completed) > limit {
		completed = completed[:limit]
	}
	return completed, nil
}

func (s *SalesQueryService) filter(keep func(*entity.Sale) bool) ([]*entity.Sale, error) {
	all, err := s.sales.List()
	if err != nil {
		return nil, err
	}
	result := make([]*entity.Sale, 0, len(all))
	for _, sale := range all {
		if keep(sale) {
			result = append(result, sale)
		}
	}
	return result, nil
}

func sumFinal(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.FinalAmount)
	}
	return total
}
