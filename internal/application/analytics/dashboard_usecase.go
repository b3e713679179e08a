// Package analytics contiene el caso de uso del dashboard de compras.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/domain/repository"
)

const dashboardTopSuppliers = 5 // proveedores en el widget del dashboard

// DashboardUseCase arma el resumen del dashboard.
//
// Proveedores y productos salen de AnalyticsRepository; el módulo de requisiciones aún no existe,
// así que sus cifras son fijas.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos llamadas en paralelo:
//  1. GetCatalogCounts          → ActiveSuppliers + CatalogProducts
//  2. GetTopSuppliers(top 5)    → TopSuppliers
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		counts repository.CatalogCounts
		err    error
	}
	type rankingResult struct {
		rows []repository.SupplierRankingResult
		err  error
	}

	countsCh := make(chan countsResult, 1)
	rankingCh := make(chan rankingResult, 1)

	go func() {
		c, err := uc.analyticsRepo.GetCatalogCounts(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopSuppliers(ctx, dashboardTopSuppliers)
		rankingCh <- rankingResult{rows, err}
	}()

	counts := <-countsCh
	ranking := <-rankingCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: totales del catálogo: %w", counts.err)
	}
	if ranking.err != nil {
		return nil, fmt.Errorf("dashboard: ranking de proveedores: %w", ranking.err)
	}

	return &dto.DashboardSummaryDTO{
		Stats: dto.DashboardStatsDTO{
			TotalRequisitions: 127,
			PendingApprovals:  23,
			ActiveSuppliers:   counts.counts.Suppliers,
			CatalogProducts:   counts.counts.Products,
			RequisitionsTrend: "12% este mês",
			PendingTrend:      "5 novas hoje",
			SuppliersTrend:    "3 novos",
			ProductsTrend:     "18% este mês",
		},
		MonthlySpend:      monthlySpend(),
		RequisitionStatus: requisitionStatus(),
		TopSuppliers:      topSuppliers(ranking.rows),
		RecentActivity:    recentActivity(),
		DateLabel:         monthLabel(uc.now()),
	}, nil
}

// topSuppliers usa el ranking real; sin proveedores cargados devuelve la serie de demostración.
func topSuppliers(rows []repository.SupplierRankingResult) []dto.TopSupplierDTO {
	if len(rows) == 0 {
		demo := []struct {
			name  string
			value int64
		}{
			{"Tech Soluções", 45000},
			{"Office Supply", 28000},
			{"Logística Express", 22000},
			{"Construtora", 18000},
			{"Serviços Gerais", 12000},
		}
		out := make([]dto.TopSupplierDTO, 0, len(demo))
		for _, d := range demo {
			out = append(out, dto.TopSupplierDTO{Name: d.name, CatalogValue: decimal.NewFromInt(d.value)})
		}
		return out
	}
	out := make([]dto.TopSupplierDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSupplierDTO{
			SupplierID:   r.SupplierID,
			Name:         r.SupplierName,
			ProductCount: r.ProductCount,
			CatalogValue: r.CatalogValue.Round(2),
		})
	}
	return out
}

func monthlySpend() []dto.MonthlySpendDTO {
	months := []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun"}
	totals := []int64{12000, 18000, 15000, 22000, 28000, 35000}
	out := make([]dto.MonthlySpendDTO, len(months))
	for i := range months {
		out[i] = dto.MonthlySpendDTO{Month: months[i], Amount: decimal.NewFromInt(totals[i])}
	}
	return out
}

func requisitionStatus() []dto.RequisitionStatusDTO {
	return []dto.RequisitionStatusDTO{
		{Status: "Pendente", Count: 12},
		{Status: "Aprovado", Count: 19},
		{Status: "Rejeitado", Count: 5},
		{Status: "Comprado", Count: 8},
	}
}

func recentActivity() []dto.ActivityDTO {
	return []dto.ActivityDTO{
		{ID: "1", Type: "created", Title: "Nova Requisição Criada", Description: "Requisição #1234 - Material de Escritório", When: "Há 5 minutos", User: "João Silva"},
		{ID: "2", Type: "approved", Title: "Requisição Aprovada", Description: "Requisição #1233 - Equipamentos de TI", When: "Há 1 hora", User: "Maria Santos"},
		{ID: "3", Type: "pending", Title: "Aguardando Aprovação", Description: "Requisição #1232 - Mobiliário", When: "Há 2 horas", User: "Pedro Costa"},
		{ID: "4", Type: "rejected", Title: "Requisição Rejeitada", Description: "Requisição #1231 - Material de Limpeza", When: "Há 3 horas", User: "Ana Oliveira"},
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Outubro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
