package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Proveedores y productos son conteos reales; requisiciones y gasto son datos de demostración.
type DashboardSummaryDTO struct {
	Stats             DashboardStatsDTO      `json:"stats"`
	MonthlySpend      []MonthlySpendDTO      `json:"monthly_spend"`
	RequisitionStatus []RequisitionStatusDTO `json:"requisition_status"`
	TopSuppliers      []TopSupplierDTO       `json:"top_suppliers"`
	RecentActivity    []ActivityDTO          `json:"recent_activity"`
	DateLabel         string                 `json:"date_label"` // ej: "Outubro 2026"
}

// DashboardStatsDTO tarjetas superiores del dashboard.
type DashboardStatsDTO struct {
	TotalRequisitions int    `json:"total_requisitions"`
	PendingApprovals  int    `json:"pending_approvals"`
	ActiveSuppliers   int    `json:"active_suppliers"`
	CatalogProducts   int    `json:"catalog_products"`
	RequisitionsTrend string `json:"requisitions_trend"`
	PendingTrend      string `json:"pending_trend"`
	SuppliersTrend    string `json:"suppliers_trend"`
	ProductsTrend     string `json:"products_trend"`
}

// MonthlySpendDTO punto de la serie de gasto mensual.
type MonthlySpendDTO struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// RequisitionStatusDTO porción del gráfico de estado de requisiciones.
type RequisitionStatusDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TopSupplierDTO proveedor en el ranking del dashboard.
type TopSupplierDTO struct {
	SupplierID   string          `json:"supplier_id,omitempty"`
	Name         string          `json:"name"`
	ProductCount int             `json:"product_count"`
	CatalogValue decimal.Decimal `json:"catalog_value"`
}

// ActivityDTO evento de la lista de actividad reciente.
type ActivityDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // created | approved | rejected | pending
	Title       string `json:"title"`
	Description string `json:"description"`
	When        string `json:"when"`
	User        string `json:"user"`
}
