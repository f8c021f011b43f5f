package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"invetra/internal/core/id"
	"invetra/internal/domain/reports"
)

// --- Stock Valuation Report ---

// StockValuationReportRequest represents request for stock valuation report.
type StockValuationReportRequest struct {
	AsOfDate     *time.Time `form:"asOfDate"`
	WarehouseIDs []string   `form:"warehouseId"`
	ProductIDs   []string   `form:"productId"`
	ExcludeZero  *bool      `form:"excludeZero"`
	Limit        int        `form:"limit"`
	Offset       int        `form:"offset"`
}

// StockValuationReportResponse represents stock valuation report response.
type StockValuationReportResponse struct {
	AsOfDate      string                             `json:"asOfDate"`
	Items         []StockValuationReportItemResponse `json:"items"`
	TotalItems    int                                `json:"totalItems"`
	TotalQuantity float64                            `json:"totalQuantity"`
	TotalValue    decimal.Decimal                    `json:"totalValue"`
}

// StockValuationReportItemResponse represents a single item in the valuation report.
type StockValuationReportItemResponse struct {
	WarehouseID   string          `json:"warehouseId"`
	WarehouseName string          `json:"warehouseName"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	ProductSKU    string          `json:"productSku,omitempty"`
	UnitName      string          `json:"unitName,omitempty"`
	Quantity      float64         `json:"quantity"`
	AverageCost   decimal.Decimal `json:"averageCost"`
	Value         decimal.Decimal `json:"value"`
}

// FromStockValuationReport converts domain report to response DTO.
func FromStockValuationReport(report *reports.StockValuationReport) *StockValuationReportResponse {
	items := make([]StockValuationReportItemResponse, len(report.Items))
	for i, item := range report.Items {
		items[i] = StockValuationReportItemResponse{
			WarehouseID:   item.WarehouseID.String(),
			WarehouseName: item.WarehouseName,
			ProductID:     item.ProductID.String(),
			ProductName:   item.ProductName,
			ProductSKU:    item.ProductSKU,
			UnitName:      item.UnitName,
			Quantity:      item.Quantity,
			AverageCost:   item.AverageCost,
			Value:         item.Value,
		}
	}

	return &StockValuationReportResponse{
		AsOfDate:      report.AsOfDate.Format(time.RFC3339),
		Items:         items,
		TotalItems:    report.TotalItems,
		TotalQuantity: report.TotalQuantity,
		TotalValue:    report.TotalValue,
	}
}

// --- Stock Turnover Report ---

// StockTurnoverReportRequest represents request for stock turnover report.
type StockTurnoverReportRequest struct {
	FromDate     string   `form:"fromDate" binding:"required"`
	ToDate       string   `form:"toDate" binding:"required"`
	WarehouseIDs []string `form:"warehouseId"`
	ProductIDs   []string `form:"productId"`
	Limit        int      `form:"limit"`
	Offset       int      `form:"offset"`
}

// StockTurnoverReportResponse represents stock turnover report response.
type StockTurnoverReportResponse struct {
	FromDate     string                            `json:"fromDate"`
	ToDate       string                            `json:"toDate"`
	Items        []StockTurnoverReportItemResponse `json:"items"`
	TotalItems   int                               `json:"totalItems"`
	TotalOpening float64                           `json:"totalOpening"`
	TotalReceipt float64                           `json:"totalReceipt"`
	TotalExpense float64                           `json:"totalExpense"`
	TotalClosing float64                           `json:"totalClosing"`
}

// StockTurnoverReportItemResponse represents a single item in turnover report.
type StockTurnoverReportItemResponse struct {
	WarehouseID    string  `json:"warehouseId,omitempty"`
	WarehouseName  string  `json:"warehouseName,omitempty"`
	ProductID      string  `json:"productId,omitempty"`
	ProductName    string  `json:"productName,omitempty"`
	ProductSKU     string  `json:"productSku,omitempty"`
	UnitName       string  `json:"unitName,omitempty"`
	OpeningBalance float64 `json:"openingBalance"`
	Receipt        float64 `json:"receipt"`
	Expense        float64 `json:"expense"`
	ClosingBalance float64 `json:"closingBalance"`
}

// FromStockTurnoverReport converts domain report to response DTO.
func FromStockTurnoverReport(report *reports.StockTurnoverReport) *StockTurnoverReportResponse {
	items := make([]StockTurnoverReportItemResponse, len(report.Items))
	for i, item := range report.Items {
		items[i] = StockTurnoverReportItemResponse{
			WarehouseName:  item.WarehouseName,
			ProductName:    item.ProductName,
			ProductSKU:     item.ProductSKU,
			UnitName:       item.UnitName,
			OpeningBalance: item.OpeningBalance,
			Receipt:        item.Receipt,
			Expense:        item.Expense,
			ClosingBalance: item.ClosingBalance,
		}
		if !id.IsNil(item.WarehouseID) {
			items[i].WarehouseID = item.WarehouseID.String()
		}
		if !id.IsNil(item.ProductID) {
			items[i].ProductID = item.ProductID.String()
		}
	}

	return &StockTurnoverReportResponse{
		FromDate:     report.FromDate.Format(time.RFC3339),
		ToDate:       report.ToDate.Format(time.RFC3339),
		Items:        items,
		TotalItems:   report.TotalItems,
		TotalOpening: report.TotalOpening,
		TotalReceipt: report.TotalReceipt,
		TotalExpense: report.TotalExpense,
		TotalClosing: report.TotalClosing,
	}
}

// --- Document Journal ---

// DocumentJournalRequest represents request for document journal.
type DocumentJournalRequest struct {
	FromDate       *string  `form:"fromDate"`
	ToDate         *string  `form:"toDate"`
	DocumentTypes  []string `form:"documentType"`
	Status         *string  `form:"status"`
	NumberContains string   `form:"number"`
	Limit          int      `form:"limit"`
	Offset         int      `form:"offset"`
}

// DocumentJournalResponse represents document journal response.
type DocumentJournalResponse struct {
	Items      []DocumentJournalItemResponse `json:"items"`
	TotalCount int                           `json:"totalCount"`
	Limit      int                           `json:"limit"`
	Offset     int                           `json:"offset"`
	Summary    []DocumentTypeSummaryResponse `json:"summary,omitempty"`
}

// DocumentJournalItemResponse represents a document in the journal.
type DocumentJournalItemResponse struct {
	ID            string          `json:"id"`
	DocumentType  string          `json:"documentType"`
	Number        string          `json:"number"`
	Date          time.Time       `json:"date"`
	Status        string          `json:"status"`
	WarehouseID   string          `json:"warehouseId,omitempty"`
	WarehouseName string          `json:"warehouseName,omitempty"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Description   string          `json:"description,omitempty"`
	DeletionMark  bool            `json:"deletionMark,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// DocumentTypeSummaryResponse represents per-type totals.
type DocumentTypeSummaryResponse struct {
	DocumentType  string          `json:"documentType"`
	Count         int             `json:"count"`
	PostedCount   int             `json:"postedCount"`
	TotalQuantity float64         `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// FromDocumentJournal converts domain journal to response DTO.
func FromDocumentJournal(journal *reports.DocumentJournal) *DocumentJournalResponse {
	items := make([]DocumentJournalItemResponse, len(journal.Items))
	for i, item := range journal.Items {
		items[i] = DocumentJournalItemResponse{
			ID:            item.ID.String(),
			DocumentType:  item.DocumentType,
			Number:        item.Number,
			Date:          item.Date,
			Status:        item.Status,
			WarehouseName: item.WarehouseName,
			TotalQuantity: item.TotalQuantity,
			TotalAmount:   item.TotalAmount,
			Description:   item.Description,
			DeletionMark:  item.DeletionMark,
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		}
		if item.WarehouseID != nil {
			items[i].WarehouseID = item.WarehouseID.String()
		}
	}

	summary := make([]DocumentTypeSummaryResponse, len(journal.Summary))
	for i, s := range journal.Summary {
		summary[i] = DocumentTypeSummaryResponse{
			DocumentType:  s.DocumentType,
			Count:         s.Count,
			PostedCount:   s.PostedCount,
			TotalQuantity: s.TotalQuantity,
			TotalAmount:   s.TotalAmount,
		}
	}

	return &DocumentJournalResponse{
		Items:      items,
		TotalCount: journal.TotalCount,
		Limit:      journal.Limit,
		Offset:     journal.Offset,
		Summary:    summary,
	}
}
