// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"invetra/internal/domain/reports"
	"invetra/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// GetStockValuationReport generates the stock valuation report.
// Quantities are folded from the movement register as of the report date;
// each position is valued at the average cost carried on its balance row.
func (r *ReportRepo) GetStockValuationReport(ctx context.Context, filter reports.StockValuationReportFilter) (*reports.StockValuationReport, error) {
	asOfDate := time.Now()
	if filter.AsOfDate != nil {
		asOfDate = *filter.AsOfDate
	}

	query := `
		WITH balance_data AS (
			SELECT
				m.warehouse_id,
				m.product_id,
				SUM(CASE WHEN m.record_type = 'receipt' THEN m.quantity ELSE -m.quantity END) as quantity_scaled
			FROM reg_stock_movements m
			WHERE m.period <= $1
	`
	args := []any{asOfDate}
	argIndex := 2

	if len(filter.WarehouseIDs) > 0 {
		placeholders := make([]string, len(filter.WarehouseIDs))
		for i, whID := range filter.WarehouseIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, whID)
			argIndex++
		}
		query += fmt.Sprintf(" AND m.warehouse_id IN (%s)", strings.Join(placeholders, ","))
	}

	if len(filter.ProductIDs) > 0 {
		placeholders := make([]string, len(filter.ProductIDs))
		for i, pID := range filter.ProductIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, pID)
			argIndex++
		}
		query += fmt.Sprintf(" AND m.product_id IN (%s)", strings.Join(placeholders, ","))
	}

	havingClause := "HAVING SUM(CASE WHEN m.record_type = 'receipt' THEN m.quantity ELSE -m.quantity END) != 0"
	if !filter.ExcludeZero {
		havingClause = ""
	}

	query += fmt.Sprintf(`
			GROUP BY m.warehouse_id, m.product_id
			%s
		)
		SELECT
			bd.warehouse_id,
			w.name as warehouse_name,
			bd.product_id,
			p.name as product_name,
			COALESCE(p.sku, '') as product_sku,
			p.base_unit as unit_name,
			bd.quantity_scaled::float8 / 10000.0 as quantity,
			COALESCE(b.average_cost, 0) as average_cost,
			ROUND(COALESCE(b.average_cost, 0) * bd.quantity_scaled / 10000.0, 2) as value
		FROM balance_data bd
		JOIN cat_warehouses w ON bd.warehouse_id = w.id
		JOIN cat_products p ON bd.product_id = p.id
		LEFT JOIN reg_stock_balances b
			ON bd.warehouse_id = b.warehouse_id AND bd.product_id = b.product_id
		ORDER BY w.name, p.name
	`, havingClause)

	var items []reports.StockValuationReportItem
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("stock valuation report: %w", err)
	}

	// Calculate totals
	report := &reports.StockValuationReport{
		AsOfDate:   asOfDate,
		Items:      items,
		TotalItems: len(items),
	}
	for _, item := range items {
		report.TotalQuantity += item.Quantity
		report.TotalValue = report.TotalValue.Add(item.Value)
	}

	return report, nil
}

// GetStockTurnoverReport generates stock turnover report.
func (r *ReportRepo) GetStockTurnoverReport(ctx context.Context, filter reports.StockTurnoverReportFilter) (*reports.StockTurnoverReport, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, fmt.Errorf("from_date and to_date are required")
	}

	args := []any{filter.FromDate}
	argIndex := 2

	// Opening balance query
	openingQuery := `
		SELECT
			m.warehouse_id,
			m.product_id,
			SUM(CASE WHEN m.record_type = 'receipt' THEN m.quantity ELSE -m.quantity END) as quantity_scaled
		FROM reg_stock_movements m
		WHERE m.period < $1
	`

	if len(filter.WarehouseIDs) > 0 {
		placeholders := make([]string, len(filter.WarehouseIDs))
		for i, whID := range filter.WarehouseIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, whID)
			argIndex++
		}
		openingQuery += fmt.Sprintf(" AND m.warehouse_id IN (%s)", strings.Join(placeholders, ","))
	}

	openingQuery += " GROUP BY m.warehouse_id, m.product_id"

	// Turnover query
	turnoverQuery := fmt.Sprintf(`
		SELECT
			m.warehouse_id,
			w.name as warehouse_name,
			m.product_id,
			p.name as product_name,
			COALESCE(p.sku, '') as product_sku,
			p.base_unit as unit_name,
			COALESCE(opening.quantity_scaled, 0)::float8 / 10000.0 as opening_balance,
			SUM(CASE WHEN m.record_type = 'receipt' THEN m.quantity ELSE 0 END)::float8 / 10000.0 as receipt,
			SUM(CASE WHEN m.record_type = 'expense' THEN m.quantity ELSE 0 END)::float8 / 10000.0 as expense,
			(COALESCE(opening.quantity_scaled, 0) +
				SUM(CASE WHEN m.record_type = 'receipt' THEN m.quantity ELSE -m.quantity END))::float8 / 10000.0 as closing_balance
		FROM reg_stock_movements m
		JOIN cat_warehouses w ON m.warehouse_id = w.id
		JOIN cat_products p ON m.product_id = p.id
		LEFT JOIN (%s) opening
			ON m.warehouse_id = opening.warehouse_id AND m.product_id = opening.product_id
		WHERE m.period >= $%d AND m.period < $%d
	`, openingQuery, argIndex, argIndex+1)

	args = append(args, filter.FromDate, filter.ToDate)
	argIndex += 2

	if len(filter.WarehouseIDs) > 0 {
		placeholders := make([]string, len(filter.WarehouseIDs))
		for i, whID := range filter.WarehouseIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, whID)
			argIndex++
		}
		turnoverQuery += fmt.Sprintf(" AND m.warehouse_id IN (%s)", strings.Join(placeholders, ","))
	}

	if len(filter.ProductIDs) > 0 {
		placeholders := make([]string, len(filter.ProductIDs))
		for i, pID := range filter.ProductIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, pID)
			argIndex++
		}
		turnoverQuery += fmt.Sprintf(" AND m.product_id IN (%s)", strings.Join(placeholders, ","))
	}

	turnoverQuery += `
		GROUP BY m.warehouse_id, w.name, m.product_id, p.name, p.sku, p.base_unit, opening.quantity_scaled
		ORDER BY w.name, p.name
	`

	var items []reports.StockTurnoverReportItem
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, turnoverQuery, args...); err != nil {
		return nil, fmt.Errorf("stock turnover report: %w", err)
	}

	// Calculate totals
	var totalOpening, totalReceipt, totalExpense, totalClosing float64
	for _, item := range items {
		totalOpening += item.OpeningBalance
		totalReceipt += item.Receipt
		totalExpense += item.Expense
		totalClosing += item.ClosingBalance
	}

	return &reports.StockTurnoverReport{
		FromDate:     filter.FromDate,
		ToDate:       filter.ToDate,
		Items:        items,
		TotalItems:   len(items),
		TotalOpening: totalOpening,
		TotalReceipt: totalReceipt,
		TotalExpense: totalExpense,
		TotalClosing: totalClosing,
	}, nil
}

// journalSource describes how one document type maps into the journal union.
type journalSource struct {
	table      string
	linesTable string
	// warehouseCol holds the column exposed as warehouse_id
	warehouseCol string
	// amountExpr computes the document total amount
	amountExpr string
}

var journalSources = map[string]journalSource{
	"adjustment": {
		table:        "doc_adjustments",
		linesTable:   "doc_adjustment_lines",
		warehouseCol: "warehouse_id",
		amountExpr:   "0",
	},
	"transfer": {
		table:        "doc_transfers",
		linesTable:   "doc_transfer_lines",
		warehouseCol: "source_warehouse_id",
		amountExpr:   "0",
	},
	"receipt": {
		table:        "doc_receipts",
		linesTable:   "doc_receipt_lines",
		warehouseCol: "warehouse_id",
		amountExpr:   "d.total_amount",
	},
	"issue": {
		table:        "doc_issues",
		linesTable:   "doc_issue_lines",
		warehouseCol: "warehouse_id",
		amountExpr:   "0",
	},
}

var journalTypeOrder = []string{"adjustment", "transfer", "receipt", "issue"}

// GetDocumentJournal retrieves documents of all types for journal view.
func (r *ReportRepo) GetDocumentJournal(ctx context.Context, filter reports.DocumentJournalFilter) (*reports.DocumentJournal, error) {
	docTypes := filter.DocumentTypes
	if len(docTypes) == 0 {
		docTypes = journalTypeOrder
	}

	var unions []string
	var args []any
	argIndex := 1

	for _, docType := range docTypes {
		src, ok := journalSources[docType]
		if !ok {
			continue
		}

		q := fmt.Sprintf(`
			SELECT
				d.id, '%s' as document_type, d.number, d.date, d.status,
				d.%s as warehouse_id, COALESCE(w.name, '') as warehouse_name,
				COALESCE((SELECT SUM(quantity) FROM %s WHERE document_id = d.id), 0)::float8 as total_quantity,
				%s as total_amount,
				d.comment as description, d.deletion_mark, d.created_at, d.updated_at
			FROM %s d
			LEFT JOIN cat_warehouses w ON d.%s = w.id
			WHERE d.deletion_mark = false
		`, docType, src.warehouseCol, src.linesTable, src.amountExpr, src.table, src.warehouseCol)

		if filter.FromDate != nil {
			q += fmt.Sprintf(" AND d.date >= $%d", argIndex)
			args = append(args, *filter.FromDate)
			argIndex++
		}
		if filter.ToDate != nil {
			q += fmt.Sprintf(" AND d.date < $%d", argIndex)
			args = append(args, *filter.ToDate)
			argIndex++
		}
		if filter.Status != nil {
			q += fmt.Sprintf(" AND d.status = $%d", argIndex)
			args = append(args, *filter.Status)
			argIndex++
		}
		if filter.NumberContains != "" {
			q += fmt.Sprintf(" AND d.number ILIKE $%d", argIndex)
			args = append(args, "%"+filter.NumberContains+"%")
			argIndex++
		}

		unions = append(unions, q)
	}

	if len(unions) == 0 {
		return &reports.DocumentJournal{
			Items:      []reports.DocumentJournalItem{},
			TotalCount: 0,
		}, nil
	}

	query := strings.Join(unions, " UNION ALL ")
	query += " ORDER BY date DESC, number"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var items []reports.DocumentJournalItem
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("document journal: %w", err)
	}

	return &reports.DocumentJournal{
		Items:      items,
		TotalCount: len(items),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// GetDocumentTypeSummary returns document counts and totals by type.
func (r *ReportRepo) GetDocumentTypeSummary(ctx context.Context, filter reports.DocumentJournalFilter) ([]reports.DocumentTypeSummary, error) {
	var result []reports.DocumentTypeSummary

	docTypes := filter.DocumentTypes
	if len(docTypes) == 0 {
		docTypes = journalTypeOrder
	}

	querier := r.txm.GetQuerier(ctx)

	for _, docType := range docTypes {
		src, ok := journalSources[docType]
		if !ok {
			continue
		}

		var summary reports.DocumentTypeSummary
		summary.DocumentType = docType

		var args []any
		argIndex := 1

		query := fmt.Sprintf(`
			SELECT
				COUNT(*) as count,
				COUNT(*) FILTER (WHERE status = 'posted') as posted_count,
				COALESCE(SUM((SELECT SUM(quantity) FROM %s WHERE document_id = d.id)), 0)::float8 as total_quantity,
				COALESCE(SUM(%s), 0) as total_amount
			FROM %s d
			WHERE deletion_mark = false
		`, src.linesTable, src.amountExpr, src.table)

		if filter.FromDate != nil {
			query += fmt.Sprintf(" AND date >= $%d", argIndex)
			args = append(args, *filter.FromDate)
			argIndex++
		}
		if filter.ToDate != nil {
			query += fmt.Sprintf(" AND date < $%d", argIndex)
			args = append(args, *filter.ToDate)
			argIndex++
		}

		err := querier.QueryRow(ctx, query, args...).Scan(
			&summary.Count,
			&summary.PostedCount,
			&summary.TotalQuantity,
			&summary.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("document type summary for %s: %w", docType, err)
		}

		result = append(result, summary)
	}

	return result, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
