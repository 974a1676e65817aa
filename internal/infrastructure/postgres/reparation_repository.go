package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.ReparationRepository = (*ReparationRepo)(nil)

const reparationColumns = `id, vehicle_id, description, technician, status, start_date, end_date,
	labor_cost, parts_cost, services_cost, total_profit, total_cost, notes, created_by, created_at, updated_at`

// ReparationRepo implementación de ReparationRepository sobre PostgreSQL.
// Las líneas viven en reparation_items y reparation_services y se
// reemplazan completas en cada Update.
type ReparationRepo struct {
	q Querier
}

// NewReparationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReparationRepository(q Querier) *ReparationRepo {
	return &ReparationRepo{q: q}
}

// Create persiste la reparación con sus líneas.
func (r *ReparationRepo) Create(rep *entity.Reparation) error {
	query := `
		INSERT INTO reparations (` + reparationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.VehicleID, rep.Description, rep.Technician, rep.Status,
		rep.StartDate, rep.EndDate, rep.LaborCost, rep.PartsCost, rep.ServicesCost,
		rep.TotalProfit, rep.TotalCost, rep.Notes, rep.CreatedBy, rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reparation: %w", err)
	}
	return r.insertLines(rep)
}

// GetByID obtiene la reparación con todas sus líneas.
func (r *ReparationRepo) GetByID(id string) (*entity.Reparation, error) {
	query := `SELECT ` + reparationColumns + ` FROM reparations WHERE id = $1`
	var rep entity.Reparation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rep.ID, &rep.VehicleID, &rep.Description, &rep.Technician, &rep.Status,
		&rep.StartDate, &rep.EndDate, &rep.LaborCost, &rep.PartsCost, &rep.ServicesCost,
		&rep.TotalProfit, &rep.TotalCost, &rep.Notes, &rep.CreatedBy, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get reparation: %w", err)
	}
	if err := r.loadLines(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Update reescribe cabecera y líneas completas (las líneas no son un diff).
func (r *ReparationRepo) Update(rep *entity.Reparation) error {
	query := `
		UPDATE reparations SET vehicle_id = $2, description = $3, technician = $4, status = $5,
			start_date = $6, end_date = $7, labor_cost = $8, parts_cost = $9, services_cost = $10,
			total_profit = $11, total_cost = $12, notes = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.VehicleID, rep.Description, rep.Technician, rep.Status,
		rep.StartDate, rep.EndDate, rep.LaborCost, rep.PartsCost, rep.ServicesCost,
		rep.TotalProfit, rep.TotalCost, rep.Notes, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reparation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := r.deleteLines(rep.ID); err != nil {
		return err
	}
	return r.insertLines(rep)
}

// Delete elimina la reparación y sus líneas. Los asientos del libro quedan.
func (r *ReparationRepo) Delete(id string) error {
	if err := r.deleteLines(id); err != nil {
		return err
	}
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM reparations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reparation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista reparaciones (cabecera + líneas) filtradas y paginadas.
func (r *ReparationRepo) List(filter repository.ReparationFilter, sortField string, sortDesc bool, limit, offset int) ([]*entity.Reparation, error) {
	where, args := reparationFilterWhere(filter)
	order := reparationOrder(sortField, sortDesc)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+reparationColumns+` FROM reparations %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reparations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reparation
	for rows.Next() {
		var rep entity.Reparation
		if err := rows.Scan(
			&rep.ID, &rep.VehicleID, &rep.Description, &rep.Technician, &rep.Status,
			&rep.StartDate, &rep.EndDate, &rep.LaborCost, &rep.PartsCost, &rep.ServicesCost,
			&rep.TotalProfit, &rep.TotalCost, &rep.Notes, &rep.CreatedBy, &rep.CreatedAt, &rep.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reparation: %w", err)
		}
		list = append(list, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rep := range list {
		if err := r.loadLines(rep); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Count cuenta reparaciones que cumplen el filtro.
func (r *ReparationRepo) Count(filter repository.ReparationFilter) (int, error) {
	where, args := reparationFilterWhere(filter)
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM reparations `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reparations: %w", err)
	}
	return n, nil
}

func (r *ReparationRepo) insertLines(rep *entity.Reparation) error {
	ctx := context.Background()
	for _, li := range rep.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO reparation_items (reparation_id, item_id, item_name, quantity, buy_price, sell_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rep.ID, li.ItemID, li.ItemName, li.Quantity, li.BuyPrice, li.SellPrice, li.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert reparation item: %w", err)
		}
	}
	for _, ls := range rep.Services {
		_, err := r.q.Exec(ctx, `
			INSERT INTO reparation_services (reparation_id, service_id, service_name, price, notes)
			VALUES ($1, $2, $3, $4, $5)`,
			rep.ID, ls.ServiceID, ls.ServiceName, ls.Price, ls.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert reparation service: %w", err)
		}
	}
	return nil
}

func (r *ReparationRepo) deleteLines(reparationID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM reparation_items WHERE reparation_id = $1`, reparationID); err != nil {
		return fmt.Errorf("delete reparation items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM reparation_services WHERE reparation_id = $1`, reparationID); err != nil {
		return fmt.Errorf("delete reparation services: %w", err)
	}
	return nil
}

func (r *ReparationRepo) loadLines(rep *entity.Reparation) error {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT item_id, item_name, quantity, buy_price, sell_price, total_price
		FROM reparation_items WHERE reparation_id = $1 ORDER BY item_name`, rep.ID)
	if err != nil {
		return fmt.Errorf("load reparation items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var li entity.ReparationItem
		if err := rows.Scan(&li.ItemID, &li.ItemName, &li.Quantity, &li.BuyPrice, &li.SellPrice, &li.TotalPrice); err != nil {
			return fmt.Errorf("scan reparation item: %w", err)
		}
		rep.Items = append(rep.Items, li)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	svcRows, err := r.q.Query(ctx, `
		SELECT service_id, service_name, price, notes
		FROM reparation_services WHERE reparation_id = $1 ORDER BY service_name`, rep.ID)
	if err != nil {
		return fmt.Errorf("load reparation services: %w", err)
	}
	defer svcRows.Close()
	for svcRows.Next() {
		var ls entity.ReparationService
		if err := svcRows.Scan(&ls.ServiceID, &ls.ServiceName, &ls.Price, &ls.Notes); err != nil {
			return fmt.Errorf("scan reparation service: %w", err)
		}
		rep.Services = append(rep.Services, ls)
	}
	return svcRows.Err()
}

// reparationFilterWhere arma la cláusula WHERE dinámica del filtro de reparaciones.
func reparationFilterWhere(f repository.ReparationFilter) (string, []any) {
	where := ""
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		cond = fmt.Sprintf(cond, len(args))
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if f.VehicleID != "" {
		add("vehicle_id = $%d", f.VehicleID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Technician != "" {
		add("technician ILIKE $%d", "%"+f.Technician+"%")
	}
	if f.Search != "" {
		add("description ILIKE $%d", "%"+f.Search+"%")
	}
	if f.StartFrom != nil {
		add("start_date >= $%d", *f.StartFrom)
	}
	if f.EndTo != nil {
		add("start_date <= $%d", *f.EndTo)
	}
	return where, args
}

// reparationOrder resuelve el ORDER BY contra una lista blanca de columnas.
func reparationOrder(field string, desc bool) string {
	switch field {
	case "created_at", "start_date", "status", "total_cost":
	default:
		field = "created_at"
	}
	if desc {
		return field + " DESC"
	}
	return field + " ASC"
}
