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

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `id, make, model, year, license_plate, vin,
	owner_name, owner_phone, owner_email, notes, created_at, updated_at`

// VehicleRepo implementación de VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo. La placa es única.
func (r *VehicleRepo) Create(v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Make, v.Model, v.Year, v.LicensePlate, v.VIN,
		v.Owner.Name, v.Owner.Phone, v.Owner.Email, v.Notes, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	return r.getBy(`id = $1`, id)
}

// GetByPlate obtiene un vehículo por placa.
func (r *VehicleRepo) GetByPlate(plate string) (*entity.Vehicle, error) {
	return r.getBy(`license_plate = $1`, plate)
}

func (r *VehicleRepo) getBy(where string, arg any) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE ` + where
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.VIN,
		&v.Owner.Name, &v.Owner.Phone, &v.Owner.Email, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// Update actualiza un vehículo.
func (r *VehicleRepo) Update(v *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET make = $2, model = $3, year = $4, license_plate = $5, vin = $6,
			owner_name = $7, owner_phone = $8, owner_email = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		v.ID, v.Make, v.Model, v.Year, v.LicensePlate, v.VIN,
		v.Owner.Name, v.Owner.Phone, v.Owner.Email, v.Notes, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un vehículo por ID.
func (r *VehicleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista vehículos con búsqueda y paginación, más recientes primero.
func (r *VehicleRepo) List(filter repository.VehicleFilter, limit, offset int) ([]*entity.Vehicle, error) {
	where, args := vehicleFilterWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+vehicleColumns+` FROM vehicles %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.VIN,
			&v.Owner.Name, &v.Owner.Phone, &v.Owner.Email, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Count cuenta vehículos que cumplen el filtro.
func (r *VehicleRepo) Count(filter repository.VehicleFilter) (int, error) {
	where, args := vehicleFilterWhere(filter)
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM vehicles `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}

func vehicleFilterWhere(f repository.VehicleFilter) (string, []any) {
	if f.Search == "" {
		return "", nil
	}
	pattern := "%" + f.Search + "%"
	return `WHERE (license_plate ILIKE $1 OR make ILIKE $1 OR model ILIKE $1 OR owner_name ILIKE $1)`,
		[]any{pattern}
}
