package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eproc-api/internal/domain"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, person_type, document, name, trade_name, state_registration, municipal_registration,
	cnae_code, cnae_description, tax_regime, ie_indicator,
	postal_code, street, number, complement, neighborhood, city, state, latitude, longitude,
	email, phone, website, observations, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	a := &s.Address
	err := row.Scan(
		&s.ID, &s.PersonType, &s.Document, &s.Name, &s.TradeName, &s.StateRegistration, &s.MunicipalRegistration,
		&s.CNAECode, &s.CNAEDescription, &s.TaxRegime, &s.IEIndicator,
		&a.PostalCode, &a.Street, &a.Number, &a.Complement, &a.Neighborhood, &a.City, &a.State, &a.Latitude, &a.Longitude,
		&s.Email, &s.Phone, &s.Website, &s.Observations, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26)`
	a := s.Address
	_, err := r.q.Exec(ctx, query,
		s.ID, s.PersonType, s.Document, s.Name, s.TradeName, s.StateRegistration, s.MunicipalRegistration,
		s.CNAECode, s.CNAEDescription, s.TaxRegime, s.IEIndicator,
		a.PostalCode, a.Street, a.Number, a.Complement, a.Neighborhood, a.City, a.State, a.Latitude, a.Longitude,
		s.Email, s.Phone, s.Website, s.Observations, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// GetByEmail obtiene un proveedor por email (sin distinguir mayúsculas).
func (r *SupplierRepo) GetByEmail(ctx context.Context, email string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE lower(email) = lower($1) LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier by email: %w", err)
	}
	return s, nil
}

// Update reemplaza todos los campos editables del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET
			person_type = $2, document = $3, name = $4, trade_name = $5, state_registration = $6,
			municipal_registration = $7, cnae_code = $8, cnae_description = $9, tax_regime = $10, ie_indicator = $11,
			postal_code = $12, street = $13, number = $14, complement = $15, neighborhood = $16, city = $17,
			state = $18, latitude = $19, longitude = $20, email = $21, phone = $22, website = $23,
			observations = $24, updated_at = $25
		WHERE id = $1`
	a := s.Address
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.PersonType, s.Document, s.Name, s.TradeName, s.StateRegistration,
		s.MunicipalRegistration, s.CNAECode, s.CNAEDescription, s.TaxRegime, s.IEIndicator,
		a.PostalCode, a.Street, a.Number, a.Complement, a.Neighborhood, a.City,
		a.State, a.Latitude, a.Longitude, s.Email, s.Phone, s.Website,
		s.Observations, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por nombre, nombre fantasía, documento o email y ordena por nombre.
func (r *SupplierRepo) List(ctx context.Context, f entity.SupplierFilter) ([]*entity.Supplier, int, error) {
	where := `WHERE $1 = '' OR name ILIKE $2 OR trade_name ILIKE $2 OR email ILIKE $2 OR document LIKE $2`
	pattern := likePattern(f.Search)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers `+where, f.Search, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers `+where+` ORDER BY name, id LIMIT $3 OFFSET $4`,
		f.Search, pattern, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Supplier, 0, f.Limit)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete elimina un proveedor. Si aún tiene productos devuelve domain.ErrSupplierHasProducts.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSupplierHasProducts
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
