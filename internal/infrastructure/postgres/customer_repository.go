package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/customer"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company_id, name, name_slug, identification, email, contact_person,
	invoicing_address, shipping_address, active, meta_attributes, deleted_at, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, company_id, name, name_slug, identification, email, contact_person,
			invoicing_address, shipping_address, active, meta_attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.NameSlug, c.Identification, c.Email, c.ContactPerson,
		c.InvoicingAddress, c.ShippingAddress, c.Active, emptyIfNil(c.MetaAttributes),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente no eliminado por ID. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND deleted_at IS NULL`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene el cliente y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene efecto dentro de una transacción; las facturas que se inserten o
// modifiquen para este cliente esperan hasta el Commit o Rollback.
func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer for update: %w", err)
	}
	return c, nil
}

// GetByCompanyAndIdentification obtiene un cliente por empresa e identificación.
func (r *CustomerRepo) GetByCompanyAndIdentification(ctx context.Context, companyID, identification string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE company_id = $1 AND identification = $2 AND deleted_at IS NULL`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, companyID, identification))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by identification: %w", err)
	}
	return c, nil
}

// List lista clientes de la empresa aplicando los predicados del filtro en conjunción.
func (r *CustomerRepo) List(ctx context.Context, companyID string, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	where, args, err := customerWhere(companyID, filter.Predicates())
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + where + ` ORDER BY name, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente no eliminado.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, name_slug = $3, identification = $4, email = $5,
			contact_person = $6, invoicing_address = $7, shipping_address = $8, active = $9,
			meta_attributes = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.NameSlug, c.Identification, c.Email, c.ContactPerson,
		c.InvoicingAddress, c.ShippingAddress, c.Active, emptyIfNil(c.MetaAttributes), c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el cliente como eliminado; el registro no se borra.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Summary suma gross_amount y paid_amount de las facturas no borrador. COALESCE garantiza 0 sin facturas.
func (r *CustomerRepo) Summary(ctx context.Context, customerID string) (entity.FinancialSummary, error) {
	query := `
		SELECT COALESCE(SUM(gross_amount), 0), COALESCE(SUM(paid_amount), 0)
		FROM invoices WHERE customer_id = $1 AND draft = false`
	var s entity.FinancialSummary
	if err := r.q.QueryRow(ctx, query, customerID).Scan(&s.Total, &s.Paid); err != nil {
		return entity.FinancialSummary{}, fmt.Errorf("customer summary: %w", err)
	}
	return s, nil
}

// customerWhere construye la cláusula WHERE a partir de los predicados de dominio.
// Un predicado sin traducción a SQL es un error: ignorarlo ampliaría el resultado.
func customerWhere(companyID string, preds []customer.Predicate) (string, []any, error) {
	clauses := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []any{companyID}
	for _, p := range preds {
		switch p := p.(type) {
		case customer.TermsPredicate:
			args = append(args, containsPattern(p.Terms))
			n := len(args)
			clauses = append(clauses, fmt.Sprintf(
				"(name ILIKE $%d OR email ILIKE $%d OR identification ILIKE $%d)", n, n, n))
		case customer.ActivePredicate:
			clauses = append(clauses, "active = true")
		case nil:
		default:
			return "", nil, fmt.Errorf("list customers: predicado no soportado %T", p)
		}
	}
	return strings.Join(clauses, " AND "), args, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.NameSlug, &c.Identification, &c.Email, &c.ContactPerson,
		&c.InvoicingAddress, &c.ShippingAddress, &c.Active, &c.MetaAttributes, &c.DeletedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
