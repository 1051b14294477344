package billing

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/customer"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	invoices  repository.InvoiceRepository
	txRunner  CustomerTxRunner
	generator StatementPDFGenerator
	export    ExportConfig
	now       func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	txRunner CustomerTxRunner,
	generator StatementPDFGenerator,
	export ExportConfig,
) *CustomerUseCase {
	return &CustomerUseCase{
		repo:      repo,
		invoices:  invoices,
		txRunner:  txRunner,
		generator: generator,
		export:    export,
		now:       time.Now,
	}
}

// Create crea un nuevo cliente. La identificación, si viene, es única por empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Identification != "" {
		existing, err := uc.repo.GetByCompanyAndIdentification(ctx, companyID, in.Identification)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := uc.now()
	c := &entity.Customer{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Name:             strings.TrimSpace(in.Name),
		Identification:   in.Identification,
		Email:            in.Email,
		ContactPerson:    in.ContactPerson,
		InvoicingAddress: in.InvoicingAddress,
		ShippingAddress:  in.ShippingAddress,
		Active:           in.Active == nil || *in.Active,
		MetaAttributes:   in.MetaAttributes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.NameSlug = customer.NameSlug(c.Name)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Update aplica una actualización parcial y vuelve a validar el registro.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := loadCustomer(ctx, uc.repo.GetByID, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Identification != nil && *in.Identification != "" && *in.Identification != c.Identification {
		existing, err := uc.repo.GetByCompanyAndIdentification(ctx, companyID, *in.Identification)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != c.ID {
			return nil, domain.ErrDuplicate
		}
	}

	applyUpdate(c, in)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.NameSlug = customer.NameSlug(c.Name)
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Get devuelve la proyección estructurada del cliente con su resumen financiero en vivo.
func (uc *CustomerUseCase) Get(ctx context.Context, companyID, id string) (*dto.CustomerDetailResponse, error) {
	c, err := loadCustomer(ctx, uc.repo.GetByID, companyID, id)
	if err != nil {
		return nil, err
	}
	summary, err := uc.repo.Summary(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	projection, err := customer.Projection(c)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerDetailResponse{
		Customer:    projection,
		DisplayName: c.DisplayName(),
		Summary:     toSummaryResponse(summary),
	}, nil
}

// List lista clientes de la empresa con búsqueda libre y filtro de activos.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, in dto.ListCustomersRequest) (*dto.CustomerListResponse, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, companyID, repository.CustomerFilter{
		Terms:      strings.TrimSpace(in.Q),
		OnlyActive: in.OnlyActive,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Summary calcula total, pagado y saldo del cliente. No se cachea.
func (uc *CustomerUseCase) Summary(ctx context.Context, companyID, id string) (*dto.FinancialSummaryResponse, error) {
	c, err := loadCustomer(ctx, uc.repo.GetByID, companyID, id)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.Summary(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := toSummaryResponse(s)
	return &out, nil
}

// Delete marca el cliente como eliminado si no tiene saldo pendiente.
// La fila del cliente se bloquea (FOR UPDATE) antes de leer saldos; guarda y soft-delete
// corren en la misma transacción, así que una factura concurrente espera o es rechazada.
//
// Retorna:
//   - *domain.DeletionBlockedError (errors.Is ErrCustomerHasUnpaidInvoices) si total > pagado.
//   - domain.ErrNotFound / domain.ErrForbidden si el cliente no existe o es de otra empresa.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.txRunner.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
		c, err := loadCustomer(ctx, repo.GetForUpdate, companyID, id)
		if err != nil {
			return err
		}
		summary, err := repo.Summary(ctx, c.ID)
		if err != nil {
			return err
		}
		if _, err := customer.CheckDeletion(c, summary); err != nil {
			return err
		}
		return repo.SoftDelete(ctx, c.ID, uc.now())
	})
}

// ExportCSV escribe en w el CSV de los clientes que cumplen el filtro (sin paginar)
// y devuelve el charset con el que quedó codificado.
// in.Charset, si viene, reemplaza el charset configurado.
func (uc *CustomerUseCase) ExportCSV(ctx context.Context, companyID string, in dto.ListCustomersRequest, w io.Writer) (string, error) {
	requested := uc.export.Charset
	if in.Charset != "" {
		requested = in.Charset
	}
	charset, err := customer.ResolveCharset(requested)
	if err != nil {
		return "", err
	}
	list, err := uc.repo.List(ctx, companyID, repository.CustomerFilter{
		Terms:      strings.TrimSpace(in.Q),
		OnlyActive: in.OnlyActive,
	})
	if err != nil {
		return "", err
	}
	if err := customer.WriteCSV(w, list,
		customer.WithDelimiter(uc.export.Delimiter),
		customer.WithCharset(charset),
	); err != nil {
		return "", fmt.Errorf("exportar clientes: %w", err)
	}
	return charset, nil
}

// StatementPDF genera el estado de cuenta del cliente: datos, facturas y saldos.
// Los saldos se calculan sobre las mismas facturas que se imprimen.
func (uc *CustomerUseCase) StatementPDF(ctx context.Context, companyID, id string) (pdfBytes []byte, filename string, err error) {
	c, err := loadCustomer(ctx, uc.repo.GetByID, companyID, id)
	if err != nil {
		return nil, "", err
	}
	invoices, err := uc.invoices.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: listar facturas: %w", err)
	}
	summary := customer.SummarizeInvoices(invoices)
	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, c, invoices, summary)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: %w", err)
	}
	slug := c.NameSlug
	if slug == "" {
		slug = c.ID
	}
	return pdfBytes, fmt.Sprintf("estado-cuenta-%s.pdf", slug), nil
}

// customerGetter lectura de un cliente por ID (GetByID o GetForUpdate).
type customerGetter func(ctx context.Context, id string) (*entity.Customer, error)

// loadCustomer obtiene el cliente y verifica que pertenezca a la empresa del token.
func loadCustomer(ctx context.Context, get customerGetter, companyID, id string) (*entity.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	c, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func applyUpdate(c *entity.Customer, in dto.UpdateCustomerRequest) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Identification != nil {
		c.Identification = *in.Identification
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.ContactPerson != nil {
		c.ContactPerson = *in.ContactPerson
	}
	if in.InvoicingAddress != nil {
		c.InvoicingAddress = *in.InvoicingAddress
	}
	if in.ShippingAddress != nil {
		c.ShippingAddress = *in.ShippingAddress
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	if in.MetaAttributes != nil {
		c.MetaAttributes = in.MetaAttributes
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		DisplayName:      c.DisplayName(),
		Identification:   c.Identification,
		Email:            c.Email,
		ContactPerson:    c.ContactPerson,
		InvoicingAddress: c.InvoicingAddress,
		ShippingAddress:  c.ShippingAddress,
		Active:           c.Active,
		MetaAttributes:   c.MetaAttributes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toSummaryResponse(s entity.FinancialSummary) dto.FinancialSummaryResponse {
	return dto.FinancialSummaryResponse{Total: s.Total, Paid: s.Paid, Due: s.Due()}
}
