package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/billing"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// CustomerService operaciones de clientes que expone la API.
type CustomerService interface {
	Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.CustomerDetailResponse, error)
	List(ctx context.Context, companyID string, in dto.ListCustomersRequest) (*dto.CustomerListResponse, error)
	Summary(ctx context.Context, companyID, id string) (*dto.FinancialSummaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	ExportCSV(ctx context.Context, companyID string, in dto.ListCustomersRequest, w io.Writer) (string, error)
	StatementPDF(ctx context.Context, companyID, id string) ([]byte, string, error)
}

var _ CustomerService = (*billing.CustomerUseCase)(nil)

// CustomerHandler maneja las peticiones HTTP de clientes (facturación, protegido).
type CustomerHandler struct {
	uc  CustomerService
	log *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc CustomerService, log *logger.Logger) *CustomerHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCustomerRequest  true  "name requerido; identification única por empresa"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List godoc
// @Summary      Buscar clientes
// @Description  q busca en nombre, email e identificación (sin distinguir mayúsculas).
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q            query     string  false  "términos de búsqueda"
// @Param        only_active  query     bool    false  "solo clientes activos"
// @Param        limit        query     int     false  "máximo 100"  default(20)
// @Param        offset       query     int     false  "desplazamiento"
// @Success      200          {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ListCustomersRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.uc.List(c.Context(), companyID, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

// ExportCSV godoc
// @Summary      Exportar clientes a CSV
// @Description  Columnas fijas, luego los atributos personalizados (orden alfabético) y al final active.
// @Tags         customers
// @Security     Bearer
// @Produce      text/csv
// @Param        q            query  string  false  "términos de búsqueda"
// @Param        only_active  query  bool    false  "solo clientes activos"
// @Param        charset      query  string  false  "utf-8 | windows-1252 (por defecto EXPORT_CSV_CHARSET)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers/export.csv [get]
func (h *CustomerHandler) ExportCSV(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ListCustomersRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	var buf bytes.Buffer
	charset, err := h.uc.ExportCSV(c.Context(), companyID, in, &buf)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset="+charset)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="clientes.csv"`)
	return c.Send(buf.Bytes())
}

// Get godoc
// @Summary      Detalle del cliente con saldos
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen financiero del cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.FinancialSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/summary [get]
func (h *CustomerHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Summary(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// StatementPDF godoc
// @Summary      Estado de cuenta en PDF
// @Tags         customers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del cliente"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statement.pdf [get]
func (h *CustomerHandler) StatementPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	pdfBytes, filename, err := h.uc.StatementPDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// Update godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del cliente"
// @Param        body  body      dto.UpdateCustomerRequest  true  "campos a modificar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Falla con 409 UNPAID_INVOICES mientras el total facturado supere lo pagado.
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail traduce errores de dominio a respuestas HTTP.
func (h *CustomerHandler) fail(c *fiber.Ctx, err error) error {
	var blocked *domain.DeletionBlockedError
	if errors.As(err, &blocked) {
		h.log.Warn().
			Str("user_id", GetUserID(c)).
			Str("customer_id", blocked.CustomerID).
			Str("due", blocked.Due.String()).
			Msg("eliminación de cliente bloqueada")
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNPAID_INVOICES", Message: blocked.Error()})
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrCustomerHasUnpaidInvoices):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNPAID_INVOICES", Message: domain.ErrCustomerHasUnpaidInvoices.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un cliente con esa identificación"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el cliente cambió durante la operación, reintente"})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado en clientes")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
