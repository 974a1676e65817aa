package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/reparation"
	"github.com/tallerpro/taller-api/internal/domain/repository"
	"github.com/tallerpro/taller-api/pkg/validate"
)

// ReparationHandler maneja las peticiones HTTP de reparaciones (protegido).
type ReparationHandler struct {
	uc        *reparation.UseCase
	invoiceUC *reparation.InvoiceUseCase
}

// NewReparationHandler construye el handler.
func NewReparationHandler(uc *reparation.UseCase, invoiceUC *reparation.InvoiceUseCase) *ReparationHandler {
	return &ReparationHandler{uc: uc, invoiceUC: invoiceUC}
}

// Create godoc
// @Summary      Crear reparación
// @Description  Consume el stock de cada línea de repuesto y congela las fotos
// @Description  de precio del catálogo, todo en una sola transacción.
// @Tags         reparations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReparationRequest  true  "Reparación"
// @Success      201   {object}  dto.ReparationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reparations [post]
func (h *ReparationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReparationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rep, err := h.uc.Create(c.Context(), GetUserID(c), &in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReparationResponse(rep))
}

// GetByID godoc
// @Summary      Obtener reparación por ID
// @Tags         reparations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reparación"
// @Success      200  {object}  dto.ReparationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reparations/{id} [get]
func (h *ReparationHandler) GetByID(c *fiber.Ctx) error {
	rep, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToReparationResponse(rep))
}

// List godoc
// @Summary      Listar reparaciones
// @Tags         reparations
// @Security     Bearer
// @Produce      json
// @Param        vehicle_id  query  string  false  "Filtrar por vehículo"
// @Param        status      query  string  false  "pending | in_progress | completed | cancelled"
// @Param        technician  query  string  false  "Filtrar por técnico"
// @Param        search      query  string  false  "Búsqueda en descripción"
// @Param        start_from  query  string  false  "Inicio desde (RFC3339 o YYYY-MM-DD)"
// @Param        end_to      query  string  false  "Fin hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ReparationListResponse
// @Router       /api/reparations [get]
func (h *ReparationHandler) List(c *fiber.Ctx) error {
	filter := repository.ReparationFilter{
		VehicleID:  c.Query("vehicle_id"),
		Status:     c.Query("status"),
		Technician: c.Query("technician"),
		Search:     c.Query("search"),
	}
	var err error
	if filter.StartFrom, err = parseTimeParam(c.Query("start_from")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_from: fecha inválida"})
	}
	if filter.EndTo, err = parseTimeParam(c.Query("end_to")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_to: fecha inválida"})
	}
	limit, offset := pageParams(c)
	reps, total, err := h.uc.List(filter, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.ReparationResponse, 0, len(reps))
	for _, rep := range reps {
		out = append(out, dto.ToReparationResponse(rep))
	}
	return c.JSON(dto.ReparationListResponse{
		Reparations: out,
		Page:        dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// Update godoc
// @Summary      Actualizar reparación (reemplazo completo)
// @Description  Devuelve el stock de TODAS las líneas anteriores y consume el
// @Description  de TODAS las nuevas; las listas no son un diff.
// @Tags         reparations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reparación"
// @Param        body  body  dto.UpdateReparationRequest  true  "Reparación"
// @Success      200   {object}  dto.ReparationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reparations/{id} [put]
func (h *ReparationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReparationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rep, err := h.uc.Update(c.Context(), c.Params("id"), GetUserID(c), &in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToReparationResponse(rep))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la reparación
// @Description  No toca stock. Al pasar a un estado terminal fija end_date.
// @Tags         reparations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reparación"
// @Param        body  body  dto.UpdateReparationStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ReparationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reparations/{id}/status [patch]
func (h *ReparationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateReparationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rep, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToReparationResponse(rep))
}

// Delete godoc
// @Summary      Eliminar reparación
// @Description  Devuelve primero el stock de todas sus líneas, en una sola transacción.
// @Tags         reparations
// @Security     Bearer
// @Param        id  path  string  true  "ID de la reparación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reparations/{id} [delete]
func (h *ReparationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadInvoice godoc
// @Summary      Descargar factura PDF de la reparación
// @Tags         reparations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la reparación"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reparations/{id}/invoice [get]
func (h *ReparationHandler) DownloadInvoice(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.invoiceUC.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
