package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/domain/repository"
	"github.com/tallerpro/taller-api/pkg/validate"
)

// StockHandler maneja el libro de transacciones de stock (protegido).
type StockHandler struct {
	applyUC *stock.ApplyMovementUseCase
	queryUC *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(applyUC *stock.ApplyMovementUseCase, queryUC *stock.QueryUseCase) *StockHandler {
	return &StockHandler{applyUC: applyUC, queryUC: queryUC}
}

// CreateEntry godoc
// @Summary      Registrar movimiento manual de stock
// @Description  Tipos admitidos: purchase, adjustment, damage, return_to_supplier.
// @Description  Los movimientos de reparación los emite el ciclo de vida de la reparación.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockEntryRequest  true  "Movimiento"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transactions [post]
func (h *StockHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	result, err := h.applyUC.ApplyMovement(c.Context(), stock.MovementInput{
		UserID:     GetUserID(c),
		ItemID:     in.ItemID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		SupplierID: in.SupplierID,
		Reference:  in.Reference,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockEntryResponse{
		Transaction: dto.ToStockTransactionResponse(result.Transaction),
		Item:        dto.ToItemResponse(result.Item),
	})
}

// GetByID godoc
// @Summary      Obtener asiento por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  dto.StockTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/transactions/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.queryUC.Get(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToStockTransactionResponse(tx))
}

// List godoc
// @Summary      Listar asientos del libro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id        query  string  false  "Filtrar por item"
// @Param        type           query  string  false  "Filtrar por tipo"
// @Param        reparation_id  query  string  false  "Filtrar por reparación"
// @Param        from           query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to             query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockTransactionListResponse
// @Router       /api/stock/transactions [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	filter := repository.StockTransactionFilter{
		ItemID:       c.Query("item_id"),
		Type:         c.Query("type"),
		ReparationID: c.Query("reparation_id"),
	}
	var err error
	if filter.From, err = parseTimeParam(c.Query("from")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: fecha inválida"})
	}
	if filter.To, err = parseTimeParam(c.Query("to")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: fecha inválida"})
	}
	limit, offset := pageParams(c)
	txs, total, err := h.queryUC.List(filter, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.StockTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.ToStockTransactionResponse(tx))
	}
	return c.JSON(dto.StockTransactionListResponse{
		Transactions: out,
		Page:         dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// Stats godoc
// @Summary      Totales del libro agrupados por tipo de transacción
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionTypeStatsResponse
// @Router       /api/stock/stats [get]
func (h *StockHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.queryUC.StatsByType()
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.TransactionTypeStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.TransactionTypeStatsResponse{
			Type:          s.Type,
			Count:         s.Count,
			TotalQuantity: s.TotalQuantity,
			TotalAmount:   s.TotalAmount,
		})
	}
	return c.JSON(out)
}

// parseTimeParam acepta RFC3339 o fecha simple YYYY-MM-DD. Vacío devuelve nil.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
