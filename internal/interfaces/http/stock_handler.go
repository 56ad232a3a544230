package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// StockHandler maneja ajustes de stock, historial y vista de saldos (protegido).
type StockHandler struct {
	adjust  *inventory.AdjustStockUseCase
	history *inventory.StockHistoryUseCase
	reports *reports.ReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	adjust *inventory.AdjustStockUseCase,
	history *inventory.StockHistoryUseCase,
	reports *reports.ReportUseCase,
) *StockHandler {
	return &StockHandler{adjust: adjust, history: history, reports: reports}
}

// Adjust godoc
// @Summary      Registrar ajuste de stock
// @Description  Aplica una entrada o salida de forma atómica: bloquea la fila de
// @Description  saldo, valida suficiencia en salidas, inserta el movimiento y
// @Description  actualiza el saldo. Si el ajuste cruza el umbral mínimo registra
// @Description  una alerta para el usuario.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "type (in|out), quantity > 0, description"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{productId}/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.adjust.AdjustStock(c.Context(), inventory.AdjustStockInput{
		ProductID:   productID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Description: in.Description,
		UserID:      userID,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			movementsRejectedTotal.WithLabelValues("validation").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser in|out, quantity > 0 y description no vacía"})
		}
		if err == domain.ErrNotFound {
			movementsRejectedTotal.WithLabelValues("not_found").Inc()
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			movementsRejectedTotal.WithLabelValues("insufficient_stock").Inc()
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"})
		}
		movementsRejectedTotal.WithLabelValues("internal").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo registrar el ajuste"})
	}
	movementsAppliedTotal.WithLabelValues(in.Type).Inc()
	if result.AlertRaised {
		lowStockAlertsTotal.Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		MovementID:  result.MovementID,
		NewQuantity: result.NewQuantity,
		AlertRaised: result.AlertRaised,
	})
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId   path   string  true   "ID del producto"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        type        query  string  false  "in | out"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{productId}/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	movType := c.Query("type")
	if movType != "" && !entity.ValidMovementType(movType) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser in u out"})
	}
	from, err := parseDateQuery(c.Query("start_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida (YYYY-MM-DD)"})
	}
	to, err := parseDateQuery(c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida (YYYY-MM-DD)"})
	}
	out, err := h.history.GetHistory(productID, from, to, movType, page)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date no puede ser anterior a start_date"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Listado de productos con su saldo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.StockOverviewResponse
// @Router       /api/stock [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.reports.StockOverview(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
