package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// ReportHandler maneja reportes, exportación PDF y dashboard (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockReport godoc
// @Summary      Reporte de stock
// @Description  Saldo actual y totales históricos in/out por producto.
// @Description  Con ?format=pdf devuelve el documento descargable.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "pdf para exportar"
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	if c.Query("format") == "pdf" {
		doc, err := h.uc.StockReportPDF(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return sendPDF(c, "reporte-stock", doc)
	}
	out, err := h.uc.StockReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MovementReport godoc
// @Summary      Reporte de movimientos
// @Description  Movimientos con producto, categoría y usuario, más recientes primero.
// @Description  Fechas inclusivas YYYY-MM-DD; type filtra in|out. Con ?format=pdf
// @Description  devuelve el documento descargable.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        type        query  string  false  "in | out"
// @Param        format      query  string  false  "pdf para exportar"
// @Success      200  {object}  dto.MovementReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movement [get]
func (h *ReportHandler) MovementReport(c *fiber.Ctx) error {
	var q dto.MovementReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	if c.Query("format") == "pdf" {
		doc, err := h.uc.MovementReportPDF(c.Context(), q)
		if err != nil {
			return movementReportError(c, err)
		}
		return sendPDF(c, "reporte-movimientos", doc)
	}
	out, err := h.uc.MovementReport(c.Context(), q)
	if err != nil {
		return movementReportError(c, err)
	}
	return c.JSON(out)
}

func movementReportError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas YYYY-MM-DD con rango válido; type debe ser in u out"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// LowStockReport godoc
// @Summary      Reporte de stock mínimo
// @Description  Productos con saldo en o bajo su umbral mínimo, ordenados por código.
// @Description  Con ?format=pdf devuelve el documento descargable.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "pdf para exportar"
// @Success      200  {object}  dto.LowStockReportResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStockReport(c *fiber.Ctx) error {
	if c.Query("format") == "pdf" {
		doc, err := h.uc.LowStockReportPDF(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return sendPDF(c, "reporte-stock-minimo", doc)
	}
	out, err := h.uc.LowStockReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Contadores del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func sendPDF(c *fiber.Ctx, name string, doc []byte) error {
	filename := fmt.Sprintf("%s-%s.pdf", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
