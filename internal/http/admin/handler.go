package admin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sbtransport/sbtconsole/internal/apperr"
	"github.com/sbtransport/sbtconsole/internal/bundle"
	"github.com/sbtransport/sbtconsole/internal/invoice"
	"github.com/sbtransport/sbtconsole/internal/pricing"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// statusOf maps an error to the HTTP status the console expects.
func statusOf(err error) int {
	var (
		ce *apperr.ConfigurationError
		ae *apperr.AuthenticationError
		nf *apperr.NotFoundError
		ve *apperr.ValidationError
		oe *apperr.OperationError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ce):
		return http.StatusServiceUnavailable
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &oe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	status := statusOf(err)
	resp := ErrorResponse{Error: err.Error()}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		resp.Problems = ve.Problems
	}
	var ie *bundle.ImportError
	if errors.As(err, &ie) {
		resp.Table = ie.Table
		resp.Imported = ie.Imported
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("admin request failed")
	}
	return c.JSON(status, resp)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// Customers

func (h *Handler) GetCustomers(c echo.Context) error {
	out, err := h.svc.GetCustomers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCustomer(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.svc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateCustomer(c echo.Context) error {
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.svc.CreateCustomer(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateCustomer(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.UpdateCustomer(c.Request().Context(), id, &req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteCustomer(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.svc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Areas

func (h *Handler) GetAreas(c echo.Context) error {
	out, err := h.svc.GetAreas(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetArea(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.svc.GetArea(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateArea(c echo.Context) error {
	var req AreaRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.svc.CreateArea(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateArea(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req AreaRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.UpdateArea(c.Request().Context(), id, &req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteArea(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.svc.DeleteArea(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Calculations

func (h *Handler) GetCalculations(c echo.Context) error {
	out, err := h.svc.GetCalculations(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCalculation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.svc.GetCalculation(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCalculationByKey(c echo.Context) error {
	out, err := h.svc.GetCalculationByKey(c.Request().Context(), c.Param("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateCalculation(c echo.Context) error {
	var req CalculationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.svc.CreateCalculation(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateCalculation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req CalculationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.UpdateCalculation(c.Request().Context(), id, &req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteCalculation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.svc.DeleteCalculation(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Lookup

func (h *Handler) GetLookups(c echo.Context) error {
	out, err := h.svc.GetLookups(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetLookup(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.svc.GetLookup(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetChoices(c echo.Context) error {
	out, err := h.svc.GetChoices(c.Request().Context(), c.Param("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateLookup(c echo.Context) error {
	var req LookupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.svc.CreateLookup(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateLookup(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req LookupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.UpdateLookup(c.Request().Context(), id, &req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteLookup(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.svc.DeleteLookup(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Invoices

func (h *Handler) GetInvoices(c echo.Context) error {
	out, err := h.svc.GetInvoices(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetInvoice(c echo.Context) error {
	out, err := h.svc.GetInvoice(c.Request().Context(), c.Param("memo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) NextMemo(c echo.Context) error {
	out, err := h.svc.NextMemo(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateInvoice(c echo.Context) error {
	var req invoice.Invoice
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.svc.CreateInvoice(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateInvoice(c echo.Context) error {
	var req invoice.Invoice
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.svc.UpdateInvoice(c.Request().Context(), c.Param("memo"), &req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteInvoice(c echo.Context) error {
	if err := h.svc.DeleteInvoice(c.Request().Context(), c.Param("memo")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Services price list

func (h *Handler) GetServices(c echo.Context) error {
	out, err := h.svc.GetServices(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) DownloadServices(c echo.Context) error {
	rows, err := h.svc.GetServices(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	var buf bytes.Buffer
	if err := pricing.WritePriceList(&buf, rows); err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("services_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Import / export / backup

func (h *Handler) Export(c echo.Context) error {
	doc, err := h.svc.Export(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("sbtexport_%s.json", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) Import(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "could not read request body")
	}
	out, err := h.svc.Import(c.Request().Context(), raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) BackupDatabase(c echo.Context) error {
	result, err := h.svc.CreateBackup(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) ListBackups(c echo.Context) error {
	out, err := h.svc.ListBackups()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) DownloadBackup(c echo.Context) error {
	name := c.Param("name")
	path, err := h.svc.BackupPath(name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Attachment(path, name)
}

// Backend status and credential

func (h *Handler) GetTables(c echo.Context) error {
	out, err := h.svc.TableStatuses(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCredential(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.CredentialStatus())
}

func (h *Handler) SaveCredential(c echo.Context) error {
	var req CredentialRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.svc.SaveCredential(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
