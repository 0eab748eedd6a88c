package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// cashItemResponse renders money as fixed two-decimal strings; null stays null.
type cashItemResponse struct {
	ID           int64   `json:"id"`
	Description  string  `json:"description"`
	PaymentDate  *string `json:"paymentDate"`
	ServiceValue *string `json:"serviceValue"`
	PaidValue    *string `json:"paidValue"`
	Presenter    string  `json:"presenter"`
}

// CashItemHandler serves the read-only /cash_items resource.
type CashItemHandler struct {
	service ports.CashItemService
}

func NewCashItemHandler(service ports.CashItemService) *CashItemHandler {
	return &CashItemHandler{service: service}
}

// List returns a page of cash items.
//
// @Summary      List cash items
// @Tags         cash_items
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Rows to skip"         minimum(0)
// @Param        limit  query     int  false  "Page size (max 100)"  minimum(1) maximum(100)
// @Success      200    {object}  pageResponse[cashItemResponse]
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /cash_items [get]
func (h *CashItemHandler) List(c echo.Context) error {
	var q pageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), q.Skip, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toCashItemResponse))
}

// Get returns one cash item.
//
// @Summary      Get a cash item
// @Tags         cash_items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Cash item id"
// @Success      200  {object}  cashItemResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /cash_items/{id} [get]
func (h *CashItemHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCashItemResponse(item))
}

func toCashItemResponse(it *domain.CashItem) cashItemResponse {
	resp := cashItemResponse{
		ID:          it.ID,
		Description: it.Description,
		Presenter:   it.Presenter,
	}
	if it.PaymentDate != nil {
		d := it.PaymentDate.Format(dateLayout)
		resp.PaymentDate = &d
	}
	if it.ServiceValue.Valid {
		v := it.ServiceValue.Decimal.StringFixed(2)
		resp.ServiceValue = &v
	}
	if it.PaidValue.Valid {
		v := it.PaidValue.Decimal.StringFixed(2)
		resp.PaidValue = &v
	}
	return resp
}
