package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Adrixx117/Investments/internal/models"
	"github.com/Adrixx117/Investments/internal/store"
	"github.com/Adrixx117/Investments/internal/util"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Investments is what the handlers need from the store coordinator.
type Investments interface {
	List(t models.Type) []models.Investment
	Get(id string) (models.Investment, bool)
	Add(ctx context.Context, d models.Draft) (models.Investment, error)
	Edit(ctx context.Context, id string, d models.Draft) (models.Investment, error)
	Patch(ctx context.Context, id string, p models.Patch) (models.Investment, error)
	Remove(ctx context.Context, t models.Type, id string) error
	Refresh(ctx context.Context, t models.Type) error
}

// InvestmentHandler serves the investment API.
type InvestmentHandler struct {
	Store  Investments
	Logger *log.Logger
}

func NewInvestmentHandler(s Investments, logger *log.Logger) *InvestmentHandler {
	return &InvestmentHandler{Store: s, Logger: logger}
}

// ---------- helpers ----------

// typeParam reads ?type=, falling back to def when absent. On a bad value
// it writes the 400 and returns false.
func typeParam(c *gin.Context, def models.Type) (models.Type, bool) {
	raw := c.Query("type")
	if raw == "" {
		return def, true
	}
	t, err := models.ParseType(raw)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "type must be etf or stock")
		return "", false
	}
	return t, true
}

// fail maps an error from the store onto the response envelope.
func (h *InvestmentHandler) fail(c *gin.Context, err error) {
	var verr *util.ValidationError
	var berr *store.BackendError
	switch {
	case errors.As(err, &verr):
		util.ValidationFailed(c, verr)
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "investment not found")
	case errors.Is(err, store.ErrInvalidType):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "type must be etf or stock")
	case errors.As(err, &berr):
		util.Error(c, http.StatusBadGateway, util.CodeBackendErr, "storage is unavailable, please retry")
	default:
		h.Logger.Error("unexpected error", "path", c.Request.URL.Path, "err", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
	_ = c.Error(err)
}

// ---------- list / refresh ----------

// ListInvestments returns one type's records. refresh=true re-reads the
// backend first, as the tab switch does.
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	t, ok := typeParam(c, models.TypeETF)
	if !ok {
		return
	}
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		if err := h.Store.Refresh(c.Request.Context(), t); err != nil {
			h.fail(c, err)
			return
		}
	}
	items := h.Store.List(t)
	util.Success(c, util.Response{
		"type":  t,
		"items": items,
		"total": len(items),
	})
}

func (h *InvestmentHandler) RefreshInvestments(c *gin.Context) {
	t, ok := typeParam(c, models.TypeETF)
	if !ok {
		return
	}
	if err := h.Store.Refresh(c.Request.Context(), t); err != nil {
		h.fail(c, err)
		return
	}
	items := h.Store.List(t)
	util.Success(c, util.Response{
		"type":  t,
		"items": items,
		"total": len(items),
	})
}

// ---------- create / edit ----------

func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var d models.Draft
	if err := c.ShouldBind(&d); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	inv, err := h.Store.Add(c.Request.Context(), d)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code": util.CodeOK,
		"data": util.Response{"investment": inv},
	})
}

// UpdateInvestment replaces every field of the record.
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	var d models.Draft
	if err := c.ShouldBind(&d); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	inv, err := h.Store.Edit(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		h.fail(c, err)
		return
	}
	util.Success(c, util.Response{"investment": inv})
}

// PatchInvestment changes only the fields present in the body, e.g. the
// inline name edit of the table.
func (h *InvestmentHandler) PatchInvestment(c *gin.Context) {
	var p models.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	inv, err := h.Store.Patch(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	util.Success(c, util.Response{"investment": inv})
}

// ---------- delete ----------

// DeleteInvestment removes a record. Without ?type= the listed record's type
// is used, and an id that is not listed is removed from every partition. An
// id that is already gone is still a success.
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	id := c.Param("id")
	t, ok := typeParam(c, "")
	if !ok {
		return
	}
	types := []models.Type{t}
	if t == "" {
		types = models.Types
		if inv, found := h.Store.Get(id); found {
			types = []models.Type{inv.Type}
		}
	}
	for _, t := range types {
		if err := h.Store.Remove(c.Request.Context(), t, id); err != nil {
			h.fail(c, err)
			return
		}
	}
	util.Success(c, util.Response{"id": id})
}
