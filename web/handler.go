package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"logidash/action"
	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/query"
	"logidash/report"
)

type handlers struct {
	registry        Registry
	payables        dbt.EntityStore[entity.DriverPayable]
	defaultPageSize int
	metrics         *metrics
}

func (h *handlers) resource(c *gin.Context) (Resource, bool) {
	name := c.Param("entity")
	r, ok := h.registry[name]
	if !ok {
		abortWithError(c, fmt.Errorf("%s: %w", name, errUnknownEntity))
		return nil, false
	}
	return r, true
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

// parseRequest reads q, filter (repeatable, "field:v1,v2"), sort, dir, page and pageSize.
func parseRequest(c *gin.Context, defaultPageSize int) (query.Request, error) {
	req := query.Request{
		Search:   c.Query("q"),
		Page:     1,
		PageSize: defaultPageSize,
	}
	for _, raw := range c.QueryArray("filter") {
		field, values, found := strings.Cut(raw, ":")
		if !found || field == "" {
			return req, fmt.Errorf("%w: filter %q", errBadParam, raw)
		}
		cond := query.Condition{Field: field}
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				cond.Values = append(cond.Values, v)
			}
		}
		req.Filters = append(req.Filters, cond)
	}

	req.Sort.Field = c.Query("sort")
	switch dir := c.DefaultQuery("dir", "asc"); dir {
	case "asc":
	case "desc":
		req.Sort.Desc = true
	default:
		return req, fmt.Errorf("%w: dir %q", errBadParam, dir)
	}

	var err error
	if v := c.Query("page"); v != "" {
		if req.Page, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("%w: page %q", errBadParam, v)
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if req.PageSize, err = strconv.Atoi(v); err != nil || req.PageSize <= 0 {
			return req, fmt.Errorf("%w: pageSize %q", errBadParam, v)
		}
	}
	return req, nil
}

func (h *handlers) list(c *gin.Context) {
	r, ok := h.resource(c)
	if !ok {
		return
	}
	req, err := parseRequest(c, h.defaultPageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}
	result, err := r.List(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) get(c *gin.Context) {
	r, ok := h.resource(c)
	if !ok {
		return
	}
	detail, err := r.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handlers) create(c *gin.Context) {
	r, ok := h.resource(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", errBadBody, err))
		return
	}
	rec, note, err := r.Create(c.Request.Context(), body)
	h.metrics.observeAction(r.Entity(), "create", err)
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error(), "notification": note})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": rec, "notification": note})
}

func (h *handlers) dispatch(c *gin.Context) {
	r, ok := h.resource(c)
	if !ok {
		return
	}
	var params action.Params
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			abortWithError(c, fmt.Errorf("%w: %v", errBadBody, err))
			return
		}
	}
	name := action.Name(c.Param("action"))
	rec, note, err := r.Dispatch(c.Request.Context(), c.Param("id"), name, params)
	h.metrics.observeAction(r.Entity(), string(name), err)
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error(), "notification": note})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec, "notification": note})
}

func (h *handlers) payablesReport(c *gin.Context) {
	payables, err := h.payables.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.Summarize(payables))
}
