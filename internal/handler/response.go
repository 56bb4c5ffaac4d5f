package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type apiResponse struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Errors  []fieldError   `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apiResponse{
		Success: true,
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Success: false,
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

func validationError(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusBadRequest, apiResponse{
		Success: false,
		Code:    http.StatusBadRequest,
		Message: "validation failed",
		Errors:  errs,
	})
}

// fail maps store errors onto the envelope. what names the resource in 404s.
func fail(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, what+" not found", nil)
	case errors.Is(err, repository.ErrConflict):
		Error(c, http.StatusConflict, what+" already exists", nil)
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

// bindJSON binds and validates the body, writing the 400 response itself.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		validationError(c, describeBindError(err))
		return false
	}
	return true
}

type page struct {
	Page   int
	Limit  int
	Offset int
}

func pageQuery(c *gin.Context) page {
	p := intQuery(c, "page", 1)
	if p < 1 {
		p = 1
	}
	limit := intQuery(c, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page{Page: p, Limit: limit, Offset: (p - 1) * limit}
}

func paginationMeta(p page, total int64) map[string]any {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return map[string]any{
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": totalPages,
		"hasNext":    int64(p.Offset+p.Limit) < total,
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryPtr(c *gin.Context, key string) *bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }

// parseTimeParam accepts YYYY-MM-DD or RFC3339. A date-only upper bound
// covers the whole day.
func parseTimeParam(value string, endOfDay bool, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if d, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		if endOfDay {
			d = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		d = d.UTC()
		return &d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	ts = ts.UTC()
	return &ts, nil
}

// rangeQuery reads from/to, writing a 400 when either is malformed.
func rangeQuery(c *gin.Context, loc *time.Location) (from, to *time.Time, ok bool) {
	var errs []fieldError
	from, err := parseTimeParam(c.Query("from"), false, loc)
	if err != nil {
		errs = append(errs, fieldError{Field: "from", Message: "must be YYYY-MM-DD or RFC3339"})
	}
	to, err = parseTimeParam(c.Query("to"), true, loc)
	if err != nil {
		errs = append(errs, fieldError{Field: "to", Message: "must be YYYY-MM-DD or RFC3339"})
	}
	if len(errs) > 0 {
		validationError(c, errs)
		return nil, nil, false
	}
	return from, to, true
}
