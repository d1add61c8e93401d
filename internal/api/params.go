package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"goldloan-backend/internal/services"
)

// paramID parses a numeric path parameter
func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrNotFound
	}
	return id, nil
}

// queryInt parses an optional integer query parameter
func queryInt(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// queryInt64 parses an optional int64 query parameter, zero when absent
func queryInt64(c *gin.Context, name string) int64 {
	if v := c.Query(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// queryDate parses an optional ISO date query parameter into unix seconds,
// zero when absent or unparsable
func queryDate(c *gin.Context, name string) int64 {
	if v := c.Query(name); v != "" {
		if t, err := services.ParseDate(v); err == nil {
			return t.Unix()
		}
	}
	return 0
}
