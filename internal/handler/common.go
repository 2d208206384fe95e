// Package handler defines the HTTP handlers for the campus cinema API.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-cinema/internal/model"
)

// ActorID extracts the authenticated student's ID from the context. The
// JWT middleware stores the "sub" claim, whose concrete type depends on
// how the JSON number decoded.
func ActorID(c echo.Context) (uint64, error) {
	v := c.Get("student_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid student_id in context")
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// queryID parses an optional numeric query parameter; absent yields 0.
func queryID(c echo.Context, name string) (uint64, bool) {
	s := c.QueryParam(name)
	if s == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(s, 10, 64)
	return id, err == nil
}
