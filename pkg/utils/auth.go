package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/pkg/types"
)

// PrincipalKey is the gin context key holding the session.Principal.
const PrincipalKey = "principal"

var ErrNoPrincipal = errors.New("user principal not found in context")

var GetPrincipalFromContext = func(c *gin.Context) (session.Principal, error) {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		return session.Principal{}, ErrNoPrincipal
	}

	p, ok := val.(session.Principal)
	if !ok {
		return session.Principal{}, errors.New("invalid user principal type")
	}

	return p, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	if p, err := GetPrincipalFromContext(c); err == nil {
		return p.UserID, nil
	}

	claimsVal, exists := c.Get("claims")
	if !exists {
		return 0, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return 0, errors.New("invalid user claims type")
	}

	return claims.UserID, nil
}

// ParseIDParam reads a numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return uint(id), nil
}

// ParsePaging reads page and limit query parameters, falling back to the
// given default limit.
func ParsePaging(c *gin.Context, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
