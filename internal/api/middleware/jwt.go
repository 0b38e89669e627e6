package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/formify-go/internal/config"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/linskybing/formify-go/pkg/types"
	"github.com/linskybing/formify-go/pkg/utils"
)

var (
	jwtKey   []byte
	sessions session.Store
)

// Init sets the JWT signing key and the session store used to validate
// tokens.
func Init(store session.Store) {
	jwtKey = []byte(config.JwtSecret)
	sessions = store
}

// GenerateToken issues a signed token bound to the principal's session.
var GenerateToken = func(p session.Principal, expireDuration time.Duration) (string, error) {
	claims := &types.Claims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        p.SessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expireDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*types.Claims, error) {
	claims := &types.Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func tokenFromRequest(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("Authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie, nil
	}
	// Browsers cannot set headers on websocket upgrades.
	if token := c.Query("token"); token != "" && strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return token, nil
	}
	return "", errors.New("Authorization required (header or cookie)")
}

// authenticate resolves the request's token to a live session. Every
// successful call counts as activity and restarts the inactivity window.
func authenticate(c *gin.Context) (*types.Claims, session.Principal, int, error) {
	tokenStr, err := tokenFromRequest(c)
	if err != nil {
		return nil, session.Principal{}, http.StatusUnauthorized, err
	}

	claims, err := ParseToken(tokenStr)
	if err != nil {
		return nil, session.Principal{}, http.StatusUnauthorized, errors.New("Invalid token: " + err.Error())
	}

	if sessions == nil {
		return nil, session.Principal{}, http.StatusServiceUnavailable, errors.New("session store not available")
	}
	principal, err := sessions.Touch(c.Request.Context(), claims.ID)
	if errors.Is(err, session.ErrSessionExpired) {
		return nil, session.Principal{}, http.StatusUnauthorized, err
	}
	if err != nil {
		return nil, session.Principal{}, http.StatusInternalServerError, err
	}
	return claims, principal, http.StatusOK, nil
}

// JWTAuthMiddleware validates the Bearer token in the Authorization header or
// cookie and loads its session. An expired session is a logout.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, principal, status, err := authenticate(c)
		if err != nil {
			c.JSON(status, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set(utils.PrincipalKey, principal)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid session is presented and
// lets anonymous requests through otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, principal, _, err := authenticate(c); err == nil {
			c.Set("claims", claims)
			c.Set(utils.PrincipalKey, principal)
		}
		c.Next()
	}
}
