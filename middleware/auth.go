package middleware

import (
	"strings"
	"time"

	"cat-server/entities"
	"cat-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by Authenticate.
const (
	ContextUserID   = "userId"
	ContextUserName = "userName"
	ContextEmail    = "email"
	ContextRole     = "role"
)

// Claims carries enough identity for checkToken to answer without a store
// call.
type Claims struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 session token for a user.
func GenerateToken(secret string, ttl time.Duration, user *entities.User) (string, error) {
	claims := Claims{
		UserName: user.UserName,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Authenticate verifies the Bearer token and attaches the session identity to
// the context. A missing or invalid session is 403.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.ErrorResponse(c, 403, "token not valid")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
		if err != nil || !token.Valid || claims.Subject == "" {
			utils.ErrorResponse(c, 403, "token not valid")
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserName, claims.UserName)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route on an exact role match. Runs after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			utils.ErrorResponse(c, 403, "insufficient role")
			return
		}
		c.Next()
	}
}
