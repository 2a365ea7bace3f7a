package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/internal/shared/response"
	"bookshelf-api/pkg/token"
)

// IdentityKey is the gin context key the decoded token claims are stored
// under for downstream handlers.
const IdentityKey = "identity"

// Authenticated gates a route group behind a bearer token. Verification is
// stateless and repeated on every request; nothing is cached.
func Authenticated(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// The header must be exactly "Bearer <token>". Any other scheme,
		// a missing header, or an empty token fails closed.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error(c, apperror.Unauthorized("Invalid Token!"))
			return
		}

		claims, err := codec.Decode(parts[1])
		if err != nil {
			// token.ErrMalformed gets its own fixed response at the boundary.
			response.Error(c, err)
			return
		}
		if claims.UserID == "" {
			response.Error(c, apperror.Unauthorized("Invalid Token!"))
			return
		}

		c.Set(IdentityKey, claims)
		c.Next()
	}
}

// Identity returns the claims attached by Authenticated, or nil on an
// unguarded route.
func Identity(c *gin.Context) *token.Claims {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}
