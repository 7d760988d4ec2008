package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/access"
	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/metrics"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/utils"
)

const (
	ctxUserID    = "userID"
	ctxUserRole  = "userRole"
	ctxUserEmail = "userEmail"
)

// PrincipalLoader looks up the account a token was issued for.
type PrincipalLoader interface {
	FindByID(ctx context.Context, id primitive.ObjectID, expectedRole models.Role) (*models.User, error)
}

// AuthMiddleware validates the bearer token, reloads the account it names
// and stores the caller in the gin context. The stored role wins over the
// role in the token.
func AuthMiddleware(issuer *utils.TokenIssuer, users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			RespondError(c, apperror.Unauthorized("Authorization header required"))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			RespondError(c, apperror.Unauthorized("Authorization header must use the Bearer scheme"))
			return
		}
		claims, err := issuer.ValidateJWT(tokenString)
		if err != nil {
			RespondError(c, apperror.Unauthorized("Invalid token"))
			return
		}
		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			RespondError(c, apperror.Unauthorized("Invalid token"))
			return
		}
		user, err := users.FindByID(c.Request.Context(), id, "")
		if apperror.Is(err, apperror.KindNotFound) {
			RespondError(c, apperror.Unauthorized("User no longer exists"))
			return
		}
		if err != nil {
			RespondError(c, err)
			return
		}

		c.Set(ctxUserID, user.ID.Hex())
		c.Set(ctxUserRole, user.Role)
		c.Set(ctxUserEmail, user.Email)

		c.Next()
	}
}

// CurrentUser returns the authenticated caller set by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.Principal, bool) {
	idHex := c.GetString(ctxUserID)
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return models.Principal{}, false
	}
	role, ok := c.Get(ctxUserRole)
	if !ok {
		return models.Principal{}, false
	}
	r, ok := role.(models.Role)
	if !ok {
		return models.Principal{}, false
	}
	return models.Principal{ID: id, Role: r, Email: c.GetString(ctxUserEmail)}, true
}

// Authorize rejects callers whose role may not perform op. It must run
// after AuthMiddleware.
func Authorize(gate *access.Gate, op access.Operation, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentUser(c)
		if !ok {
			RespondError(c, apperror.Unauthorized("User not authenticated"))
			return
		}
		if err := gate.Check(p.Role, op); err != nil {
			metrics.ObserveAccessDenied(string(op), string(p.Role))
			log.Warn().
				Str("request_id", c.GetString(ctxRequestID)).
				Str("user_id", p.ID.Hex()).
				Str("role", string(p.Role)).
				Str("operation", string(op)).
				Msg("access denied")
			RespondError(c, err)
			return
		}
		c.Next()
	}
}
