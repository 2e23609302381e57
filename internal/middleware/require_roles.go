package middleware

import (
	"github.com/gin-gonic/gin"

	"hris-backend/internal/domain"
	"hris-backend/internal/shared/apperror"
	"hris-backend/internal/shared/response"
)

// RequireRoles is the declarative per-route allow-list. Fine-grained rules
// (self-review bans, department scoping) stay in the authz predicates; this
// only rejects callers whose role tier can never reach the endpoint.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr, exists := c.Get("role")
		if !exists {
			response.Error(c,
				apperror.ErrForbidden.HTTPStatus,
				apperror.ErrForbidden.Code,
				apperror.ErrForbidden.Message,
				nil,
			)
			c.Abort()
			return
		}

		role, _ := roleStr.(string)
		for _, want := range allowed {
			if role == string(want) {
				c.Next()
				return
			}
		}

		response.Error(c,
			apperror.ErrForbidden.HTTPStatus,
			apperror.ErrForbidden.Code,
			apperror.ErrForbidden.Message,
			nil,
		)
		c.Abort()
	}
}
