package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/raidatlas/raidatlas-api/pkg/errors"
	"github.com/raidatlas/raidatlas-api/pkg/response"
)

// AdminKeyHeader carries the plaintext admin API key on mutation requests.
const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards city and event mutations. The configured value is a bcrypt
// hash of the key; an empty hash disables the whole admin surface.
func AdminKey(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrDisabled, "admin endpoints are disabled"))
			c.Abort()
			return
		}

		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing admin key"))
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid admin key"))
			c.Abort()
			return
		}

		c.Next()
	}
}
