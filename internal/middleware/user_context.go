package middleware

import (
	"project-tracker/internal/database"
	"project-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser loads the session user, if any, into the request context
// under "CurrentUser". Handlers take the audit actor identity from it.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := database.DB.First(&user, uid).Error; err == nil {
					c.Set("CurrentUser", user)
				}
			}
		}

		c.Next()
	}
}
