package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanbil2024/e-videoteka/internal/repository"
)

// AdminMiddleware must run after JWTMiddleware; it checks the authenticated
// user's role.
func AdminMiddleware(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "User not authenticated",
			})
			c.Abort()
			return
		}

		user, err := userRepo.FindUserByID(userID)
		if err != nil || user.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
