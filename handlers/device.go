package handlers

import (
	"net/http"

	userRepoPkg "cleanly/database/repository/user"
	"cleanly/middleware"
	"cleanly/models"
	"cleanly/utils"

	"github.com/gin-gonic/gin"
)

// RegisterDeviceTokenHandler stores the caller's FCM registration token so
// booking and assignment pushes can reach their device. Re-registering the
// same token is a harmless overwrite.
func RegisterDeviceTokenHandler(users userRepoPkg.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.DeviceTokenInput
		if err := c.ShouldBindJSON(&in); err != nil {
			utils.JSONBindError(c, err)
			return
		}

		if err := users.UpdateFCMToken(c.GetString(middleware.ContextUserID), in.Token); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Device token registered"})
	}
}
