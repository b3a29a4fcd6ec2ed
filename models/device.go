package models

// DeviceTokenInput carries an FCM registration token for the caller's device.
type DeviceTokenInput struct {
	Token string `json:"token" binding:"required"`
}
