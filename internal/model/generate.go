package model

// GenerateResponse represents response for POST /wallet/generate
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
	QR      string `json:"qr,omitempty"` // base64 PNG of the address
}

// RekeyRequest carries the passwords for a keystore password change
type RekeyRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
