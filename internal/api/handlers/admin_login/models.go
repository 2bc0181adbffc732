package admin_login

// LoginRequest HTTP request model
type LoginRequest struct {
	Passcode string `json:"passcode" validate:"required"`
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Authenticated bool `json:"authenticated"`
}
