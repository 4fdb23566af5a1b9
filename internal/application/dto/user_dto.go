package dto

// LoginRequest entrada para login (email + password).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrada para rotar tokens.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenPair access + refresh JWT.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResponse tokens más la vista completa del usuario.
type LoginResponse struct {
	TokenPair
	User AccountResponse `json:"user"`
}
