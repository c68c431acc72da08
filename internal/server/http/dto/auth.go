package dto

// RegisterRequest describes the account creation payload.
type RegisterRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest describes login/password payload.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
