package dto

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type EmailParam struct {
	Email string `validate:"required,email"`
}

// RegisterResult is what Register hands back to the client: a session token
// from the identity provider plus the freshly mapped local user.
type RegisterResult struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

type LoginResponse struct {
	User UserResponse `json:"user"`
}
