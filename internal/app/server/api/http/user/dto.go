package user

import "credvault/internal/domain/user"

type registerInput struct {
	Body RegisterRequest
}

type RegisterRequest struct {
	Name     string `json:"name" doc:"Display name"`
	Email    string `json:"email" format:"email"`
	Password string `json:"password" minLength:"8"`
}

type registerOutput struct {
	Body AuthResponse
}

type loginInput struct {
	Body LoginRequest
}

type LoginRequest struct {
	Email    string `json:"email" format:"email"`
	Password string `json:"password"`
}

type loginOutput struct {
	Body AuthResponse
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type logoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token to revoke"`
}

type logoutOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}

type meOutput struct {
	Body user.User
}

type listOutput struct {
	Body []user.User
}
