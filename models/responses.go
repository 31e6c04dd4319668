package models

// RegisterResponse is returned by POST /auth/register.
type RegisterResponse struct {
	// Message is a human-readable confirmation from the backend.
	Message string `json:"message"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	// Token is the bearer credential for all subsequent vault calls.
	Token string `json:"token"`
}

// DeleteResponse is returned by DELETE /password/:id.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// RevealResponse is returned by POST /password/:id/reveal. It is the only
// payload on the client that ever carries a plaintext secret.
type RevealResponse struct {
	Password string `json:"password"`
}

// ErrorResponse is the optional body of a non-2xx response. Backends use
// either field; Message wins when both are set.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text returns the human-readable part of the error body, or an empty
// string when the backend sent neither field.
func (e ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
