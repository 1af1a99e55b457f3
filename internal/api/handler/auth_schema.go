package handler

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	// RefreshToken may carry an optional "Bearer " prefix, which the
	// session manager strips before processing.
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type logoutRequest struct {
	// RefreshToken is optional in the body; the Authorization header is
	// the fallback source.
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
