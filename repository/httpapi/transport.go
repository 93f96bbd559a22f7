package httpapi

import "time"

type taskPayload struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type starResponse struct {
	HaveStar    bool      `json:"haveStar"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type errorResponse struct {
	Error string `json:"error"`
}
