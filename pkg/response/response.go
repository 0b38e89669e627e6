package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries per-element messages keyed by element id.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	UID       uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	ExpiresIn int64  `json:"inactivity_timeout_seconds"`
}

type URLResponse struct {
	URL string `json:"url"`
}
