package handler

// errorResponse documents the error envelope rendered by the central error
// handler. Handlers never write it themselves.
type errorResponse struct {
	Error string `json:"error"`
}
