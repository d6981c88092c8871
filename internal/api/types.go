package api

type ErrorResponse struct {
	Error string `json:"error"`
}

type DefaultResponse struct {
	Message string `json:"message"`
}
