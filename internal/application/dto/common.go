package dto

// ErrorResponse corpo de erro HTTP. Message é a mensagem exibida ao usuário (pt-BR).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
