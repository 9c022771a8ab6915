package httpt

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type OrderCreatedResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}
