package dto

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
