package dto

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}
