package dto

type CreateResetRequestInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

type ProcessResetInput struct {
	// NewPassword overrides the generated one when supplied.
	NewPassword string `json:"new_password" binding:"omitempty,min=6"`
}

type CancelResetInput struct {
	Reason string `json:"reason"`
}
