package dto

// RegisterRequest carries the credentials and profile fields for a new account.
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required,min=6"`
	Name      string  `json:"name" binding:"required"`
	StudentID *string `json:"studentId"`
	Mobile    *string `json:"mobile"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user; the password hash never leaves
// the service layer.
type UserResponse struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	StudentID *string `json:"studentId,omitempty"`
	Mobile    *string `json:"mobile,omitempty"`
	Role      string  `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
