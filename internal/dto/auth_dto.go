package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Username    string   `json:"username"    validate:"required,min=3,max=64"`
	Password    string   `json:"password"    validate:"required,min=8"`
	Role        string   `json:"role"        validate:"required,oneof=admin user"`
	Permissions []string `json:"permissions"`
}

type UpdateUserRequest struct {
	Password    string    `json:"password"    validate:"omitempty,min=8"`
	Role        string    `json:"role"        validate:"omitempty,oneof=admin user"`
	Permissions *[]string `json:"permissions"`
}

type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      bool     `json:"active"`
}
