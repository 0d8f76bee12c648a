package dto

// RegisterRequest body para POST /api/auth/register: taller + primer admin.
type RegisterRequest struct {
	ShopName  string `json:"shop_name"`
	ShopPhone string `json:"shop_phone,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserName  string `json:"user_name"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse respuesta de register/login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest body para POST /api/users (solo admin).
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin, mecanico, recepcion
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID     string `json:"id"`
	ShopID string `json:"shop_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
