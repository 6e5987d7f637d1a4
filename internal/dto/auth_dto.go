package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin cajero inventario invitado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"user"`
}
