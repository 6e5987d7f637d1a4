package dto

// ─── Administracion de usuarios ──────────────────────────────────────────────

type ActualizarRolRequest struct {
	Rol string `json:"rol" validate:"required,oneof=admin cajero inventario invitado"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type PermisosResponse struct {
	UsuarioID string   `json:"usuario_id"`
	Rol       string   `json:"rol"`
	Permisos  []string `json:"permisos"` // e.g. "productos:crear", "ventas:ver"
}

type UsuarioFilter struct {
	Busqueda string
	Rol      string
	PageFilter
}
