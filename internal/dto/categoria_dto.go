package dto

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaFilter struct {
	Busqueda string
	PageFilter
}
