package dto

// CreateJobTypeRequest entrada para crear un job type.
type CreateJobTypeRequest struct {
	Code        string `json:"code" validate:"required,max=6"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// JobTypeResponse salida de un job type. ID vacío cuando proviene del
// catálogo fijo de fallback.
type JobTypeResponse struct {
	ID          string `json:"id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
