package models

// Employee represents an employee entity.
type Employee struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

// EmployeeInput is the payload accepted on create and update. The identifier is never
// taken from the client, so an `id` member in the request body is ignored.
type EmployeeInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Position string `json:"position" validate:"required,max=255"`
}
