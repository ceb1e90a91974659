package repository

// GenericRepository covers the CRUD surface shared by catalog entities.
// Delete performs a soft delete; entity-specific repositories add the
// unscoped operations they need on top.
type GenericRepository[T any] interface {
	Create(entity *T) error
	FindByID(id uint) (*T, error)
	FindAll() ([]T, error)
	Update(entity *T) error
	Delete(id uint) error
}
