package repositories

import "cat-server/entities"

// BoundingBox is a two-corner geographic area. Latitude grows north,
// longitude grows east; Min must not exceed Max on either axis.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByUserName(userName string) (*entities.User, error)
	GetAll() ([]entities.User, error)
	Update(user *entities.User) error
	Delete(id string) error
}

type CatRepository interface {
	Create(cat *entities.Cat) error
	GetByID(id string) (*entities.Cat, error)
	GetAll() ([]entities.Cat, error)
	GetByOwner(ownerID string) ([]entities.Cat, error)
	GetWithinBounds(box BoundingBox) ([]entities.Cat, error)
	// GetOwned matches on id AND owner; a miss means not found, even when
	// the id exists under another owner.
	GetOwned(id, ownerID string) (*entities.Cat, error)
	Update(cat *entities.Cat) error
	Delete(id string) error
}

type AuditEventRepository interface {
	BulkInsert(events []entities.AuditEvent) error
	GetRecent(limit int) ([]entities.AuditEvent, error)
}
