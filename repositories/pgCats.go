package repositories

import (
	"cat-server/db"
	"cat-server/entities"
	"time"

	"gorm.io/gorm"
)

type catPgRepository struct {
	db db.Database
}

func NewCatPgRepository(database db.Database) CatRepository {
	return &catPgRepository{db: database}
}

// ownerIdentity limits the expanded owner to its public identity fields.
func ownerIdentity(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "user_name", "email")
}

func (r *catPgRepository) Create(cat *entities.Cat) error {
	return r.db.GetDB().Create(cat).Error
}

func (r *catPgRepository) GetByID(id string) (*entities.Cat, error) {
	var cat entities.Cat
	err := r.db.GetDB().Preload("Owner", ownerIdentity).Where("id = ?", id).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *catPgRepository) GetAll() ([]entities.Cat, error) {
	var cats []entities.Cat
	err := r.db.GetDB().Preload("Owner", ownerIdentity).Order("created_at DESC").Find(&cats).Error
	return cats, err
}

func (r *catPgRepository) GetByOwner(ownerID string) ([]entities.Cat, error) {
	var cats []entities.Cat
	err := r.db.GetDB().Preload("Owner", ownerIdentity).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&cats).Error
	return cats, err
}

func (r *catPgRepository) GetWithinBounds(box BoundingBox) ([]entities.Cat, error) {
	var cats []entities.Cat
	err := r.db.GetDB().
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Find(&cats).Error
	return cats, err
}

func (r *catPgRepository) GetOwned(id, ownerID string) (*entities.Cat, error) {
	var cat entities.Cat
	err := r.db.GetDB().Where("id = ? AND owner_id = ?", id, ownerID).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *catPgRepository) Update(cat *entities.Cat) error {
	cat.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Save(cat).Error
}

func (r *catPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Cat{}).Error
}
