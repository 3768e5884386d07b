package repository

import (
	"github.com/protorns/tg-miniapp-server/database/model"

	"gorm.io/gorm"
)

// UserRepository is the data access interface for User.
type UserRepository interface {
	FindByTgId(tgId int64) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	UpdateUsername(tgId int64, username string) error
	UpdateProfile(tgId int64, fullName string, department string) error
	Count() (int64, error)
	CountByDepartment() (map[string]int64, error)

	GetDB() *gorm.DB
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *userRepository) FindByTgId(tgId int64) (*model.User, error) {
	user := &model.User{}
	err := r.db.Model(model.User{}).Where("tg_id = ?", tgId).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdateUsername(tgId int64, username string) error {
	return r.db.Model(model.User{}).Where("tg_id = ?", tgId).Update("tg_username", username).Error
}

func (r *userRepository) UpdateProfile(tgId int64, fullName string, department string) error {
	return r.db.Model(model.User{}).Where("tg_id = ?", tgId).
		Updates(map[string]any{"full_name": fullName, "department": department}).
		Error
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByDepartment() (map[string]int64, error) {
	type row struct {
		Department string
		Total      int64
	}
	var rows []row
	err := r.db.Model(model.User{}).
		Select("department, count(*) as total").
		Group("department").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Department] = r.Total
	}
	return out, nil
}
