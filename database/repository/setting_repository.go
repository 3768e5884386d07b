package repository

import (
	"github.com/protorns/tg-miniapp-server/database/model"

	"gorm.io/gorm"
)

// SettingRepository is the data access interface for key/value settings.
type SettingRepository interface {
	Get(key string) (*model.Setting, error)
	Upsert(key string, value string) error
	All() ([]model.Setting, error)
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{
		db: db,
	}
}

func (r *settingRepository) Get(key string) (*model.Setting, error) {
	setting := &model.Setting{}
	err := r.db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (r *settingRepository) Upsert(key string, value string) error {
	var existing model.Setting
	err := r.db.Model(model.Setting{}).Where("key = ?", key).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&model.Setting{Key: key, Value: value}).Error
	} else if err != nil {
		return err
	}
	return r.db.Model(model.Setting{}).Where("key = ?", key).Update("value", value).Error
}

func (r *settingRepository) All() ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.Model(model.Setting{}).Find(&settings).Error
	return settings, err
}
