package service

import (
	"strconv"

	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/database/repository"
	"github.com/protorns/tg-miniapp-server/util/common"
)

// Runtime settings live in the settings table so admins can flip them from
// the bot without a redeploy. Unknown keys fall back to these defaults.
var defaultSettings = map[string]string{
	"registrationOpen": "true",
	"welcomeMessage":   "",
	"statsCron":        "@daily",
}

type SettingService struct {
	settingRepo repository.SettingRepository
}

func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
	}
}

func (s *SettingService) getSettingRepo() repository.SettingRepository {
	if s.settingRepo == nil {
		s.settingRepo = repository.NewSettingRepository(database.GetDB())
	}
	return s.settingRepo
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSettingRepo().Get(key)
	if database.IsNotFound(err) {
		value, ok := defaultSettings[key]
		if !ok {
			return "", common.NewErrorf("unknown setting key: %s", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	if _, ok := defaultSettings[key]; !ok {
		return common.NewErrorf("unknown setting key: %s", key)
	}
	return s.getSettingRepo().Upsert(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.setString(key, strconv.FormatBool(value))
}

// ResetSettings writes every known key back to its default value.
func (s *SettingService) ResetSettings() error {
	for key, value := range defaultSettings {
		if err := s.getSettingRepo().Upsert(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *SettingService) GetRegistrationOpen() (bool, error) {
	return s.getBool("registrationOpen")
}

func (s *SettingService) SetRegistrationOpen(open bool) error {
	return s.setBool("registrationOpen", open)
}

func (s *SettingService) GetWelcomeMessage() (string, error) {
	return s.getString("welcomeMessage")
}

func (s *SettingService) SetWelcomeMessage(msg string) error {
	return s.setString("welcomeMessage", msg)
}

// GetStatsCron returns the cron spec for the daily stats notification.
func (s *SettingService) GetStatsCron() (string, error) {
	return s.getString("statsCron")
}

func (s *SettingService) SetStatsCron(spec string) error {
	return s.setString("statsCron", spec)
}
