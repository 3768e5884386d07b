package service

import (
	"fmt"

	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/database/model"
	"github.com/protorns/tg-miniapp-server/database/repository"
	"github.com/protorns/tg-miniapp-server/logger"
	"github.com/protorns/tg-miniapp-server/util/common"
)

type UserService struct {
	userRepo       repository.UserRepository
	settingService *SettingService

	// Set after construction; Tgbot itself needs UserService for /stats.
	tgService TelegramService
}

func NewUserService(userRepo repository.UserRepository, settingService *SettingService) *UserService {
	return &UserService{
		userRepo:       userRepo,
		settingService: settingService,
	}
}

func (s *UserService) SetTelegramService(tg TelegramService) {
	s.tgService = tg
}

func (s *UserService) getUserRepo() repository.UserRepository {
	if s.userRepo == nil {
		s.userRepo = repository.NewUserRepository(database.GetDB())
	}
	return s.userRepo
}

// Authenticate resolves a verified WebApp user to a stored user. Known users
// get their Telegram handle refreshed; unknown users are registered, seeded
// with the full name from their Telegram profile.
func (s *UserService) Authenticate(u *WebAppUser) (*model.User, error) {
	const op = "UserService.Authenticate"

	user, err := s.getUserRepo().FindByTgId(u.Id)
	if err == nil {
		if user.TgUsername != u.Username {
			if err := s.getUserRepo().UpdateUsername(u.Id, u.Username); err != nil {
				return nil, common.Wrap(op, err)
			}
			user.TgUsername = u.Username
		}
		return user, nil
	}
	if !database.IsNotFound(err) {
		return nil, common.Wrap(op, err)
	}

	open, err := s.settingService.GetRegistrationOpen()
	if err != nil {
		return nil, common.Wrap(op, err)
	}
	if !open {
		return nil, common.Wrap(op, common.ErrRegistrationClosed)
	}

	user = &model.User{
		TgId:       u.Id,
		TgUsername: u.Username,
		FullName:   u.FullName(),
	}
	if err := s.getUserRepo().Create(user); err != nil {
		return nil, common.Wrap(op, err)
	}
	logger.Infof("Registered new user tg_id=%d username=%q", u.Id, u.Username)

	s.notifyRegistration(user)
	return user, nil
}

// notifyRegistration alerts admins and greets the user. Delivery failures
// never fail the auth request.
func (s *UserService) notifyRegistration(user *model.User) {
	tg := s.tgService
	if tg == nil || !tg.IsRunning() {
		return
	}

	go func() {
		defer common.Recover("notifyRegistration")

		msg := fmt.Sprintf("New registration: %s (@%s, tg_id %d)",
			user.FullName, user.TgUsername, user.TgId)
		common.IgnoreError("UserService.notifyRegistration", tg.SendMessage(msg))

		welcome, err := s.settingService.GetWelcomeMessage()
		if err != nil || welcome == "" {
			return
		}
		common.IgnoreError("UserService.welcomeMessage", tg.SendMessageTo(user.TgId, welcome))
	}()
}

// GetProfile returns the stored user for a Telegram ID.
func (s *UserService) GetProfile(tgId int64) (*model.User, error) {
	const op = "UserService.GetProfile"

	user, err := s.getUserRepo().FindByTgId(tgId)
	if database.IsNotFound(err) {
		return nil, common.Wrap(op, common.ErrUserNotFound)
	} else if err != nil {
		return nil, common.Wrap(op, err)
	}
	return user, nil
}

// SaveProfile updates the editable fields and returns the fresh record.
func (s *UserService) SaveProfile(tgId int64, fullName string, department string) (*model.User, error) {
	const op = "UserService.SaveProfile"

	if _, err := s.GetProfile(tgId); err != nil {
		return nil, err
	}
	if err := s.getUserRepo().UpdateProfile(tgId, fullName, department); err != nil {
		return nil, common.Wrap(op, err)
	}
	return s.GetProfile(tgId)
}

// CountUsers is used by the stats job and the bot.
func (s *UserService) CountUsers() (int64, error) {
	return s.getUserRepo().Count()
}

// CountByDepartment is used by the stats job and the bot.
func (s *UserService) CountByDepartment() (map[string]int64, error) {
	return s.getUserRepo().CountByDepartment()
}
