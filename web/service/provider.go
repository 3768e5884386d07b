package service

import (
	"github.com/google/wire"
)

// ServiceSet contains the providers for all services.
var ServiceSet = wire.NewSet(
	NewSettingService,
	NewUserService,
	NewServerService,
	ProvideTelegramAuthService,
	ProvideTgbot,
)
