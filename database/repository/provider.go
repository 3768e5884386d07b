package repository

import (
	"github.com/google/wire"
)

// RepositorySet contains the providers for all repositories.
var RepositorySet = wire.NewSet(
	NewUserRepository,
	NewSettingRepository,
)
