//go:build wireinject
// +build wireinject

package bootstrap

import (
	"github.com/protorns/tg-miniapp-server/database"
	"github.com/protorns/tg-miniapp-server/database/repository"
	"github.com/protorns/tg-miniapp-server/web/service"

	"github.com/google/wire"
)

func InitializeApp() (*App, error) {
	wire.Build(
		database.GetDBProvider,
		repository.RepositorySet,
		service.ServiceSet,
		NewApp,
	)
	return nil, nil
}
