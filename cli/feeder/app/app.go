package app

import (
	"fmt"

	"github.com/daniil11ru/location-feeder/cli/feeder/config"
	"github.com/daniil11ru/location-feeder/cli/feeder/domain"
	"github.com/daniil11ru/location-feeder/cli/feeder/storage"
	log "github.com/sirupsen/logrus"
)

const asyncBuffer = 1024

// GetConfig без пути возвращает настройки по умолчанию
func GetConfig(configFilePath string) (config.Settings, error) {
	if configFilePath == "" {
		return config.Default(), nil
	}

	c, err := config.New(configFilePath)
	if err != nil {
		return c, fmt.Errorf("ошибка парсинга конфига: %w", err)
	}

	return c, nil
}

// OpenMirror подключает дополнительные хранилища из конфига.
// Если хранилища не заданы, возвращает nil. closeFn всегда можно вызвать.
func OpenMirror(settings config.Settings) (domain.Mirror, func(), error) {
	repo := storage.NewRepository()
	if err := repo.LoadStorages(settings.Store); err != nil {
		_ = repo.Close()
		return nil, func() {}, fmt.Errorf("не удалось подключить хранилища: %w", err)
	}

	if repo.Len() == 0 {
		return nil, func() {}, nil
	}

	if settings.StorageWorkers > 0 {
		async := storage.NewAsyncRepository(repo, asyncBuffer, settings.StorageWorkers)
		log.WithField("workers", settings.StorageWorkers).Info("Хранилища работают асинхронно")
		return async, func() {
			async.Close()
			_ = repo.Close()
		}, nil
	}

	return repo, func() { _ = repo.Close() }, nil
}
