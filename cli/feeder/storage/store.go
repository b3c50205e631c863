package storage

import (
	"errors"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store/kafka"
	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store/mysql"
	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store/nats"
	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store/postgresql"
	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store/rabbitmq"
	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store/redis"
	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store/tarantool_queue"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownStorage = errors.New("storage isn't support yet")

type Store interface {
	Connector
	Saver
}

// Saver интерфейс для записи в дополнительные хранилища
type Saver interface {
	// Save сохранение в хранилище
	Save(*types.TelemetryRecord) error
}

// Connector интерфейс для подключения внешних хранилищ
type Connector interface {
	// Init установка соединения с хранилищем
	Init(map[string]string) error

	// Close закрытие соединения с хранилищем
	Close() error
}

// Repository набор хранилищ, в которые дублируются отправленные записи
type Repository struct {
	storages []Saver
}

// AddStore добавляет хранилище для сохранения данных
func (r *Repository) AddStore(s Saver) {
	r.storages = append(r.storages, s)
}

func (r *Repository) Len() int {
	return len(r.storages)
}

// Save сохраняет запись во все установленные хранилища
func (r *Repository) Save(m *types.TelemetryRecord) error {
	for _, store := range r.storages {
		if err := store.Save(m); err != nil {
			return err
		}
	}
	return nil
}

func newStore(name string) (Store, error) {
	switch name {
	case "kafka":
		return &kafka.Connector{}, nil
	case "redis":
		return &redis.Connector{}, nil
	case "rabbitmq":
		return &rabbitmq.Connector{}, nil
	case "nats":
		return &nats.Connector{}, nil
	case "postgresql":
		return &postgresql.Connector{}, nil
	case "mysql":
		return &mysql.Connector{}, nil
	case "tarantool_queue":
		return &tarantool_queue.Connector{}, nil
	default:
		return nil, ErrUnknownStorage
	}
}

// LoadStorages загружает хранилища из структуры конфига. Пустой список допустим.
func (r *Repository) LoadStorages(storages map[string]map[string]string) error {
	for name, params := range storages {
		db, err := newStore(name)
		if err != nil {
			return err
		}

		if err := db.Init(params); err != nil {
			return err
		}

		log.WithField("storage", name).Info("Подключено хранилище")
		r.AddStore(db)
	}
	return nil
}

// Close закрывает соединения всех хранилищ, которые это умеют
func (r *Repository) Close() error {
	var firstErr error
	for _, s := range r.storages {
		c, ok := s.(Connector)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			log.WithField("err", err).Error("Ошибка закрытия хранилища")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NewRepository создает пустой репозиторий
func NewRepository() *Repository {
	return &Repository{}
}
