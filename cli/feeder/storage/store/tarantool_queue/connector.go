package tarantool_queue

/*
Плагин для работы с Tarantool queue.

Раздел настроек, которые должны отвечають в конфиге для подключения хранилища:

host = "localhost"
port = "3301"
user = "user"
password = "pass"
max_recons = 5
timeout = 1
reconnect = 1
queue = "locations"
format = "msgpack"
*/

import (
	"fmt"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	"github.com/tarantool/go-tarantool"
	"github.com/tarantool/go-tarantool/queue"
)

// putter часть queue.Queue, которой пользуется коннектор
type putter interface {
	Put(data interface{}) (*queue.Task, error)
}

type Connector struct {
	connection *tarantool.Connection
	queue      putter
	format     string
}

func options(cfg map[string]string) (tarantool.Opts, error) {
	maxRecons, err := store.IntOptionValue(cfg, "max_recons", 5)
	if err != nil {
		return tarantool.Opts{}, err
	}
	timeout, err := store.IntOptionValue(cfg, "timeout", 1)
	if err != nil {
		return tarantool.Opts{}, err
	}
	reconnect, err := store.IntOptionValue(cfg, "reconnect", 1)
	if err != nil {
		return tarantool.Opts{}, err
	}

	return tarantool.Opts{
		Timeout:       time.Duration(timeout) * time.Second,
		Reconnect:     time.Duration(reconnect) * time.Second,
		MaxReconnects: uint(maxRecons),
		User:          cfg["user"],
		Pass:          cfg["password"],
	}, nil
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	opts, err := options(cfg)
	if err != nil {
		return err
	}

	c.format = store.OptionValue(cfg, "format", types.FormatMsgpack)
	conStr := fmt.Sprintf("%s:%s", store.OptionValue(cfg, "host", "localhost"), store.OptionValue(cfg, "port", "3301"))

	c.connection, err = tarantool.Connect(conStr, opts)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к Tarantool: %v", err)
	}
	c.queue = queue.New(c.connection, store.OptionValue(cfg, "queue", "locations"))

	return nil
}

func (c *Connector) Save(msg *types.TelemetryRecord) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на запись")
	}

	data, err := msg.Encode(c.format)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %v", err)
	}

	_, err = c.queue.Put(data)
	if err != nil {
		return fmt.Errorf("не удалось отправить сообщение: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.connection == nil {
		return nil
	}
	return c.connection.Close()
}
