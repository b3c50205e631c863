package nats

/*
Плагин для публикации записей в NATS.

Раздел настроек, которые могут быть в конфиге для подключения хранилища:

servers = "nats://localhost:4222"
subject = "location.update"
format = "json"
*/

import (
	"fmt"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	"github.com/nats-io/nats.go"
)

type Connector struct {
	connection *nats.Conn
	subject    string
	format     string
}

func (c *Connector) Init(cfg map[string]string) error {
	var err error
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	c.subject = store.OptionValue(cfg, "subject", "location.update")
	c.format = store.OptionValue(cfg, "format", types.FormatJSON)

	servers := store.OptionValue(cfg, "servers", nats.DefaultURL)
	if c.connection, err = nats.Connect(servers, nats.Name("location-feeder")); err != nil {
		return fmt.Errorf("ошибка подключения к NATS: %v", err)
	}
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

	if err = c.connection.Publish(c.subject, data); err != nil {
		return fmt.Errorf("не удалось отправить сообщение: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.connection == nil {
		return nil
	}
	if err := c.connection.Drain(); err != nil {
		c.connection.Close()
		return err
	}
	return nil
}
