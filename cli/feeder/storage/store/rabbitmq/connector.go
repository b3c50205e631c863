package rabbitmq

/*
Плагин для публикации записей в RabbitMQ.

Раздел настроек, которые могут быть в конфиге для подключения хранилища:

host = "localhost"
port = "5672"
user = "guest"
password = "guest"
exchange = "location"
exchange_type = "topic"
key = "location.update"
format = "json"
*/

import (
	"fmt"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	"github.com/streadway/amqp"
)

// publisher часть amqp.Channel, которой пользуется коннектор
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Connector struct {
	connection *amqp.Connection
	channel    publisher
	exchange   string
	key        string
	format     string
}

func contentType(format string) string {
	if format == types.FormatMsgpack {
		return "application/msgpack"
	}
	return "application/json"
}

func dialURL(cfg map[string]string) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		store.OptionValue(cfg, "user", "guest"),
		store.OptionValue(cfg, "password", "guest"),
		store.OptionValue(cfg, "host", "localhost"),
		store.OptionValue(cfg, "port", "5672"),
	)
}

func (c *Connector) Init(cfg map[string]string) error {
	var err error
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	c.exchange = store.OptionValue(cfg, "exchange", "location")
	c.key = store.OptionValue(cfg, "key", "location.update")
	c.format = store.OptionValue(cfg, "format", types.FormatJSON)

	if c.connection, err = amqp.Dial(dialURL(cfg)); err != nil {
		return fmt.Errorf("ошибка подключения к RabbitMQ: %v", err)
	}

	channel, err := c.connection.Channel()
	if err != nil {
		_ = c.connection.Close()
		return fmt.Errorf("ошибка открытия канала RabbitMQ: %v", err)
	}

	exchangeType := store.OptionValue(cfg, "exchange_type", amqp.ExchangeTopic)
	if err = channel.ExchangeDeclare(c.exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = c.connection.Close()
		return fmt.Errorf("не удалось объявить exchange %s: %v", c.exchange, err)
	}
	c.channel = channel
	return nil
}

func (c *Connector) Save(msg *types.TelemetryRecord) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на запись")
	}

	body, err := msg.Encode(c.format)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %v", err)
	}

	err = c.channel.Publish(c.exchange, c.key, false, false, amqp.Publishing{
		ContentType: contentType(c.format),
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
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
