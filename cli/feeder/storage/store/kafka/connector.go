package kafka

/*
Плагин для публикации записей в Kafka.

Раздел настроек, которые могут быть в конфиге для подключения хранилища:

brokers = "localhost:9092,localhost:9093"
topic = "location-events"
format = "json"
timeout = 5

Ключ сообщения — userId, так все записи одной машины попадают в одну партицию.
*/

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	"github.com/segmentio/kafka-go"
)

// messageWriter часть kafka.Writer, которой пользуется коннектор
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Connector struct {
	writer  messageWriter
	format  string
	timeout time.Duration
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	brokers := splitBrokers(store.OptionValue(cfg, "brokers", "localhost:9092"))
	if len(brokers) == 0 {
		return fmt.Errorf("не заданы брокеры Kafka")
	}

	timeout, err := store.IntOptionValue(cfg, "timeout", 5)
	if err != nil {
		return err
	}

	c.format = store.OptionValue(cfg, "format", types.FormatJSON)
	c.timeout = time.Duration(timeout) * time.Second
	c.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        store.OptionValue(cfg, "topic", "location-events"),
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: c.timeout,
		RequiredAcks: kafka.RequireOne,
	}
	return nil
}

func (c *Connector) Save(msg *types.TelemetryRecord) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на запись")
	}

	value, err := msg.Encode(c.format)
	if err != nil {
		return fmt.Errorf("ошибка сериализации записи: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	err = c.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.UserID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("не удалось отправить сообщение в Kafka: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.writer == nil {
		return nil
	}
	return c.writer.Close()
}
