package redis

/*
Плагин для записи в поток Redis (XADD).

Раздел настроек, которые могут быть в конфиге для подключения хранилища:

server = "localhost:6379"
password = ""
db = 0
stream = "lbs_stream"
max_len = 0

Запись кладется в поток плоским набором полей, max_len > 0 включает приблизительное усечение потока.
*/

import (
	"context"
	"fmt"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	"github.com/go-redis/redis/v8"
)

const opTimeout = 5 * time.Second

type Connector struct {
	client *redis.Client
	stream string
	maxLen int64
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	db, err := store.IntOptionValue(cfg, "db", 0)
	if err != nil {
		return err
	}
	maxLen, err := store.IntOptionValue(cfg, "max_len", 0)
	if err != nil {
		return err
	}

	c.stream = store.OptionValue(cfg, "stream", "lbs_stream")
	c.maxLen = int64(maxLen)
	c.client = redis.NewClient(&redis.Options{
		Addr:     store.OptionValue(cfg, "server", "localhost:6379"),
		Password: cfg["password"],
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		_ = c.client.Close()
		return fmt.Errorf("Redis недоступен: %v", err)
	}
	return nil
}

func (c *Connector) Save(msg *types.TelemetryRecord) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на запись")
	}

	args := &redis.XAddArgs{
		Stream: c.stream,
		Values: msg.Fields(),
	}
	if c.maxLen > 0 {
		args.MaxLen = c.maxLen
		args.Approx = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := c.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("не удалось добавить запись в поток %s: %v", c.stream, err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
