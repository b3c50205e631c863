package postgresql

/*
Настройки, которые могут (а не которые – должны) быть в конфиге для подключения хранилища:

host = "localhost"
port = "5432"
user = "postgres"
password = "postgres"
database = "location"
table = "location_data"
sslmode = "disable"

Таблица хранит последнее положение каждой машины, строка обновляется по user_id:

CREATE TABLE location_data (
	id           BIGSERIAL PRIMARY KEY,
	user_id      VARCHAR(255) NOT NULL UNIQUE,
	service_type VARCHAR(64),
	latitude     DOUBLE PRECISION,
	longitude    DOUBLE PRECISION,
	speed        DOUBLE PRECISION,
	accuracy     DOUBLE PRECISION,
	"timestamp"  BIGINT,
	updated_at   TIMESTAMP
);
*/

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	_ "github.com/lib/pq"
)

type Connector struct {
	connection *sql.DB
	query      string
}

func connString(cfg map[string]string) string {
	return fmt.Sprintf("dbname=%s host=%s port=%s user=%s password=%s sslmode=%s",
		store.OptionValue(cfg, "database", "location"),
		store.OptionValue(cfg, "host", "localhost"),
		store.OptionValue(cfg, "port", "5432"),
		store.OptionValue(cfg, "user", "postgres"),
		store.OptionValue(cfg, "password", "postgres"),
		store.OptionValue(cfg, "sslmode", "disable"),
	)
}

func upsertQuery(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (user_id, service_type, latitude, longitude, speed, accuracy, "timestamp", updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	speed = EXCLUDED.speed,
	accuracy = EXCLUDED.accuracy,
	"timestamp" = EXCLUDED."timestamp",
	updated_at = EXCLUDED.updated_at`, table)
}

func (c *Connector) Init(cfg map[string]string) error {
	var (
		err error
	)
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	c.query = upsertQuery(store.OptionValue(cfg, "table", "location_data"))
	if c.connection, err = sql.Open("postgres", connString(cfg)); err != nil {
		return fmt.Errorf("ошибка подключения к PostgreSQL: %v", err)
	}

	if err = c.connection.Ping(); err != nil {
		_ = c.connection.Close()
		return fmt.Errorf("PostgreSQL недоступен: %v", err)
	}
	return nil
}

func (c *Connector) Save(msg *types.TelemetryRecord) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на запись")
	}

	_, err := c.connection.Exec(c.query,
		msg.UserID, msg.ServiceType, msg.Latitude, msg.Longitude, msg.Speed, msg.Accuracy, msg.Timestamp, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("не удалось вставить запись: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.connection == nil {
		return nil
	}
	return c.connection.Close()
}
