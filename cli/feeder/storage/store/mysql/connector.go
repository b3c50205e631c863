package mysql

/*
Настройки, которые могут быть в конфиге для подключения хранилища:

host = "localhost"
port = "3306"
user = "root"
password = "root"
database = "location"
table = "location_data"

Как и для PostgreSQL, строка таблицы обновляется по уникальному user_id.
*/

import (
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/storage/store"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
	"github.com/go-sql-driver/mysql"
)

type Connector struct {
	connection *sql.DB
	query      string
}

func dsn(cfg map[string]string) string {
	c := mysql.NewConfig()
	c.User = store.OptionValue(cfg, "user", "root")
	c.Passwd = store.OptionValue(cfg, "password", "root")
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(store.OptionValue(cfg, "host", "localhost"), store.OptionValue(cfg, "port", "3306"))
	c.DBName = store.OptionValue(cfg, "database", "location")
	c.ParseTime = true
	return c.FormatDSN()
}

func upsertQuery(table string) string {
	return fmt.Sprintf("INSERT INTO %s (user_id, service_type, latitude, longitude, speed, accuracy, `timestamp`, updated_at) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?) "+
		"ON DUPLICATE KEY UPDATE latitude = VALUES(latitude), longitude = VALUES(longitude), speed = VALUES(speed), "+
		"accuracy = VALUES(accuracy), `timestamp` = VALUES(`timestamp`), updated_at = VALUES(updated_at)", table)
}

func (c *Connector) Init(cfg map[string]string) error {
	var err error
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	c.query = upsertQuery(store.OptionValue(cfg, "table", "location_data"))
	if c.connection, err = sql.Open("mysql", dsn(cfg)); err != nil {
		return fmt.Errorf("ошибка подключения к MySQL: %v", err)
	}

	if err = c.connection.Ping(); err != nil {
		_ = c.connection.Close()
		return fmt.Errorf("MySQL недоступен: %v", err)
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
