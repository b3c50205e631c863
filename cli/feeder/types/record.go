package types

import (
	"encoding/json"
	"fmt"

	"gopkg.in/vmihailenco/msgpack.v2"
)

// StatusOnTask статус, с которым отправляются записи из трека
const StatusOnTask = "ON_TASK"

// TelemetryRecord тело запроса на обновление местоположения
type TelemetryRecord struct {
	UserID      string   `json:"userId" msgpack:"userId"`
	ServiceType string   `json:"serviceType" msgpack:"serviceType"`
	Latitude    float64  `json:"latitude" msgpack:"latitude"`
	Longitude   float64  `json:"longitude" msgpack:"longitude"`
	Heading     *float64 `json:"heading,omitempty" msgpack:"heading,omitempty"`
	Speed       float64  `json:"speed" msgpack:"speed"`
	Accuracy    float64  `json:"accuracy" msgpack:"accuracy"`
	Timestamp   int64    `json:"timestamp" msgpack:"timestamp"`
	Status      string   `json:"status,omitempty" msgpack:"status,omitempty"`
}

func (r *TelemetryRecord) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

func (r *TelemetryRecord) ToMsgpack() ([]byte, error) {
	return msgpack.Marshal(r)
}

// Fields плоское представление записи для потоков Redis
func (r *TelemetryRecord) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"userId":      r.UserID,
		"serviceType": r.ServiceType,
		"latitude":    r.Latitude,
		"longitude":   r.Longitude,
		"speed":       r.Speed,
		"accuracy":    r.Accuracy,
		"timestamp":   r.Timestamp,
	}
	if r.Heading != nil {
		fields["heading"] = *r.Heading
	}
	if r.Status != "" {
		fields["status"] = r.Status
	}
	return fields
}

const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Encode сериализует запись в заданном формате, пустой формат означает JSON
func (r *TelemetryRecord) Encode(format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		return r.ToBytes()
	case FormatMsgpack:
		return r.ToMsgpack()
	default:
		return nil, fmt.Errorf("неизвестный формат сериализации: %s", format)
	}
}
