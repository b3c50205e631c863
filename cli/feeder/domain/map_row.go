package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/source"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"
)

var ErrInvalidRow = errors.New("некорректная строка трека")

const kmhPerMs = 3.6

type MapOptions struct {
	// NormalizeServiceType переводит driving_mode в типы сервиса бэкенда: car -> TAXI, остальное -> BIKE
	NormalizeServiceType bool
	// SpeedKmh переводит скорость из м/с в км/ч
	SpeedKmh bool
}

// SanitizeUserID убирает пробелы по краям и кавычки
func SanitizeUserID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.NewReplacer(`"`, "", "'", "").Replace(id)
	return strings.TrimSpace(id)
}

func serviceType(drivingMode string, normalize bool) string {
	if !normalize {
		return drivingMode
	}
	if strings.EqualFold(strings.TrimSpace(drivingMode), "car") {
		return "TAXI"
	}
	return "BIKE"
}

func parseFloat(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: поле %s: %v", ErrInvalidRow, field, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: поле %s: недопустимое значение %q", ErrInvalidRow, field, value)
	}
	return v, nil
}

// maxSeconds наибольшее число секунд, которое переводится в миллисекунды без переполнения int64
const maxSeconds = math.MaxInt64 / 1000

// parseSeconds принимает целое неотрицательное число секунд, в том числе в виде 1000.0
func parseSeconds(value string) (int64, error) {
	value = strings.TrimSpace(value)

	sec, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: поле pingtimestamp: %q не является целым числом секунд", ErrInvalidRow, value)
		}
		if f < 0 || f > maxSeconds {
			return 0, fmt.Errorf("%w: поле pingtimestamp: %q вне допустимого диапазона", ErrInvalidRow, value)
		}
		sec = int64(f)
	}

	if sec < 0 || sec > maxSeconds {
		return 0, fmt.Errorf("%w: поле pingtimestamp: %q вне допустимого диапазона", ErrInvalidRow, value)
	}
	return sec, nil
}

// MapRow преобразует строку трека в тело запроса
func MapRow(row *source.Row, opts MapOptions) (types.TelemetryRecord, error) {
	var rec types.TelemetryRecord
	if row == nil {
		return rec, fmt.Errorf("%w: пустая ссылка на строку", ErrInvalidRow)
	}

	userID := SanitizeUserID(row.TrjID)
	if userID == "" {
		return rec, fmt.Errorf("%w: пустой trj_id", ErrInvalidRow)
	}

	lat, err := parseFloat("rawlat", row.RawLat)
	if err != nil {
		return rec, err
	}
	if lat < -90 || lat > 90 {
		return rec, fmt.Errorf("%w: широта %f вне диапазона [-90, 90]", ErrInvalidRow, lat)
	}

	lng, err := parseFloat("rawlng", row.RawLng)
	if err != nil {
		return rec, err
	}
	if lng < -180 || lng > 180 {
		return rec, fmt.Errorf("%w: долгота %f вне диапазона [-180, 180]", ErrInvalidRow, lng)
	}

	heading, err := parseFloat("bearing", row.Bearing)
	if err != nil {
		return rec, err
	}
	speed, err := parseFloat("speed", row.Speed)
	if err != nil {
		return rec, err
	}
	accuracy, err := parseFloat("accuracy", row.Accuracy)
	if err != nil {
		return rec, err
	}
	seconds, err := parseSeconds(row.PingTimestamp)
	if err != nil {
		return rec, err
	}

	if opts.SpeedKmh {
		speed *= kmhPerMs
	}

	rec = types.TelemetryRecord{
		UserID:      userID,
		ServiceType: serviceType(row.DrivingMode, opts.NormalizeServiceType),
		Latitude:    lat,
		Longitude:   lng,
		Heading:     &heading,
		Speed:       speed,
		Accuracy:    accuracy,
		Timestamp:   seconds * 1000,
		Status:      types.StatusOnTask,
	}
	return rec, nil
}

// VehicleRecord тело запроса для моделируемой машины, метка времени берется в момент вызова
func VehicleRecord(v *types.Vehicle, serviceType string, speed, accuracy float64, now time.Time) types.TelemetryRecord {
	return types.TelemetryRecord{
		UserID:      v.ID,
		ServiceType: serviceType,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		Speed:       speed,
		Accuracy:    accuracy,
		Timestamp:   now.UnixNano() / int64(time.Millisecond),
	}
}
