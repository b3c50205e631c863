package source

/*
Файловый источник записей: трек в формате CSV с заголовком.

Обязательные колонки: trj_id, driving_mode, rawlat, rawlng, bearing, speed, accuracy, pingtimestamp.
Остальные колонки (например, osname) игнорируются.
*/

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

var (
	ErrDataFileNotFound = errors.New("файл с данными не найден")
	ErrMissingColumn    = errors.New("в заголовке нет обязательной колонки")
)

var RequiredColumns = []string{"trj_id", "driving_mode", "rawlat", "rawlng", "bearing", "speed", "accuracy", "pingtimestamp"}

// Row строка трека. Значения хранятся как есть, разбор выполняет domain.MapRow.
type Row struct {
	TrjID         string `csv:"trj_id"`
	DrivingMode   string `csv:"driving_mode"`
	RawLat        string `csv:"rawlat"`
	RawLng        string `csv:"rawlng"`
	Bearing       string `csv:"bearing"`
	Speed         string `csv:"speed"`
	Accuracy      string `csv:"accuracy"`
	PingTimestamp string `csv:"pingtimestamp"`
}

// LoadRows читает файл трека целиком, сохраняя порядок строк
func LoadRows(path string) ([]*Row, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataFileNotFound, path)
		}
		return nil, fmt.Errorf("не удалось открыть %s: %w", path, err)
	}
	defer file.Close()

	return ReadRows(file)
}

// ReadRows разбирает CSV с заголовком. Строки с неполным набором полей не отбрасываются.
func ReadRows(in io.Reader) ([]*Row, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения данных: %w", err)
	}

	header, err := newReader(bytes.NewReader(data)).Read()
	if err == io.EOF {
		return []*Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заголовка: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	rows := []*Row{}
	if err := gocsv.UnmarshalCSV(newReader(bytes.NewReader(data)), &rows); err != nil {
		return nil, fmt.Errorf("ошибка разбора CSV: %w", err)
	}
	return rows, nil
}

func newReader(in io.Reader) *csv.Reader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}
