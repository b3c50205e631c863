package config

/*
Описание конфигурационного файла фидеров.

Файл необязателен: без него используются значения по умолчанию из Default().
Отсутствующие в файле ключи также берутся из Default().
*/

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"gopkg.in/yaml.v2"
)

const (
	DefaultReplayURL    = "http://localhost:8080/api/v1/update/kafka"
	DefaultSyntheticURL = "http://localhost:8081/api/v1/rdbms/update"
)

type Replay struct {
	TargetURL            string `yaml:"target_url"`
	SuccessStatus        int    `yaml:"success_status"`
	DataFile             string `yaml:"data_file"`
	DelayMs              int    `yaml:"delay_ms"`
	ReportEvery          int    `yaml:"report_every"`
	NormalizeServiceType bool   `yaml:"normalize_service_type"`
	SpeedKmh             bool   `yaml:"speed_kmh"`
}

func (r *Replay) GetDelay() time.Duration {
	return time.Duration(r.DelayMs) * time.Millisecond
}

type Synthetic struct {
	TargetURL     string  `yaml:"target_url"`
	SuccessStatus int     `yaml:"success_status"`
	Vehicles      int     `yaml:"vehicles"`
	IDPrefix      string  `yaml:"id_prefix"`
	CenterLat     float64 `yaml:"center_lat"`
	CenterLng     float64 `yaml:"center_lng"`
	StepDeg       float64 `yaml:"step_deg"`
	IntervalMs    int     `yaml:"interval_ms"`
	ServiceType   string  `yaml:"service_type"`
	SpeedMin      float64 `yaml:"speed_min"`
	SpeedMax      float64 `yaml:"speed_max"`
	Accuracy      float64 `yaml:"accuracy"`
	Seed          int64   `yaml:"seed"`
}

func (s *Synthetic) GetInterval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}

type Settings struct {
	LogLevel          string                       `yaml:"log_level"`
	LogFilePath       string                       `yaml:"log_file_path"`
	LogMaxAgeDays     int                          `yaml:"log_max_age_days"`
	RequestTimeoutSec int                          `yaml:"request_timeout_sec"`
	StorageWorkers    int                          `yaml:"storage_workers"`
	Store             map[string]map[string]string `yaml:"storage"`
	Replay            Replay                       `yaml:"replay"`
	Synthetic         Synthetic                    `yaml:"synthetic"`
}

func (s *Settings) GetRequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

func (s *Settings) GetLogLevel() log.Level {
	var lvl log.Level

	switch s.LogLevel {
	case "DEBUG":
		lvl = log.DebugLevel
	case "INFO":
		lvl = log.InfoLevel
	case "WARN":
		lvl = log.WarnLevel
	case "ERROR":
		lvl = log.ErrorLevel
	default:
		lvl = log.InfoLevel
	}
	return lvl
}

func defaultReplay() Replay {
	return Replay{
		TargetURL:     DefaultReplayURL,
		SuccessStatus: 202,
		DataFile:      "grab_posisi_data.csv",
		DelayMs:       50,
		ReportEvery:   50,
	}
}

func defaultSynthetic() Synthetic {
	return Synthetic{
		TargetURL:     DefaultSyntheticURL,
		SuccessStatus: 200,
		Vehicles:      5,
		IDPrefix:      "rdbms_car_",
		CenterLat:     1.3521,
		CenterLng:     103.8198,
		StepDeg:       0.001,
		IntervalMs:    1000,
		ServiceType:   "TAXI",
		SpeedMin:      10,
		SpeedMax:      60,
		Accuracy:      5.0,
	}
}

// Default настройки, с которыми фидеры работают без конфигурационного файла
func Default() Settings {
	return Settings{
		LogLevel:          "INFO",
		RequestTimeoutSec: 10,
		Replay:            defaultReplay(),
		Synthetic:         defaultSynthetic(),
	}
}

func New(confPath string) (Settings, error) {
	c := Default()
	data, err := os.ReadFile(confPath)
	if err != nil {
		return Settings{}, err
	}
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return Settings{}, err
	}

	c.validate()

	return c, nil
}

func validStatus(code int) bool {
	return code >= 100 && code <= 599
}

func (s *Settings) validate() {
	if s.RequestTimeoutSec < 0 {
		log.Errorf("Invalid request_timeout_sec (%d). Defaulting to 10.", s.RequestTimeoutSec)
		s.RequestTimeoutSec = 10
	}
	if s.StorageWorkers < 0 {
		log.Errorf("Invalid storage_workers (%d). Defaulting to 0 (synchronous).", s.StorageWorkers)
		s.StorageWorkers = 0
	}

	r, dr := &s.Replay, defaultReplay()
	if r.TargetURL == "" {
		log.Errorf("Empty replay.target_url. Defaulting to %s.", dr.TargetURL)
		r.TargetURL = dr.TargetURL
	}
	if !validStatus(r.SuccessStatus) {
		log.Errorf("Invalid replay.success_status (%d). Defaulting to %d.", r.SuccessStatus, dr.SuccessStatus)
		r.SuccessStatus = dr.SuccessStatus
	}
	if r.DataFile == "" {
		log.Errorf("Empty replay.data_file. Defaulting to %s.", dr.DataFile)
		r.DataFile = dr.DataFile
	}
	if r.DelayMs < 0 {
		log.Errorf("Invalid replay.delay_ms (%d). Defaulting to %d.", r.DelayMs, dr.DelayMs)
		r.DelayMs = dr.DelayMs
	}
	if r.ReportEvery < 1 {
		log.Errorf("Invalid replay.report_every (%d). Defaulting to %d.", r.ReportEvery, dr.ReportEvery)
		r.ReportEvery = dr.ReportEvery
	}

	sy, ds := &s.Synthetic, defaultSynthetic()
	if sy.TargetURL == "" {
		log.Errorf("Empty synthetic.target_url. Defaulting to %s.", ds.TargetURL)
		sy.TargetURL = ds.TargetURL
	}
	if !validStatus(sy.SuccessStatus) {
		log.Errorf("Invalid synthetic.success_status (%d). Defaulting to %d.", sy.SuccessStatus, ds.SuccessStatus)
		sy.SuccessStatus = ds.SuccessStatus
	}
	if sy.Vehicles < 1 {
		log.Errorf("Invalid synthetic.vehicles (%d). Defaulting to %d.", sy.Vehicles, ds.Vehicles)
		sy.Vehicles = ds.Vehicles
	}
	if sy.StepDeg < 0 {
		log.Errorf("Invalid synthetic.step_deg (%f). Defaulting to %f.", sy.StepDeg, ds.StepDeg)
		sy.StepDeg = ds.StepDeg
	}
	if sy.IntervalMs < 0 {
		log.Errorf("Invalid synthetic.interval_ms (%d). Defaulting to %d.", sy.IntervalMs, ds.IntervalMs)
		sy.IntervalMs = ds.IntervalMs
	}
	if sy.SpeedMin > sy.SpeedMax {
		log.Errorf("synthetic.speed_min (%f) cannot be above synthetic.speed_max (%f). Defaulting to [%f, %f).",
			sy.SpeedMin, sy.SpeedMax, ds.SpeedMin, ds.SpeedMax)
		sy.SpeedMin = ds.SpeedMin
		sy.SpeedMax = ds.SpeedMax
	}
}
