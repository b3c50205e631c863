package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigLoad(t *testing.T) {
	// To prevent log output during tests
	log.SetOutput(io.Discard)

	cfg := `log_level: "DEBUG"
log_file_path: "logs/feeder.log"
log_max_age_days: 7
storage_workers: 2

storage:
  kafka:
    brokers: "localhost:9092"
    topic: "location-events"
  redis:
    server: "localhost:6379"
    stream: "lbs_stream"

replay:
  target_url: "http://127.0.0.1:9000/api/v1/update/kafka"
  data_file: "trace.csv"
  delay_ms: 10

synthetic:
  vehicles: 3
  seed: 42
`

	conf, err := New(writeConfig(t, cfg))
	require.NoError(t, err)

	expected := Default()
	expected.LogLevel = "DEBUG"
	expected.LogFilePath = "logs/feeder.log"
	expected.LogMaxAgeDays = 7
	expected.StorageWorkers = 2
	expected.Store = map[string]map[string]string{
		"kafka": {
			"brokers": "localhost:9092",
			"topic":   "location-events",
		},
		"redis": {
			"server": "localhost:6379",
			"stream": "lbs_stream",
		},
	}
	expected.Replay.TargetURL = "http://127.0.0.1:9000/api/v1/update/kafka"
	expected.Replay.DataFile = "trace.csv"
	expected.Replay.DelayMs = 10
	expected.Synthetic.Vehicles = 3
	expected.Synthetic.Seed = 42

	assert.Equal(t, expected, conf)
	assert.Equal(t, 10*time.Millisecond, conf.Replay.GetDelay())
	assert.Equal(t, time.Second, conf.Synthetic.GetInterval())
	assert.Equal(t, log.DebugLevel, conf.GetLogLevel())
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, DefaultReplayURL, c.Replay.TargetURL)
	assert.Equal(t, 202, c.Replay.SuccessStatus)
	assert.Equal(t, "grab_posisi_data.csv", c.Replay.DataFile)
	assert.Equal(t, 50*time.Millisecond, c.Replay.GetDelay())
	assert.Equal(t, 50, c.Replay.ReportEvery)

	assert.Equal(t, DefaultSyntheticURL, c.Synthetic.TargetURL)
	assert.Equal(t, 200, c.Synthetic.SuccessStatus)
	assert.Equal(t, 5, c.Synthetic.Vehicles)
	assert.Equal(t, 1.3521, c.Synthetic.CenterLat)
	assert.Equal(t, 103.8198, c.Synthetic.CenterLng)
	assert.Equal(t, 0.001, c.Synthetic.StepDeg)
	assert.Equal(t, time.Second, c.Synthetic.GetInterval())
	assert.Equal(t, 10*time.Second, c.GetRequestTimeout())
}

func TestConfigValidation(t *testing.T) {
	log.SetOutput(io.Discard)

	tests := []struct {
		name        string
		yamlContent string
		check       func(t *testing.T, c Settings)
	}{
		{
			name:        "Empty file keeps defaults",
			yamlContent: "# empty config\n",
			check: func(t *testing.T, c Settings) {
				assert.Equal(t, Default(), c)
			},
		},
		{
			name: "Invalid status codes",
			yamlContent: `
replay:
  success_status: 42
synthetic:
  success_status: 700
`,
			check: func(t *testing.T, c Settings) {
				assert.Equal(t, 202, c.Replay.SuccessStatus)
				assert.Equal(t, 200, c.Synthetic.SuccessStatus)
			},
		},
		{
			name: "Negative delays and report interval",
			yamlContent: `
replay:
  delay_ms: -5
  report_every: 0
synthetic:
  interval_ms: -1
`,
			check: func(t *testing.T, c Settings) {
				assert.Equal(t, 50, c.Replay.DelayMs)
				assert.Equal(t, 50, c.Replay.ReportEvery)
				assert.Equal(t, 1000, c.Synthetic.IntervalMs)
			},
		},
		{
			name: "Zero delay is allowed",
			yamlContent: `
replay:
  delay_ms: 0
synthetic:
  interval_ms: 0
`,
			check: func(t *testing.T, c Settings) {
				assert.Equal(t, 0, c.Replay.DelayMs)
				assert.Equal(t, 0, c.Synthetic.IntervalMs)
			},
		},
		{
			name: "Speed range inverted",
			yamlContent: `
synthetic:
  speed_min: 80
  speed_max: 20
`,
			check: func(t *testing.T, c Settings) {
				assert.Equal(t, 10.0, c.Synthetic.SpeedMin)
				assert.Equal(t, 60.0, c.Synthetic.SpeedMax)
			},
		},
		{
			name: "Empty urls and fleet",
			yamlContent: `
replay:
  target_url: ""
synthetic:
  target_url: ""
  vehicles: 0
`,
			check: func(t *testing.T, c Settings) {
				assert.Equal(t, DefaultReplayURL, c.Replay.TargetURL)
				assert.Equal(t, DefaultSyntheticURL, c.Synthetic.TargetURL)
				assert.Equal(t, 5, c.Synthetic.Vehicles)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(writeConfig(t, tt.yamlContent))
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestConfigErrors(t *testing.T) {
	log.SetOutput(io.Discard)

	_, err := New(filepath.Join(t.TempDir(), "non_existent_config.yaml"))
	assert.Error(t, err)

	_, err = New(writeConfig(t, "replay: [unclosed"))
	assert.Error(t, err)
}
