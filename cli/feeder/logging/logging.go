package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daniil11ru/location-feeder/cli/feeder/config"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure настраивает вывод логов в консоль и, если задан log_file_path, в файл с ротацией.
// Возвращает логгер файла (nil, если файл не задан), чтобы его можно было закрыть при завершении.
func Configure(settings config.Settings) (*lumberjack.Logger, error) {
	log.SetLevel(settings.GetLogLevel())

	consoleFmt := &log.TextFormatter{ForceColors: true, FullTimestamp: false}
	log.SetFormatter(consoleFmt)
	log.SetOutput(os.Stdout)

	if settings.LogFilePath == "" {
		return nil, nil
	}

	logDir := filepath.Dir(settings.LogFilePath)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("не получилось создать директорию для логов: %w", err)
		}
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   settings.LogFilePath,
		MaxSize:    100,
		MaxBackups: 366,
		MaxAge:     settings.LogMaxAgeDays,
		Compress:   true,
	}

	fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
	hook := lfshook.NewHook(lfshook.WriterMap{
		log.PanicLevel: lumberjackLogger,
		log.FatalLevel: lumberjackLogger,
		log.ErrorLevel: lumberjackLogger,
		log.WarnLevel:  lumberjackLogger,
		log.InfoLevel:  lumberjackLogger,
		log.DebugLevel: lumberjackLogger,
		log.TraceLevel: lumberjackLogger,
	}, fileFmt)

	log.AddHook(hook)

	return lumberjackLogger, nil
}
