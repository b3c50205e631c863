package main

/*
Replay feeder.

Отправляет записанный трек (CSV) на сервер по одной записи, строго последовательно.
Без аргументов работает с настройками по умолчанию, -c задает yaml-конфиг.

Usage:
  -c string
    	Путь до конфигурационного файла (необязательно)
*/

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/daniil11ru/location-feeder/cli/feeder/app"
	"github.com/daniil11ru/location-feeder/cli/feeder/domain"
	"github.com/daniil11ru/location-feeder/cli/feeder/logging"
	"github.com/daniil11ru/location-feeder/cli/feeder/sender"
	"github.com/daniil11ru/location-feeder/cli/feeder/source"

	log "github.com/sirupsen/logrus"
)

func main() {
	configFilePath := ""
	flag.StringVar(&configFilePath, "c", "", "Путь до конфигурационного файла")
	flag.Parse()

	config, err := app.GetConfig(configFilePath)
	if err != nil {
		log.Fatalf("Не удалось получить конфиг: %v", err)
		return
	}

	fileLogger, err := logging.Configure(config)
	if err != nil {
		log.Fatalf("Не удалось настроить логирование: %v", err)
		return
	}
	if fileLogger != nil {
		defer fileLogger.Close()
	}

	settings := config.Replay

	log.WithField("file", settings.DataFile).Info("Загрузка данных")
	rows, err := source.LoadRows(settings.DataFile)
	if errors.Is(err, source.ErrDataFileNotFound) {
		log.Errorf("Файл '%s' не найден", settings.DataFile)
		return
	}
	if err != nil {
		log.Fatalf("Не удалось прочитать данные: %v", err)
		return
	}

	mirror, closeMirror, err := app.OpenMirror(config)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer closeMirror()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snd := sender.NewHTTP(settings.TargetURL, settings.SuccessStatus, config.GetRequestTimeout())
	log.WithFields(log.Fields{"total": len(rows), "target": snd.URL()}).Info("Начало отправки")

	replay := domain.Replay{
		Sender:      snd,
		Mirror:      mirror,
		Delay:       settings.GetDelay(),
		ReportEvery: settings.ReportEvery,
		MapOptions: domain.MapOptions{
			NormalizeServiceType: settings.NormalizeServiceType,
			SpeedKmh:             settings.SpeedKmh,
		},
	}
	replay.Run(ctx, rows)
}
