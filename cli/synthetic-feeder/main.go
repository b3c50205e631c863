package main

/*
Synthetic feeder.

Моделирует машины, которые случайно перемещаются вокруг заданной точки, и раз в цикл
отправляет на сервер положение каждой. Работает до прерывания (Ctrl+C).

Usage:
  -c string
    	Путь до конфигурационного файла (необязательно)
*/

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/app"
	"github.com/daniil11ru/location-feeder/cli/feeder/domain"
	"github.com/daniil11ru/location-feeder/cli/feeder/logging"
	"github.com/daniil11ru/location-feeder/cli/feeder/sender"
	"github.com/daniil11ru/location-feeder/cli/feeder/source"
	"github.com/daniil11ru/location-feeder/cli/feeder/types"

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

	mirror, closeMirror, err := app.OpenMirror(config)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer closeMirror()

	settings := config.Synthetic

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	center := types.Position2D{Latitude: settings.CenterLat, Longitude: settings.CenterLng}
	fleet := source.NewFleet(settings.Vehicles, settings.IDPrefix, center, settings.StepDeg, rnd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snd := sender.NewHTTP(settings.TargetURL, settings.SuccessStatus, config.GetRequestTimeout())
	log.WithFields(log.Fields{"vehicles": fleet.Len(), "target": snd.URL()}).Info("Начало отправки")

	simulation := domain.Simulation{
		Fleet:       fleet,
		Sender:      snd,
		Mirror:      mirror,
		Interval:    settings.GetInterval(),
		ServiceType: settings.ServiceType,
		SpeedMin:    settings.SpeedMin,
		SpeedMax:    settings.SpeedMax,
		Accuracy:    settings.Accuracy,
		Rand:        rnd,
	}
	stats := simulation.Run(ctx)

	log.WithFields(log.Fields{"cycles": stats.Cycles, "count": stats.Sent}).Info("Остановлено")
}
