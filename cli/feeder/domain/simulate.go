package domain

import (
	"context"
	"math/rand"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/source"
	log "github.com/sirupsen/logrus"
)

type SimulationStats struct {
	Cycles   int
	Sent     int
	Accepted int
	Failed   int
}

// Simulation бесконечно двигает машины и отправляет по одной записи на машину за цикл
type Simulation struct {
	Fleet       *source.Fleet
	Sender      Sender
	Mirror      Mirror
	Interval    time.Duration
	ServiceType string
	SpeedMin    float64
	SpeedMax    float64
	Accuracy    float64
	Rand        *rand.Rand
}

func (s *Simulation) speed() float64 {
	return s.SpeedMin + s.Rand.Float64()*(s.SpeedMax-s.SpeedMin)
}

// Run работает до отмены контекста
func (s *Simulation) Run(ctx context.Context) SimulationStats {
	return s.RunCycles(ctx, 0)
}

// RunCycles останавливается после cycles циклов; cycles <= 0 означает без ограничения
func (s *Simulation) RunCycles(ctx context.Context, cycles int) SimulationStats {
	var stats SimulationStats

	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for ctx.Err() == nil {
		s.Fleet.Advance()

		for _, v := range s.Fleet.Vehicles() {
			if ctx.Err() != nil {
				return stats
			}

			rec := VehicleRecord(v, s.ServiceType, s.speed(), s.Accuracy, now())
			if err := s.Sender.Send(ctx, &rec); err != nil {
				stats.Failed++
				logSendError(err, rec.UserID)
			} else {
				stats.Accepted++
				log.WithField("user_id", rec.UserID).Info("Сохранено")
			}
			mirror(s.Mirror, &rec)
			stats.Sent++
		}

		stats.Cycles++
		if cycles > 0 && stats.Cycles >= cycles {
			return stats
		}

		if !sleep(ctx, s.Interval) {
			break
		}
	}

	return stats
}
