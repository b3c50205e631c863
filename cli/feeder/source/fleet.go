package source

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/daniil11ru/location-feeder/cli/feeder/types"
)

// Fleet генерирующий источник: набор машин, которые случайно смещаются на каждом цикле.
// Не потокобезопасен, используется одним циклом отправки.
type Fleet struct {
	vehicles []*types.Vehicle
	step     float64
	rnd      *rand.Rand
}

// NewFleet создает size машин с идентификаторами prefix1..prefixN в точке center.
// Если rnd == nil, используется генератор, инициализированный текущим временем.
func NewFleet(size int, prefix string, center types.Position2D, step float64, rnd *rand.Rand) *Fleet {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	vehicles := make([]*types.Vehicle, 0, size)
	for i := 1; i <= size; i++ {
		vehicles = append(vehicles, &types.Vehicle{
			ID:         fmt.Sprintf("%s%d", prefix, i),
			Position2D: center,
		})
	}

	return &Fleet{vehicles: vehicles, step: step, rnd: rnd}
}

// Advance сдвигает каждую машину на случайную величину в [-step, step) по широте и долготе
func (f *Fleet) Advance() {
	for _, v := range f.vehicles {
		v.Latitude += f.delta()
		v.Longitude += f.delta()
	}
}

func (f *Fleet) delta() float64 {
	return (f.rnd.Float64()*2 - 1) * f.step
}

func (f *Fleet) Vehicles() []*types.Vehicle {
	return f.vehicles
}

func (f *Fleet) Len() int {
	return len(f.vehicles)
}
