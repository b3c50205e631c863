package types

type Position2D struct {
	Latitude  float64
	Longitude float64
}

// Vehicle моделируемое транспортное средство, координаты меняются на каждом цикле
type Vehicle struct {
	ID string
	Position2D
}
