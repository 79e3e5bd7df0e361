package board

import "math/rand"

// RandomFleet returns a complete board with every ship of the Fleet placed at
// a random legal position.
func RandomFleet(rng *rand.Rand) *Board {
	b := New()
	for _, kind := range Fleet {
		for {
			start := Coordinate{Row: rng.Intn(Size) + 1, Col: rng.Intn(Size) + 1}
			o := Orientation(rng.Intn(2))
			if err := b.PlaceShip(kind, start, o); err == nil {
				break
			}
		}
	}
	return b
}
