package game

import (
	"errors"

	"github.com/dcrodman/broadside/internal/board"
)

// PlaceFleet asks for a position for every ship in the Fleet that is not on
// the board yet. Rejected placements are reported through the renderer and
// asked for again; any error from the input (including ErrQuitRequested)
// stops the placement phase.
func PlaceFleet(own *board.Board, input PlacementInput, renderer Renderer) error {
	if renderer == nil {
		renderer = nopRenderer{}
	}

	for _, kind := range board.Fleet {
		for !own.Placed(kind) {
			start, o, err := input.Placement(kind)
			if err != nil {
				return err
			}

			if err := own.PlaceShip(kind, start, o); err != nil {
				var placementErr *board.PlacementError
				if !errors.As(err, &placementErr) {
					return err
				}
				renderer.Announce(placementErr.Error())
				continue
			}
			renderer.Render(own, true)
		}
	}
	return nil
}
