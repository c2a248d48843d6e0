package world

import (
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/lockstep/game"
)

// DoorTileShift is the size of the tile grid doors are indexed by, as a power of two.
const DoorTileShift = 5

// Door is a wall segment that can be opened. A closed door is impassable.
type Door struct {
	ID   uint16
	Box  cube.BBox
	Open bool
	// Lock is the lock value of the door. A door with a lock above zero cannot be opened.
	Lock int16
}

func doorTile(x, y game.Fixed) df_cube.Pos {
	return df_cube.Pos{int(x.Int() >> DoorTileShift), 0, int(y.Int() >> DoorTileShift)}
}

// AddDoor adds a door to the world.
func (w *World) AddDoor(d *Door) {
	w.doors.Set(d.ID, d)
	min, max := d.Box.Min(), d.Box.Max()
	for x := int32(min[0]) >> DoorTileShift; x <= int32(max[0])>>DoorTileShift; x++ {
		for y := int32(min[1]) >> DoorTileShift; y <= int32(max[1])>>DoorTileShift; y++ {
			w.doorTiles[df_cube.Pos{int(x), 0, int(y)}] = d.ID
		}
	}
}

// Door returns the door with the ID passed.
func (w *World) Door(id uint16) (*Door, bool) {
	return w.doors.Get(id)
}

// DoorNear returns the door covering the tile of the point passed.
func (w *World) DoorNear(x, y game.Fixed) (uint16, bool) {
	id, ok := w.doorTiles[doorTile(x, y)]
	return id, ok
}

// ToggleDoor opens a closed door or closes an open one. Locked doors stay closed and false is
// returned.
func (w *World) ToggleDoor(id uint16) (open bool, ok bool) {
	d, found := w.doors.Get(id)
	if !found || (!d.Open && d.Lock > 0) {
		return false, false
	}
	d.Open = !d.Open
	return d.Open, true
}

// DecreaseLock lowers the lock value of a door by amount, returning the remaining value.
func (w *World) DecreaseLock(id uint16, amount int16) (int16, bool) {
	d, found := w.doors.Get(id)
	if !found {
		return 0, false
	}
	d.Lock -= amount
	if d.Lock < 0 {
		d.Lock = 0
	}
	return d.Lock, true
}
