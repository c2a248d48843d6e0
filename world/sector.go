package world

import (
	"github.com/oomph-ac/lockstep/game"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// SectorShift is the size of a sector in world units, as a power of two.
const SectorShift = 6

// Sector is a square area of the map with a single floor and ceiling height.
type Sector struct {
	Floor, Ceiling game.Fixed
}

// SectorPos returns the position of the sector containing the point passed.
func SectorPos(x, y game.Fixed) protocol.ChunkPos {
	return protocol.ChunkPos{x.Int() >> SectorShift, y.Int() >> SectorShift}
}

// SetSector sets the sector at the sector position passed.
func (w *World) SetSector(pos protocol.ChunkPos, s Sector) {
	w.sectors[pos] = s
}

// SectorAt returns the sector containing the point passed.
func (w *World) SectorAt(x, y game.Fixed) (Sector, bool) {
	s, ok := w.sectors[SectorPos(x, y)]
	return s, ok
}

// FloorHeight returns the floor height of the sector containing the point passed. Points outside
// of every sector have their floor at zero.
func (w *World) FloorHeight(x, y game.Fixed) game.Fixed {
	if s, ok := w.SectorAt(x, y); ok {
		return s.Floor
	}
	return 0
}
