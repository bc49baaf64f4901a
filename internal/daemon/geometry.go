package daemon

import "github.com/edgelink/edgelinkd/internal/types"

func clampAxis(v int32, max uint32) int32 {
	if v < 0 {
		return 0
	}
	if max == 0 {
		return 0
	}
	if v > int32(max-1) {
		return int32(max - 1)
	}
	return v
}

func clampCursor(x, y int32, screen types.ScreenGeometry) (int32, int32) {
	return clampAxis(x, screen.Width), clampAxis(y, screen.Height)
}

// atEdge reports whether (x,y) currently sits on the screen's edge.
func atEdge(x, y int32, screen types.ScreenGeometry, edge types.ScreenEdge) bool {
	switch edge {
	case types.EdgeLeft:
		return x == 0
	case types.EdgeRight:
		return x == int32(screen.Width-1)
	case types.EdgeTop:
		return y == 0
	case types.EdgeBottom:
		return y == int32(screen.Height-1)
	default:
		return false
	}
}

// positionAlongEdge is cursor_y for the vertical edges and cursor_x for the
// horizontal ones (spec.md §4.3 "Barrier detection").
func positionAlongEdge(x, y int32, edge types.ScreenEdge) int32 {
	switch edge {
	case types.EdgeLeft, types.EdgeRight:
		return y
	default:
		return x
	}
}

// warpToEdge places the cursor just inside edge at the given position along
// it, clamped to the screen bounds.
func warpToEdge(edge types.ScreenEdge, position int32, screen types.ScreenGeometry) (x, y int32) {
	switch edge {
	case types.EdgeLeft:
		return 0, clampAxis(position, screen.Height)
	case types.EdgeRight:
		return int32(screen.Width - 1), clampAxis(position, screen.Height)
	case types.EdgeTop:
		return clampAxis(position, screen.Width), 0
	case types.EdgeBottom:
		return clampAxis(position, screen.Width), int32(screen.Height - 1)
	default:
		return x, y
	}
}
