package daemon

import "github.com/edgelink/edgelinkd/internal/types"

// adjacencyKey is one endpoint of a directed screen-adjacency edge: "the
// screen named Screen has a neighbour across its Edge."
type adjacencyKey struct {
	Screen string
	Edge   types.ScreenEdge
}

// adjacencyMap resolves (screen_name, edge) -> neighbour_name for multi-hop
// Leave routing (spec.md §3 Daemon state, §4.3 "Leave ... multi-hop").
type adjacencyMap struct {
	edges    map[adjacencyKey]string
	explicit map[adjacencyKey]bool
}

func buildAdjacencyMap(ownName string, screens []ScreenConfig, extra []AdjacencyConfig) *adjacencyMap {
	m := &adjacencyMap{
		edges:    make(map[adjacencyKey]string),
		explicit: make(map[adjacencyKey]bool),
	}

	type forward struct {
		key       adjacencyKey
		neighbour string
	}
	var forwards []forward

	for _, s := range screens {
		forwards = append(forwards, forward{
			key:       adjacencyKey{Screen: ownName, Edge: s.Position.LocalEdge()},
			neighbour: s.Name,
		})
	}
	for _, a := range extra {
		forwards = append(forwards, forward{
			key:       adjacencyKey{Screen: a.Screen, Edge: a.Position.LocalEdge()},
			neighbour: a.Neighbor,
		})
	}

	// Explicit entries always win, including over each other in config
	// order: first one present for a given key stays.
	for _, f := range forwards {
		if _, ok := m.edges[f.key]; ok {
			continue
		}
		m.edges[f.key] = f.neighbour
		m.explicit[f.key] = true
	}

	// Auto-generate the symmetric inverse of every explicit entry; an
	// explicit entry already occupying that key wins over the generated one.
	for _, f := range forwards {
		inverseKey := adjacencyKey{Screen: f.neighbour, Edge: f.key.Edge.Opposite()}
		if m.explicit[inverseKey] {
			continue
		}
		m.edges[inverseKey] = f.key.Screen
	}

	return m
}

// next returns the screen name that lies across edge from screen, if known.
func (m *adjacencyMap) next(screen string, edge types.ScreenEdge) (string, bool) {
	name, ok := m.edges[adjacencyKey{Screen: screen, Edge: edge}]
	return name, ok
}
