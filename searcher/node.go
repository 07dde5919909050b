package searcher

import "recon/game"

// node records the value propagated to a move during one search call.
type node struct {
	depth int // Remaining depth below the move
	move  game.Move
	value float64
}

// best returns the node with the strictly greatest value; ties go to the earliest node.
func best(nodes []node) (node, bool) {
	if len(nodes) == 0 {
		return node{}, false
	}
	maxIndex := 0
	for i := 1; i < len(nodes); i++ {
		if nodes[i].value > nodes[maxIndex].value {
			maxIndex = i
		}
	}
	return nodes[maxIndex], true
}
