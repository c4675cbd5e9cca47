package sgf

import (
	"errors"
	"fmt"
	"strconv"

	"tesuji/board"
	"tesuji/game"
)

// ErrNoGameTree is returned when the input contains no "(;" opening.
var ErrNoGameTree = errors.New("no game tree found")

// Decode parses an SGF game record into a snapshot. Only the main
// line is read; unknown properties are tolerated and skipped.
func Decode(data []byte) (game.Snapshot, error) {
	content := string(data)
	root, rest, err := splitRoot(content)
	if err != nil {
		return game.Snapshot{}, err
	}

	props := make(map[string]string)
	extractProps(root, props)

	snap := game.Snapshot{BoardSize: 19, Komi: 0}
	if v, ok := props["SZ"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return game.Snapshot{}, fmt.Errorf("bad SZ property: %q", v)
		}
		snap.BoardSize = n
	}
	if v, ok := props["KM"]; ok {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return game.Snapshot{}, fmt.Errorf("bad KM property: %q", v)
		}
		snap.Komi = k
	}

	for _, node := range parseNodes(rest) {
		m, ok, err := parseMoveNode(node, snap.BoardSize)
		if err != nil {
			return game.Snapshot{}, err
		}
		if ok {
			snap.Moves = append(snap.Moves, m)
		}
	}
	return snap, nil
}

// splitRoot locates the root node and returns its property text and
// the remainder of the tree.
func splitRoot(content string) (root, rest string, err error) {
	start := -1
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '(' && content[i+1] == ';' {
			start = i + 2
			break
		}
	}
	if start == -1 {
		return "", "", ErrNoGameTree
	}

	// Root node ends at the next ';' or ')' outside a bracket value.
	i := start
	for i < len(content) {
		switch content[i] {
		case ';', ')':
			return content[start:i], content[i:], nil
		case '[':
			i++
			for i < len(content) && content[i] != ']' {
				if content[i] == '\\' && i+1 < len(content) {
					i++
				}
				i++
			}
		}
		i++
	}
	return content[start:], "", nil
}

// extractProps parses KEY[value] pairs from a node string into the
// map. Multi-valued properties keep their last value.
func extractProps(node string, props map[string]string) {
	i := 0
	for i < len(node) {
		for i < len(node) && (node[i] == ' ' || node[i] == '\n' || node[i] == '\r' || node[i] == '\t') {
			i++
		}
		if i >= len(node) {
			break
		}

		keyStart := i
		for i < len(node) && node[i] >= 'A' && node[i] <= 'Z' {
			i++
		}
		if i == keyStart {
			i++
			continue
		}
		key := node[keyStart:i]

		for i < len(node) && node[i] == '[' {
			i++
			valStart := i
			for i < len(node) && node[i] != ']' {
				if node[i] == '\\' && i+1 < len(node) {
					i++
				}
				i++
			}
			props[key] = node[valStart:i]
			if i < len(node) {
				i++
			}
		}
	}
}

// parseNodes splits the post-root tree text into node strings.
func parseNodes(content string) []string {
	var nodes []string
	i := 0
	for i < len(content) {
		if content[i] != ';' {
			i++
			continue
		}
		nodeStart := i
		i++
		for i < len(content) && content[i] != ';' && content[i] != ')' {
			if content[i] == '[' {
				i++
				for i < len(content) && content[i] != ']' {
					if content[i] == '\\' && i+1 < len(content) {
						i++
					}
					i++
				}
			}
			i++
		}
		nodes = append(nodes, content[nodeStart:i])
	}
	return nodes
}

// parseMoveNode extracts one move from a node like ";B[pd]". Nodes
// that are not B/W moves report ok=false; malformed coordinates are
// an error.
func parseMoveNode(node string, size int) (m game.Move, ok bool, err error) {
	props := make(map[string]string)
	extractProps(node[1:], props)

	var coord string
	if v, has := props["B"]; has {
		m.Color = board.Black
		coord = v
	} else if v, has := props["W"]; has {
		m.Color = board.White
		coord = v
	} else {
		return game.Move{}, false, nil
	}

	if coord == "" {
		m.Pass = true
		return m, true, nil
	}
	if len(coord) != 2 {
		return game.Move{}, false, fmt.Errorf("bad move coordinate: %q", coord)
	}
	x := int(coord[0] - 'a')
	y := int(coord[1] - 'a')
	if x < 0 || x >= size || y < 0 || y >= size {
		return game.Move{}, false, fmt.Errorf("move coordinate out of bounds: %q", coord)
	}
	m.Point = board.Point{Row: size - 1 - y, Col: x}
	return m, true, nil
}
