package queryfields

// ExtractPivotCombinations walks the pivot tree of the first result row and
// returns every pivot-value tuple reachable at depth len(pivots), in payload order.
//
// The tree lives under the first declared field whose value is an object holding
// one of the pivot keys. Each level is {pivot_name: {value: child}}. A branch
// whose level is missing or not an object contributes nothing.
func ExtractPivotCombinations(rows []ResultRow, fields, pivots []string) [][]string {
	combinations := [][]string{}
	if len(rows) == 0 || len(pivots) == 0 {
		return combinations
	}

	first := rows[0]
	if !first.IsObject() {
		return combinations
	}

	tree := pivotTree(first, fields, pivots)
	if tree == nil {
		return combinations
	}

	current := make([]string, 0, len(pivots))
	var walk func(node *Node, depth int)
	walk = func(node *Node, depth int) {
		if depth == len(pivots) {
			combinations = append(combinations, append([]string(nil), current...))
			return
		}
		layer, ok := node.Get(pivots[depth])
		if !ok || !layer.IsObject() {
			return
		}
		for _, m := range layer.Members {
			current = append(current, m.Key)
			walk(m.Value, depth+1)
			current = current[:len(current)-1]
		}
	}
	walk(tree, 0)

	return combinations
}

func pivotTree(row *Node, fields, pivots []string) *Node {
	for _, field := range fields {
		value, ok := row.Get(field)
		if !ok || !value.IsObject() {
			continue
		}
		for _, pivot := range pivots {
			if value.Has(pivot) {
				return value
			}
		}
	}
	return nil
}
