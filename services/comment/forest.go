package commentService

// node is the slice of a comment the forest needs.
type node struct {
	ID              uint
	ParentCommentID *uint
}

// forest indexes one movie's comments by id with explicit child lists.
// A comment whose parent is absent from the set is treated as a root.
type forest struct {
	children map[uint][]uint
	roots    []uint
}

func newForest(nodes []node) *forest {
	known := make(map[uint]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	f := &forest{children: make(map[uint][]uint, len(nodes))}
	for _, n := range nodes {
		if n.ParentCommentID == nil || !known[*n.ParentCommentID] {
			f.roots = append(f.roots, n.ID)
			continue
		}
		parent := *n.ParentCommentID
		f.children[parent] = append(f.children[parent], n.ID)
	}
	return f
}

// levels walks breadth-first from the given starting ids and groups the visited ids by depth.
// Deleting levels last-to-first never removes a parent before its replies.
func (f *forest) levels(start []uint) [][]uint {
	var out [][]uint
	seen := make(map[uint]bool)

	frontier := start
	for len(frontier) > 0 {
		level := make([]uint, 0, len(frontier))
		var next []uint
		for _, id := range frontier {
			if seen[id] {
				continue
			}
			seen[id] = true
			level = append(level, id)
			next = append(next, f.children[id]...)
		}
		if len(level) > 0 {
			out = append(out, level)
		}
		frontier = next
	}
	return out
}

// subtree returns root and all of its transitive replies, grouped by depth.
func (f *forest) subtree(root uint) [][]uint {
	return f.levels([]uint{root})
}

// all returns every comment in the forest, grouped by depth.
func (f *forest) all() [][]uint {
	return f.levels(f.roots)
}

func flatten(levels [][]uint) []uint {
	var ids []uint
	for _, level := range levels {
		ids = append(ids, level...)
	}
	return ids
}
