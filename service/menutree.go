package service

import (
	"errors"
	"sort"

	"greencampus/models"
)

// Move positions accepted by PlanMove.
const (
	MoveBefore = "before"
	MoveAfter  = "after"
	MoveInside = "inside"
)

var (
	// ErrMenuNotFound means the dragged or target menu is not in the list.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrMenuCycle means the move would make a menu its own ancestor.
	ErrMenuCycle = errors.New("menu cannot be moved under its own descendant")
	// ErrBadPosition means the position is not before/after/inside.
	ErrBadPosition = errors.New("invalid move position")
)

// MenuNode is one node of the navigation forest.
type MenuNode struct {
	models.Menu
	Children []*MenuNode `json:"children"`
}

// BuildTree converts a flat menu list into a forest. Each level is ordered
// by SortOrder ascending; ties keep the input order, so callers that query
// with ORDER BY sort_order, id get an id tie-break for free.
//
// A menu whose ParentID references no row at all is promoted to root (a
// dangling reference, not a business state). With activeOnly set, inactive
// menus are excluded together with their entire subtree: active children of
// an inactive parent are dropped, not promoted.
func BuildTree(items []models.Menu, activeOnly bool) []*MenuNode {
	allIDs := make(map[uint]bool, len(items))
	for _, m := range items {
		allIDs[m.ID] = true
	}

	kept := items
	if activeOnly {
		kept = make([]models.Menu, 0, len(items))
		for _, m := range items {
			if m.IsActive {
				kept = append(kept, m)
			}
		}
	}

	nodes := make(map[uint]*MenuNode, len(kept))
	for i := range kept {
		nodes[kept[i].ID] = &MenuNode{Menu: kept[i], Children: []*MenuNode{}}
	}

	var roots []*MenuNode
	for i := range kept {
		n := nodes[kept[i].ID]
		switch {
		case n.ParentID == 0 || !allIDs[n.ParentID]:
			roots = append(roots, n)
		default:
			parent, ok := nodes[n.ParentID]
			if !ok {
				// parent exists but was filtered out: drop the subtree
				continue
			}
			parent.Children = append(parent.Children, n)
		}
	}

	sortForest(roots)
	return roots
}

func sortForest(nodes []*MenuNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
	for _, n := range nodes {
		sortForest(n.Children)
	}
}

// CountNodes returns the total number of nodes in a forest.
func CountNodes(forest []*MenuNode) int {
	total := 0
	for _, n := range forest {
		total += 1 + CountNodes(n.Children)
	}
	return total
}

// DescendantIDs collects the ids of every menu below rootID.
func DescendantIDs(items []models.Menu, rootID uint) map[uint]bool {
	byParent := make(map[uint][]models.Menu)
	for _, m := range items {
		byParent[m.ParentID] = append(byParent[m.ParentID], m)
	}
	set := make(map[uint]bool)
	var dfs func(id uint)
	dfs = func(id uint) {
		for _, c := range byParent[id] {
			set[c.ID] = true
			dfs(c.ID)
		}
	}
	dfs(rootID)
	return set
}

// MenuChange is one row update produced by PlanMove.
type MenuChange struct {
	ID        uint
	ParentID  uint
	SortOrder int
}

// PlanMove computes the row updates for dragging draggedID onto targetID.
// inside appends the dragged menu as the last child of the target;
// before/after insert it among the target's siblings. Either way the new
// sibling level is renumbered so SortOrder stays a dense ascending sequence,
// and only rows whose parent or order actually change are emitted. Dragging
// a menu inside a parent it is already the last child of is a no-op.
//
// The cycle guard runs before anything else: a target inside the dragged
// menu's subtree (or the menu itself) is rejected with ErrMenuCycle and no
// changes are produced.
func PlanMove(items []models.Menu, draggedID, targetID uint, position string) ([]MenuChange, error) {
	var dragged, target *models.Menu
	for i := range items {
		switch items[i].ID {
		case draggedID:
			dragged = &items[i]
		case targetID:
			target = &items[i]
		}
	}
	if dragged == nil || target == nil {
		return nil, ErrMenuNotFound
	}
	if draggedID == targetID || DescendantIDs(items, draggedID)[targetID] {
		return nil, ErrMenuCycle
	}

	var newParent uint
	var ordered []uint

	switch position {
	case MoveInside:
		newParent = targetID

		children := make([]models.Menu, 0)
		for _, m := range items {
			if m.ParentID == targetID && m.ID != draggedID {
				children = append(children, m)
			}
		}
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].SortOrder < children[j].SortOrder
		})

		ordered = make([]uint, 0, len(children)+1)
		for _, m := range children {
			ordered = append(ordered, m.ID)
		}
		ordered = append(ordered, draggedID)

	case MoveBefore, MoveAfter:
		newParent = target.ParentID

		siblings := make([]models.Menu, 0)
		for _, m := range items {
			if m.ParentID == newParent && m.ID != draggedID {
				siblings = append(siblings, m)
			}
		}
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].SortOrder < siblings[j].SortOrder
		})

		insertAt := len(siblings)
		for i, m := range siblings {
			if m.ID == targetID {
				insertAt = i
				if position == MoveAfter {
					insertAt = i + 1
				}
				break
			}
		}

		ordered = make([]uint, 0, len(siblings)+1)
		for _, m := range siblings[:insertAt] {
			ordered = append(ordered, m.ID)
		}
		ordered = append(ordered, draggedID)
		for _, m := range siblings[insertAt:] {
			ordered = append(ordered, m.ID)
		}

	default:
		return nil, ErrBadPosition
	}

	current := make(map[uint]models.Menu, len(items))
	for _, m := range items {
		current[m.ID] = m
	}

	var changes []MenuChange
	for idx, id := range ordered {
		m := current[id]
		if m.ParentID != newParent || m.SortOrder != idx {
			changes = append(changes, MenuChange{ID: id, ParentID: newParent, SortOrder: idx})
		}
	}
	return changes, nil
}
