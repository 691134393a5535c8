package service

import (
	"testing"

	"greencampus/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menu(id, parent uint, sortOrder int, active bool) models.Menu {
	return models.Menu{ID: id, ParentID: parent, SortOrder: sortOrder, IsActive: active}
}

func TestBuildTree_PreservesNodeCount(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 1, 0, true),
		menu(3, 1, 1, true),
		menu(4, 3, 0, true),
		menu(5, 0, 1, true),
	}
	forest := BuildTree(items, false)
	assert.Equal(t, len(items), CountNodes(forest))
	assert.Len(t, forest, 2)
}

func TestBuildTree_SortsEachLevel(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 2, true),
		menu(2, 0, 0, true),
		menu(3, 0, 1, true),
		menu(4, 2, 1, true),
		menu(5, 2, 0, true),
	}
	forest := BuildTree(items, false)
	require.Len(t, forest, 3)
	assert.Equal(t, uint(2), forest[0].ID)
	assert.Equal(t, uint(3), forest[1].ID)
	assert.Equal(t, uint(1), forest[2].ID)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, uint(5), forest[0].Children[0].ID)
	assert.Equal(t, uint(4), forest[0].Children[1].ID)
}

func TestBuildTree_DanglingParentPromotedToRoot(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 999, 0, true), // parent row does not exist
	}
	forest := BuildTree(items, false)
	assert.Len(t, forest, 2)
	assert.Equal(t, 2, CountNodes(forest))
}

func TestBuildTree_ActiveOnlyDropsInactiveSubtree(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 0, 1, false), // inactive parent
		menu(3, 2, 0, true),  // active child of inactive parent
		menu(4, 1, 0, true),
	}
	forest := BuildTree(items, true)
	require.Len(t, forest, 1)
	assert.Equal(t, uint(1), forest[0].ID)
	// child 3 is not promoted, it disappears with its parent
	assert.Equal(t, 2, CountNodes(forest))
}

func TestBuildTree_Idempotent(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 1, true),
		menu(2, 0, 0, true),
		menu(3, 2, 0, true),
	}
	first := BuildTree(items, false)
	second := BuildTree(items, false)
	require.Equal(t, CountNodes(first), CountNodes(second))
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
}

func TestDescendantIDs(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 1, 0, true),
		menu(3, 2, 0, true),
		menu(4, 0, 1, true),
	}
	set := DescendantIDs(items, 1)
	assert.True(t, set[2])
	assert.True(t, set[3])
	assert.False(t, set[1])
	assert.False(t, set[4])
	assert.Empty(t, DescendantIDs(items, 3))
}

func TestPlanMove_Inside(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 1, 0, true),
		menu(3, 0, 1, true),
	}
	changes, err := PlanMove(items, 3, 1, MoveInside)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, MenuChange{ID: 3, ParentID: 1, SortOrder: 1}, changes[0])
}

func TestPlanMove_InsideOwnParentRenumbersDensely(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 1, 0, true),
		menu(3, 1, 1, true),
	}
	// drag 2 inside its own parent: it moves behind 3, and the level keeps
	// a dense 0,1 sequence instead of two children sharing an order
	changes, err := PlanMove(items, 2, 1, MoveInside)
	require.NoError(t, err)

	byID := make(map[uint]MenuChange)
	for _, ch := range changes {
		byID[ch.ID] = ch
	}
	require.Len(t, changes, 2)
	assert.Equal(t, MenuChange{ID: 3, ParentID: 1, SortOrder: 0}, byID[3])
	assert.Equal(t, MenuChange{ID: 2, ParentID: 1, SortOrder: 1}, byID[2])
}

func TestPlanMove_InsideAlreadyLastChildIsNoop(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 1, 0, true),
		menu(3, 1, 1, true),
	}
	changes, err := PlanMove(items, 3, 1, MoveInside)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPlanMove_BeforeRenumbersSiblings(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 0, 1, true),
		menu(3, 0, 2, true),
	}
	// drag 3 before 1: expected order 3, 1, 2
	changes, err := PlanMove(items, 3, 1, MoveBefore)
	require.NoError(t, err)

	byID := make(map[uint]MenuChange)
	for _, ch := range changes {
		byID[ch.ID] = ch
	}
	assert.Equal(t, 0, byID[3].SortOrder)
	assert.Equal(t, 1, byID[1].SortOrder)
	assert.Equal(t, 2, byID[2].SortOrder)
}

func TestPlanMove_AfterEmitsOnlyChangedRows(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 0, 1, true),
		menu(3, 0, 2, true),
	}
	// drag 3 after 2 keeps the order; only rows that change are emitted
	changes, err := PlanMove(items, 3, 2, MoveAfter)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPlanMove_ReparentAcrossLevels(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 1, 0, true),
		menu(3, 0, 1, true),
	}
	// drag 3 before 2: becomes first child of 1
	changes, err := PlanMove(items, 3, 2, MoveBefore)
	require.NoError(t, err)

	byID := make(map[uint]MenuChange)
	for _, ch := range changes {
		byID[ch.ID] = ch
	}
	assert.Equal(t, uint(1), byID[3].ParentID)
	assert.Equal(t, 0, byID[3].SortOrder)
	assert.Equal(t, 1, byID[2].SortOrder)
}

func TestPlanMove_RejectsCycle(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 1, 0, true),
		menu(3, 2, 0, true),
	}
	_, err := PlanMove(items, 1, 3, MoveInside)
	assert.ErrorIs(t, err, ErrMenuCycle)

	_, err = PlanMove(items, 1, 1, MoveInside)
	assert.ErrorIs(t, err, ErrMenuCycle)
}

func TestPlanMove_UnknownMenu(t *testing.T) {
	items := []models.Menu{menu(1, 0, 0, true)}
	_, err := PlanMove(items, 99, 1, MoveInside)
	assert.ErrorIs(t, err, ErrMenuNotFound)
	_, err = PlanMove(items, 1, 99, MoveInside)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestPlanMove_BadPosition(t *testing.T) {
	items := []models.Menu{
		menu(1, 0, 0, true),
		menu(2, 0, 1, true),
	}
	_, err := PlanMove(items, 1, 2, "sideways")
	assert.ErrorIs(t, err, ErrBadPosition)
}
