package ticket

import (
	"iter"
	"sort"
)

// ThreadNode is a comment annotated with its depth in the thread tree.
type ThreadNode struct {
	Comment *Comment
	Depth   int
}

// Thread is the materialized comment tree of a ticket. Comments are stored
// append-only with immutable parent back-references, so building the tree
// never encounters a cycle.
type Thread struct {
	roots    []*Comment
	children map[uint][]*Comment
}

// BuildThread assembles the thread tree from a ticket's comments. Siblings
// are ordered by createdAt with an id tie-break, which matches insertion
// order because parents always pre-exist their children.
func BuildThread(comments []*Comment) *Thread {
	t := &Thread{
		children: make(map[uint][]*Comment),
	}

	byID := make(map[uint]*Comment, len(comments))
	for _, c := range comments {
		byID[c.ID()] = c
	}

	for _, c := range comments {
		parentID := c.ParentID()
		if parentID == nil || byID[*parentID] == nil {
			t.roots = append(t.roots, c)
			continue
		}
		t.children[*parentID] = append(t.children[*parentID], c)
	}

	sortSiblings(t.roots)
	for _, siblings := range t.children {
		sortSiblings(siblings)
	}

	return t
}

func sortSiblings(comments []*Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt().Equal(comments[j].CreatedAt()) {
			return comments[i].ID() < comments[j].ID()
		}
		return comments[i].CreatedAt().Before(comments[j].CreatedAt())
	})
}

// Walk returns a lazy, restartable depth-first traversal of the thread
// filtered by the viewer's internal-note visibility. Each iteration over
// the returned sequence starts from the first root again.
//
// Replies inherit the internal flag from their parent at creation time, so
// filtering a node never orphans a visible descendant.
func (t *Thread) Walk(viewerIsStaff bool) iter.Seq[ThreadNode] {
	return func(yield func(ThreadNode) bool) {
		for _, root := range t.roots {
			if !t.walk(root, 0, viewerIsStaff, yield) {
				return
			}
		}
	}
}

func (t *Thread) walk(c *Comment, depth int, viewerIsStaff bool, yield func(ThreadNode) bool) bool {
	if !c.VisibleTo(viewerIsStaff) {
		return true
	}
	if !yield(ThreadNode{Comment: c, Depth: depth}) {
		return false
	}
	for _, child := range t.children[c.ID()] {
		if !t.walk(child, depth+1, viewerIsStaff, yield) {
			return false
		}
	}
	return true
}

// Size returns the number of comments in the thread, deleted ones included.
func (t *Thread) Size() int {
	n := len(t.roots)
	for _, siblings := range t.children {
		n += len(siblings)
	}
	return n
}
