package dag

import (
	"strings"
	"sync"
)

// Graph is a collection of nodes and their dependencies. Nodes and edges keep
// their insertion order so that traversals are deterministic.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects nodes and order during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order lists node IDs in the order they were added.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// deps holds the nodes that this node depends on (predecessors).
	deps edgeList
	// dependents holds the nodes that depend on this node (successors).
	dependents edgeList
}

// edgeList is an insertion-ordered set of neighbours.
type edgeList struct {
	ids   []string
	nodes map[string]*node
}

func newEdgeList() edgeList {
	return edgeList{nodes: make(map[string]*node)}
}

func (l *edgeList) add(n *node) bool {
	if _, ok := l.nodes[n.id]; ok {
		return false
	}
	l.nodes[n.id] = n
	l.ids = append(l.ids, n.id)
	return true
}

func (l *edgeList) remove(id string) bool {
	if _, ok := l.nodes[id]; !ok {
		return false
	}
	delete(l.nodes, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
	return true
}

// CycleError reports a dependency cycle. Path follows dependent edges and
// starts and ends with the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}

// ClosingEdge returns the edge that completed the cycle as (from, to), where
// to depends on from.
func (e *CycleError) ClosingEdge() (from, to string) {
	n := len(e.Path)
	if n < 2 {
		return "", ""
	}
	return e.Path[n-2], e.Path[n-1]
}
