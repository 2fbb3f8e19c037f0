// Package dag holds the directed dependency graph between shader source
// units. Edges record which unit requires which, and the graph detects
// cycles before dependency lists are flattened.
package dag
