// Package dag provides a small directed acyclic graph whose nodes sit on a
// row/column grid.
//
// # Overview
//
// After traceback, the surviving backlinks of an alignment matrix form a DAG:
// one node per cell on an optimal path and one edge per backlink, pointing
// from a cell to the neighbour it came from. Every path from the bottom-right
// source to a sink spells one optimal alignment. The graph is what the
// node-link renderer draws.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "1,1", Row: 1, Col: 1, Kind: dag.NodeKindStart})
//	g.AddNode(dag.Node{ID: "0,0", Row: 0, Col: 0, Kind: dag.NodeKindEnd})
//	g.AddEdge(dag.Edge{From: "1,1", To: "0,0", Label: "diagonal"})
//
// Query the graph with [DAG.Children], [DAG.Parents], [DAG.Sources] and
// [DAG.Sinks]. [DAG.PathCount] counts source-to-sink paths. [DAG.Validate]
// checks that every edge steps to an adjacent cell toward the origin, which
// rules out cycles as well.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
