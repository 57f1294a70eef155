package graph

import (
	"container/heap"
	"fmt"

	"github.com/paulmach/osm"
)

// Step is one node of a routed path together with the street label of the
// edge traversed to reach it. The first step of a path has no street.
type Step struct {
	Node   osm.NodeID
	Street string
}

// ShortestPath runs Dijkstra from src to dst over non-negative edge weights
// and returns the node sequence including both endpoints. When multiple
// shortest paths exist the one discovered first by relaxation order wins.
func (g *Graph) ShortestPath(src, dst osm.NodeID) ([]Step, error) {
	if _, ok := g.Adj[src]; !ok {
		return nil, fmt.Errorf("node %d is not connected", src)
	}

	dist := map[osm.NodeID]float64{src: 0}
	prev := map[osm.NodeID]Edge{}
	settled := map[osm.NodeID]bool{}

	pq := &nodeQueue{{node: src, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		if settled[item.node] {
			continue
		}
		settled[item.node] = true
		if item.node == dst {
			break
		}
		for _, e := range g.Adj[item.node] {
			alt := dist[item.node] + e.Meters
			if old, seen := dist[e.To]; !seen || alt < old {
				dist[e.To] = alt
				prev[e.To] = e
				heap.Push(pq, &queueItem{node: e.To, dist: alt})
			}
		}
	}

	if !settled[dst] {
		return nil, fmt.Errorf("no path from %d to %d", src, dst)
	}

	var path []Step
	for at := dst; ; {
		e, ok := prev[at]
		if !ok {
			path = append(path, Step{Node: at})
			break
		}
		path = append(path, Step{Node: at, Street: e.Street})
		at = e.From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

type queueItem struct {
	node osm.NodeID
	dist float64
}

type nodeQueue []*queueItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*queueItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
