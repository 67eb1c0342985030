package graph

import (
	"context"
	"math"
	"math/rand/v2"
)

const (
	Width  = 800.0
	Height = 600.0

	kRepulse = 3000.0
	kSpring  = 0.05
	kCenter  = 0.02
	damping  = 0.85
	margin   = 20.0

	restStructural  = 100.0
	restCorrelation = 150.0
	scatter         = 200.0
)

// Layout runs the force simulation over a graph's nodes.
type Layout struct {
	Graph
	index  map[string]int
	pinned string
	energy float64
}

// NewLayout scatters the nodes within 100 units of the canvas center.
// rng may be nil for a randomly seeded source.
func NewLayout(g Graph, rng *rand.Rand) *Layout {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	l := &Layout{Graph: Graph{Nodes: make([]Node, len(g.Nodes)), Links: g.Links}, index: map[string]int{}}
	for i, n := range g.Nodes {
		n.X = Width/2 + (rng.Float64()-0.5)*scatter
		n.Y = Height/2 + (rng.Float64()-0.5)*scatter
		n.VX, n.VY = 0, 0
		l.Nodes[i] = n
		l.index[n.ID] = i
	}
	return l
}

// Pin holds a node at (x, y) with zero velocity, as while it is dragged.
// An unknown id is ignored.
func (l *Layout) Pin(id string, x, y float64) {
	i, ok := l.index[id]
	if !ok {
		return
	}
	l.pinned = id
	l.Nodes[i].X, l.Nodes[i].Y = x, y
	l.Nodes[i].VX, l.Nodes[i].VY = 0, 0
}

// Release lets the pinned node move again.
func (l *Layout) Release() { l.pinned = "" }

// Energy is the total distance nodes moved during the last Step.
func (l *Layout) Energy() float64 { return l.energy }

// Step advances the simulation by one tick.
func (l *Layout) Step() {
	nodes := l.Nodes

	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			dx := nodes[i].X - nodes[j].X
			dy := nodes[i].Y - nodes[j].Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist == 0 {
				dist = 1
			}
			force := kRepulse / (dist * dist)
			fx, fy := dx/dist*force, dy/dist*force
			nodes[i].VX += fx
			nodes[i].VY += fy
			nodes[j].VX -= fx
			nodes[j].VY -= fy
		}
	}

	for _, link := range l.Links {
		si, ok1 := l.index[link.Source]
		ti, ok2 := l.index[link.Target]
		if !ok1 || !ok2 {
			continue
		}
		src, dst := &nodes[si], &nodes[ti]
		dx := dst.X - src.X
		dy := dst.Y - src.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist == 0 {
			dist = 1
		}
		rest := restCorrelation
		if link.Type == LinkStructural {
			rest = restStructural
		}
		force := (dist - rest) * kSpring
		fx, fy := dx/dist*force, dy/dist*force
		src.VX += fx
		src.VY += fy
		dst.VX -= fx
		dst.VY -= fy
	}

	l.energy = 0
	for i := range nodes {
		n := &nodes[i]
		if n.ID == l.pinned {
			n.VX, n.VY = 0, 0
			continue
		}
		x0, y0 := n.X, n.Y

		n.VX += (Width/2 - n.X) * kCenter
		n.VY += (Height/2 - n.Y) * kCenter
		n.X += n.VX
		n.Y += n.VY
		n.VX *= damping
		n.VY *= damping
		n.X = math.Max(margin, math.Min(Width-margin, n.X))
		n.Y = math.Max(margin, math.Min(Height-margin, n.Y))

		l.energy += math.Hypot(n.X-x0, n.Y-y0)
	}
}

// Run steps up to n times, stopping early when ctx is cancelled. It returns
// the number of steps taken.
func (l *Layout) Run(ctx context.Context, n int) (int, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		l.Step()
	}
	return n, nil
}
