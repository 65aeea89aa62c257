package routegen

import (
	"fmt"
	"math"

	"github.com/ColinToft/OutAndBack/internal/util/errors"
	"github.com/ColinToft/OutAndBack/internal/util/geo"
	"github.com/bgadrian/data-structures/priorityqueue"
)

const (
	// TightTolerance and LooseTolerance are the allowed relative deviations
	// from the target leg distance, tried in that order.
	TightTolerance = 0.05
	LooseTolerance = 0.30

	// MinTurnaroundKm keeps turnaround points from collapsing onto the origin.
	MinTurnaroundKm = 0.3

	// SectorCount is the number of compass sectors candidates are spread over.
	SectorCount = 8

	// farthestQueueMeters bounds the fallback queue's priorities.
	// Points farther than this all share the top priority.
	farthestQueueMeters = 100000
)

// Tier tells which filter produced the chosen turnaround point.
type Tier int

const (
	TierTight Tier = iota
	TierLoose
	TierFarthest
)

func (t Tier) String() string {
	switch t {
	case TierTight:
		return "tight"
	case TierLoose:
		return "loose"
	case TierFarthest:
		return "farthest"
	}
	return "unknown"
}

// A TurnaroundCandidate is a reachable boundary point considered as the far end of a route.
type TurnaroundCandidate struct {
	Point      geo.Coordinate
	DistanceKm float64
	Sector     int
}

// Rand is the part of *math/rand.Rand the selector needs.
type Rand interface {
	Intn(n int) int
}

func newCandidates(points []geo.Coordinate, origin geo.Coordinate) []TurnaroundCandidate {
	candidates := make([]TurnaroundCandidate, len(points))
	for i, p := range points {
		candidates[i] = TurnaroundCandidate{
			Point:      p,
			DistanceKm: geo.DistanceKm(origin, p),
			Sector:     geo.Sector(origin, p, SectorCount),
		}
	}
	return candidates
}

// filterCandidates keeps the candidates within tolerance of targetLegKm that are
// at least MinTurnaroundKm from the origin.
func filterCandidates(all []TurnaroundCandidate, targetLegKm, tolerance float64) []TurnaroundCandidate {
	minDist := targetLegKm * (1 - tolerance)
	maxDist := targetLegKm * (1 + tolerance)

	var kept []TurnaroundCandidate
	for _, c := range all {
		if c.DistanceKm >= MinTurnaroundKm && c.DistanceKm >= minDist && c.DistanceKm <= maxDist {
			kept = append(kept, c)
		}
	}
	return kept
}

// farthestPriority orders candidates by whole metres, the farthest first.
func farthestPriority(c TurnaroundCandidate) int {
	m := int(math.Round(c.DistanceKm * 1000))
	if m > farthestQueueMeters-1 {
		m = farthestQueueMeters - 1
	}
	return farthestQueueMeters - 1 - m
}

// farthest returns the candidate furthest from the origin, the first one on ties.
func farthest(all []TurnaroundCandidate) (TurnaroundCandidate, error) {
	queue, err := priorityqueue.NewHierarchicalHeap(100, 0, farthestQueueMeters, false)
	if err != nil {
		return TurnaroundCandidate{}, fmt.Errorf("farthest point queue: %w", err)
	}
	for i, c := range all {
		queue.Enqueue(i, farthestPriority(c))
	}

	v, err := queue.Dequeue()
	if err != nil {
		return TurnaroundCandidate{}, fmt.Errorf("farthest point queue: %w", err)
	}
	best := v.(int)
	top := farthestPriority(all[best])

	// Equal priorities come out in no fixed order
	for n := 1; n < len(all); n++ {
		v, err := queue.Dequeue()
		if err != nil {
			break
		}
		i := v.(int)
		if farthestPriority(all[i]) != top {
			break
		}
		if i < best {
			best = i
		}
	}
	return all[best], nil
}

// pickDirectional picks a non-empty sector uniformly, then a candidate within it uniformly.
func pickDirectional(candidates []TurnaroundCandidate, rng Rand) TurnaroundCandidate {
	var sectors [SectorCount][]TurnaroundCandidate
	for _, c := range candidates {
		sectors[c.Sector] = append(sectors[c.Sector], c)
	}

	// Ascending sector order, so a seed always gives the same choice
	available := make([]int, 0, SectorCount)
	for s := range sectors {
		if len(sectors[s]) > 0 {
			available = append(available, s)
		}
	}

	chosen := sectors[available[rng.Intn(len(available))]]
	return chosen[rng.Intn(len(chosen))]
}

// SelectTurnaround chooses the far end of an out-and-back route.
// Points within TightTolerance of targetLegKm are preferred, then points within
// LooseTolerance, and if neither exists the farthest reachable point is used.
func SelectTurnaround(points []geo.Coordinate, origin geo.Coordinate, targetLegKm float64, rng Rand) (TurnaroundCandidate, Tier, error) {
	if len(points) == 0 {
		return TurnaroundCandidate{}, TierFarthest, errors.NoReachable("no reachable points to choose a turnaround from")
	}

	all := newCandidates(points, origin)

	if tight := filterCandidates(all, targetLegKm, TightTolerance); len(tight) > 0 {
		return pickDirectional(tight, rng), TierTight, nil
	}
	if loose := filterCandidates(all, targetLegKm, LooseTolerance); len(loose) > 0 {
		return pickDirectional(loose, rng), TierLoose, nil
	}

	c, err := farthest(all)
	if err != nil {
		return TurnaroundCandidate{}, TierFarthest, err
	}
	return c, TierFarthest, nil
}
