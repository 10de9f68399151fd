package colour

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the number of distinct colours below which the
// assignment step runs on the calling goroutine.
const parallelThreshold = 4096

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

func pointOf(c RGB) point3D {
	return point3D{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// distanceSq is the squared Euclidean distance in RGB space.
func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// less orders points by ascending R, then G, then B.
func (p point3D) less(other point3D) bool {
	if p.R != other.R {
		return p.R < other.R
	}
	if p.G != other.G {
		return p.G < other.G
	}
	return p.B < other.B
}

// rgb rounds the point to the nearest colour, ties up.
func (p point3D) rgb() RGB {
	return RGB{R: channel(p.R / 255), G: channel(p.G / 255), B: channel(p.B / 255)}
}

func sortWeighted(ws []weightedColour) {
	slices.SortFunc(ws, func(a, b weightedColour) int {
		return a.colour.compare(b.colour)
	})
}

// clustering holds the weighted points of one extraction. Points are the
// distinct colours of the image and weights their pixel counts, which gives
// the same centroids and inertia as clustering every pixel.
type clustering struct {
	points  []point3D
	weights []float64
	k       int

	maxIterations int
	epsilon       float64
	workers       int
	logger        hclog.Logger
}

// clusterResult is the outcome of one Lloyd run.
type clusterResult struct {
	centroids  []point3D
	counts     []float64
	inertia    float64
	iterations int
}

func newClustering(hist []weightedColour, k int, cfg ExtractorConfig) *clustering {
	c := &clustering{
		points:        make([]point3D, len(hist)),
		weights:       make([]float64, len(hist)),
		k:             k,
		maxIterations: cfg.MaxIterations,
		epsilon:       cfg.Epsilon,
		workers:       max(cfg.Workers, 1),
		logger:        cfg.logger(),
	}
	for i, w := range hist {
		c.points[i] = pointOf(w.colour)
		c.weights[i] = float64(w.count)
	}
	return c
}

// run clusters the points from each initialisation in inits and keeps the
// run with the lowest inertia. Ties keep the earlier run.
func (c *clustering) run(ctx context.Context, inits [][]point3D) (clusterResult, error) {
	var best clusterResult
	for r, init := range inits {
		res, err := c.lloyd(ctx, init)
		if err != nil {
			return clusterResult{}, err
		}
		c.logger.Trace("k-means run finished", "run", r, "iterations", res.iterations, "inertia", res.inertia)
		if r == 0 || res.inertia < best.inertia {
			best = res
		}
	}
	return best, nil
}

// lloyd iterates assignment and update until the total centroid movement
// drops below epsilon or the iteration cap is hit. A final assignment and
// update make every centroid the mean of the points it ends up owning.
func (c *clustering) lloyd(ctx context.Context, init []point3D) (clusterResult, error) {
	centroids := slices.Clone(init)
	assignments := make([]int, len(c.points))

	iter := 0
	for iter < c.maxIterations {
		iter++
		if err := c.assign(ctx, centroids, assignments); err != nil {
			return clusterResult{}, err
		}
		next, _ := c.update(assignments, centroids)

		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].distanceSq(next[i]))
		}
		centroids = next
		if movement < c.epsilon {
			break
		}
	}

	if err := c.assign(ctx, centroids, assignments); err != nil {
		return clusterResult{}, err
	}
	centroids, counts := c.update(assignments, centroids)

	inertia := 0.0
	for i, p := range c.points {
		inertia += c.weights[i] * p.distanceSq(centroids[assignments[i]])
	}

	return clusterResult{centroids: centroids, counts: counts, inertia: inertia, iterations: iter}, nil
}

// assign sets each point's nearest centroid. Chunks are independent, so the
// work fans out across workers; the result is identical to a serial pass.
func (c *clustering) assign(ctx context.Context, centroids []point3D, assignments []int) error {
	n := len(c.points)
	workers := c.workers
	if n < parallelThreshold {
		workers = 1
	}

	if workers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.assignRange(centroids, assignments, 0, n)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		start, end := splitRange(n, workers, w)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.assignRange(centroids, assignments, start, end)
			return nil
		})
	}
	return g.Wait()
}

func (c *clustering) assignRange(centroids []point3D, assignments []int, start, end int) {
	for i := start; i < end; i++ {
		assignments[i] = nearestCentroid(c.points[i], centroids)
	}
}

// nearestCentroid returns the index of the closest centroid. Equal
// distances go to the centroid with the lower RGB, so the outcome does not
// depend on the order the centroids were seeded in.
func nearestCentroid(p point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		d := p.distanceSq(centroid)
		if d < minDist || (d == minDist && centroid.less(centroids[nearest])) {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// update recomputes centroids as weighted means of their points. A cluster
// that lost every point keeps its previous position and a zero count.
func (c *clustering) update(assignments []int, previous []point3D) ([]point3D, []float64) {
	k := len(previous)
	sums := make([]point3D, k)
	counts := make([]float64, k)

	for i, p := range c.points {
		cl := assignments[i]
		w := c.weights[i]
		sums[cl].R += p.R * w
		sums[cl].G += p.G * w
		sums[cl].B += p.B * w
		counts[cl] += w
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		centroids[i] = point3D{
			R: sums[i].R / counts[i],
			G: sums[i].G / counts[i],
			B: sums[i].B / counts[i],
		}
	}
	return centroids, counts
}

// byPopulation returns point indices ordered by descending weight, ties by
// ascending colour. Points are already in ascending colour order.
func (c *clustering) byPopulation() []int {
	idx := make([]int, len(c.points))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case c.weights[a] > c.weights[b]:
			return -1
		case c.weights[a] < c.weights[b]:
			return 1
		default:
			return 0
		}
	})
	return idx
}

// maximinInits builds one initialisation per restart. Restart r starts from
// the r-th most populous colour, then repeatedly takes the colour farthest
// from every centroid chosen so far (ties: more pixels, then lower RGB).
func (c *clustering) maximinInits(restarts int) [][]point3D {
	order := c.byPopulation()
	restarts = min(restarts, len(order))

	inits := make([][]point3D, 0, restarts)
	for r := range restarts {
		inits = append(inits, c.maximinFrom(order[r], order))
	}
	return inits
}

func (c *clustering) maximinFrom(first int, order []int) []point3D {
	centroids := []point3D{c.points[first]}
	nearest := make([]float64, len(c.points))
	for i, p := range c.points {
		nearest[i] = p.distanceSq(c.points[first])
	}

	for len(centroids) < c.k {
		pick := -1
		for _, i := range order {
			if nearest[i] == 0 {
				continue
			}
			if pick == -1 || nearest[i] > nearest[pick] {
				pick = i
			}
		}
		if pick == -1 {
			break
		}
		centroids = append(centroids, c.points[pick])
		for i, p := range c.points {
			nearest[i] = min(nearest[i], p.distanceSq(c.points[pick]))
		}
	}
	return centroids
}

// kmeansPlusPlusInits builds one k-means++ initialisation per restart, each
// driven by its own PCG stream derived from seed. The first restart starts
// from the most populous colour, as maximin does; later ones sample it.
func (c *clustering) kmeansPlusPlusInits(restarts int, seed uint64) [][]point3D {
	order := c.byPopulation()
	inits := make([][]point3D, 0, restarts)
	for r := range restarts {
		rng := rand.New(rand.NewPCG(seed, seed+uint64(r)+1)) // #nosec G404 -- deterministic clustering, not security
		first := -1
		if r == 0 {
			first = order[0]
		}
		inits = append(inits, c.kmeansPlusPlus(rng, first))
	}
	return inits
}

// kmeansPlusPlus starts from point first, or when first is negative picks
// it with probability proportional to pixel count. Each further centroid is
// drawn proportional to count times squared distance to the nearest
// centroid already chosen.
func (c *clustering) kmeansPlusPlus(rng *rand.Rand, first int) []point3D {
	if first < 0 {
		first = c.sample(rng, c.weights)
	}
	centroids := make([]point3D, 0, c.k)
	centroids = append(centroids, c.points[first])

	dist := make([]float64, len(c.points))
	for len(centroids) < c.k {
		last := centroids[len(centroids)-1]
		for i, p := range c.points {
			d := c.weights[i] * p.distanceSq(last)
			if len(centroids) == 1 || d < dist[i] {
				dist[i] = d
			}
		}
		pick := c.sample(rng, dist)
		if pick < 0 {
			break
		}
		centroids = append(centroids, c.points[pick])
	}
	return centroids
}

// sample draws an index with probability proportional to weights, or -1
// when every weight is zero.
func (c *clustering) sample(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return -1
	}
	target := rng.Float64() * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cumulative += w
		last = i
		if cumulative > target {
			return i
		}
	}
	return last
}

// splitRange returns the half-open range of items handled by one worker.
func splitRange(length, workers, worker int) (int, int) {
	chunk := length / workers
	rem := length % workers
	start := worker*chunk + min(worker, rem)
	end := start + chunk
	if worker < rem {
		end++
	}
	return start, end
}
