package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// Role represents the semantic role of a palette colour.
type Role string

const (
	RoleDominant    Role = "dominant"
	RoleSupporting  Role = "supporting"
	RoleAccent      Role = "accent"
	RoleNeutral     Role = "neutral"
	RoleOutlier     Role = "outlier"
	RoleHighlight   Role = "highlight"
	RoleShadow      Role = "shadow"
	RoleMidtone     Role = "midtone"
	RoleContrasting Role = "contrasting"
	RolePrimary     Role = "primary"
	RoleSecondary   Role = "secondary"
	RoleTertiary    Role = "tertiary"
)

// AllRoles returns every role in assignment order.
func AllRoles() []Role {
	return []Role{
		RoleDominant, RoleSupporting, RoleAccent, RoleNeutral, RoleOutlier,
		RoleHighlight, RoleShadow, RoleMidtone, RoleContrasting,
		RolePrimary, RoleSecondary, RoleTertiary,
	}
}

// Roles maps each assigned role to a palette colour.
type Roles map[Role]RGB

// Ordered returns the assigned roles in AllRoles order.
func (r Roles) Ordered() []Role {
	out := make([]Role, 0, len(r))
	for _, role := range AllRoles() {
		if _, ok := r[role]; ok {
			out = append(out, role)
		}
	}
	return out
}

// hsv is a swatch viewed in HSV, hue as a fraction of the wheel.
type hsv struct {
	h, s, v float64
}

func hsvOf(c RGB) hsv {
	cf, _ := colorful.MakeColor(c)
	h, s, v := cf.Hsv()
	return hsv{h: h / 360, s: s, v: v}
}

// hueDistance is the circular distance between hue fractions, in [0, 0.5].
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1-d)
}

// conicalDistance places HSV on a cone (saturation as radius, value as
// height) and measures the straight-line distance.
func conicalDistance(a, b hsv) float64 {
	ax, ay := a.s*math.Cos(a.h*2*math.Pi), a.s*math.Sin(a.h*2*math.Pi)
	bx, by := b.s*math.Cos(b.h*2*math.Pi), b.s*math.Sin(b.h*2*math.Pi)
	return math.Sqrt((ax-bx)*(ax-bx) + (ay-by)*(ay-by) + (a.v-b.v)*(a.v-b.v))
}

// rgbDistance is the Euclidean RGB distance normalised to [0, 1].
func rgbDistance(a, b RGB) float64 {
	return math.Sqrt(pointOf(a).distanceSq(pointOf(b))) / math.Sqrt(3*255*255)
}

// normalise rescales scores to [0, 1]; equal scores all become 0.
func normalise(scores []float64) []float64 {
	lo, hi := floats.Min(scores), floats.Max(scores)
	out := make([]float64, len(scores))
	if hi == lo {
		return out
	}
	for i, s := range scores {
		out[i] = (s - lo) / (hi - lo)
	}
	return out
}

// roleScorer scores one swatch for a role.
type roleScorer func(i int) float64

// AssignRoles picks a palette colour for each role. Each score is
// normalised and halved for swatches that already hold a role, so roles
// spread across the palette where possible. Primary, secondary and tertiary
// need at least three swatches and are omitted otherwise.
func AssignRoles(p *Palette) (Roles, error) {
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("%w: palette is empty", ErrInvalidArgument)
	}

	colours := p.Colours()
	views := make([]hsv, len(colours))
	for i, c := range colours {
		views[i] = hsvOf(c)
	}

	roles := make(Roles, len(AllRoles()))
	assigned := make(map[int]bool)

	// Swatches are ordered by weight, so the first two are the largest.
	dominant := 0
	roles[RoleDominant] = colours[dominant]
	assigned[dominant] = true
	supporting := min(1, len(colours)-1)
	roles[RoleSupporting] = colours[supporting]
	assigned[supporting] = true

	scored := []struct {
		role  Role
		score roleScorer
	}{
		{RoleAccent, func(i int) float64 { return views[i].s }},
		{RoleNeutral, func(i int) float64 { return 1 - views[i].s }},
		{RoleOutlier, func(i int) float64 {
			if len(views) < 2 {
				return 0
			}
			total := 0.0
			for j := range views {
				if j != i {
					total += conicalDistance(views[i], views[j])
				}
			}
			return total / float64(len(views)-1)
		}},
		{RoleHighlight, func(i int) float64 { return views[i].s * views[i].v }},
		{RoleShadow, func(i int) float64 { return 1 - views[i].v }},
		{RoleMidtone, func(i int) float64 { return 1 - math.Abs(views[i].v-0.5) }},
		{RoleContrasting, func(i int) float64 {
			return hueDistance(views[i].h, views[dominant].h) + math.Abs(views[i].v-views[dominant].v)
		}},
	}

	for _, sc := range scored {
		scores := make([]float64, len(colours))
		for i := range colours {
			scores[i] = sc.score(i)
		}
		scores = normalise(scores)
		for i := range scores {
			if assigned[i] {
				scores[i] *= 0.5
			}
		}
		idx := floats.MaxIdx(scores)
		roles[sc.role] = colours[idx]
		assigned[idx] = true
	}

	if triple, ok := primaries(colours, views); ok {
		roles[RolePrimary] = colours[triple[0]]
		roles[RoleSecondary] = colours[triple[1]]
		roles[RoleTertiary] = colours[triple[2]]
	}
	return roles, nil
}

// primaries picks the three swatches that best work together as a scheme:
// saturated, spread around the wheel and apart in RGB. The result is in
// palette (weight) order.
func primaries(colours []RGB, views []hsv) ([3]int, bool) {
	n := len(colours)
	if n < 3 {
		return [3]int{}, false
	}

	best := [3]int{}
	bestScore := math.Inf(-1)
	for a := 0; a < n-2; a++ {
		for b := a + 1; b < n-1; b++ {
			for c := b + 1; c < n; c++ {
				combo := [3]int{a, b, c}
				if s := scoreCombo(combo, colours, views); s > bestScore {
					best, bestScore = combo, s
				}
			}
		}
	}
	return best, true
}

func scoreCombo(combo [3]int, colours []RGB, views []hsv) float64 {
	var satSum, hueDist, rgbDist, grey float64
	for i, idx := range combo {
		next := combo[(i+1)%len(combo)]
		satSum += views[idx].s
		hueDist += hueDistance(views[idx].h, views[next].h)
		rgbDist += rgbDistance(colours[idx], colours[next])
		grey += (1 - views[idx].s) * (1 - views[idx].s)
	}
	return satSum/float64(len(combo)) + 0.5*hueDist + 0.5*rgbDist - 0.5*grey
}
