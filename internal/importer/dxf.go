package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RackPlan/internal/model"
)

// chainTolerance is the maximum endpoint distance for LINE chaining, in
// drawing units.
const chainTolerance = 0.01

// rectangularity below which a footprint is reported as irregular.
const minRectangularity = 0.98

// point is a 2D drawing coordinate.
type point struct {
	X, Y float64
}

// polygon is a closed outline; the closing edge is implied.
type polygon []point

// segment is a single LINE between two points, used for chaining loose
// lines into closed outlines.
type segment struct {
	start point
	end   point
}

// Footprint is the warehouse outline found in a DXF drawing, in feet.
type Footprint struct {
	Length   float64 // bounding box extent along X
	Width    float64 // bounding box extent along Y
	Area     float64 // enclosed area of the outline
	Vertices int
}

// Rectangularity is the ratio of enclosed area to bounding box area.
func (f Footprint) Rectangularity() float64 {
	box := f.Length * f.Width
	if box <= 0 {
		return 0
	}
	return f.Area / box
}

// Apply copies the footprint dimensions into cfg.
func (f Footprint) Apply(cfg *model.Config) {
	cfg.Length = f.Length
	cfg.Width = f.Width
	cfg.Area = f.Area
}

// FootprintResult holds the outcome of a footprint import.
type FootprintResult struct {
	Footprint Footprint
	Found     bool
	Errors    []string
	Warnings  []string
}

// ImportFootprint reads the largest closed outline (LWPOLYLINE or chain of
// LINEs) from a DXF file. unitScale converts drawing units to feet; 0 means
// the drawing is already in feet.
func ImportFootprint(path string, unitScale float64) FootprintResult {
	result := FootprintResult{}
	if unitScale <= 0 {
		unitScale = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []polygon
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToPolygon(e)
			if len(outline) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			if hasBulge(e) {
				result.Warnings = append(result.Warnings, "LWPOLYLINE arcs approximated by straight edges")
			}
			outlines = append(outlines, outline)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Other entity types do not describe a floor outline
		}
	}
	outlines = append(outlines, chainSegments(segments, chainTolerance)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed outline found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].area() > outlines[j].area()
	})
	largest := outlines[0]
	min, max := largest.bounds()

	fp := Footprint{
		Length:   (max.X - min.X) * unitScale,
		Width:    (max.Y - min.Y) * unitScale,
		Area:     largest.area() * unitScale * unitScale,
		Vertices: len(largest),
	}
	if fp.Length < chainTolerance || fp.Width < chainTolerance {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Outline is degenerate (%.2f x %.2f ft)", fp.Length, fp.Width))
		return result
	}

	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d outlines, using the largest", len(outlines)))
	}
	if fp.Rectangularity() < minRectangularity {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Footprint is not rectangular (%.0f%% of its bounding box); capacity uses the bounding box dimensions",
				fp.Rectangularity()*100))
	}

	result.Footprint = fp
	result.Found = true
	return result
}

func lwPolylineToPolygon(lw *entity.LwPolyline) polygon {
	outline := make(polygon, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		outline = append(outline, point{X: v[0], Y: v[1]})
	}
	if n := len(outline); n > 3 && pointsClose(outline[0], outline[n-1], chainTolerance) {
		outline = outline[:n-1]
	}
	return outline
}

func hasBulge(lw *entity.LwPolyline) bool {
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

// chainSegments connects loose segments into closed outlines. Open chains
// are dropped.
func chainSegments(segs []segment, tolerance float64) []polygon {
	used := make([]bool, len(segs))
	var outlines []polygon

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := polygon{segs[start].start, segs[start].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			if len(chain) >= 4 && pointsClose(chain[0], tail, tolerance) {
				break
			}
			for i, seg := range segs {
				if used[i] {
					continue
				}
				var next point
				switch {
				case pointsClose(tail, seg.start, tolerance):
					next = seg.end
				case pointsClose(tail, seg.end, tolerance):
					next = seg.start
				default:
					continue
				}
				chain = append(chain, next)
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}
	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// area is the absolute enclosed area by the shoelace formula.
func (p polygon) area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return math.Abs(sum) / 2
}

func (p polygon) bounds() (min, max point) {
	if len(p) == 0 {
		return point{}, point{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return min, max
}
