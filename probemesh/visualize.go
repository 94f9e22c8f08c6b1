package probemesh

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

// DebugPlot opens a live 2D chart of the mesh's edges (from CollectEdges),
// projected onto the XY plane by dropping Z. It is a debug-visualization
// helper, not a core operation: like the teacher's own chart.Plot() call
// sites, it opens a window and blocks, so it is never called from Define
// or from any test, only from callers that explicitly want to look at a
// mesh (cmd/probemesh's --plot flag).
//
// Grounded on DG2D/graphics_support2.go's PlotLinesAndText, which computes
// the same xMin/xMax/yMin/yMax bounding box over a set of line segments and
// feeds them to chart2d.NewChart2D/AddLine one segment at a time.
func (m *Mesh) DebugPlot() {
	edges := m.CollectEdges()
	if len(edges) == 0 {
		return
	}

	xMin, xMax := m.Vertices[0].X, m.Vertices[0].X
	yMin, yMax := m.Vertices[0].Y, m.Vertices[0].Y
	for _, p := range m.Vertices {
		if p.X < xMin {
			xMin = p.X
		}
		if p.X > xMax {
			xMax = p.X
		}
		if p.Y < yMin {
			yMin = p.Y
		}
		if p.Y > yMax {
			yMax = p.Y
		}
	}

	chart := chart2d.NewChart2D(xMin, xMax, yMin, yMax, 1024, 1024, utils2.WHITE, utils2.BLACK)
	black := color.RGBA{A: 255}
	for _, e := range edges {
		p1, p2 := m.Vertices[e[0]], m.Vertices[e[1]]
		chart.AddLine([]float32{p1.X, p1.Y, p2.X, p2.Y}, black)
	}

	for {
	}
}
