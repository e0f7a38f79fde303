package diagram

import (
	"math"
	"testing"

	"github.com/orthogram/orthogram/pkg/optimize"
	"github.com/orthogram/orthogram/pkg/refine"
	"github.com/orthogram/orthogram/pkg/size"
)

// TestRowYSpacesParallelSlotsAtLeastConnectionDistanceApart exercises the
// channel interpolation directly: three connections share row 0's south
// channel side (the band between its inner-bottom and row 1's outer-top),
// reserved by the sizer to size.chargeChannel's formula. Every pair of
// adjacent slots must end up at least connectionDistance apart, and none
// may fall outside the reserved band.
func TestRowYSpacesParallelSlotsAtLeastConnectionDistanceApart(t *testing.T) {
	const connectionDistance = 10.0
	const total = 3

	sized := size.Result{
		RowLines: []float64{
			0, 0, 100, // row 0: outer-top, inner-top, inner-bottom
			130, 130, 230, // row 1: outer-top(=south channel end), inner-top, inner-bottom
			260,
		},
	}

	axis := optimize.Axis{Horizontal: true, Row: 0, RowSub: 1}
	var segs []optimize.Segment
	for slot := 0; slot < total; slot++ {
		segs = append(segs, optimize.Segment{
			Axis:        axis,
			Begin:       0,
			End:         0,
			Connections: []int{slot},
			OffsetSlot:  slot,
		})
	}
	bySAxis := map[optimize.Axis][]optimize.Segment{axis: segs}
	rowSlots := buildChannelSlots(bySAxis, true, 0)

	geo := newGeometry(sized, bySAxis, rowSlots, channelSlots{}, 0)

	innerBottom := sized.RowLines[2]
	outerBottom := sized.RowLines[3]

	ys := make([]float64, total)
	for conn := 0; conn < total; conn++ {
		n := refine.Node{Row: 0, RowSub: 1}
		ys[conn] = geo.rowY(conn, n)
		if ys[conn] < innerBottom || ys[conn] > outerBottom {
			t.Fatalf("conn %d: y=%v outside reserved band [%v, %v]", conn, ys[conn], innerBottom, outerBottom)
		}
	}

	for i := 0; i < total; i++ {
		for j := i + 1; j < total; j++ {
			if gap := math.Abs(ys[j] - ys[i]); gap < connectionDistance-1e-9 {
				t.Fatalf("slots %d and %d are %.4f apart, want >= %v", i, j, gap, connectionDistance)
			}
		}
	}
}
