package vrp_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/vrpga/vrp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// lineInstance places the depot at x=0 and customers at x=1..n-1 on a line.
func lineInstance(t *testing.T, n int, capacity float64, trucks int) *vrp.Instance {
	t.Helper()
	coords := make([][2]float64, n)
	demand := make([]float64, n)
	for i := 0; i < n; i++ {
		coords[i] = [2]float64{float64(i), 0}
		if i > 0 {
			demand[i] = 1
		}
	}
	inst, err := vrp.NewEuclidean(coords, demand, capacity, trucks)
	require.NoError(t, err)
	return inst
}

func TestNewInstance_Validation(t *testing.T) {
	d := mat.NewSymDense(3, nil)
	d.SetSym(0, 1, 1)
	d.SetSym(0, 2, 2)
	d.SetSym(1, 2, 1)

	_, err := vrp.NewInstance(nil, nil, 1, 1)
	assert.ErrorIs(t, err, vrp.ErrDimension)

	_, err = vrp.NewInstance(d, []float64{0, 1}, 1, 1)
	assert.ErrorIs(t, err, vrp.ErrDimension, "demand length mismatch")

	_, err = vrp.NewInstance(d, []float64{0, 1, 1}, 1, 0)
	assert.ErrorIs(t, err, vrp.ErrTrucks)

	_, err = vrp.NewInstance(d, []float64{0, 1, 1}, 0, 1)
	assert.ErrorIs(t, err, vrp.ErrCapacity)

	_, err = vrp.NewInstance(d, []float64{0, -1, 1}, 1, 1)
	assert.ErrorIs(t, err, vrp.ErrDemand)

	bad := mat.NewSymDense(3, nil)
	bad.SetSym(1, 2, math.Inf(1))
	_, err = vrp.NewInstance(bad, []float64{0, 1, 1}, 1, 1)
	assert.ErrorIs(t, err, vrp.ErrDistance)

	inst, err := vrp.NewInstance(d, []float64{0, 1, 1}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, inst.Dimension())
	assert.Equal(t, 2, inst.Customers())
	assert.Equal(t, 1, inst.Trucks())
	assert.Equal(t, 2.0, inst.Capacity())
}

// TestTourDistance closes every route through the depot.
func TestTourDistance(t *testing.T) {
	inst := lineInstance(t, 5, 10, 2)

	// Routes [1 2] and [4 3]: (0→1→2→0) = 4, (0→4→3→0) = 8.
	c, err := vrp.FromRoutes(5, [][]int{{1, 2}, {4, 3}})
	require.NoError(t, err)
	assert.Equal(t, 12.0, inst.TourDistance(c.Tour))
	assert.Equal(t, 12.0, inst.SingleTourDistance(c.SingleTour()))

	// An empty route costs nothing.
	e, err := vrp.FromRoutes(5, [][]int{{}, {1, 2, 3, 4}})
	require.NoError(t, err)
	assert.Equal(t, 8.0, inst.TourDistance(e.Tour))
}

// TestStampAndFeasible covers load stamping and the capacity predicate.
func TestStampAndFeasible(t *testing.T) {
	inst := lineInstance(t, 5, 2, 2)

	ok, err := vrp.FromRoutes(5, [][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)
	over, err := vrp.FromRoutes(5, [][]int{{1, 2, 3}, {4}})
	require.NoError(t, err)

	inst.Stamp(ok)
	inst.Stamp(over)

	assert.True(t, ok.HasDistance())
	assert.Equal(t, []float64{2, 2}, ok.Load)
	assert.Equal(t, []float64{3, 1}, over.Load)
	assert.True(t, inst.Feasible(ok))
	assert.False(t, inst.Feasible(over))

	// Without a stamped load the predicate falls back to the routes.
	over.Load = nil
	assert.False(t, inst.Feasible(over))
}

func TestTourDemand(t *testing.T) {
	inst := lineInstance(t, 5, 2, 2)
	assert.Equal(t, 3.0, inst.TourDemand([]int{1, 2, 3}))
	assert.Equal(t, 0.0, inst.TourDemand([]int{0, 5, 6}), "depot and markers demand nothing")
}
