package annealing

import (
	"testing"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
)

// Source returning the same draw every time
type constantSource struct {
	value float64
}

func (source constantSource) Float64() float64 { return source.value }

func (source constantSource) Intn(int) int { return 0 }

func (source constantSource) Shuffle(int, func(i, j int)) {}

// Source that fails the test when drawn from
type forbiddenSource struct {
	t *testing.T
}

func (source forbiddenSource) Float64() float64 {
	source.t.Fatal("unexpected draw")
	return 0
}

func (source forbiddenSource) Intn(int) int {
	source.t.Fatal("unexpected draw")
	return 0
}

func (source forbiddenSource) Shuffle(int, func(i, j int)) {
	source.t.Fatal("unexpected draw")
}

// Walks the integers towards a target
type walk struct {
	target int
	source random.Source
}

func (problem walk) Energy(state int) float64 {
	return float64(max(state-problem.target, problem.target-state))
}

func (problem walk) Propose(state int) (int, bool) {
	if problem.source.Float64() < 0.5 {
		return state - 1, true
	}
	return state + 1, true
}

// Every proposal is one step worse; every second proposal finds nothing
type uphill struct {
	calls *int
	skip  bool
}

func (problem uphill) Energy(state int) float64 {
	return float64(state)
}

func (problem uphill) Propose(state int) (int, bool) {
	*problem.calls++
	if problem.skip && *problem.calls%2 == 1 {
		return state, false
	}
	return state + 1, true
}

var shortSchedule = Options{InitialTemp: 10, Alpha: 0.5, MinTemp: 1, Iterations: 3}

func TestAcceptImprovementsWithoutDrawing(t *testing.T) {
	source := forbiddenSource{t}

	assert.True(t, Accept(-0.5, 1e-9, source))
	assert.True(t, Accept(-1000, 1000, source))
}

func TestAcceptWorseByMetropolisCriterion(t *testing.T) {
	assert.False(t, Accept(10, 1, constantSource{0.99}))
	assert.True(t, Accept(10, 1, constantSource{0}))
	assert.True(t, Accept(0, 1, constantSource{0.99}))
	assert.False(t, Accept(1, 1, constantSource{0.5}))
	assert.True(t, Accept(1, 1, constantSource{0.3}))
}

func TestOptions(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	assert.Equal(t, 4, shortSchedule.Levels())
	assert.Equal(t, 342, DefaultOptions().Levels())

	invalid := []Options{
		{InitialTemp: 10, Alpha: 1, MinTemp: 1, Iterations: 1},
		{InitialTemp: 10, Alpha: 0.5, MinTemp: 0, Iterations: 1},
		{InitialTemp: 10, Alpha: 0.5, MinTemp: 1, Iterations: 0},
		{InitialTemp: 0, Alpha: 0.5, MinTemp: 1, Iterations: 1},
	}
	for _, options := range invalid {
		assert.Error(t, options.Validate(), "%+v", options)
		_, err := NewAnnealer[int](walk{}, options, constantSource{}, nil, nil)
		assert.Error(t, err)
	}
}

func TestAnnealReturnsLastAcceptedState(t *testing.T) {
	//** Arrange
	calls := 0
	scope := tally.NewTestScope("", map[string]string{})
	annealer, err := NewAnnealer[int](uphill{calls: &calls}, shortSchedule, constantSource{0}, nil, scope)
	require.NoError(t, err)

	//** Act
	final := annealer.Anneal(0)

	//** Assert
	// The initial state was the best seen, but every worse move got accepted
	assert.Equal(t, 12, final)
	snapshot := scope.Snapshot()
	assert.Equal(t, int64(12), snapshot.Counters()["proposals+"].Value())
	assert.Equal(t, int64(12), snapshot.Counters()["accepted+kind=worse"].Value())
	assert.Equal(t, int64(4), snapshot.Counters()["temperature_levels+"].Value())
	assert.Equal(t, float64(12), snapshot.Gauges()["energy+"].Value())
}

func TestAnnealSkipsExhaustedProposals(t *testing.T) {
	//** Arrange
	calls := 0
	scope := tally.NewTestScope("", map[string]string{})
	recorder := progress.NewRecorder()
	annealer, err := NewAnnealer[int](uphill{calls: &calls, skip: true}, shortSchedule, constantSource{0}, recorder, scope)
	require.NoError(t, err)

	//** Act
	final := annealer.Anneal(0)

	//** Assert
	assert.Equal(t, 6, final)
	snapshot := scope.Snapshot()
	assert.Equal(t, int64(6), snapshot.Counters()["exhausted+"].Value())
	assert.Equal(t, int64(6), snapshot.Counters()["proposals+"].Value())
	assert.Equal(t, []string{
		"No legal move found for 2 of 3 proposals at temperature 10.00",
		"Temperature 10.00: current allocation got score 1",
		"No legal move found for 1 of 3 proposals at temperature 5.00",
		"Temperature 5.00: current allocation got score 3",
		"No legal move found for 2 of 3 proposals at temperature 2.50",
		"Temperature 2.50: current allocation got score 4",
		"No legal move found for 1 of 3 proposals at temperature 1.25",
		"Temperature 1.25: current allocation got score 6",
	}, recorder.Messages())
}

func TestAnnealRejectsWorseMovesWhenCold(t *testing.T) {
	calls := 0
	scope := tally.NewTestScope("", map[string]string{})
	annealer, err := NewAnnealer[int](uphill{calls: &calls}, shortSchedule, constantSource{0.999999}, nil, scope)
	require.NoError(t, err)

	assert.Equal(t, 0, annealer.Anneal(0))
	assert.Equal(t, int64(12), scope.Snapshot().Counters()["rejected+"].Value())
}

func TestAnnealFindsTarget(t *testing.T) {
	options := Options{InitialTemp: 10, Alpha: 0.9, MinTemp: 0.01, Iterations: 50}
	run := func() int {
		source := random.NewSource(7)
		annealer, err := NewAnnealer[int](walk{target: 10, source: source}, options, source, nil, nil)
		require.NoError(t, err)
		return annealer.Anneal(0)
	}

	first := run()

	assert.InDelta(t, 10, first, 1)
	assert.Equal(t, first, run())
}
