package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

func TestKind_Valid(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds {
		assert.True(t, k.Valid(), "kind %s", k)
	}
	assert.False(t, Kind("benchmarks").Valid())
	assert.False(t, Kind("").Valid())
}

func TestRaw_Target(t *testing.T) {
	t.Parallel()

	raw := &Raw{}
	for _, k := range Kinds {
		target, err := raw.target(k)
		require.NoError(t, err, "kind %s", k)
		assert.NotNil(t, target)
	}

	_, err := raw.target("benchmarks")
	require.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), `"benchmarks"`)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	raw := &Raw{
		Products: []*domain.Product{{ID: "a"}, nil, {ID: "b"}},
		CPUBenchmarks: []domain.CPUBenchmark{
			{Name: "cpu-1", Composite: 50},
			{Name: "cpu-1", Composite: 99},
		},
		PriceBaselines: []domain.PriceBaseline{{ProductID: "a", MSRP: 1000}},
		LinuxCompat:    []domain.CompatEntry{{ProductID: "b"}},
		CPUGuide:       []domain.GuideEntry{{Name: "cpu-1"}},
	}

	cat := Build(raw)
	require.NotNil(t, cat)

	assert.Len(t, cat.Products, 3, "null rows are kept for validation")
	assert.Nil(t, cat.Products[1])

	cpu, ok := cat.CPUBenchmarks.Get("cpu-1")
	require.True(t, ok)
	assert.Equal(t, 50, cpu.Composite, "first duplicate wins")
	assert.Equal(t, 2, cat.CPUBenchmarks.Rows())

	assert.True(t, cat.PriceBaselines.Has("a"))
	assert.True(t, cat.Compat.Has("b"))
	assert.True(t, cat.CPUGuide.Has("cpu-1"))
	assert.Equal(t, 0, cat.GPUBenchmarks.Len())
}

func TestBuild_Nil(t *testing.T) {
	t.Parallel()

	cat := Build(nil)
	require.NotNil(t, cat)
	assert.Empty(t, cat.Products)
}
