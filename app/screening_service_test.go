package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doseview/domain/core"
	"doseview/domain/selection"
	"doseview/internal/paginate"
	"doseview/internal/sampledata"
)

func screeningService() *ScreeningService {
	return NewScreeningService(sampledata.NewGenerator(42).Screening())
}

func TestOptionsResolvePerReadOut(t *testing.T) {
	service := screeningService()

	calcium, err := service.Options(selection.ReadOutCalcium)
	require.NoError(t, err)
	assert.Len(t, calcium.Compounds, 5)
	assert.Len(t, calcium.Measurements, 4)
	assert.Len(t, calcium.Defaults, 3)
	assert.Contains(t, calcium.Measurements, "Area Under the Curve")
	assert.NotContains(t, calcium.Measurements, "Amplitude")

	voltage, err := service.Options(selection.ReadOutVoltage)
	require.NoError(t, err)
	assert.Len(t, voltage.Measurements, 7)
	assert.Contains(t, voltage.Measurements, "Amplitude")
}

func TestExploreEmptySelectionHaltsBeforeFiltering(t *testing.T) {
	service := screeningService()

	_, err := service.Explore(context.Background(), selection.Selection{
		ReadOut:      selection.ReadOutCalcium,
		Compounds:    nil,
		Measurements: []string{"Rising Slope"},
	}, paginate.Request{PageSize: 25, Page: 1})

	require.Error(t, err)
	assert.True(t, core.IsEmptySelection(err))
	// Nothing was filtered, so nothing was cached
	assert.Equal(t, 0, service.engine.CacheSize())
}

func TestExploreFullPass(t *testing.T) {
	service := screeningService()
	sel := selection.Selection{
		ReadOut:      selection.ReadOutCalcium,
		Compounds:    []string{"CMP-001", "CMP-002"},
		Measurements: []string{"Rising Slope", "Falling Slope"},
	}

	result, err := service.Explore(context.Background(), sel, paginate.Request{PageSize: 25, Page: 1})
	require.NoError(t, err)
	require.False(t, result.NoRows)

	require.NotNil(t, result.Chart)
	assert.Empty(t, result.ChartErr)
	// 2 measurements x 3 screens
	assert.Equal(t, 2, result.Chart.Rows)
	assert.Equal(t, 3, result.Chart.Cols)

	require.NotNil(t, result.Summary)
	assert.Equal(t, result.Filtered.Len(), result.Summary.RowCount)
	assert.Len(t, result.Summary.CompoundCounts, 2)
	assert.NotEmpty(t, result.Summary.ConcentrationRange)

	require.NotNil(t, result.Page)
	assert.Equal(t, result.Filtered.Len(), result.Page.TotalRows)
}

func TestExploreInvalidMeasurementForReadOut(t *testing.T) {
	service := screeningService()

	// Amplitude is a voltage measurement; for calcium the effective set
	// comes out empty and the pass halts
	_, err := service.Explore(context.Background(), selection.Selection{
		ReadOut:      selection.ReadOutCalcium,
		Compounds:    []string{"CMP-001"},
		Measurements: []string{"Amplitude"},
	}, paginate.Request{PageSize: 25, Page: 1})

	require.Error(t, err)
	assert.True(t, core.IsEmptySelection(err))
}

func TestExploreNoRowsForUnknownCompound(t *testing.T) {
	service := screeningService()

	result, err := service.Explore(context.Background(), selection.Selection{
		ReadOut:      selection.ReadOutCalcium,
		Compounds:    []string{"CMP-999"},
		Measurements: []string{"Rising Slope"},
	}, paginate.Request{PageSize: 25, Page: 1})

	require.NoError(t, err)
	assert.True(t, result.NoRows)
	assert.Nil(t, result.Chart)
}

func TestExploreSearchWithoutMatchesKeepsOtherPanels(t *testing.T) {
	service := screeningService()
	sel := selection.Selection{
		ReadOut:      selection.ReadOutCalcium,
		Compounds:    []string{"CMP-001"},
		Measurements: []string{"Rising Slope"},
	}

	result, err := service.Explore(context.Background(), sel, paginate.Request{
		PageSize: 25,
		Page:     1,
		Search:   "does-not-exist",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Page)
	assert.NotNil(t, result.Chart)
	assert.NotNil(t, result.Summary)
}

func TestExploreReusesCacheAcrossPageChanges(t *testing.T) {
	service := screeningService()
	sel := selection.Selection{
		ReadOut:      selection.ReadOutCalcium,
		Compounds:    []string{"CMP-001"},
		Measurements: []string{"Rising Slope"},
	}

	first, err := service.Explore(context.Background(), sel, paginate.Request{PageSize: 10, Page: 1})
	require.NoError(t, err)
	second, err := service.Explore(context.Background(), sel, paginate.Request{PageSize: 10, Page: 2})
	require.NoError(t, err)

	// Same selection key, same memoized table
	assert.Same(t, first.Filtered, second.Filtered)
	assert.Equal(t, 1, service.engine.CacheSize())
	assert.Equal(t, 2, second.Page.Page)
}

func TestExplorePooledLayout(t *testing.T) {
	service := screeningService()
	sel := selection.Selection{
		ReadOut:      selection.ReadOutCalcium,
		Compounds:    []string{"CMP-001"},
		Measurements: []string{"Rising Slope"},
		PoolScreens:  true,
	}

	result, err := service.Explore(context.Background(), sel, paginate.Request{PageSize: 25, Page: 1})
	require.NoError(t, err)
	require.NotNil(t, result.Chart)
	assert.Equal(t, 1, result.Chart.Cols)
}
