package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbanai/core/internal/build"
	"pcbanai/core/internal/catalog"
	"pcbanai/core/internal/domain"
)

type fakeSource struct {
	components []domain.Component
	err        error
}

func (f *fakeSource) Components(_ context.Context, filter domain.Category) ([]domain.Component, error) {
	if f.err != nil {
		return nil, f.err
	}
	if filter == "" {
		return f.components, nil
	}
	var filtered []domain.Component
	for _, c := range f.components {
		if c.Category == filter {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func testComponent(id string, category domain.Category) domain.Component {
	return domain.Component{
		ID:             id,
		Name:           id,
		LocalizedName:  id,
		Brand:          domain.UnknownBrand,
		Category:       category,
		Specifications: map[string]any{"summary": ""},
		Prices: []domain.PriceEntry{{
			RetailerID:   "startech",
			RetailerName: "StarTech",
			Price:        10000,
			Currency:     domain.Currency,
			InStock:      true,
			Trend:        domain.TrendStable,
		}},
	}
}

func TestHandleComponents(t *testing.T) {
	source := &fakeSource{components: []domain.Component{
		testComponent("cpu-startech-1", domain.CategoryCPU),
		testComponent("gpu-startech-1", domain.CategoryGPU),
	}}
	srv := New(source, 1800)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/components?category=cpu", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "max-age=1800")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var components []domain.Component
	require.NoError(t, json.Unmarshal(body, &components))
	require.Len(t, components, 1)
	assert.Equal(t, "cpu-startech-1", components[0].ID)
}

func TestHandleComponentsStoreDown(t *testing.T) {
	srv := New(&fakeSource{err: catalog.ErrStoreUnavailable}, 1800)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/components", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "error")
}

func TestHandleSharedBuild(t *testing.T) {
	cpu := testComponent("cpu-startech-1", domain.CategoryCPU)
	source := &fakeSource{components: []domain.Component{cpu}}
	srv := New(source, 1800)

	selection := build.NewSelection()
	selection.Select(cpu)
	code, err := build.EncodeShareCode(selection)
	require.NoError(t, err)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/build?code="+code, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded struct {
		Summary build.Summary `json:"summary"`
		Missing []string      `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 10000, decoded.Summary.TotalPrice)
	assert.Empty(t, decoded.Missing)
}

func TestHandleSharedBuildBadCode(t *testing.T) {
	srv := New(&fakeSource{}, 1800)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/build?code=%21%21nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/build", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
