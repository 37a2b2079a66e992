package query

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/internal/index"
	"github.com/go-sod/kdst/internal/registry"
)

var testCfg = &Config{RequestTimeout: time.Second, MaxDataItemsLen: 4}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(index.AlgTypeKDTree)
	require.NoError(t, err)
	require.NoError(t, reg.Load(context.Background(), []geom.Point{
		{X: 0.7, Y: 0.2}, {X: 0.5, Y: 0.4}, {X: 0.2, Y: 0.3}, {X: 0.4, Y: 0.7}, {X: 0.9, Y: 0.6},
	}))
	return reg
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRangeHandler(t *testing.T) {
	h, err := NewRangeHandler(testCfg, newTestRegistry(t))
	require.NoError(t, err)

	tests := []struct {
		name     string
		body     string
		status   int
		expected []geom.Point
	}{
		{
			name:     "lower_left",
			body:     `{"rect": {"xmin": 0, "ymin": 0, "xmax": 0.5, "ymax": 0.5}}`,
			status:   http.StatusOK,
			expected: []geom.Point{{X: 0.5, Y: 0.4}, {X: 0.2, Y: 0.3}},
		},
		{
			name:     "empty_result",
			body:     `{"rect": {"xmin": 0.95, "ymin": 0.95, "xmax": 1, "ymax": 1}}`,
			status:   http.StatusOK,
			expected: []geom.Point{},
		},
		{name: "missing_rect", body: `{}`, status: http.StatusBadRequest},
		{name: "inverted_rect", body: `{"rect": {"xmin": 1, "ymin": 0, "xmax": 0, "ymax": 1}}`, status: http.StatusBadRequest},
		{name: "malformed", body: `{"rect": `, status: http.StatusBadRequest},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			rec := post(h, test.body)
			require.Equal(t, test.status, rec.Code, rec.Body.String())
			if test.status != http.StatusOK {
				return
			}
			var resp rangeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.ElementsMatch(t, test.expected, resp.Points)
		})
	}
}

func TestNearestHandler(t *testing.T) {
	h, err := NewNearestHandler(testCfg, newTestRegistry(t))
	require.NoError(t, err)

	rec := post(h, `{"data": [{"x": 0.45, "y": 0.45}, {"x": 1, "y": 1}, {"x": 0.7, "y": 0.2}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp nearestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)

	expected := []geom.Point{{X: 0.5, Y: 0.4}, {X: 0.9, Y: 0.6}, {X: 0.7, Y: 0.2}}
	for i, neighbor := range resp.Data {
		assert.True(t, neighbor.Found)
		assert.Equal(t, expected[i], neighbor.Point)
		assert.InDelta(t, neighbor.Query.DistanceTo(expected[i]), neighbor.Distance, 1e-12)
	}
	assert.Zero(t, resp.Data[2].Distance)
}

func TestNearestHandler_LargeCoordinates(t *testing.T) {
	reg, err := registry.New(index.AlgTypeKDTree)
	require.NoError(t, err)
	require.NoError(t, reg.Put(context.Background(), registry.Item{Point: geom.NewPoint(1e200, 1e200), Value: json.RawMessage(`"far"`)}))
	h, err := NewNearestHandler(testCfg, reg)
	require.NoError(t, err)

	rec := post(h, `{"data": [{"x": -1e200, "y": -1e200}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp nearestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].Found)
	assert.Equal(t, geom.NewPoint(1e200, 1e200), resp.Data[0].Point)
	assert.InEpsilon(t, 2e200*math.Sqrt2, resp.Data[0].Distance, 1e-12)
}

func TestRangeHandler_ErrorIsJSON(t *testing.T) {
	h, err := NewRangeHandler(testCfg, newTestRegistry(t))
	require.NoError(t, err)

	rec := post(h, `{"rect": {"xmin": 1, "ymin": 0, "xmax": 0, "ymax": 1}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	assert.Contains(t, resp.Error, "invalid argument")
}

func TestNearestHandler_Errors(t *testing.T) {
	h, err := NewNearestHandler(testCfg, newTestRegistry(t))
	require.NoError(t, err)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "missing_coordinate", body: `{"data": [{"x": 0.5}]}`, status: http.StatusBadRequest},
		{name: "too_many_items", body: `{"data": [{"x":0,"y":0},{"x":0,"y":0},{"x":0,"y":0},{"x":0,"y":0},{"x":0,"y":0}]}`, status: http.StatusBadRequest},
		{name: "empty_body", body: ``, status: http.StatusBadRequest},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			rec := post(h, test.body)
			assert.Equal(t, test.status, rec.Code, rec.Body.String())
		})
	}
}

func TestNearestHandler_EmptyRegistry(t *testing.T) {
	reg, err := registry.New(index.AlgTypeBrute)
	require.NoError(t, err)
	h, err := NewNearestHandler(testCfg, reg)
	require.NoError(t, err)

	rec := post(h, `{"data": [{"x": 0.5, "y": 0.5}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp nearestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.False(t, resp.Data[0].Found)
}
