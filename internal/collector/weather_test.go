package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kostyay/basementhq/internal/model"
)

func TestWeather_Current(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "51.5", q.Get("latitude"))
		assert.Equal(t, "-0.12", q.Get("longitude"))
		assert.Equal(t, "true", q.Get("current_weather"))
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":14.2,"weathercode":61,"windspeed":9}}`))
	}))
	defer srv.Close()

	res := NewWeather(srv.URL, "51.5", "-0.12", 0, 0, nil, nil).Collect(context.Background())

	assert.True(t, res.IsOK())
	assert.Equal(t, model.Weather{TemperatureC: 14.2, Code: 61, Description: "rain"}, res.Value)
}

func TestWeather_InvalidCoordinatesUseDefaults(t *testing.T) {
	w := NewWeather("http://unused", "north", "", 40.7128, -74.006, nil, nil)

	assert.Equal(t, 40.7128, w.lat)
	assert.Equal(t, -74.006, w.lon)
}

func TestWeather_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("latitude") == "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	bad := NewWeather(srv.URL, "1", "1", 0, 0, nil, nil).Collect(context.Background())
	assert.Equal(t, model.StatusDegraded, bad.Status)
	assert.Equal(t, "error 400", bad.Reason)

	empty := NewWeather(srv.URL, "2", "2", 0, 0, nil, nil).Collect(context.Background())
	assert.Equal(t, model.StatusDegraded, empty.Status)
	assert.Equal(t, "bad response", empty.Reason)
}

func TestDescribeWeather(t *testing.T) {
	assert.Equal(t, "clear", DescribeWeather(0))
	assert.Equal(t, "fog", DescribeWeather(45))
	assert.Equal(t, "snow", DescribeWeather(75))
	assert.Equal(t, "thunderstorm", DescribeWeather(95))
	assert.Equal(t, "unknown", DescribeWeather(42))
}
