package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/model"
)

// Weather reads the current conditions from an Open-Meteo compatible API.
type Weather struct {
	baseURL  string
	lat, lon float64
	client   *http.Client
}

// NewWeather returns a weather collector. Coordinates that do not parse
// fall back to defLat/defLon.
func NewWeather(baseURL, lat, lon string, defLat, defLon float64, client *http.Client, log *zap.Logger) *Weather {
	if client == nil {
		client = &http.Client{Timeout: model.SourceWeather.Timeout()}
	}
	if log == nil {
		log = zap.NewNop()
	}
	w := &Weather{baseURL: baseURL, lat: defLat, lon: defLon, client: client}
	if v, err := strconv.ParseFloat(lat, 64); err == nil {
		w.lat = v
	} else if lat != "" {
		log.Warn("invalid latitude, using default", zap.String("value", lat))
	}
	if v, err := strconv.ParseFloat(lon, 64); err == nil {
		w.lon = v
	} else if lon != "" {
		log.Warn("invalid longitude, using default", zap.String("value", lon))
	}
	return w
}

// ID implements Source.
func (w *Weather) ID() model.SourceID { return model.SourceWeather }

// Poll implements Source.
func (w *Weather) Poll(ctx context.Context) model.Report {
	return w.Collect(ctx).Report(w.ID())
}

type forecast struct {
	Current *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Collect queries /v1/forecast for the current weather.
func (w *Weather) Collect(ctx context.Context) model.Result[model.Weather] {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(w.lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(w.lon, 'f', -1, 64))
	q.Set("current_weather", "true")

	req, err := newGet(ctx, joinURL(w.baseURL, "/v1/forecast")+"?"+q.Encode())
	if err != nil {
		return model.Unavailable[model.Weather](err.Error())
	}

	var fc forecast
	res := fetchJSON(w.client, req, &fc)
	switch res.kind {
	case fetchTransport:
		return model.Unavailable[model.Weather](transportReason(res.err))
	case fetchStatus:
		return model.Degraded(fmt.Sprintf("error %d", res.code), model.Weather{})
	case fetchDecode:
		return model.Degraded("bad response", model.Weather{})
	}
	if fc.Current == nil {
		return model.Degraded("bad response", model.Weather{})
	}

	return model.OK(model.Weather{
		TemperatureC: fc.Current.Temperature,
		Code:         fc.Current.WeatherCode,
		Description:  DescribeWeather(fc.Current.WeatherCode),
	})
}

// DescribeWeather maps a WMO weather code to a short description.
func DescribeWeather(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code >= 1 && code <= 3:
		return "partly cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67, code >= 80 && code <= 82:
		return "rain"
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return "snow"
	case code >= 95 && code <= 99:
		return "thunderstorm"
	}
	return "unknown"
}
