// Package weather fetches current conditions and a short forecast from
// weatherapi.com.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"livingclock/internal/core/model"
)

const (
	DefaultBaseURL = "https://api.weatherapi.com/v1"
	forecastDays   = 3
	maxBodyBytes   = 1 << 20
)

var (
	// ErrMissingAPIKey is reported until an api key is configured.
	ErrMissingAPIKey = errors.New("set weather.api_key in settings.yaml")
	// ErrNoHTTPClient is reported when the client has no transport.
	ErrNoHTTPClient = errors.New("weather client has no http client")
)

// Day is one forecast entry.
type Day struct {
	Date         string
	Condition    string
	High         float64
	Low          float64
	ChanceOfRain int
}

// Data is one successful fetch.
type Data struct {
	City         string
	Country      string
	Temp         float64
	FeelsLike    float64
	TempUnit     string
	Condition    string
	Humidity     int
	Wind         float64
	WindUnit     string
	PrecipMM     float64
	UV           float64
	Cloud        int
	ChanceOfRain int
	High         float64
	Low          float64
	Alerts       int
	Forecast     []Day
}

// Clone returns a deep copy.
func (data Data) Clone() Data {
	data.Forecast = append([]Day(nil), data.Forecast...)
	return data
}

// Summary returns the one-line form shown next to the clock.
func (data Data) Summary() string {
	return fmt.Sprintf("%.0f%s • Rain %d%%", data.Temp, data.TempUnit, data.ChanceOfRain)
}

// Client queries the forecast endpoint.
type Client struct {
	APIKey  string
	City    string
	Units   model.Units
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client from weather settings.
func NewClient(config model.WeatherConfig, httpClient *http.Client) *Client {
	return &Client{
		APIKey:  config.APIKey,
		City:    config.City,
		Units:   config.Units,
		BaseURL: DefaultBaseURL,
		HTTP:    httpClient,
	}
}

// Fetch performs one request. It is suitable as a snapshot fetcher.
func (client *Client) Fetch(ctx context.Context) (Data, error) {
	if strings.TrimSpace(client.APIKey) == "" {
		return Data{}, ErrMissingAPIKey
	}
	if client.HTTP == nil {
		return Data{}, ErrNoHTTPClient
	}

	baseURL := client.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	query := url.Values{}
	query.Set("key", client.APIKey)
	query.Set("q", client.City)
	query.Set("days", fmt.Sprint(forecastDays))
	query.Set("aqi", "no")
	query.Set("alerts", "yes")
	endpoint := strings.TrimRight(baseURL, "/") + "/forecast.json?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Data{}, fmt.Errorf("build weather request: %w", err)
	}
	response, err := client.HTTP.Do(request)
	if err != nil {
		return Data{}, fmt.Errorf("request weather: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return Data{}, fmt.Errorf("read weather response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		if message := gjson.GetBytes(body, "error.message").String(); message != "" {
			return Data{}, fmt.Errorf("weather api: %s (HTTP %d)", message, response.StatusCode)
		}
		return Data{}, fmt.Errorf("weather api: HTTP %d", response.StatusCode)
	}
	return Parse(body, client.Units, client.City)
}

// Parse extracts Data from a forecast.json body. fallbackCity is used when
// the response has no location name.
func Parse(body []byte, units model.Units, fallbackCity string) (Data, error) {
	if !gjson.ValidBytes(body) {
		return Data{}, fmt.Errorf("parse weather response: invalid json")
	}
	root := gjson.ParseBytes(body)
	current := root.Get("current")
	if !current.Exists() {
		return Data{}, fmt.Errorf("parse weather response: missing current conditions")
	}

	pick := unitPicker(units)
	data := Data{
		City:      root.Get("location.name").String(),
		Country:   root.Get("location.country").String(),
		Temp:      current.Get(pick("temp_c", "temp_f")).Float(),
		FeelsLike: current.Get(pick("feelslike_c", "feelslike_f")).Float(),
		TempUnit:  pick("°C", "°F"),
		Condition: current.Get("condition.text").String(),
		Humidity:  int(current.Get("humidity").Int()),
		Wind:      current.Get(pick("wind_kph", "wind_mph")).Float(),
		WindUnit:  pick("kph", "mph"),
		PrecipMM:  current.Get("precip_mm").Float(),
		UV:        current.Get("uv").Float(),
		Cloud:     int(current.Get("cloud").Int()),
		Alerts:    len(root.Get("alerts.alert").Array()),
	}
	if data.City == "" {
		data.City = fallbackCity
	}

	for index, forecastDay := range root.Get("forecast.forecastday").Array() {
		if index == forecastDays {
			break
		}
		day := forecastDay.Get("day")
		data.Forecast = append(data.Forecast, Day{
			Date:         forecastDay.Get("date").String(),
			Condition:    day.Get("condition.text").String(),
			High:         day.Get(pick("maxtemp_c", "maxtemp_f")).Float(),
			Low:          day.Get(pick("mintemp_c", "mintemp_f")).Float(),
			ChanceOfRain: int(day.Get("daily_chance_of_rain").Int()),
		})
	}
	if len(data.Forecast) > 0 {
		today := data.Forecast[0]
		data.High, data.Low, data.ChanceOfRain = today.High, today.Low, today.ChanceOfRain
	}
	return data, nil
}

func unitPicker(units model.Units) func(metric, imperial string) string {
	return func(metric, imperial string) string {
		if units == model.UnitsImperial {
			return imperial
		}
		return metric
	}
}
