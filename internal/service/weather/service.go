package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/barefootbuddy/backend/internal/config"
)

const requestTimeout = 10 * time.Second

// Report is the festival weather card. DaisyComment keeps the bot's
// voice on the dashboard even when the data is mocked.
type Report struct {
	Temperature  int    `json:"temperature"`
	Description  string `json:"description"`
	WindSpeed    int    `json:"windSpeed"`
	UVIndex      int    `json:"uvIndex"`
	Icon         string `json:"icon"`
	DaisyComment string `json:"daisyComment"`
	IsLive       bool   `json:"isLive"`
}

// Service proxies OpenWeatherMap for the festival grounds and degrades
// to mock data whenever the upstream is unavailable.
type Service struct {
	cfg    config.WeatherConfig
	client *http.Client
}

// NewService builds the weather proxy.
func NewService(cfg config.WeatherConfig) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type openWeatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns the latest conditions. It never fails: upstream
// errors fall back to mock data with IsLive=false.
func (s *Service) Current(ctx context.Context) Report {
	if s.cfg.APIKey == "" {
		return s.mockReport()
	}

	report, err := s.fetch(ctx)
	if err != nil {
		log.WithError(err).Warn("weather fetch failed, serving mock data")
		return s.mockReport()
	}
	return report
}

func (s *Service) fetch(ctx context.Context) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", s.cfg.Latitude))
	params.Set("lon", fmt.Sprintf("%f", s.cfg.Longitude))
	params.Set("appid", s.cfg.APIKey)
	params.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Report{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Report{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("openweathermap returned status %d", resp.StatusCode)
	}

	var data openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Report{}, err
	}
	if len(data.Weather) == 0 {
		return Report{}, fmt.Errorf("openweathermap returned no conditions")
	}

	temp := int(data.Main.Temp)
	description := titleCase(data.Weather[0].Description)
	return Report{
		Temperature: temp,
		Description: description,
		WindSpeed:   int(data.Wind.Speed),
		// A dedicated UV call costs another request; the dashboard
		// only needs a ballpark.
		UVIndex:      6,
		Icon:         iconType(data.Weather[0].Icon),
		DaisyComment: daisyComment(temp),
		IsLive:       true,
	}, nil
}

func (s *Service) mockReport() Report {
	temps := []int{75, 76, 77, 78, 79, 80, 81, 82}
	descriptions := []string{"Sunny", "Partly Cloudy", "Clear", "Mostly Sunny"}
	winds := []int{6, 7, 8, 9, 10, 11, 12}

	temp := temps[rand.Intn(len(temps))]
	return Report{
		Temperature:  temp,
		Description:  descriptions[rand.Intn(len(descriptions))],
		WindSpeed:    winds[rand.Intn(len(winds))],
		UVIndex:      6,
		Icon:         "sun",
		DaisyComment: daisyComment(temp),
	}
}

func iconType(openWeatherIcon string) string {
	switch {
	case strings.HasPrefix(openWeatherIcon, "01"):
		return "sun"
	case strings.HasPrefix(openWeatherIcon, "02"),
		strings.HasPrefix(openWeatherIcon, "03"),
		strings.HasPrefix(openWeatherIcon, "04"):
		return "cloud"
	default:
		return "sun"
	}
}

func daisyComment(temp int) string {
	switch {
	case temp >= 80:
		return "It's hotter than a pepper sprout out there, sugar! Perfect beach weather for dancin'!"
	case temp >= 70:
		return "Beautiful weather for the festival, honey! Don't forget that sunscreen, darlin'!"
	case temp >= 60:
		return "Nice and comfortable, y'all! Perfect weather for enjoyin' some good music!"
	default:
		return "A little chilly but still perfect for festival fun! Grab a hoodie, sweetie!"
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
