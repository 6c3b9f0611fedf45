package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cloudwego/eino/schema"
	log "github.com/sirupsen/logrus"

	locationservice "github.com/barefootbuddy/backend/internal/service/location"
	"github.com/barefootbuddy/backend/internal/service/search"
	"github.com/barefootbuddy/backend/internal/service/weather"
)

// toolID is the closed set of capabilities the bot may call. Unknown
// names map to toolUnknown explicitly rather than being ignored.
type toolID int

const (
	toolUnknown toolID = iota
	toolWeather
	toolGroupLocations
	toolWebSearch
)

const (
	nameWeather        = "get_current_weather"
	nameGroupLocations = "get_group_locations"
	nameWebSearch      = "search_web"

	executeTimeout = 10 * time.Second
)

func toolByName(name string) toolID {
	switch name {
	case nameWeather:
		return toolWeather
	case nameGroupLocations:
		return toolGroupLocations
	case nameWebSearch:
		return toolWebSearch
	default:
		return toolUnknown
	}
}

// Registry executes tool calls against the three capability services.
// Every failure becomes an error payload; a tool can never abort the
// chat turn that invoked it.
type Registry struct {
	weather   *weather.Service
	locations *locationservice.Service
	search    *search.Service
}

// NewRegistry wires the executors.
func NewRegistry(weatherSvc *weather.Service, locationSvc *locationservice.Service, searchSvc *search.Service) *Registry {
	return &Registry{weather: weatherSvc, locations: locationSvc, search: searchSvc}
}

// Infos declares the tool schema offered to the completion provider.
func (r *Registry) Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: nameWeather,
			Desc: "Get the current weather at the festival grounds in Wildwood, NJ.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"location": {
					Type: schema.String,
					Desc: "Optional location override; the festival grounds are assumed.",
				},
			}),
		},
		{
			Name: nameGroupLocations,
			Desc: "Get the live locations of the user's festival group. Ghost-mode members are hidden.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: nameWebSearch,
			Desc: "Search the web and return a short summarized answer.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "The search query.",
					Required: true,
				},
			}),
		},
	}
}

// Execute runs one tool call and returns its result as a JSON string.
func (r *Registry) Execute(ctx context.Context, name, arguments string) string {
	ctx, cancel := context.WithTimeout(ctx, executeTimeout)
	defer cancel()

	var result interface{}
	switch toolByName(name) {
	case toolWeather:
		result = r.executeWeather(ctx)
	case toolGroupLocations:
		result = r.executeGroupLocations(ctx)
	case toolWebSearch:
		result = r.executeWebSearch(ctx, arguments)
	default:
		log.WithField("tool", name).Warn("model requested unknown tool")
		result = map[string]string{"error": "Unknown function"}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return `{"error": "failed to serialize tool result"}`
	}
	return string(payload)
}

func (r *Registry) executeWeather(ctx context.Context) interface{} {
	if r.weather == nil {
		return map[string]string{"error": "weather service unavailable"}
	}

	report := r.weather.Current(ctx)
	return map[string]interface{}{
		"temperature":   report.Temperature,
		"description":   report.Description,
		"wind_speed":    report.WindSpeed,
		"daisy_comment": report.DaisyComment,
	}
}

func (r *Registry) executeGroupLocations(ctx context.Context) interface{} {
	if r.locations == nil {
		return map[string]string{"error": "location service unavailable"}
	}

	visible, err := r.locations.GroupLocations(ctx, "")
	if err != nil {
		return map[string]string{"error": err.Error()}
	}

	presence, err := r.locations.PresenceStatus(ctx)
	if err != nil {
		// Coordinates are the useful part; presence counts degrade.
		presence = nil
	}

	ghosts := 0
	for _, p := range presence {
		if p.GhostMode {
			ghosts++
		}
	}

	locations := make([]map[string]interface{}, 0, len(visible))
	for userID, loc := range visible {
		locations = append(locations, map[string]interface{}{
			"user_id":    userID,
			"latitude":   loc.Latitude,
			"longitude":  loc.Longitude,
			"ghost_mode": false,
		})
	}

	return map[string]interface{}{
		"total_users":   len(visible) + ghosts,
		"visible_users": len(visible),
		"ghost_users":   ghosts,
		"locations":     locations,
	}
}

func (r *Registry) executeWebSearch(ctx context.Context, arguments string) interface{} {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil || args.Query == "" {
		return map[string]string{"error": "missing search query"}
	}

	if r.search == nil {
		return map[string]string{"query": args.Query, "error": "search service unavailable"}
	}

	result, err := r.search.Search(ctx, args.Query)
	if err != nil {
		return map[string]string{"query": args.Query, "error": err.Error()}
	}
	return map[string]string{"query": args.Query, "result": result}
}
