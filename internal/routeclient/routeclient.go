// Package routeclient resolves a callsign into origin/destination route
// metadata by trying a ranked list of query shapes against an
// AviationStack-compatible provider, negatively caching misses so a
// callsign with no known route isn't re-queried on every broadcast tick.
// The ICAO/IATA prefix-splitting mirrors GrowlyX-flighttracker's
// parseCallsign, extended with the suffix-letter and leading-zero
// variants the component contract calls for.
package routeclient

import (
	"net/url"
	"strings"
	"time"

	"github.com/DoROAD-AI/skylink/internal/airlinedata"
	"github.com/DoROAD-AI/skylink/internal/cache"
	"github.com/DoROAD-AI/skylink/internal/upstream"
)

// TTL is how long both positive and negative route results are cached.
const TTL = 300 * time.Second

// AirportInfo is one endpoint (origin or destination) of a resolved
// route.
type AirportInfo struct {
	Name      string `json:"name,omitempty"`
	IATA      string `json:"iata,omitempty"`
	ICAO      string `json:"icao,omitempty"`
	Scheduled string `json:"scheduled,omitempty"`
	Estimated string `json:"estimated,omitempty"`
	Actual    string `json:"actual,omitempty"`
	Gate      string `json:"gate,omitempty"`
	Terminal  string `json:"terminal,omitempty"`
	DelayMin  *int   `json:"delayMinutes,omitempty"`
}

// RouteInfo is the resolved callsign metadata returned to clients.
type RouteInfo struct {
	Callsign     string       `json:"callsign"`
	FlightNumber string       `json:"flightNumber,omitempty"`
	Airline      string       `json:"airline,omitempty"`
	Status       string       `json:"status,omitempty"`
	Origin       *AirportInfo `json:"origin,omitempty"`
	Destination  *AirportInfo `json:"destination,omitempty"`
	UpdatedAt    int64        `json:"updatedAt"`
}

// Client resolves callsigns to RouteInfo, backed by a shared cache.
type Client struct {
	provider *upstream.RouteProvider
	cache    *cache.Cache
}

// New constructs a Client against provider, sharing c for caching.
func New(provider *upstream.RouteProvider, c *cache.Cache) *Client {
	return &Client{provider: provider, cache: c}
}

// Resolve returns the RouteInfo for callsign, or nil if no route could be
// found (a cached negative result, or every shape came up empty).
func (c *Client) Resolve(callsign string) (*RouteInfo, error) {
	norm := normalize(callsign)
	key := "route:" + norm

	if outcome, val := c.cache.Get(key); outcome == cache.HitValue {
		if info, ok := val.(*RouteInfo); ok {
			return info, nil
		}
	} else if outcome == cache.HitNull {
		return nil, nil
	}

	for _, shape := range buildShapes(norm) {
		row, err := c.provider.Query(shape, norm)
		if err != nil {
			return nil, err
		}
		if row == nil {
			continue
		}
		info := toRouteInfo(norm, row)
		c.cache.Set(key, info, TTL)
		return info, nil
	}

	c.cache.Set(key, nil, TTL)
	return nil, nil
}

func normalize(callsign string) string {
	return strings.ToUpper(strings.Join(strings.Fields(callsign), ""))
}

// buildShapes returns the ranked, deduplicated list of query-parameter
// shapes to try for norm, per the component contract's four shape
// families.
func buildShapes(norm string) []url.Values {
	var shapes []url.Values
	seen := make(map[string]bool)

	add := func(v url.Values) {
		key := v.Encode()
		if seen[key] {
			return
		}
		seen[key] = true
		shapes = append(shapes, v)
	}

	add(url.Values{"flight_icao": {norm}})

	prefix, number, suffix := splitCallsign(norm)
	if prefix == "" || number == "" {
		return shapes
	}

	trimmed := strings.TrimLeft(number, "0")
	if trimmed == "" {
		trimmed = number
	}

	add(url.Values{"airline_icao": {prefix}, "flight_number": {number + suffix}})
	if suffix != "" {
		add(url.Values{"airline_icao": {prefix}, "flight_number": {number}})
	}
	if trimmed != number {
		add(url.Values{"airline_icao": {prefix}, "flight_number": {trimmed + suffix}})
		if suffix != "" {
			add(url.Values{"airline_icao": {prefix}, "flight_number": {trimmed}})
		}
	}

	iata, ok := airlinedata.ICAOToIATA(prefix)
	if !ok {
		return shapes
	}

	add(url.Values{"airline_iata": {iata}, "flight_number": {number + suffix}})
	if trimmed != number {
		add(url.Values{"airline_iata": {iata}, "flight_number": {trimmed + suffix}})
	}
	add(url.Values{"flight_iata": {iata + number}})
	if trimmed != number {
		add(url.Values{"flight_iata": {iata + trimmed}})
	}

	return shapes
}

// splitCallsign splits a normalized callsign into its letter prefix,
// digit run, and any trailing letter suffix: "UAL2090" -> ("UAL",
// "2090", ""); "UAL2090A" -> ("UAL", "2090", "A").
func splitCallsign(cs string) (prefix, number, suffix string) {
	i := 0
	for i < len(cs) && cs[i] >= 'A' && cs[i] <= 'Z' {
		i++
	}
	j := i
	for j < len(cs) && cs[j] >= '0' && cs[j] <= '9' {
		j++
	}
	return cs[:i], cs[i:j], cs[j:]
}

func toRouteInfo(callsign string, row *upstream.RouteRow) *RouteInfo {
	info := &RouteInfo{
		Callsign:     callsign,
		FlightNumber: row.FlightNumber,
		Airline:      row.AirlineName,
		Status:       row.FlightStatus,
		UpdatedAt:    time.Now().UnixMilli(),
	}
	if row.Departure != nil {
		info.Origin = toAirportInfo(row.Departure)
	}
	if row.Arrival != nil {
		info.Destination = toAirportInfo(row.Arrival)
	}
	return info
}

func toAirportInfo(a *upstream.AirportRow) *AirportInfo {
	return &AirportInfo{
		Name:      a.Airport,
		IATA:      a.IATA,
		ICAO:      a.ICAO,
		Scheduled: a.Scheduled,
		Estimated: a.Estimated,
		Actual:    a.Actual,
		Gate:      a.Gate,
		Terminal:  a.Terminal,
		DelayMin:  a.Delay,
	}
}
