package upstream

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

const routeRequestTimeout = 10 * time.Second

// RouteRow is one flight row from the route-metadata provider, with just
// the fields RouteClient needs to build a RouteInfo.
type RouteRow struct {
	FlightDate   string
	FlightStatus string
	FlightICAO   string
	FlightIATA   string
	FlightNumber string
	AirlineName  string
	Departure    *AirportRow
	Arrival      *AirportRow
}

// AirportRow is one endpoint (departure or arrival) of a RouteRow.
type AirportRow struct {
	Airport   string
	IATA      string
	ICAO      string
	Terminal  string
	Gate      string
	Delay     *int
	Scheduled string
	Estimated string
	Actual    string
}

// RouteProvider queries the AviationStack-compatible `/flights` endpoint
// with a caller-supplied parameter shape and returns the first matching
// row, preferring an exact flight.icao match over raw["data"][0].
type RouteProvider struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewRouteProvider constructs a RouteProvider against baseURL (e.g.
// AVIATIONSTACK_API_URL) using apiKey as access_key.
func NewRouteProvider(baseURL, apiKey string) *RouteProvider {
	return &RouteProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: routeRequestTimeout},
	}
}

// Query issues one request with extraParams merged onto access_key and
// limit=1, and returns the selected row. wantICAO, if non-empty, is used
// to prefer the row whose nested flight.icao matches it; otherwise the
// first row is used. A nil, nil result means the provider returned no
// rows for this shape.
func (p *RouteProvider) Query(extraParams url.Values, wantICAO string) (*RouteRow, error) {
	params := url.Values{
		"access_key": {p.apiKey},
		"limit":      {"1"},
	}
	for k, vs := range extraParams {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	reqURL := p.baseURL + "/flights?" + params.Encode()
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Type: TypeNetwork, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, &Error{Type: TypeNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Type: TypeNetwork, Message: err.Error()}
	}

	if errType, isErr := classifyStatus(resp.StatusCode); isErr {
		return nil, &Error{Type: errType, Message: "route provider error", StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Type: TypeServer, Message: "unexpected route provider status", StatusCode: resp.StatusCode}
	}

	var parsed asResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Type: TypeServer, Message: "decoding route response: " + err.Error()}
	}
	if len(parsed.Data) == 0 {
		return nil, nil
	}

	chosen := parsed.Data[0]
	if wantICAO != "" {
		for _, row := range parsed.Data {
			if row.Flight != nil && row.Flight.ICAO == wantICAO {
				chosen = row
				break
			}
		}
	}

	return chosen.toRow(), nil
}

type asResponse struct {
	Data []asFlight `json:"data"`
}

type asFlight struct {
	FlightDate   string        `json:"flight_date"`
	FlightStatus string        `json:"flight_status"`
	Departure    *asAirport    `json:"departure"`
	Arrival      *asAirport    `json:"arrival"`
	Airline      *asAirline    `json:"airline"`
	Flight       *asFlightInfo `json:"flight"`
}

type asAirport struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	ICAO      string `json:"icao"`
	Terminal  string `json:"terminal"`
	Gate      string `json:"gate"`
	Delay     *int   `json:"delay"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
	Actual    string `json:"actual"`
}

type asAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
	ICAO string `json:"icao"`
}

type asFlightInfo struct {
	Number string `json:"number"`
	IATA   string `json:"iata"`
	ICAO   string `json:"icao"`
}

func (f asFlight) toRow() *RouteRow {
	row := &RouteRow{
		FlightDate:   f.FlightDate,
		FlightStatus: f.FlightStatus,
	}
	if f.Flight != nil {
		row.FlightICAO = f.Flight.ICAO
		row.FlightIATA = f.Flight.IATA
		row.FlightNumber = f.Flight.Number
	}
	if f.Airline != nil {
		row.AirlineName = f.Airline.Name
	}
	if f.Departure != nil {
		row.Departure = f.Departure.toAirportRow()
	}
	if f.Arrival != nil {
		row.Arrival = f.Arrival.toAirportRow()
	}
	return row
}

func (a asAirport) toAirportRow() *AirportRow {
	return &AirportRow{
		Airport:   a.Airport,
		IATA:      a.IATA,
		ICAO:      a.ICAO,
		Terminal:  a.Terminal,
		Gate:      a.Gate,
		Delay:     a.Delay,
		Scheduled: a.Scheduled,
		Estimated: a.Estimated,
		Actual:    a.Actual,
	}
}
