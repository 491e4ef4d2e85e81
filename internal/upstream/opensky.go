package upstream

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DoROAD-AI/skylink/internal/flightproc"
	"github.com/DoROAD-AI/skylink/internal/geomath"
	"github.com/DoROAD-AI/skylink/internal/token"
)

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 3
)

// RawTrackPoint is one point on an aircraft's historical path, shaped
// after the tracks-endpoint path array.
type RawTrackPoint struct {
	TimestampSec int64
	Latitude     float64
	Longitude    float64
	Altitude     float64
	Heading      float64
	OnGround     bool
}

// FlightClient fetches state vectors and historical tracks from the
// OpenSky-compatible provider, authenticating via a caller-supplied
// token.Manager so BYOK sessions and the anonymous process-wide manager
// share the same client.
type FlightClient struct {
	statesURL string
	tracksURL string
	http      *http.Client
}

// NewFlightClient constructs a FlightClient. statesURL and tracksURL are
// the base states/tracks endpoints (e.g. OPENSKY_API_URL,
// OPENSKY_TRACKS_API_URL).
func NewFlightClient(statesURL, tracksURL string) *FlightClient {
	return &FlightClient{
		statesURL: statesURL,
		tracksURL: tracksURL,
		http:      &http.Client{Timeout: requestTimeout},
	}
}

// FetchStates fetches state vectors within the bounding box derived from
// user and radiusKm.
func (c *FlightClient) FetchStates(user geomath.UserLocation, radiusKm float64, tm *token.Manager) ([]flightproc.RawStateVector, error) {
	latDelta := radiusKm / 111.0
	cosLat := math.Cos(user.Latitude * math.Pi / 180)
	if math.Abs(cosLat) < 1e-6 {
		if cosLat < 0 {
			cosLat = -1e-6
		} else {
			cosLat = 1e-6
		}
	}
	lonDelta := radiusKm / (111.0 * cosLat)

	params := url.Values{
		"lamin": {strconv.FormatFloat(user.Latitude-latDelta, 'f', -1, 64)},
		"lamax": {strconv.FormatFloat(user.Latitude+latDelta, 'f', -1, 64)},
		"lomin": {strconv.FormatFloat(user.Longitude-lonDelta, 'f', -1, 64)},
		"lomax": {strconv.FormatFloat(user.Longitude+lonDelta, 'f', -1, 64)},
	}

	body, err := c.doRequest(c.statesURL, params, tm)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Time   int64           `json:"time"`
		States [][]interface{} `json:"states"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Type: TypeServer, Message: "decoding states response: " + err.Error()}
	}

	out := make([]flightproc.RawStateVector, 0, len(parsed.States))
	for _, row := range parsed.States {
		sv, ok := parseStateVector(row)
		if !ok {
			continue
		}
		out = append(out, sv)
	}
	return out, nil
}

// FetchTrack fetches the historical path for icao24.
func (c *FlightClient) FetchTrack(icao24 string, tm *token.Manager) ([]RawTrackPoint, error) {
	params := url.Values{
		"icao24": {icao24},
		"time":   {strconv.FormatInt(time.Now().Unix(), 10)},
	}

	body, err := c.doRequest(c.tracksURL, params, tm)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ICAO24    string          `json:"icao24"`
		StartTime int64           `json:"startTime"`
		EndTime   int64           `json:"endTime"`
		Path      [][]interface{} `json:"path"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{Type: TypeServer, Message: "decoding track response: " + err.Error()}
	}

	out := make([]RawTrackPoint, 0, len(parsed.Path))
	for _, row := range parsed.Path {
		pt, ok := parseTrackPoint(row)
		if !ok {
			continue
		}
		out = append(out, pt)
	}
	return out, nil
}

// doRequest performs one logical request, making up to maxAttempts
// attempts on transient failure with a `attempt * 1s` backoff. Within each
// attempt, a 401 triggers a forced token refresh and a single inner
// retry of that same attempt, per the component contract.
func (c *FlightClient) doRequest(baseURL string, params url.Values, tm *token.Manager) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, statusCode, err := c.attempt(baseURL, params, tm, false)
		if err == nil {
			return body, nil
		}

		if statusCode == http.StatusUnauthorized && tm != nil {
			tm.InvalidateToken()
			body, statusCode, err = c.attempt(baseURL, params, tm, true)
			if err == nil {
				return body, nil
			}
		}

		lastErr = err
		if !isTransient(statusCode, err) {
			return nil, lastErr
		}

		if attempt < maxAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	return nil, lastErr
}

// attempt performs exactly one HTTP round trip.
func (c *FlightClient) attempt(baseURL string, params url.Values, tm *token.Manager, forceRefresh bool) ([]byte, int, error) {
	reqURL := baseURL
	if params != nil {
		reqURL = baseURL + "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, &Error{Type: TypeNetwork, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	if tm != nil {
		header, err := tm.GetAuthorizationHeader(token.GetHeaderOpts{ForceRefresh: forceRefresh})
		if err != nil {
			return nil, 0, &Error{Type: TypeOpenSky, Message: "token refresh failed: " + err.Error()}
		}
		if header != nil {
			req.Header.Set("Authorization", *header)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &Error{Type: TypeNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{Type: TypeNetwork, Message: err.Error()}
	}

	if errType, isErr := classifyStatus(resp.StatusCode); isErr {
		return nil, resp.StatusCode, &Error{Type: errType, Message: fmt.Sprintf("HTTP %d", resp.StatusCode), StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &Error{Type: TypeServer, Message: fmt.Sprintf("unexpected HTTP %d", resp.StatusCode), StatusCode: resp.StatusCode}
	}

	return body, resp.StatusCode, nil
}

func isTransient(statusCode int, err error) bool {
	var uerr *Error
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok {
		uerr = e
	}
	if uerr == nil {
		return true // unclassified error, treat as transient
	}
	return uerr.Type == TypeNetwork || uerr.Type == TypeServer || statusCode == 503 || statusCode == 429
}

// parseStateVector converts one positional states row into a
// RawStateVector, per the index layout in the external interface
// contract. Rows with a null icao24 are skipped (ok=false).
func parseStateVector(row []interface{}) (flightproc.RawStateVector, bool) {
	var sv flightproc.RawStateVector

	if len(row) == 0 || row[0] == nil {
		return sv, false
	}
	icao, ok := row[0].(string)
	if !ok || icao == "" {
		return sv, false
	}
	sv.ICAO24 = icao

	if v := str(row, 1); v != nil {
		sv.Callsign = *v
	}
	if v := str(row, 2); v != nil {
		sv.OriginCountry = *v
	}
	if v := num(row, 3); v != nil {
		t := int64(*v)
		sv.TimePosition = &t
	}
	if v := num(row, 4); v != nil {
		sv.LastContact = int64(*v)
	}
	sv.Longitude = num(row, 5)
	sv.Latitude = num(row, 6)
	sv.GeoAltitude = num(row, 7)
	if v := boolAt(row, 8); v != nil {
		sv.OnGround = *v
	}
	if v := num(row, 9); v != nil {
		sv.Velocity = *v
	}
	if v := num(row, 10); v != nil {
		sv.TrueTrack = *v
	}
	if v := num(row, 11); v != nil {
		sv.VerticalRate = *v
	}
	sv.BaroAltitude = num(row, 13)
	if v := str(row, 14); v != nil {
		sv.Squawk = *v
	}
	if v := num(row, 16); v != nil {
		sv.PositionSource = int(*v)
	}

	return sv, true
}

func parseTrackPoint(row []interface{}) (RawTrackPoint, bool) {
	var pt RawTrackPoint
	if len(row) < 4 {
		return pt, false
	}
	ts := num(row, 0)
	lat := num(row, 1)
	lon := num(row, 2)
	alt := num(row, 3)
	if ts == nil || lat == nil || lon == nil || alt == nil {
		return pt, false
	}
	pt.TimestampSec = int64(*ts)
	pt.Latitude = *lat
	pt.Longitude = *lon
	pt.Altitude = *alt
	if v := num(row, 4); v != nil {
		pt.Heading = *v
	}
	if v := boolAt(row, 5); v != nil {
		pt.OnGround = *v
	}
	return pt, true
}

func str(row []interface{}, i int) *string {
	if i >= len(row) || row[i] == nil {
		return nil
	}
	if v, ok := row[i].(string); ok {
		return &v
	}
	return nil
}

func num(row []interface{}, i int) *float64 {
	if i >= len(row) || row[i] == nil {
		return nil
	}
	if v, ok := row[i].(float64); ok {
		return &v
	}
	return nil
}

func boolAt(row []interface{}, i int) *bool {
	if i >= len(row) || row[i] == nil {
		return nil
	}
	if v, ok := row[i].(bool); ok {
		return &v
	}
	return nil
}
