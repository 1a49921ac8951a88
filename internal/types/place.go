package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Start point values prepended to every generated route.
const (
	StartPointName        = "Start Point"
	StartPointDescription = "Your location"
)

// Coordinate is a latitude or longitude in decimal degrees.
// It decodes from a JSON number or a numeric string ("48.85", " 2.35km")
// and always encodes as a JSON number.
type Coordinate float64

var leadingFloat = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Coordinate(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coordinate must be a number or numeric string: %w", err)
	}
	v, err := ParseCoordinate(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(float64(c), 'f', -1, 64)
}

// ParseCoordinate reads the longest leading decimal number of s, ignoring
// leading whitespace and any trailing text.
func ParseCoordinate(s string) (Coordinate, error) {
	prefix := leadingFloat.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0, fmt.Errorf("%w: %q is not a coordinate", ErrBadRequest, s)
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a coordinate", ErrBadRequest, s)
	}
	return Coordinate(v), nil
}

// Place is a single stop on a generated route.
type Place struct {
	Name        string     `json:"name"`
	Lat         Coordinate `json:"lat"`
	Lng         Coordinate `json:"lng"`
	Description string     `json:"description"`
}

// StartPoint returns the synthetic first stop located at the caller's position.
func StartPoint(lat, lng Coordinate) Place {
	return Place{
		Name:        StartPointName,
		Lat:         lat,
		Lng:         lng,
		Description: StartPointDescription,
	}
}

// RouteRequest is the body of POST /api/create-route.
// Mode is accepted and logged but does not influence generation.
type RouteRequest struct {
	Lat  *Coordinate `json:"lat"`
	Lng  *Coordinate `json:"lng"`
	Mode string      `json:"mode"`
	Type string      `json:"type"`
}

// Validate reports whether the request carries both coordinates.
func (r RouteRequest) Validate() error {
	if r.Lat == nil || r.Lng == nil {
		return fmt.Errorf("%w: lat and lng are required", ErrBadRequest)
	}
	return nil
}

// RouteResponse is the body returned by POST /api/create-route.
// Places holds the start point followed by the model's records exactly as
// it returned them, including fields Place does not know about.
type RouteResponse struct {
	Places []json.RawMessage `json:"places"`
}
