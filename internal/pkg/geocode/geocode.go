package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Geocoder resolves coordinates to a human-readable address. Results are
// best-effort; callers are expected to fall back to FallbackAddress on error.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// FallbackAddress formats a bare coordinate pair for display when reverse
// geocoding is unavailable.
func FallbackAddress(lat, lon float64) string {
	return fmt.Sprintf("%.4f°, %.4f°", lat, lon)
}

type disabled struct{}

func (disabled) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return FallbackAddress(lat, lon), nil
}

// Disabled returns a Geocoder that skips lookups and always answers with the
// coordinate fallback. Used when no API key is configured.
func Disabled() Geocoder { return disabled{} }

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder reverse-geocodes through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	apiKey string
	client *http.Client
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey: apiKey,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleGeocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode API returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geocode response: %w", err)
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		return "", fmt.Errorf("geocode API status %q with %d results", body.Status, len(body.Results))
	}

	return body.Results[0].FormattedAddress, nil
}
