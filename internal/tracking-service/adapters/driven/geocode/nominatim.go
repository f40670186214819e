package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/ports"
)

const requestTimeout = time.Second * 5

// Nominatim reverse-geocodes coordinates against an OSM Nominatim endpoint.
type Nominatim struct {
	baseURL string
	client  *http.Client
}

func NewNominatim(cfg *config.Geocoderconfig) ports.IGeocoder {
	return &Nominatim{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?%s", n.baseURL, url.Values{
		"lat":    {fmt.Sprintf("%f", lat)},
		"lon":    {fmt.Sprintf("%f", lng)},
		"format": {"json"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "gocolis-tracking/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.DisplayName == "" {
		return "", fmt.Errorf("geocoder returned no address")
	}
	return body.DisplayName, nil
}
