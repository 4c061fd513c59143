// Package npi resolves prescriber practice locations from the CMS NPI
// Registry. Lookups are cached on disk across sessions because the registry
// is rate-limited and provider addresses change rarely; a failed lookup
// simply omits that identifier from location output.
package npi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://npiregistry.cms.hhs.gov/api/"

// Location is a provider practice address as returned by the registry.
type Location struct {
	NPI     string `json:"npi"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Label renders the "City, ST" display form, tolerating partial data.
func (l Location) Label() string {
	return strings.Trim(strings.TrimSpace(l.City)+", "+strings.TrimSpace(l.State), ", ")
}

// Client queries the NPI Registry API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a registry client. An empty baseURL uses the public
// registry endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// registry API response shapes (version 2.1).
type apiResponse struct {
	ResultCount int         `json:"result_count"`
	Results     []apiResult `json:"results"`
}

type apiResult struct {
	Basic struct {
		Name      string `json:"name"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"basic"`
	Addresses []struct {
		Address1   string `json:"address_1"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
	} `json:"addresses"`
}

// Lookup fetches the practice location for one NPI. A registry miss (zero
// results) returns ok=false with no error; transport and decode failures
// return an error the caller is expected to treat as a miss.
func (c *Client) Lookup(ctx context.Context, npi string) (Location, bool, error) {
	u := fmt.Sprintf("%s?number=%s&version=2.1", c.baseURL, url.QueryEscape(npi))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Location{}, false, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Location{}, false, fmt.Errorf("query npi registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, false, fmt.Errorf("npi registry returned %s", resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, false, fmt.Errorf("decode registry response: %w", err)
	}
	if body.ResultCount == 0 || len(body.Results) == 0 {
		return Location{}, false, nil
	}

	r := body.Results[0]
	name := r.Basic.Name
	if name == "" {
		name = strings.Trim(r.Basic.LastName+", "+r.Basic.FirstName, ", ")
	}
	loc := Location{NPI: npi, Name: name}
	if len(r.Addresses) > 0 {
		a := r.Addresses[0]
		loc.Address = a.Address1
		loc.City = a.City
		loc.State = a.State
		if len(a.PostalCode) > 5 {
			loc.Zip = a.PostalCode[:5]
		} else {
			loc.Zip = a.PostalCode
		}
	}
	return loc, true, nil
}
