// Package museum wraps the Met Museum public collection API.
package museum

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	BaseURL string
	DryRun  bool // skip HTTP and return canned data
	HTTP    *http.Client
}

type SearchResult struct {
	Total     int     `json:"total"`
	ObjectIDs []int64 `json:"objectIDs"`
}

type Object struct {
	ObjectID          int64  `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	Medium            string `json:"medium"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	Department        string `json:"department"`
	ObjectURL         string `json:"objectURL"`
}

func NewClient(baseURL string, dryRun bool) *Client {
	return &Client{
		BaseURL: baseURL,
		DryRun:  dryRun,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Search(query string) (*SearchResult, error) {
	if c.DryRun {
		return &SearchResult{Total: 1, ObjectIDs: []int64{436535}}, nil
	}

	u := fmt.Sprintf("%s/search?%s", c.BaseURL, url.Values{
		"q":         {query},
		"hasImages": {"true"},
	}.Encode())

	var res SearchResult
	if err := c.getJSON(u, &res); err != nil {
		return nil, fmt.Errorf("museum search: %w", err)
	}
	return &res, nil
}

func (c *Client) GetObject(id int64) (*Object, error) {
	if c.DryRun {
		return &Object{
			ObjectID:          id,
			Title:             "Wheat Field with Cypresses",
			ArtistDisplayName: "Vincent van Gogh",
			ObjectDate:        "1889",
			Medium:            "Oil on canvas",
		}, nil
	}

	var obj Object
	if err := c.getJSON(fmt.Sprintf("%s/objects/%d", c.BaseURL, id), &obj); err != nil {
		return nil, fmt.Errorf("museum object %d: %w", id, err)
	}
	if obj.ObjectID == 0 {
		return nil, fmt.Errorf("museum object %d: not found", id)
	}
	return &obj, nil
}

func (c *Client) getJSON(u string, out any) error {
	resp, err := c.HTTP.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}
