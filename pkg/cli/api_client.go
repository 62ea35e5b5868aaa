package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mittwald/fileprobe/pkg/probe"
	"github.com/pkg/errors"
)

const DefaultAPIAddress = "http://localhost:9102"

// ApiClient queries the status endpoint of a running probe server.
type ApiClient struct {
	apiAddress string
	client     *http.Client
}

func NewApiClient(apiAddress string, timeout time.Duration) *ApiClient {
	return &ApiClient{
		apiAddress: strings.TrimRight(apiAddress, "/"),
		client:     &http.Client{Timeout: timeout},
	}
}

// Status fetches /status. A 503 response still carries the probe results
// and is not treated as an error.
func (api *ApiClient) Status() (*probe.StatusResponse, error) {
	url := fmt.Sprintf("%s/status", api.apiAddress)

	resp, err := api.client.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, fmt.Errorf("probe server at %s returned status %q", url, resp.Status)
	}

	status := &probe.StatusResponse{}
	if err := json.NewDecoder(resp.Body).Decode(status); err != nil {
		return nil, errors.Wrapf(err, "failed to decode response from %s", url)
	}

	return status, nil
}
