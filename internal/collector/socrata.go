package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PureGit90/COT-Monitor/internal/model"
)

// DefaultBaseURL is the CFTC "Traders in Financial Futures" dataset on
// the public Socrata endpoint.
const DefaultBaseURL = "https://publicreporting.cftc.gov/resource/gpe5-46if.json"

var selectFields = strings.Join([]string{
	"report_date_as_yyyy_mm_dd",
	"contract_market_name",
	"lev_money_positions_long",
	"lev_money_positions_short",
	"nonrept_positions_long_all",
	"nonrept_positions_short_all",
}, ",")

// SocrataFetcher implements Fetcher against the CFTC Socrata API.
type SocrataFetcher struct {
	BaseURL  string
	AppToken string
	Client   *http.Client
}

// NewSocrataFetcher creates a fetcher with optional proxy support.
func NewSocrataFetcher(baseURL, appToken, proxyURL string) *SocrataFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &SocrataFetcher{
		BaseURL:  baseURL,
		AppToken: appToken,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *SocrataFetcher) Name() string { return "cftc-socrata" }

// FetchRecords queries the dataset for one contract, newest first.
func (f *SocrataFetcher) FetchRecords(contractName string, limit int) ([]model.RawRecord, error) {
	q := url.Values{}
	q.Set("$select", selectFields)
	// Socrata SoQL escapes single quotes by doubling them.
	q.Set("$where", fmt.Sprintf("contract_market_name='%s'", strings.ReplaceAll(contractName, "'", "''")))
	q.Set("$order", "report_date_as_yyyy_mm_dd DESC")
	q.Set("$limit", strconv.Itoa(limit))

	req, err := http.NewRequest("GET", f.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if f.AppToken != "" {
		req.Header.Set("X-App-Token", f.AppToken)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch records: status %d, body: %s", resp.StatusCode, string(body))
	}

	var records []model.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
