package collector

import (
	"fmt"
	"time"

	"github.com/PureGit90/COT-Monitor/internal/model"
	"github.com/PureGit90/COT-Monitor/internal/series"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Records []model.RawRecord
	Err     error
	Weeks   int // generated record count when Records is nil
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRecords(_ string, limit int) ([]model.RawRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Records != nil {
		return m.Records, nil
	}
	weeks := m.Weeks
	if weeks == 0 || weeks > limit {
		weeks = limit
	}
	return generateMockRecords(weeks), nil
}

func generateMockRecords(weeks int) []model.RawRecord {
	records := make([]model.RawRecord, weeks)
	for i := 0; i < weeks; i++ {
		date := time.Now().AddDate(0, 0, -7*i)
		long := 50000 + (i%13)*1500
		short := 45000 + (i%7)*2200
		records[i] = model.RawRecord{
			ReportDate:    date.Format("2006-01-02"),
			LevMoneyLong:  fmt.Sprintf("%d", long),
			LevMoneyShort: fmt.Sprintf("%d", short),
			RetailLong:    "12000",
			RetailShort:   "9000",
		}
	}
	return records
}

// Collector fetches raw records for one instrument and builds its
// positioning series.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect returns the most recent weeks of positioning data for the
// named contract, ascending by date. series.ErrNoData passes through so
// callers can degrade to a NEUTRAL report.
func (c *Collector) Collect(contractName string, weeks int) (model.PositioningSeries, error) {
	records, err := c.Fetcher.FetchRecords(contractName, weeks)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", contractName, err)
	}
	s, err := series.Build(records, weeks)
	if err != nil {
		return nil, fmt.Errorf("build series for %s: %w", contractName, err)
	}
	return s, nil
}
