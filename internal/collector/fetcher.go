package collector

import "github.com/PureGit90/COT-Monitor/internal/model"

// Fetcher defines the interface for fetching raw COT records.
type Fetcher interface {
	// FetchRecords returns up to limit weekly records for the named
	// contract, newest first as the provider serves them.
	FetchRecords(contractName string, limit int) ([]model.RawRecord, error)
	Name() string
}
