package model

import "fmt"

// Order selects the direction a retrieval walks the file in.
type Order string

const (
	// OrderAsc returns the oldest entries first.
	OrderAsc Order = "asc"
	// OrderDesc returns the newest entries first.
	OrderDesc Order = "desc"
)

// Retrieval bounds. Amount caps the number of entries returned, not the
// number of lines scanned.
const (
	DefaultAmount = 100
	MaxAmount     = 10000
)

// LogQuery describes one retrieval request against a log file.
type LogQuery struct {
	LogName  string   `json:"logName"`
	Amount   int      `json:"amount"`
	Severity Severity `json:"severity"`
	Order    Order    `json:"order"`
}

// DefaultQuery returns a query for logName with the service defaults:
// 100 entries, severity INFO, ascending.
func DefaultQuery(logName string) LogQuery {
	return LogQuery{
		LogName:  logName,
		Amount:   DefaultAmount,
		Severity: SeverityInfo,
		Order:    OrderAsc,
	}
}

// Validate checks the query bounds before any file is touched.
func (q LogQuery) Validate() error {
	if q.LogName == "" {
		return fmt.Errorf("logName is required")
	}
	if q.Amount < 0 || q.Amount > MaxAmount {
		return fmt.Errorf("amount %d out of range [0, %d]", q.Amount, MaxAmount)
	}
	if !q.Severity.Valid() {
		return fmt.Errorf("invalid severity %d", int(q.Severity))
	}
	if q.Order != OrderAsc && q.Order != OrderDesc {
		return fmt.Errorf("invalid order %q", q.Order)
	}
	return nil
}

// LogFile is one catalog record. Amount counts physical lines in the file,
// so it is always at least the number of parseable entries.
type LogFile struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// LogFiles is the wire shape of the catalog listing.
type LogFiles struct {
	LogFiles []LogFile `json:"logFiles"`
}
