package etl

import "fmt"

// DataSourceError wraps a connectivity or query fault from the purchase
// source. It is fatal to the run: nothing downstream can proceed without
// extracted data.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source: %s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// TransientDeliveryError is a retryable delivery fault: a network-level
// error or a status code in the retryable set. It only escapes the retry
// loop wrapped inside a PermanentDeliveryError once attempts are exhausted.
type TransientDeliveryError struct {
	StatusCode int // 0 for network-level faults
	Err        error
}

func (e *TransientDeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transient delivery failure: status %d", e.StatusCode)
	}
	return fmt.Sprintf("transient delivery failure: %v", e.Err)
}

func (e *TransientDeliveryError) Unwrap() error { return e.Err }

// PermanentDeliveryError marks one batch as undeliverable: either the
// response status is outside both the success range and the retryable set,
// or retries were exhausted (in which case Err holds the last transient
// cause). It is recorded in the report, never raised to abort the run.
type PermanentDeliveryError struct {
	CategoryID int
	StatusCode int
	Attempts   int
	Err        error
}

func (e *PermanentDeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("category %d: delivery failed after %d attempts: %v",
			e.CategoryID, e.Attempts, e.Err)
	}
	return fmt.Sprintf("category %d: delivery failed: status %d",
		e.CategoryID, e.StatusCode)
}

func (e *PermanentDeliveryError) Unwrap() error { return e.Err }
