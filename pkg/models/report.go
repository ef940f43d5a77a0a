package models

// BatchResult records the outcome of delivering one batch.
type BatchResult struct {
	CategoryID int
	Records    int
	Attempts   int
	Err        error // nil on success
}

// DeliveryReport aggregates the per-batch outcomes of one run.
type DeliveryReport struct {
	Results []BatchResult
}

func (r DeliveryReport) Successes() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

func (r DeliveryReport) Failures() int {
	return len(r.Results) - r.Successes()
}

// FailedCategories lists the category IDs whose delivery permanently failed.
func (r DeliveryReport) FailedCategories() []int {
	var ids []int
	for _, res := range r.Results {
		if res.Err != nil {
			ids = append(ids, res.CategoryID)
		}
	}
	return ids
}
