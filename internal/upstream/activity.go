package upstream

// Activity models the upstream activity API's response body.
// An empty Key means the upstream had nothing to suggest.
type Activity struct {
	Activity      string  `json:"activity"`
	Type          string  `json:"type"`
	Participants  int     `json:"participants"`
	Price         float64 `json:"price"`
	Link          string  `json:"link"`
	Key           string  `json:"key"`
	Accessibility float64 `json:"accessibility"`

	// Error is set by the upstream instead of Key when no activity matches.
	Error string `json:"error,omitempty"`
}

// Found reports whether a carries an upstream identifier.
func (a *Activity) Found() bool {
	return a != nil && a.Key != ""
}
