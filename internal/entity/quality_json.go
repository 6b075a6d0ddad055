package entity

import (
	"encoding/json"
	"time"
)

// MarshalJSON returns the JSON encoding.
func (m *Quality) MarshalJSON() ([]byte, error) {
	var params json.RawMessage

	if m.ParamsJSON != "" && json.Valid([]byte(m.ParamsJSON)) {
		params = json.RawMessage(m.ParamsJSON)
	}

	return json.Marshal(&struct {
		RunUID    string
		Job       string
		JobHash   string `json:",omitempty"`
		Measure   string
		Value     string
		Fallback  bool
		Params    json.RawMessage `json:",omitempty"`
		Clusters  int             `json:",omitempty"`
		Items     int             `json:",omitempty"`
		CreatedAt time.Time
	}{
		RunUID:    m.RunUID,
		Job:       m.JobName,
		JobHash:   m.JobHash,
		Measure:   m.MeasureName,
		Value:     m.QualityValue,
		Fallback:  m.Fallback,
		Params:    params,
		Clusters:  m.Clusters,
		Items:     m.Items,
		CreatedAt: m.CreatedAt,
	})
}
