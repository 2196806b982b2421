package contracts

// NotAvailable is the bucket value for an absent categorical attribute
const NotAvailable = "N/A"

// Observation is one (chronological label, value) pair of a record
type Observation struct {
	Label string  `json:"label"` // 관측 라벨 (예: 날짜 suffix)
	Value float64 `json:"value"` // 결측/비숫자는 0
}

// Record represents one tracked individual
// ⭐ SSOT: 개인 기록 구조는 여기서만 정의
type Record struct {
	Identity     string            `json:"identity"`
	Attributes   map[string]string `json:"attributes"`   // 범주형 속성 (house, gender, grade)
	Observations []Observation     `json:"observations"` // 수집 순서 = 시간 순서
}

// Attribute returns the stringified attribute value, or NotAvailable when absent
func (r Record) Attribute(key string) string {
	if v, ok := r.Attributes[key]; ok {
		return v
	}
	return NotAvailable
}

// ValueAt returns the observation value for label, 0 when the label is missing
func (r Record) ValueAt(label string) float64 {
	for _, obs := range r.Observations {
		if obs.Label == label {
			return obs.Value
		}
	}
	return 0
}

// Values returns observation values in chronological order
func (r Record) Values() []float64 {
	values := make([]float64, len(r.Observations))
	for i, obs := range r.Observations {
		values[i] = obs.Value
	}
	return values
}

// Labels returns observation labels in chronological order
func (r Record) Labels() []string {
	labels := make([]string, len(r.Observations))
	for i, obs := range r.Observations {
		labels[i] = obs.Label
	}
	return labels
}
