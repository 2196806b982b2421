package contracts

// RankedEntry represents one entity on a leaderboard
// ⭐ SSOT: 랭킹 결과 전달 구조
type RankedEntry struct {
	Identity    string `json:"identity"`              // 개인 이름 또는 그룹 값
	Value       Value  `json:"metric_value"`          // 메트릭 값
	Rank        int    `json:"rank"`                  // 1-based, 동점 공유 없음
	Improvement *Value `json:"improvement,omitempty"` // 그룹 랭킹에서만 사용
}

// IsTopRanked checks if the entry is in top N ranks
func (e *RankedEntry) IsTopRanked(n int) bool {
	return e.Rank <= n && e.Rank > 0
}

// Board is a leaderboard scoped to one category value
type Board struct {
	Category string        `json:"category"` // 범주 키 (House)
	Value    string        `json:"value"`    // 범주 값 (Swarm)
	Entries  []RankedEntry `json:"entries"`
}

// StatLine is one row of a statistics block
type StatLine struct {
	Metric string `json:"metric"`
	Value  Value  `json:"value"`
	Label  string `json:"label,omitempty"` // 최대/최소 주차 라벨
}

// StatsBlock is the full statistics bundle of a record or group
type StatsBlock struct {
	Kind    string     `json:"kind"`    // "individual" 또는 범주 키
	Subject string     `json:"subject"` // 이름 또는 범주 값
	Lines   []StatLine `json:"lines"`
}
