package contracts

import "time"

// Roster is one generation of records (one year, one unit scaling)
// ⭐ SSOT: 세대(generation) 단위 스냅샷. 부분 수정 금지, 통째로 교체
type Roster struct {
	ID         string    `json:"id"`         // 입력 fingerprint (sha256)
	Year       string    `json:"year"`       // 데이터 연도
	Unit       string    `json:"unit"`       // 단위 이름 (km, mi)
	Scale      float64   `json:"scale"`      // 적용된 단위 배율
	Attributes []string  `json:"attributes"` // 범주형 컬럼 (헤더 순서)
	Records    []Record  `json:"records"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// Len returns the number of records
func (r *Roster) Len() int {
	return len(r.Records)
}

// Labels returns the observation label axis, read from the first record
func (r *Roster) Labels() []string {
	if len(r.Records) == 0 {
		return nil
	}
	return r.Records[0].Labels()
}

// Find looks up a record by identity
func (r *Roster) Find(identity string) (Record, bool) {
	for _, rec := range r.Records {
		if rec.Identity == identity {
			return rec, true
		}
	}
	return Record{}, false
}

// HasAttribute checks if key is one of the categorical columns
func (r *Roster) HasAttribute(key string) bool {
	for _, attr := range r.Attributes {
		if attr == key {
			return true
		}
	}
	return false
}
