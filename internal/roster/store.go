package roster

import (
	"fmt"
	"sync"
	"time"

	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/pkg/logger"
)

// GenerationInfo describes an installed roster generation
type GenerationInfo struct {
	Sequence    uint64    `json:"sequence"` // 설치 순번 (단조 증가)
	ID          string    `json:"id"`
	Year        string    `json:"year"`
	Unit        string    `json:"unit"`
	Records     int       `json:"records"`
	InstalledAt time.Time `json:"installed_at"`
}

// Store holds the current roster generation
// ⭐ SSOT: 세대 교체는 Install()에서만. 필드 단위 수정 금지
//
// An installed *contracts.Roster is treated as immutable; a reload builds a new
// Roster and installs it whole. Readers that called Current() keep a consistent
// view of the generation they received.
type Store struct {
	mu      sync.RWMutex
	current *contracts.Roster
	info    GenerationInfo
	subs    map[int]chan GenerationInfo
	nextSub int
	logger  *logger.Logger
}

// NewStore creates an empty store
func NewStore(log *logger.Logger) *Store {
	return &Store{
		subs:   make(map[int]chan GenerationInfo),
		logger: log,
	}
}

// Install atomically replaces the current generation and notifies subscribers
func (s *Store) Install(r *contracts.Roster) (GenerationInfo, error) {
	if r == nil {
		return GenerationInfo{}, fmt.Errorf("install roster: %w", contracts.ErrNoGeneration)
	}

	s.mu.Lock()
	s.info = GenerationInfo{
		Sequence:    s.info.Sequence + 1,
		ID:          r.ID,
		Year:        r.Year,
		Unit:        r.Unit,
		Records:     r.Len(),
		InstalledAt: time.Now(),
	}
	s.current = r
	info := s.info

	for _, ch := range s.subs {
		// 느린 구독자는 알림을 건너뜀 (최신 세대는 Current()로 조회)
		select {
		case ch <- info:
		default:
		}
	}
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"sequence": info.Sequence,
		"id":       info.ID,
		"year":     info.Year,
		"unit":     info.Unit,
		"records":  info.Records,
	}).Info("Roster generation installed")

	return info, nil
}

// Current returns the installed generation
func (s *Store) Current() (*contracts.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, contracts.ErrNoGeneration
	}
	return s.current, nil
}

// Snapshot returns the installed generation together with its metadata,
// read under one lock so both describe the same install
func (s *Store) Snapshot() (*contracts.Roster, GenerationInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, GenerationInfo{}, contracts.ErrNoGeneration
	}
	return s.current, s.info, nil
}

// Info returns metadata of the installed generation
func (s *Store) Info() (GenerationInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.info, s.current != nil
}

// Subscribe returns a channel receiving every subsequent install, and a cancel func
func (s *Store) Subscribe(buffer int) (<-chan GenerationInfo, func()) {
	if buffer < 1 {
		buffer = 1
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan GenerationInfo, buffer)
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}

	return ch, cancel
}
