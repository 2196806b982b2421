// Package leaderboard answers ranking and statistics queries against the
// installed roster generation.
//
// Every query reads the current generation exactly once and derives all of
// its output from that snapshot. Nothing derived is cached across calls, so a
// reload is visible to the very next query.
package leaderboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/contracts"
	"github.com/wonny/runboard/internal/grouping"
	"github.com/wonny/runboard/internal/observability"
	"github.com/wonny/runboard/internal/ranking"
	"github.com/wonny/runboard/internal/roster"
	"github.com/wonny/runboard/internal/stats"
	"github.com/wonny/runboard/pkg/logger"
)

// KindIndividual selects per-record values and statistics
const KindIndividual = "individual"

// Leaderboard is one ranked sequence
type Leaderboard struct {
	Generation string                  `json:"generation"`
	Metric     ranking.MetricID        `json:"metric"`
	Label      string                  `json:"label"`
	Order      contracts.Order         `json:"order"`
	Category   string                  `json:"category,omitempty"`
	Value      string                  `json:"value,omitempty"`
	Entries    []contracts.RankedEntry `json:"entries"`
}

// Boards is a set of per-value leaderboards of one category
type Boards struct {
	Generation string            `json:"generation"`
	Metric     ranking.MetricID  `json:"metric"`
	Label      string            `json:"label"`
	Order      contracts.Order   `json:"order"`
	Category   string            `json:"category"`
	Boards     []contracts.Board `json:"boards"`
}

// CategoryTotal is the total distance of one category value
type CategoryTotal struct {
	Value string          `json:"value"`
	Total contracts.Value `json:"total"`
}

// Service is the query façade over the roster store
type Service struct {
	store    *roster.Store
	board    *boardconfig.Config
	registry *ranking.Registry
	metrics  *observability.Metrics
	logger   *logger.Logger
}

// NewService creates the leaderboard service
func NewService(store *roster.Store, board *boardconfig.Config, metrics *observability.Metrics, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		board:    board,
		registry: ranking.NewRegistry(board.Thresholds.Ranking),
		metrics:  metrics,
		logger:   log,
	}
}

// Metrics lists the rankable metric definitions
func (s *Service) Metrics() []ranking.Definition {
	return s.registry.Definitions()
}

// CategoryKinds lists the selectable categories present in the current
// generation, in configured order
func (s *Service) CategoryKinds() ([]string, error) {
	r, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	kinds := make([]string, 0, len(s.board.Categories))
	for _, cat := range s.board.Categories {
		if r.HasAttribute(cat) {
			kinds = append(kinds, cat)
		}
	}
	return kinds, nil
}

// Individuals ranks every record by metric
func (s *Service) Individuals(metric, order string) (lb Leaderboard, err error) {
	defer s.observe("individuals", metric, time.Now(), &err)

	r, err := s.store.Current()
	if err != nil {
		return Leaderboard{}, err
	}
	def, err := s.registry.Lookup(metric)
	if err != nil {
		return Leaderboard{}, err
	}

	o := def.ResolveOrder(order)
	return Leaderboard{
		Generation: r.ID,
		Metric:     def.ID,
		Label:      def.Label,
		Order:      o,
		Entries:    ranking.RankRecords(r.Records, def.Compute, o),
	}, nil
}

// Categories ranks the values of category by the summed metric of their members
func (s *Service) Categories(category, metric, order string) (lb Leaderboard, err error) {
	defer s.observe("categories", metric, time.Now(), &err)

	r, def, err := s.resolve(category, metric)
	if err != nil {
		return Leaderboard{}, err
	}

	o := def.ResolveOrder(order)
	return Leaderboard{
		Generation: r.ID,
		Metric:     def.ID,
		Label:      def.Label,
		Order:      o,
		Category:   category,
		Entries:    ranking.RankCategories(r.Records, r.Labels(), category, def.Compute, o),
	}, nil
}

// WithinCategory ranks records independently inside each value of category
func (s *Service) WithinCategory(category, metric, order string) (b Boards, err error) {
	defer s.observe("within_category", metric, time.Now(), &err)

	r, def, err := s.resolve(category, metric)
	if err != nil {
		return Boards{}, err
	}

	o := def.ResolveOrder(order)
	return Boards{
		Generation: r.ID,
		Metric:     def.ID,
		Label:      def.Label,
		Order:      o,
		Category:   category,
		Boards:     ranking.RankWithinCategory(r.Records, category, def.Compute, o),
	}, nil
}

// Members ranks the records of one category value
func (s *Service) Members(category, value, metric, order string) (lb Leaderboard, err error) {
	defer s.observe("members", metric, time.Now(), &err)

	r, def, err := s.resolve(category, metric)
	if err != nil {
		return Leaderboard{}, err
	}
	g, ok := grouping.ByCategory(r.Records, category).Get(value)
	if !ok {
		return Leaderboard{}, fmt.Errorf("%w: %s=%q", contracts.ErrUnknownGroup, category, value)
	}

	o := def.ResolveOrder(order)
	return Leaderboard{
		Generation: r.ID,
		Metric:     def.ID,
		Label:      def.Label,
		Order:      o,
		Category:   category,
		Value:      g.Value,
		Entries:    ranking.RankRecords(g.Members, def.Compute, o),
	}, nil
}

// IndividualStats returns the statistics block of one record
func (s *Service) IndividualStats(identity string) (block contracts.StatsBlock, err error) {
	defer s.observe("individual_stats", "", time.Now(), &err)

	r, err := s.store.Current()
	if err != nil {
		return contracts.StatsBlock{}, err
	}
	rec, ok := r.Find(identity)
	if !ok {
		return contracts.StatsBlock{}, fmt.Errorf("%w: %q", contracts.ErrUnknownRecord, identity)
	}

	return RecordBlock(rec, s.board.Thresholds.Individual), nil
}

// GroupStats returns the statistics block of one category value
func (s *Service) GroupStats(category, value string) (block contracts.StatsBlock, err error) {
	defer s.observe("group_stats", "", time.Now(), &err)

	r, err := s.snapshot(category)
	if err != nil {
		return contracts.StatsBlock{}, err
	}
	g, ok := grouping.ByCategory(r.Records, category).Get(value)
	if !ok {
		return contracts.StatsBlock{}, fmt.Errorf("%w: %s=%q", contracts.ErrUnknownGroup, category, value)
	}

	return GroupBlock(g, r.Labels(), s.board.Thresholds.Group), nil
}

// Values lists selectable values: sorted identities for KindIndividual,
// otherwise the sorted distinct values of the category
func (s *Service) Values(kind string) (values []string, err error) {
	defer s.observe("values", "", time.Now(), &err)

	if kind == KindIndividual {
		r, err := s.store.Current()
		if err != nil {
			return nil, err
		}
		return grouping.SortedIdentities(r.Records), nil
	}

	r, err := s.snapshot(kind)
	if err != nil {
		return nil, err
	}
	return grouping.DistinctValues(r.Records, kind), nil
}

// CategoryTotals returns the total distance of every value of category in first-appearance order
func (s *Service) CategoryTotals(category string) (totals []CategoryTotal, err error) {
	defer s.observe("category_totals", "", time.Now(), &err)

	r, err := s.snapshot(category)
	if err != nil {
		return nil, err
	}

	groups := grouping.ByCategory(r.Records, category).Groups()
	totals = make([]CategoryTotal, len(groups))
	for i, g := range groups {
		totals[i] = CategoryTotal{Value: g.Value, Total: contracts.Value(stats.GroupTotal(g.Members))}
	}
	return totals, nil
}

// Improvement returns the week-over-week improvement series of one record
func (s *Service) Improvement(identity string) (series []stats.Improvement, err error) {
	defer s.observe("improvement", "", time.Now(), &err)

	r, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	rec, ok := r.Find(identity)
	if !ok {
		return nil, fmt.Errorf("%w: %q", contracts.ErrUnknownRecord, identity)
	}

	series = slices.Collect(stats.WeeklyImprovement(rec))
	if series == nil {
		series = []stats.Improvement{}
	}
	return series, nil
}

// snapshot reads the current generation and checks that category is both
// configured as selectable and present among its attributes
func (s *Service) snapshot(category string) (*contracts.Roster, error) {
	r, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	if !s.board.HasCategory(category) || !r.HasAttribute(category) {
		return nil, fmt.Errorf("%w: %q", contracts.ErrInvalidCategoryKind, category)
	}
	return r, nil
}

func (s *Service) resolve(category, metric string) (*contracts.Roster, ranking.Definition, error) {
	r, err := s.snapshot(category)
	if err != nil {
		return nil, ranking.Definition{}, err
	}
	def, err := s.registry.Lookup(metric)
	if err != nil {
		return nil, ranking.Definition{}, err
	}
	return r, def, nil
}

func (s *Service) observe(kind, metric string, start time.Time, errp *error) {
	s.metrics.ObserveQuery(kind, metric, *errp, time.Since(start))
	if *errp != nil {
		s.logger.WithError(*errp).WithFields(map[string]interface{}{
			"kind":   kind,
			"metric": metric,
		}).Debug("Leaderboard query rejected")
	}
}
