package scoring

import (
	"sort"

	"github.com/jsherman999/probe-go/internal/model"
)

// WordCompletionBonus is added when a reveal finishes a player's word.
// Applying it is the guess-resolution engine's decision, not this service's.
const WordCompletionBonus = 50

// positionPoints cycles across padded-word positions
var positionPoints = [3]int{5, 10, 15}

// Service provides the position-weighted scoring rules. It is stateless and
// deterministic.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// PointsForPosition returns the value of revealing the given position,
// ignoring blanks
func (s *Service) PointsForPosition(pos int) int {
	if pos < 0 {
		return 0
	}
	return positionPoints[pos%3]
}

// ScoreReveal sums the value of newly revealed positions. Padding blanks
// score nothing regardless of position.
func (s *Service) ScoreReveal(positions []int, isBlankAt func(int) bool) int {
	total := 0
	for _, pos := range positions {
		if isBlankAt(pos) {
			continue
		}
		total += s.PointsForPosition(pos)
	}
	return total
}

// FinalRanking orders players by score descending. Ties prefer the survivor,
// then the later-eliminated player, then the earlier turn order.
func (s *Service) FinalRanking(game *model.Game) []model.PlayerRank {
	players := make([]*model.Player, len(game.Players))
	copy(players, game.Players)

	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.IsEliminated != b.IsEliminated {
			return !a.IsEliminated
		}
		if a.EliminationOrder != b.EliminationOrder {
			return a.EliminationOrder > b.EliminationOrder
		}
		return a.TurnOrder < b.TurnOrder
	})

	ranking := make([]model.PlayerRank, 0, len(players))
	for i, p := range players {
		ranking = append(ranking, model.PlayerRank{
			Rank:        i + 1,
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Score:       p.TotalScore,
			Survived:    !p.IsEliminated,
		})
	}
	return ranking
}

// Interface for dependency injection
type ServiceInterface interface {
	PointsForPosition(pos int) int
	ScoreReveal(positions []int, isBlankAt func(int) bool) int
	FinalRanking(game *model.Game) []model.PlayerRank
}

var _ ServiceInterface = (*Service)(nil)
