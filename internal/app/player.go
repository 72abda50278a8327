package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/okian/iplstat/internal/adapters/repository"
	"github.com/okian/iplstat/internal/domain/dedupe"
	"github.com/okian/iplstat/internal/domain/model"
	"github.com/okian/iplstat/internal/domain/scoring"
	"github.com/okian/iplstat/pkg/logger"
)

const maxSuggestions = 3

// FindPlayer looks a player up by exact name, then by case-folded name.
// On a miss the error is a *PlayerNotFoundError with close matches.
func (s *Service) FindPlayer(ctx context.Context, name string) (Profile, error) {
	bat, batErr := s.battingRecords(ctx)
	bowl, bowlErr := s.bowlingRecords(ctx)
	if batErr != nil && bowlErr != nil {
		return Profile{}, batErr
	}
	for _, err := range []error{batErr, bowlErr} {
		if err != nil && !errors.Is(err, repository.ErrNotLoaded) {
			return Profile{}, err
		}
	}

	wanted := strings.TrimSpace(name)
	if wanted == "" {
		return Profile{}, &PlayerNotFoundError{Name: name}
	}

	p, ok := match(bat, bowl, func(n string) bool { return n == wanted })
	if !ok {
		folded := fold(wanted)
		p, ok = match(bat, bowl, func(n string) bool { return fold(n) == folded })
	}
	if !ok {
		err := &PlayerNotFoundError{Name: name, Suggestions: s.suggest(wanted, bat, bowl)}
		s.logger.Debug(ctx, "player not found",
			logger.String("session", s.ID()),
			logger.String("player", name),
			logger.Int("suggestions", len(err.Suggestions)),
		)
		return Profile{}, err
	}

	if p.Batting != nil {
		if rate, ok := scoring.BoundaryStrikeRate(*p.Batting); ok {
			p.BoundaryStrikeRate = &rate
		}
	}
	if p.Bowling != nil && scoring.HaulWeight(*p.Bowling) > 0 {
		rate := scoring.MultiWicketStrikeRate(*p.Bowling)
		p.MultiWicketStrikeRate = &rate
	}
	return p, nil
}

// match finds the first batting row accepted by eq and joins the bowling row
// with the same name. Without a batting row the bowling table is searched.
func match(bat []model.BattingRecord, bowl []model.BowlingRecord, eq func(string) bool) (Profile, bool) {
	var p Profile
	for i := range bat {
		if eq(bat[i].Player) {
			r := bat[i]
			p.Name, p.Batting = r.Player, &r
			break
		}
	}
	for i := range bowl {
		hit := bowl[i].Player == p.Name
		if p.Name == "" {
			hit = eq(bowl[i].Player)
		}
		if hit {
			r := bowl[i]
			p.Name, p.Bowling = r.Player, &r
			break
		}
	}
	return p, p.Name != ""
}

// suggest returns up to maxSuggestions names within the configured edit
// distance, closest first.
func (s *Service) suggest(wanted string, bat []model.BattingRecord, bowl []model.BowlingRecord) []string {
	if s.suggestDistance == 0 {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}

	folded := fold(wanted)
	seen := dedupe.NewSet(dedupe.WithCapacity(len(bat) + len(bowl)))
	var found []candidate
	consider := func(n string) {
		if seen.SeenAndRecord(n) {
			return
		}
		if d := levenshtein.ComputeDistance(folded, fold(n)); d <= s.suggestDistance {
			found = append(found, candidate{name: n, dist: d})
		}
	}
	for _, r := range bat {
		consider(r.Player)
	}
	for _, r := range bowl {
		consider(r.Player)
	}

	slices.SortFunc(found, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(len(found), maxSuggestions))
	for _, c := range found[:min(len(found), maxSuggestions)] {
		out = append(out, c.name)
	}
	return out
}

// fold normalizes a name for case-insensitive comparison.
func fold(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
