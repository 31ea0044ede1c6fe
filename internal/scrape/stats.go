package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fixscore/internal/models"
)

// compoundRe matches the "NN% (A/B)" rendering of completed/total
// statistics. A is the completed count, B the total.
var compoundRe = regexp.MustCompile(`^\s*\d+\s*%\s*\(\s*(\d+)\s*/\s*(\d+)\s*\)\s*$`)

func parseStatInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseStatFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseStatPercent reads "65%" as 65.
func parseStatPercent(s string) (int, error) {
	return strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// parseStatRatio reads "88% (522/592)" as completed=522, total=592. The
// leading percentage is redundant and discarded.
func parseStatRatio(s string) (models.Ratio, error) {
	m := compoundRe.FindStringSubmatch(s)
	if m == nil {
		return models.Ratio{}, fmt.Errorf("not a completed/total value: %q", s)
	}
	completed, _ := strconv.Atoi(m[1])
	total, _ := strconv.Atoi(m[2])
	return models.Ratio{Completed: completed, Total: total}, nil
}

type statSetter func(st *models.MatchStatistics, home, away string) error

func intSetter(field func(*models.MatchStatistics) **models.IntStat) statSetter {
	return numSetter(field, parseStatInt)
}

func percentSetter(field func(*models.MatchStatistics) **models.IntStat) statSetter {
	return numSetter(field, parseStatPercent)
}

func numSetter(field func(*models.MatchStatistics) **models.IntStat, parse func(string) (int, error)) statSetter {
	return func(st *models.MatchStatistics, home, away string) error {
		h, err := parse(home)
		if err != nil {
			return err
		}
		a, err := parse(away)
		if err != nil {
			return err
		}
		*field(st) = &models.IntStat{Home: h, Away: a}
		return nil
	}
}

func floatSetter(field func(*models.MatchStatistics) **models.FloatStat) statSetter {
	return func(st *models.MatchStatistics, home, away string) error {
		h, err := parseStatFloat(home)
		if err != nil {
			return err
		}
		a, err := parseStatFloat(away)
		if err != nil {
			return err
		}
		*field(st) = &models.FloatStat{Home: h, Away: a}
		return nil
	}
}

func ratioSetter(field func(*models.MatchStatistics) **models.RatioStat) statSetter {
	return func(st *models.MatchStatistics, home, away string) error {
		h, err := parseStatRatio(home)
		if err != nil {
			return err
		}
		a, err := parseStatRatio(away)
		if err != nil {
			return err
		}
		*field(st) = &models.RatioStat{Home: h, Away: a}
		return nil
	}
}

// statLabels maps the row label as shown on the page (lowercased) to the
// statistic it fills. The schema on the site evolves independently of this
// table; unknown labels are logged and skipped, never fatal.
var statLabels = map[string]statSetter{
	"expected goals (xg)": floatSetter(func(s *models.MatchStatistics) **models.FloatStat { return &s.ExpectedGoals }),
	"ball possession":     percentSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.Possession }),
	"goal attempts":       intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.GoalAttempts }),
	"shots on goal":       intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.ShotsOnGoal }),
	"shots off goal":      intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.ShotsOffGoal }),
	"blocked shots":       intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.BlockedShots }),
	"big chances":         intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.BigChances }),
	"corner kicks":        intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.CornerKicks }),
	"shots inside box":    intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.ShotsInsideBox }),
	"hit woodwork":        intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.HitWoodwork }),
	"free kicks":          intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.FreeKicks }),
	"offsides":            intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.Offsides }),
	"throw-ins":           intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.ThrowIns }),
	"goalkeeper saves":    intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.GoalkeeperSaves }),
	"fouls":               intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.Fouls }),
	"yellow cards":        intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.YellowCards }),
	"red cards":           intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.RedCards }),
	"touches in opposition box": intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.TouchesInBox }),
	"passes":                    ratioSetter(func(s *models.MatchStatistics) **models.RatioStat { return &s.Passes }),
	"passes in final third":     ratioSetter(func(s *models.MatchStatistics) **models.RatioStat { return &s.FinalThird }),
	"crosses":                   ratioSetter(func(s *models.MatchStatistics) **models.RatioStat { return &s.Crosses }),
	"tackles":                   ratioSetter(func(s *models.MatchStatistics) **models.RatioStat { return &s.Tackles }),
	"clearances":                intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.Clearances }),
	"interceptions":             intSetter(func(s *models.MatchStatistics) **models.IntStat { return &s.Interceptions }),
}

// applyStatRow fills the statistic named by label with the two side values.
// Returns false for labels not in the schema table.
func applyStatRow(st *models.MatchStatistics, label, home, away string) (known bool, err error) {
	setter, ok := statLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return false, nil
	}
	return true, setter(st, home, away)
}
