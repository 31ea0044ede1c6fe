package models

import "github.com/google/uuid"

// IntStat is an integer statistic with one value per side. Percentages are
// stored as their integer value (65% -> 65).
type IntStat struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// FloatStat is a decimal statistic with one value per side.
type FloatStat struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Ratio is a completed/total compound, shown on the page as "NN% (A/B)"
// where A is completed and B is total.
type Ratio struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// RatioStat is a compound statistic with one ratio per side.
type RatioStat struct {
	Home Ratio `json:"home"`
	Away Ratio `json:"away"`
}

// MatchStatistics holds the labeled statistic rows of a played match. Every
// field is optional because the set of rows the site shows varies by
// competition and season; the extractor skips labels it does not know.
type MatchStatistics struct {
	ID      uuid.UUID `json:"statistics_id"`
	MatchID uuid.UUID `json:"match_id"`

	ExpectedGoals  *FloatStat `json:"expected_goals,omitempty"`
	Possession     *IntStat   `json:"ball_possession,omitempty"`
	GoalAttempts   *IntStat   `json:"goal_attempts,omitempty"`
	ShotsOnGoal    *IntStat   `json:"shots_on_goal,omitempty"`
	ShotsOffGoal   *IntStat   `json:"shots_off_goal,omitempty"`
	BlockedShots   *IntStat   `json:"blocked_shots,omitempty"`
	BigChances     *IntStat   `json:"big_chances,omitempty"`
	CornerKicks    *IntStat   `json:"corner_kicks,omitempty"`
	ShotsInsideBox *IntStat   `json:"shots_inside_box,omitempty"`
	HitWoodwork    *IntStat   `json:"hit_woodwork,omitempty"`

	FreeKicks       *IntStat `json:"free_kicks,omitempty"`
	Offsides        *IntStat `json:"offsides,omitempty"`
	ThrowIns        *IntStat `json:"throw_ins,omitempty"`
	GoalkeeperSaves *IntStat `json:"goalkeeper_saves,omitempty"`
	Fouls           *IntStat `json:"fouls,omitempty"`
	YellowCards     *IntStat `json:"yellow_cards,omitempty"`
	RedCards        *IntStat `json:"red_cards,omitempty"`

	TouchesInBox  *IntStat   `json:"touches_in_opposition_box,omitempty"`
	Passes        *RatioStat `json:"passes,omitempty"`
	FinalThird    *RatioStat `json:"final_third_entries,omitempty"`
	Crosses       *RatioStat `json:"crosses,omitempty"`
	Tackles       *RatioStat `json:"tackles,omitempty"`
	Clearances    *IntStat   `json:"clearances,omitempty"`
	Interceptions *IntStat   `json:"interceptions,omitempty"`
}

// NewMatchStatistics creates an empty statistics record for the given match.
func NewMatchStatistics(matchID uuid.UUID) *MatchStatistics {
	return &MatchStatistics{ID: uuid.New(), MatchID: matchID}
}
