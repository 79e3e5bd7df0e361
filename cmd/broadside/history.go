package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/dcrodman/broadside/internal/data"
)

func history(c *cli.Context) error {
	cfg, err := setUp(c)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Println("match history is disabled; set history.enabled in config.yaml")
		return nil
	}

	db, err := data.Open(cfg)
	if err != nil {
		return err
	}
	defer data.Shutdown(db)

	matches, err := findMatches(db, c.String("opponent"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("error reading match history: %w", err)
	}
	if len(matches) == 0 {
		fmt.Println("no games recorded yet")
		return nil
	}

	fmt.Println()
	fmt.Printf("| %-19s | %-21s | %-15s | %-13s | %5s | %9s |\n",
		"STARTED", "OPPONENT", "ROLE", "OUTCOME", "TURNS", "HITS")
	for _, m := range matches {
		fmt.Printf("| %-19s | %-21s | %-15s | %-13s | %5d | %4d/%-4d |\n",
			m.StartedAt.Local().Format("2006-01-02 15:04:05"),
			m.Opponent,
			m.Role,
			m.Outcome,
			m.Turns,
			m.Hits,
			m.Shots,
		)
	}
	fmt.Println()

	tallies, err := data.TallyOutcomes(db)
	if err != nil {
		return fmt.Errorf("error tallying match history: %w", err)
	}
	for _, tally := range tallies {
		fmt.Printf("%s: %d\n", tally.Outcome, tally.Count)
	}
	return nil
}

func findMatches(db *gorm.DB, opponent string, limit int) ([]data.MatchRecord, error) {
	if opponent == "" {
		return data.FindRecentMatches(db, limit)
	}
	matches, err := data.FindMatchesAgainst(db, opponent)
	if err != nil {
		return nil, err
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
