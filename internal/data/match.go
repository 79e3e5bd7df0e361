package data

import (
	"time"

	"gorm.io/gorm"
)

// MatchRecord is one finished game as seen by the local player.
type MatchRecord struct {
	ID         uint64 `gorm:"primaryKey"`
	PlayerName string `gorm:"not null"`
	Opponent   string `gorm:"index"`
	Role       string
	Outcome    string `gorm:"index; not null"`
	Turns      int
	Shots      int
	Hits       int
	StartedAt  time.Time
	Duration   time.Duration
}

// RecordMatch persists the MatchRecord to the database.
func RecordMatch(db *gorm.DB, match *MatchRecord) error {
	return db.Create(match).Error
}

// FindRecentMatches returns up to limit matches, most recently started first.
func FindRecentMatches(db *gorm.DB, limit int) ([]MatchRecord, error) {
	var matches []MatchRecord
	err := db.Order("started_at desc").Limit(limit).Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// FindMatchesAgainst returns every match played against opponent, most recent first.
func FindMatchesAgainst(db *gorm.DB, opponent string) ([]MatchRecord, error) {
	var matches []MatchRecord
	err := db.Where("opponent = ?", opponent).Order("started_at desc").Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// OutcomeTally counts matches per outcome.
type OutcomeTally struct {
	Outcome string
	Count   int64
}

// TallyOutcomes returns the number of recorded matches for each outcome,
// ordered by outcome.
func TallyOutcomes(db *gorm.DB) ([]OutcomeTally, error) {
	var tallies []OutcomeTally
	err := db.Model(&MatchRecord{}).
		Select("outcome, count(*) as count").
		Group("outcome").
		Order("outcome").
		Scan(&tallies).Error
	if err != nil {
		return nil, err
	}
	return tallies, nil
}
