package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailyScore is the persisted result of scoring one user-day. Exactly one
// row per (user, date); recalculation fully replaces Score and Details.
type DailyScore struct {
	gorm.Model
	UserID  string         `gorm:"uniqueIndex:idx_daily_score_user_date;not null" json:"userId"`
	Date    time.Time      `gorm:"uniqueIndex:idx_daily_score_user_date;not null" json:"date"`
	Score   int            `json:"score"`
	Details datatypes.JSON `json:"details"`
}
