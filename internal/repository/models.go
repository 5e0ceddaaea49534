package repository

import "time"

type tipModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:64"`
	Text      string    `gorm:"column:text;not null"`
	Category  string    `gorm:"column:category;not null;index"`
	Views     int       `gorm:"column:views;not null;default:0"`
	Favorites int       `gorm:"column:favorites;not null;default:0"`
	Rating    int       `gorm:"column:rating;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (tipModel) TableName() string { return "tips" }

// No foreign key on TipID: favoriting an unknown tip is allowed and only skips
// the per-tip counter.
type favoriteModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:64"`
	TipID     string    `gorm:"column:tip_id;not null;index;size:64"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (favoriteModel) TableName() string { return "favorites" }

type categoryModel struct {
	ID    string `gorm:"column:id;primaryKey;size:64"`
	Name  string `gorm:"column:name;not null;uniqueIndex"`
	Count int    `gorm:"column:count;not null;default:0"`
}

func (categoryModel) TableName() string { return "categories" }

type userStatsModel struct {
	ID             string    `gorm:"column:id;primaryKey;size:64"`
	DailyTips      int       `gorm:"column:daily_tips;not null;default:0"`
	Streak         int       `gorm:"column:streak;not null;default:0"`
	TotalTips      int       `gorm:"column:total_tips;not null;default:0"`
	FavoritesCount int       `gorm:"column:favorites_count;not null;default:0"`
	LastActive     time.Time `gorm:"column:last_active"`
}

func (userStatsModel) TableName() string { return "user_stats" }

// Models lists every table the SQL store migrates.
func Models() []interface{} {
	return []interface{}{
		&tipModel{},
		&favoriteModel{},
		&categoryModel{},
		&userStatsModel{},
	}
}
