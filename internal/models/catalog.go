package models

// RatingTier is reference data: one row per overall tier.
type RatingTier struct {
	Code      string `gorm:"primaryKey;size:3" json:"code"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Icon      string `gorm:"size:20" json:"icon"`
	Color     string `gorm:"size:20" json:"color"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}

// Flag is reference data: one content descriptor per severity axis.
type Flag struct {
	Code        string `gorm:"primaryKey;size:50" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Group       string `gorm:"column:axis_group;size:20;not null" json:"group"`
	Icon        string `gorm:"size:20" json:"icon"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `gorm:"not null;default:0" json:"sort_order"`
}
