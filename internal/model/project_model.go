package model

import (
	"time"
)

const (
	ProjectStatusActive   = "Active"
	ProjectStatusInactive = "Inactive"
)

// Criteria weights are percentages; they are expected, not required, to sum to 100.
type Criteria struct {
	Quality    int `gorm:"default:40" json:"quality"`
	Efficiency int `gorm:"default:30" json:"efficiency"`
	Innovation int `gorm:"default:30" json:"innovation"`
}

func DefaultCriteria() Criteria {
	return Criteria{Quality: 40, Efficiency: 30, Innovation: 30}
}

type Project struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	JobTitle    string    `gorm:"type:varchar(255);not null" json:"jobTitle"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:varchar(20);default:Active" json:"status"`
	Candidates  int       `gorm:"not null;default:0" json:"candidates"`
	Criteria    Criteria  `gorm:"embedded;embeddedPrefix:criteria_" json:"criteria"`
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Project) TableName() string {
	return "projects"
}
