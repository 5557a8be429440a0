package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an HR account that owns jobs and their candidate batches.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string `gorm:"size:255"`
	Jobs         []Job  `gorm:"constraint:OnDelete:CASCADE"`
}

// Job is one resume screening batch: the job description it was matched
// against plus the processing counters and the ranking summary.
type Job struct {
	gorm.Model
	JobID            string         `gorm:"uniqueIndex;size:36"`
	UserID           uint           `gorm:"index"`
	User             User           `gorm:"constraint:OnDelete:CASCADE"`
	Title            string         `gorm:"size:255"`
	Description      string         `gorm:"type:text"`
	Requirements     datatypes.JSON `gorm:"type:jsonb"`
	Skills           datatypes.JSON `gorm:"type:jsonb"`
	ExperienceLevel  string         `gorm:"size:32"`
	TotalResumes     int
	ProcessedResumes int
	Summary          string      `gorm:"type:text"`
	Status           string      `gorm:"size:32"`
	Candidates       []Candidate `gorm:"foreignKey:JobRef;constraint:OnDelete:CASCADE"`
}

// Candidate is one assessed resume within a job, stored in rank order.
type Candidate struct {
	gorm.Model
	CandidateID     string `gorm:"uniqueIndex;size:36"`
	JobRef          uint   `gorm:"index"`
	Name            string `gorm:"size:255"`
	Email           string `gorm:"size:255"`
	Phone           string `gorm:"size:32"`
	ResumeID        string `gorm:"size:36"`
	ResumeObjectKey string `gorm:"size:512"`
	Filename        string `gorm:"size:255"`
	Score           int
	SkillScore      int
	ExperienceScore int
	Summary         string         `gorm:"type:text"`
	Skills          datatypes.JSON `gorm:"type:jsonb"`
	Experience      string         `gorm:"size:64"`
	MatchReasoning  string         `gorm:"type:text"`
	IsSelected      bool           `gorm:"default:false"`
}

// Interview records one booked calendar event so it can be listed and
// cancelled later.
type Interview struct {
	gorm.Model
	EventID        string `gorm:"uniqueIndex;size:128"`
	JobRef         uint   `gorm:"index"`
	CandidateID    string `gorm:"size:36"`
	CandidateName  string `gorm:"size:255"`
	CandidateEmail string `gorm:"size:255"`
	InterviewDate  time.Time
	InterviewLink  string `gorm:"size:512"`
	Status         string `gorm:"size:32"`
}
