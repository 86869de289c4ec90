package model

import "time"

// EditableJobInfo is part of job that admin can create or replace
type EditableJobInfo struct {
	Title          string `gorm:"type:text;not null" json:"title" binding:"required"`
	Description    string `gorm:"type:text;not null" json:"description" binding:"required"`
	Location       string `gorm:"type:text;not null" json:"location" binding:"required"`
	Company        string `gorm:"type:text;not null" json:"company" binding:"required"`
	EmploymentType string `gorm:"type:text;not null" json:"employmentType" binding:"required"`
}

// Job is gorm model for store job posting in DB
type Job struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EditableJobInfo
	PostedAt time.Time `gorm:"autoCreateTime;<-:create;index" json:"postedAt"`
}
