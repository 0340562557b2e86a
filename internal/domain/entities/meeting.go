package entities

import (
	"time"
)

// Meeting is one recorded sales conversation owned by a Client. The
// transcript body is required; seller and meeting date may be absent when
// the source CSV did not carry them.
type Meeting struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	ClientID       uint            `json:"client_id" gorm:"not null;index"`
	AssignedSeller *string         `json:"assigned_seller,omitempty" gorm:"type:varchar(100)"`
	MeetingDate    *time.Time      `json:"meeting_date,omitempty" gorm:"index"`
	Closed         bool            `json:"closed" gorm:"not null;default:false"`
	Transcript     string          `json:"transcript" gorm:"type:text;not null"`
	Classification *Classification `json:"classification,omitempty" gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}
