package entities

import (
	"time"
)

// Client is a deduplicated customer identity. Uniqueness is enforced on
// (name, email_hash); phone hashes are stored but never part of the lookup
// key. Identifier hashes are one-way digests, raw contact data is not kept.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:uq_clients_name_email"`
	EmailHash *string   `json:"email_hash,omitempty" gorm:"type:varchar(128);uniqueIndex:uq_clients_name_email"`
	PhoneHash *string   `json:"phone_hash,omitempty" gorm:"type:varchar(128)"`
	Meetings  []Meeting `json:"meetings,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// LatestMeeting returns the meeting with the greatest meeting_date, or nil
// when the client has no dated meetings.
func (c *Client) LatestMeeting() *Meeting {
	var latest *Meeting
	for i := range c.Meetings {
		m := &c.Meetings[i]
		if m.MeetingDate == nil {
			continue
		}
		if latest == nil || m.MeetingDate.After(*latest.MeetingDate) {
			latest = m
		}
	}
	return latest
}
