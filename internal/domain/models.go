// Package domain defines the persistence models for admins, confessions,
// reactions, feedback, reports, and anonymous sessions. These types are
// mapped with GORM and form the core data layer of the confession service.
package domain

import "time"

// Admin roles. Moderators can manage content; superadmins can additionally
// manage other admin accounts.
const (
	RoleSuperadmin = "superadmin"
	RoleModerator  = "moderator"
)

// Confession lifecycle states. The only legal transition is
// active → deleted; there is no restore path.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Emojis is the fixed reaction vocabulary. Reaction counters are keyed by
// these five values at creation time and never gain new keys.
var Emojis = []string{"heart", "laugh", "sad", "angry", "relate"}

// DefaultPermissions is the permission set granted to every new admin.
var DefaultPermissions = []string{"view_analytics", "manage_users", "delete_confession"}

// Admin represents an administrative account (superadmin or moderator).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: globally unique login name.
//   - PasswordHash: bcrypt hash; never serialized to JSON.
//   - Role: "superadmin" or "moderator" (enforced by DB constraint).
//   - Permissions: fixed default permission set, stored as JSON.
//   - Status: account status ("active").
//   - LastLogin: nil until the first successful authentication.
type Admin struct {
	ID           string     `json:"id"            gorm:"type:char(36);primaryKey"`
	Username     string     `json:"username"      gorm:"type:varchar(64);not null;uniqueIndex:ux_admin_username"`
	Email        string     `json:"email"         gorm:"type:varchar(255);not null"`
	PasswordHash string     `json:"-"             gorm:"type:varchar(128);not null"`
	Role         string     `json:"role"          gorm:"type:varchar(16);not null;check:role IN ('superadmin','moderator')"`
	Permissions  []string   `json:"permissions"   gorm:"serializer:json"`
	Status       string     `json:"status"        gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// TableName returns the database table name for Admin.
func (Admin) TableName() string { return "admins" }

// ReactionCounts holds the per-confession embedded counters, one per fixed
// emoji. The key set is fixed by the struct shape; counters never go negative.
type ReactionCounts struct {
	Heart  int `json:"heart"`
	Laugh  int `json:"laugh"`
	Sad    int `json:"sad"`
	Angry  int `json:"angry"`
	Relate int `json:"relate"`
}

// Confession represents a single anonymous confession.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Body: confession text.
//   - Mood: mood tag chosen by the author (stored case-folded).
//   - SessionID: opaque reference to the submitting anonymous session.
//   - Reactions: embedded display counters, stored as JSON.
//   - Status: "active" or "deleted" (soft delete, no resurrection).
//   - ExpiresAt: hard TTL deadline enforced by the background reaper,
//     regardless of status.
type Confession struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Body      string         `json:"body"       gorm:"type:text;not null"`
	Mood      string         `json:"mood"       gorm:"type:varchar(32);index:idx_confessions_mood"`
	SessionID string         `json:"-"          gorm:"type:char(36);index"`
	Reactions ReactionCounts `json:"reactions"  gorm:"serializer:json"`
	Status    string         `json:"status"     gorm:"type:varchar(16);not null;default:'active';index:idx_confessions_status;check:status IN ('active','deleted')"`
	CreatedAt time.Time      `json:"created_at" gorm:"index:idx_confessions_created"`
	ExpiresAt time.Time      `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Confession.
func (Confession) TableName() string { return "confessions" }

// Reaction is the per-(confession, emoji) tally record. The count column
// follows raw store-increment semantics (it bumps on every call), while
// SessionIDs deduplicates sessions so repeat reactions from the same session
// grow the set only once. Reaction rows are never deleted explicitly; they
// age out with their confession via the TTL reaper.
type Reaction struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	ConfessionID string    `json:"confession_id" gorm:"type:char(36);not null;uniqueIndex:ux_reaction_confession_emoji,priority:1"`
	Emoji        string    `json:"emoji"         gorm:"type:varchar(16);not null;uniqueIndex:ux_reaction_confession_emoji,priority:2"`
	Count        int       `json:"count"         gorm:"not null;default:0"`
	SessionIDs   []string  `json:"session_ids"   gorm:"serializer:json"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for Reaction.
func (Reaction) TableName() string { return "reactions" }

// Feedback is a free-form, append-only user submission. Feedback has no TTL
// and is never mutated or deleted.
type Feedback struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	SessionID string    `json:"-"          gorm:"type:char(36)"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedback" }

// Report is a user-filed complaint about a confession.
type Report struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	ConfessionID string    `json:"confession_id" gorm:"type:char(36);not null;index"`
	Reason       string    `json:"reason"        gorm:"type:text;not null"`
	SessionID    string    `json:"-"             gorm:"type:char(36)"`
	CreatedAt    time.Time `json:"created_at"    gorm:"index"`
}

// TableName returns the database table name for Report.
func (Report) TableName() string { return "reports" }

// Session is an anonymous browser session used to correlate guest activity
// without registration. LastActivity is monotonically non-decreasing and
// drives the 7-day TTL reaping.
type Session struct {
	ID              string         `json:"session_id"       gorm:"type:char(36);primaryKey;column:session_id"`
	ConfessionCount int            `json:"confession_count" gorm:"not null;default:0"`
	ReactionCount   int            `json:"reaction_count"   gorm:"not null;default:0"`
	MoodProfile     map[string]int `json:"mood_profile"     gorm:"serializer:json"`
	LastActivity    time.Time      `json:"last_activity"    gorm:"index"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }

// ValidEmoji reports whether e belongs to the fixed reaction vocabulary.
func ValidEmoji(e string) bool {
	for _, v := range Emojis {
		if v == e {
			return true
		}
	}
	return false
}

// Get returns the counter for emoji, or 0 for unknown keys.
func (rc ReactionCounts) Get(emoji string) int {
	switch emoji {
	case "heart":
		return rc.Heart
	case "laugh":
		return rc.Laugh
	case "sad":
		return rc.Sad
	case "angry":
		return rc.Angry
	case "relate":
		return rc.Relate
	}
	return 0
}

// Inc bumps the counter for emoji by one. Unknown keys are ignored, keeping
// the key set fixed.
func (rc *ReactionCounts) Inc(emoji string) {
	switch emoji {
	case "heart":
		rc.Heart++
	case "laugh":
		rc.Laugh++
	case "sad":
		rc.Sad++
	case "angry":
		rc.Angry++
	case "relate":
		rc.Relate++
	}
}

// Total returns the sum of all embedded counters.
func (rc ReactionCounts) Total() int {
	return rc.Heart + rc.Laugh + rc.Sad + rc.Angry + rc.Relate
}
