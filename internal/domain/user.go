package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusBlocked
}

const (
	DefaultUserLocation  = "Philippines"
	DefaultTotalDistance = "0 km"
)

type User struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Email                string     `db:"email" json:"email"`
	Phone                string     `db:"phone" json:"phone"`
	ProfileImage         string     `db:"profile_image" json:"profileImage"`
	Location             string     `db:"location" json:"location"`
	TripsCompleted       int        `db:"trips_completed" json:"tripsCompleted"`
	FavoriteDestinations int        `db:"favorite_destinations" json:"favoriteDestinations"`
	TotalDistance        string     `db:"total_distance" json:"totalDistance"`
	IsVerified           bool       `db:"is_verified" json:"isVerified"`
	Status               UserStatus `db:"status" json:"status"`
	PasswordHash         []byte     `db:"password_hash" json:"-"`
	PasswordSalt         []byte     `db:"password_salt" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updatedAt"`
}

// MemberSince renders the registration month, e.g. "March 2024".
func (u *User) MemberSince() string {
	return u.CreatedAt.Format("January 2006")
}

func (u *User) Blocked() bool {
	return u.Status == UserStatusBlocked
}

// UserUpdate holds optional profile fields; nil means unchanged.
type UserUpdate struct {
	Name                 *string
	Phone                *string
	Location             *string
	ProfileImage         *string
	TripsCompleted       *int
	FavoriteDestinations *int
	TotalDistance        *string
	IsVerified           *bool
}

func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Location == nil && u.ProfileImage == nil &&
		u.TripsCompleted == nil && u.FavoriteDestinations == nil && u.TotalDistance == nil && u.IsVerified == nil
}

type UserFilter struct {
	Query    string
	Verified *bool
	Status   *UserStatus
	Limit    int
	Offset   int
}
