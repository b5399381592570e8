package profile

import (
	"time"

	"sewalink/backend/internal/docstore"
	"sewalink/backend/internal/utils"
)

const (
	ColUsers        = "users"
	ColProfileViews = "profileViews"
)

// Profile is the public marketplace identity stored in users/{uid}.
type Profile struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	Username     string    `json:"username,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Location     string    `json:"location,omitempty"`
	Occupation   string    `json:"occupation,omitempty"`
	Website      string    `json:"website,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	Coins        int64     `json:"coins"`
	PhotoURL     string    `json:"photoURL,omitempty"`
	CoverPhoto   string    `json:"coverPhoto,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ProfileViews int64     `json:"profileViews"`

	// FCMToken is the receiver's push token; never rendered.
	FCMToken string `json:"-"`
}

func FromRecord(r docstore.Record) Profile {
	return Profile{
		ID:           r.ID,
		DisplayName:  utils.CollapseSpace(r.String("displayName")),
		Username:     r.String("username"),
		Bio:          r.String("bio"),
		Location:     r.String("location"),
		Occupation:   r.String("occupation"),
		Website:      r.String("website"),
		Skills:       r.Strings("skills"),
		Coins:        r.Int("coins"),
		PhotoURL:     r.String("photoURL"),
		CoverPhoto:   r.String("coverPhoto"),
		Email:        r.String("email"),
		Phone:        r.String("phone"),
		CreatedAt:    r.Time("createdAt"),
		ProfileViews: r.Int("profileViews"),
		FCMToken:     r.String("fcmToken"),
	}
}

// Name falls back to "User" for profiles without a display name.
func (p Profile) Name() string {
	if p.DisplayName == "" {
		return "User"
	}
	return p.DisplayName
}

func (p Profile) Handle() string {
	return utils.Handle(p.Username, p.Email)
}

// PhotoField names the users/{uid} field an uploaded image lands in.
func PhotoField(kind string) (string, bool) {
	switch kind {
	case "avatar":
		return "photoURL", true
	case "cover":
		return "coverPhoto", true
	}
	return "", false
}
