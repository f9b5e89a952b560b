package models

import (
	"fmt"

	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
)

// Role is the immutable role a user signs up with
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

// User is an identity record. PasswordHash never leaves the service layer.
type User struct {
	ID           int
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Profile      Profile
}

// Clone returns a deep copy safe to hand out of a store
func (u *User) Clone() *User {
	c := *u
	if u.Profile != nil {
		c.Profile = u.Profile.Clone()
	}
	return &c
}

// ToResponse converts a User to its API representation
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:      u.ID,
		Email:   u.Email,
		Role:    u.Role,
		Profile: u.Profile,
	}
}

// Profile is the role-specific profile of a user: *MentorProfile or *MenteeProfile
type Profile interface {
	Common() ProfileBase
	ProfileRole() Role
	Clone() Profile
}

// ProfileBase holds the fields every profile has
type ProfileBase struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl"`
}

// MentorProfile is a mentor's profile; only mentors carry skills
type MentorProfile struct {
	ProfileBase
	Skills []string `json:"skills"`
}

func (p *MentorProfile) Common() ProfileBase { return p.ProfileBase }
func (p *MentorProfile) ProfileRole() Role   { return RoleMentor }

func (p *MentorProfile) Clone() Profile {
	c := *p
	c.Skills = append([]string{}, p.Skills...)
	return &c
}

// MenteeProfile is a mentee's profile
type MenteeProfile struct {
	ProfileBase
}

func (p *MenteeProfile) Common() ProfileBase { return p.ProfileBase }
func (p *MenteeProfile) ProfileRole() Role   { return RoleMentee }

func (p *MenteeProfile) Clone() Profile {
	c := *p
	return &c
}

// NewProfile builds the profile variant for role. Skills are ignored for mentees.
func NewProfile(role Role, base ProfileBase, skills []string) Profile {
	if role == RoleMentor {
		return &MentorProfile{ProfileBase: base, Skills: append([]string{}, skills...)}
	}
	return &MenteeProfile{ProfileBase: base}
}

// SkillsOf returns the mentor skills of a profile, or nil for other variants
func SkillsOf(p Profile) []string {
	if mp, ok := p.(*MentorProfile); ok {
		return mp.Skills
	}
	return nil
}

// ImagePath is the avatar route a user's profile points at after an update
func ImagePath(role Role, userID int) string {
	return fmt.Sprintf("/api/images/%s/%d", role, userID)
}

// UserResponse is the public shape of a user (GET /me, mentor directory)
type UserResponse struct {
	ID      int     `json:"id"`
	Email   string  `json:"email"`
	Role    Role    `json:"role"`
	// MentorProfile for mentors, MenteeProfile for mentees
	Profile Profile `json:"profile"`
}

// Session is the caller identity resolved from a session credential
type Session struct {
	UserID int    `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// RequireRole fails with ErrForbidden when the caller has a different role
func (s *Session) RequireRole(role Role) error {
	if s.Role != role {
		return apperrors.ForbiddenError(fmt.Sprintf("only %ss can perform this action", role))
	}
	return nil
}
