package services_test

import (
	"context"
	"testing"

	"github.com/getmentor/mentor-match-api/internal/models"
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(mentors []models.UserResponse) []int {
	out := make([]int, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, m.ID)
	}
	return out
}

// seedDirectory creates mentors 1..3 with skills and a mentee 4
func seedDirectory(t *testing.T, a *app) *models.Session {
	t.Helper()
	ctx := context.Background()

	for _, m := range []struct {
		email, name string
		skills      []string
	}{
		{"zed@example.com", "Zed", []string{"Python", "Go"}},
		{"amy@example.com", "Amy", nil},
		{"bob@example.com", "Bob", []string{"Go"}},
	} {
		session := a.signup(t, m.email, m.name, models.RoleMentor)
		if m.skills != nil {
			_, err := a.profiles.UpdateProfile(ctx, session, &models.UpdateProfileRequest{Name: m.name, Skills: m.skills})
			require.NoError(t, err)
		}
	}
	return a.signup(t, "mentee@example.com", "Mia", models.RoleMentee)
}

func TestMentorService_ListMentors(t *testing.T) {
	a := newApp(t)
	mentee := seedDirectory(t, a)
	ctx := context.Background()

	tests := []struct {
		name     string
		query    models.DirectoryQuery
		expected []int
	}{
		{name: "default id order", query: models.DirectoryQuery{}, expected: []int{1, 2, 3}},
		{name: "order by name", query: models.DirectoryQuery{OrderBy: "name"}, expected: []int{2, 3, 1}},
		{name: "order by skill", query: models.DirectoryQuery{OrderBy: "skill"}, expected: []int{2, 3, 1}},
		{name: "unknown order falls back to id", query: models.DirectoryQuery{OrderBy: "rating"}, expected: []int{1, 2, 3}},
		{name: "skill filter is case-insensitive", query: models.DirectoryQuery{Skill: "go"}, expected: []int{1, 3}},
		{name: "skill filter with name order", query: models.DirectoryQuery{Skill: "GO", OrderBy: "name"}, expected: []int{3, 1}},
		{name: "no match", query: models.DirectoryQuery{Skill: "rust"}, expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentors, err := a.mentors.ListMentors(ctx, mentee, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(mentors))
		})
	}
}

func TestMentorService_ListMentors_MenteeOnly(t *testing.T) {
	a := newApp(t)
	mentor := a.signup(t, "m@example.com", "Mira", models.RoleMentor)

	_, err := a.mentors.ListMentors(context.Background(), mentor, models.DirectoryQuery{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestMentorService_ListMentors_NotStaleAfterUpdate(t *testing.T) {
	a := newApp(t)
	mentee := seedDirectory(t, a)
	ctx := context.Background()

	first, err := a.mentors.ListMentors(ctx, mentee, models.DirectoryQuery{Skill: "rust"})
	require.NoError(t, err)
	assert.Empty(t, first)

	amy := &models.Session{UserID: 2, Role: models.RoleMentor}
	_, err = a.profiles.UpdateProfile(ctx, amy, &models.UpdateProfileRequest{Name: "Amy", Skills: []string{"Rust"}})
	require.NoError(t, err)

	second, err := a.mentors.ListMentors(ctx, mentee, models.DirectoryQuery{Skill: "rust"})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(second))
}

func TestMentorService_ListMentors_ExcludesMentees(t *testing.T) {
	a := newApp(t)
	mentee := a.signup(t, "e@example.com", "Eli", models.RoleMentee)
	a.signup(t, "m@example.com", "Mira", models.RoleMentor)

	mentors, err := a.mentors.ListMentors(context.Background(), mentee, models.DirectoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(mentors))
	assert.Equal(t, []string{}, models.SkillsOf(mentors[0].Profile))
}
