package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/getmentor/mentor-match-api/internal/cache"
	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/repository"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
)

// MentorService serves the mentor directory
type MentorService struct {
	users repository.UserRepositoryInterface
	cache cache.DirectoryCacheInterface
}

// NewMentorService creates a new MentorService
func NewMentorService(users repository.UserRepositoryInterface, directoryCache cache.DirectoryCacheInterface) *MentorService {
	return &MentorService{
		users: users,
		cache: directoryCache,
	}
}

// ListMentors returns mentors filtered by skill and sorted by query.OrderBy
func (s *MentorService) ListMentors(ctx context.Context, session *models.Session, query models.DirectoryQuery) ([]models.UserResponse, error) {
	if err := session.RequireRole(models.RoleMentee); err != nil {
		return nil, err
	}

	query = query.Normalized()
	metrics.MentorDirectoryQueries.WithLabelValues(orderLabel(query.OrderBy), strconv.FormatBool(query.Skill != "")).Inc()

	// read the version first so a concurrent write can only make the cached entry newer than its key
	version := s.users.Version()
	if cached, ok := s.cache.Get(version, query); ok {
		return cached, nil
	}

	mentors, err := s.users.ListByRole(ctx, models.RoleMentor)
	if err != nil {
		return nil, err
	}

	result := buildDirectory(mentors, query)
	s.cache.Set(version, query, result)

	return result, nil
}

func orderLabel(orderBy string) string {
	if orderBy == "" {
		return "id"
	}
	return orderBy
}

// buildDirectory filters and sorts mentors, which must be in id order
func buildDirectory(mentors []*models.User, query models.DirectoryQuery) []models.UserResponse {
	skill := strings.ToLower(query.Skill)

	result := make([]models.UserResponse, 0, len(mentors))
	for _, mentor := range mentors {
		if skill != "" && !hasSkill(models.SkillsOf(mentor.Profile), skill) {
			continue
		}
		result = append(result, mentor.ToResponse())
	}

	switch query.OrderBy {
	case models.OrderByName:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Profile.Common().Name < result[j].Profile.Common().Name
		})
	case models.OrderBySkill:
		sort.SliceStable(result, func(i, j int) bool {
			return skillKey(result[i].Profile) < skillKey(result[j].Profile)
		})
	}

	return result
}

func hasSkill(skills []string, lowered string) bool {
	for _, s := range skills {
		if strings.ToLower(s) == lowered {
			return true
		}
	}
	return false
}

func skillKey(p models.Profile) string {
	return strings.Join(models.SkillsOf(p), ",")
}
