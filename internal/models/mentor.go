package models

// Mentor directory sort keys accepted in ?order_by=
const (
	OrderByName  = "name"
	OrderBySkill = "skill"
)

// DirectoryQuery represents the mentor directory filter and ordering
type DirectoryQuery struct {
	Skill   string `form:"skill" binding:"max=50"`
	OrderBy string `form:"order_by" binding:"max=20"`
}

// Normalized maps unknown sort keys to the default id ordering
func (q DirectoryQuery) Normalized() DirectoryQuery {
	if q.OrderBy != OrderByName && q.OrderBy != OrderBySkill {
		q.OrderBy = ""
	}
	return q
}
