package models

// GrowthPoint is one day of a creation-growth series.
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// CompanyRank is a company's position in the question-count ranking.
type CompanyRank struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	QuestionCount int64  `json:"question_count"`
}

// ContributorStat ranks a user by questions posted for one company.
type ContributorStat struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	QuestionCount int64  `json:"question_count"`
}

// RoleActivity groups users by role with a recent-signup count.
type RoleActivity struct {
	Role   string `json:"role"`
	Count  int64  `json:"count"`
	Recent int64  `json:"recent"`
}

// ActionCount is an activity tally grouped by action or target.
type ActionCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// ActiveUser ranks a user by logged activity volume.
type ActiveUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Count int64  `json:"count"`
}
