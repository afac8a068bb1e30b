package repository

import (
	"time"

	"github.com/Kavi981/Nxt-Round/internal/models"

	"gorm.io/gorm"
)

// growthRow is the raw shape of a per-day grouping query. Day is scanned as
// a string because SQLite returns DATE() as text while Postgres returns a
// timestamp; both render with the date first.
type growthRow struct {
	Day   string
	Count int64
}

// growthSeries groups rows of the given query by calendar day of creation,
// ascending. Day keys are rendered as UTC YYYY-MM-DD strings.
func growthSeries(q *gorm.DB, since time.Time) ([]models.GrowthPoint, error) {
	var rows []growthRow
	err := q.
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	points := make([]models.GrowthPoint, len(rows))
	for i, row := range rows {
		day := row.Day
		if len(day) > 10 {
			day = day[:10]
		}
		points[i] = models.GrowthPoint{
			Date:  day,
			Count: row.Count,
		}
	}
	return points, nil
}

// daysAgo returns the instant `days` days before now.
func daysAgo(days int) time.Time {
	return time.Now().Add(-time.Duration(days) * 24 * time.Hour)
}
