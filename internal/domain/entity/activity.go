package entity

import "time"

// ActivityType enumerates the developer actions that earn points.
type ActivityType string

const (
	ActivityCommit         ActivityType = "COMMIT"
	ActivityPullRequest    ActivityType = "PULL_REQUEST"
	ActivityIssue          ActivityType = "ISSUE"
	ActivityCodeReview     ActivityType = "CODE_REVIEW"
	ActivityLeetcodeEasy   ActivityType = "LEETCODE_EASY"
	ActivityLeetcodeMedium ActivityType = "LEETCODE_MEDIUM"
	ActivityLeetcodeHard   ActivityType = "LEETCODE_HARD"
	ActivityMCQCompleted   ActivityType = "MCQ_COMPLETED"
	ActivityDailyStreak    ActivityType = "DAILY_STREAK"
	ActivityWeeklyStreak   ActivityType = "WEEKLY_STREAK"
	ActivityMonthlyStreak  ActivityType = "MONTHLY_STREAK"
	ActivityManual         ActivityType = "MANUAL"
)

var activityPoints = map[ActivityType]int{
	ActivityCommit:         10,
	ActivityPullRequest:    25,
	ActivityIssue:          15,
	ActivityCodeReview:     20,
	ActivityLeetcodeEasy:   10,
	ActivityLeetcodeMedium: 25,
	ActivityLeetcodeHard:   50,
	ActivityMCQCompleted:   5,
	ActivityDailyStreak:    5,
	ActivityWeeklyStreak:   20,
	ActivityMonthlyStreak:  50,
	ActivityManual:         0,
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	_, ok := activityPoints[t]
	return ok
}

// Points returns the point value earned by an activity of this type.
// The mapping is fixed; callers never supply points directly.
func (t ActivityType) Points() int {
	return activityPoints[t]
}

// Activity records one logged developer action. Immutable after creation.
type Activity struct {
	ID          string
	UserID      string
	Type        ActivityType
	Description string
	Points      int
	Metadata    string // free-form JSON blob, may be empty
	CreatedAt   time.Time
}
