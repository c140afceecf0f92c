package entity

import "time"

// CommonProfile is the public-facing profile every account gets at
// promotion, with the display name defaulting to the email local-part.
type CommonProfile struct {
	UserID    string
	FullName  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LearnerProfile extends student accounts with learning preferences and
// gamification stats.
type LearnerProfile struct {
	UserID         string
	Interests      []string // subject tag IDs
	TotalXP        int
	Level          int
	Badges         []string
	StreakDays     int
	LongestStreak  int
	CoursesEnrolled  int
	CoursesCompleted int
	QuizzesAttempted int
	QuizzesPassed    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InstructorProfile extends teacher accounts with professional identity
// and admin-controlled approval flags.
type InstructorProfile struct {
	UserID            string
	Designation       string
	ShortBio          string
	FullBio           string
	TeachingLanguages []string
	Organization      string
	YearsOfExperience float64
	TotalCourses      int
	TotalStudents     int
	AverageRating     float64
	IsApproved        bool
	VerifiedBadge     bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
