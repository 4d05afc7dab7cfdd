package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultSeats = 10
	DefaultImage = "https://via.placeholder.com/150"
)

type Course struct {
	ID           string  `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  string  `gorm:"type:text;not null" json:"description"`
	Price        float64 `gorm:"not null" json:"price"`
	Image        string  `gorm:"size:512" json:"image"`
	InstructorID string  `gorm:"type:varchar(32);index;not null" json:"instructorId"`
	Seats        int     `gorm:"not null;default:10" json:"seats"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string { return "courses" }

// Enrollment is the normalized course<->user relation. The composite primary
// key makes a duplicate enrollment a constraint violation rather than an
// application-level race.
type Enrollment struct {
	CourseID  string    `gorm:"primaryKey;type:varchar(32)" json:"courseId"`
	UserID    string    `gorm:"primaryKey;type:varchar(32)" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"enrolledAt"`
}

func (Enrollment) TableName() string { return "enrollments" }

// CourseUpdate carries a partial update. Nil means "keep the stored value",
// a set pointer replaces it, zero values included.
type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Image       *string
	Seats       *int
}

type CourseRepository interface {
	Create(ctx context.Context, c *Course) error
	FindByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, id string, up CourseUpdate) (*Course, error)
	Delete(ctx context.Context, id string) error

	Enroll(ctx context.Context, courseID, userID string) error
	EnrolledCount(ctx context.Context, courseID string) (int64, error)
	EnrolledUserIDs(ctx context.Context, courseID string) ([]string, error)
	CoursesForUser(ctx context.Context, userID string) ([]Course, error)
}
