package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"coursehub/internal/domain"
)

type CourseRepo struct{ db *gorm.DB }

func NewCourseRepo(db *gorm.DB) *CourseRepo { return &CourseRepo{db: db} }

func (r *CourseRepo) Create(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepo) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var c domain.Course
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	var cs []domain.Course
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&cs).Error
	return cs, err
}

func (r *CourseRepo) Update(ctx context.Context, id string, up domain.CourseUpdate) (*domain.Course, error) {
	cols := map[string]any{}
	if up.Title != nil {
		cols["title"] = *up.Title
	}
	if up.Description != nil {
		cols["description"] = *up.Description
	}
	if up.Price != nil {
		cols["price"] = *up.Price
	}
	if up.Image != nil {
		cols["image"] = *up.Image
	}
	if up.Seats != nil {
		cols["seats"] = *up.Seats
	}

	var c domain.Course
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&c).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(&c, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.Course{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		// enrollments go with the course
		return tx.Where("course_id = ?", id).Delete(&domain.Enrollment{}).Error
	})
}

// Enroll performs the whole seat-allocation step in one transaction. Refusals
// are ordered: unknown course, duplicate enrollment, full course. The composite
// primary key still refuses a racing duplicate atomically, and the post-insert
// recount rolls the insert back if it would overflow the capacity.
func (r *CourseRepo) Enroll(ctx context.Context, courseID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Course
		if err := tx.First(&c, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		seats := c.Seats
		if seats <= 0 {
			seats = domain.DefaultSeats // legacy rows without a capacity
		}

		var n int64
		if err := tx.Model(&domain.Enrollment{}).
			Where("course_id = ? AND user_id = ?", courseID, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrAlreadyEnrolled
		}

		if err := tx.Model(&domain.Enrollment{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
			return err
		}
		if n >= int64(seats) {
			return domain.ErrCourseFull
		}

		e := domain.Enrollment{CourseID: courseID, UserID: userID}
		if err := tx.Create(&e).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrAlreadyEnrolled
			}
			return err
		}

		if err := tx.Model(&domain.Enrollment{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
			return err
		}
		if n > int64(seats) {
			return domain.ErrCourseFull
		}
		return nil
	})
}

func (r *CourseRepo) EnrolledCount(ctx context.Context, courseID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Where("course_id = ?", courseID).Count(&n).Error
	return n, err
}

func (r *CourseRepo) EnrolledUserIDs(ctx context.Context, courseID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("course_id = ?", courseID).Order("created_at").Pluck("user_id", &ids).Error
	return ids, err
}

func (r *CourseRepo) CoursesForUser(ctx context.Context, userID string) ([]domain.Course, error) {
	var cs []domain.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.created_at").
		Find(&cs).Error
	return cs, err
}
