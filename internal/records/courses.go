package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/semih007/gradecalc/internal/models"
	"github.com/semih007/gradecalc/internal/scoring"
)

var (
	ErrEmptyCourseName = errors.New("course name is required")
	ErrCourseNotFound  = errors.New("course not found")
)

// CourseView is a saved course with its status derived for one threshold.
type CourseView struct {
	models.SavedCourse
	models.DisplayStatus
}

// LoadCourses returns the saved courses in insertion order, never nil.
func (r *Records) LoadCourses(ctx context.Context) []models.SavedCourse {
	courses := []models.SavedCourse{}

	raw, ok := r.read(ctx, CoursesKey)
	if !ok {
		return courses
	}
	if !decode(CoursesKey, raw, &courses) || courses == nil {
		return []models.SavedCourse{}
	}
	return courses
}

// loadCoursesFresh reads the list for a mutation. ok is false when the blob
// could not be read or decoded; the mutation must then leave it untouched.
func (r *Records) loadCoursesFresh(ctx context.Context) ([]models.SavedCourse, bool) {
	var courses []models.SavedCourse
	raw, state := r.readFresh(ctx, CoursesKey)
	switch state {
	case readMissing:
		return nil, true
	case readFailed:
		skipMutation(CoursesKey)
		return nil, false
	}
	if !decode(CoursesKey, raw, &courses) {
		skipMutation(CoursesKey)
		return nil, false
	}
	return courses, true
}

func newCourse(id, name, midterm, final string) (models.SavedCourse, error) {
	course := models.SavedCourse{
		ID:      id,
		Name:    strings.TrimSpace(name),
		Midterm: strings.TrimSpace(midterm),
		Final:   strings.TrimSpace(final),
	}
	err := course.Validate()
	if err == nil {
		return course, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Name" {
				return models.SavedCourse{}, fmt.Errorf("%w: %w", ErrEmptyCourseName, err)
			}
		}
	}
	return models.SavedCourse{}, fmt.Errorf("invalid course: %w", err)
}

// AddCourse appends a course with a fresh id. Scores are optional and kept
// as typed; there is no upper bound on the number of courses.
func (r *Records) AddCourse(ctx context.Context, name, midterm, final string) (models.SavedCourse, error) {
	course, err := newCourse(r.opts.NewID(), name, midterm, final)
	if err != nil {
		return models.SavedCourse{}, err
	}

	unlock := r.locks.lock(CoursesKey)
	defer unlock()

	courses, ok := r.loadCoursesFresh(ctx)
	if ok {
		r.writeJSON(ctx, CoursesKey, append(courses, course))
	}

	return course, nil
}

// UpdateCourse replaces the mutable fields of the course with id, keeping its
// position in the list. An unreadable list is left as it is.
func (r *Records) UpdateCourse(ctx context.Context, id, name, midterm, final string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrCourseNotFound)
	}
	course, err := newCourse(id, name, midterm, final)
	if err != nil {
		return err
	}

	unlock := r.locks.lock(CoursesKey)
	defer unlock()

	courses, ok := r.loadCoursesFresh(ctx)
	if !ok {
		return nil
	}
	for i := range courses {
		if courses[i].ID == id {
			courses[i] = course
			r.writeJSON(ctx, CoursesKey, courses)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCourseNotFound, id)
}

// DeleteCourse removes the course with id. Unknown ids are ignored.
func (r *Records) DeleteCourse(ctx context.Context, id string) {
	unlock := r.locks.lock(CoursesKey)
	defer unlock()

	courses, ok := r.loadCoursesFresh(ctx)
	if !ok {
		return
	}
	kept := make([]models.SavedCourse, 0, len(courses))
	for _, c := range courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(courses) {
		return
	}
	r.writeJSON(ctx, CoursesKey, kept)
}

// DisplayStatus evaluates course against threshold, the threshold in force
// right now rather than the one at save time. Missing or invalid scores give
// an ungraded status instead of an error.
func (r *Records) DisplayStatus(course models.SavedCourse, threshold float64) models.DisplayStatus {
	midterm, final, err := scoring.Inputs{Midterm: course.Midterm, Final: course.Final}.Parse()
	if err != nil {
		return models.DisplayStatus{
			StatusLabel: r.grader.Labels.NotGradedLabel(),
			StatusColor: scoring.ColorNeutral,
		}
	}

	result := r.grader.Evaluate(midterm, final, threshold)
	return models.DisplayStatus{
		Average:     &result.Average,
		Status:      &result.Status,
		StatusLabel: result.StatusLabel,
		StatusColor: result.StatusColor,
	}
}

// LoadCourseViews is LoadCourses with every course evaluated against threshold.
func (r *Records) LoadCourseViews(ctx context.Context, threshold float64) []CourseView {
	courses := r.LoadCourses(ctx)
	views := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, CourseView{SavedCourse: c, DisplayStatus: r.DisplayStatus(c, threshold)})
	}
	return views
}
