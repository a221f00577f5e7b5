package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

// Ownership decides whether an account may write a record. Every storage
// backend goes through it; the Postgres row policies repeat the same rules.
//
// A missing record is reported as NotFound before ownership is considered.
type Ownership struct {
	students  repository.StudentStore
	colleges  repository.CollegeStore
	tests     repository.TestStore
	questions repository.QuestionStore
}

// NewOwnership creates a new Ownership.
func NewOwnership(stores repository.Stores) *Ownership {
	return &Ownership{
		students:  stores.Students,
		colleges:  stores.Colleges,
		tests:     stores.Tests,
		questions: stores.Questions,
	}
}

// Student allows p to write the student profile studentID only when p owns it.
func (o *Ownership) Student(ctx context.Context, p *model.Principal, studentID string) error {
	if p == nil {
		return model.ErrUnauthenticated
	}
	st, err := o.students.Get(ctx, studentID)
	if err != nil {
		return err
	}
	if p.Role != model.RoleStudent || st.ProfileID != p.Subject {
		return fmt.Errorf("%w: student profile belongs to another account", model.ErrForbidden)
	}
	return nil
}

// College allows p to write collegeID and everything it owns only when p
// is the account behind it.
func (o *Ownership) College(ctx context.Context, p *model.Principal, collegeID string) error {
	if p == nil {
		return model.ErrUnauthenticated
	}
	c, err := o.colleges.Get(ctx, collegeID)
	if err != nil {
		return err
	}
	if p.Role != model.RoleCollege || c.ProfileID != p.Subject {
		return fmt.Errorf("%w: college belongs to another account", model.ErrForbidden)
	}
	return nil
}

// Test allows p to manage testID when p owns the college that created it.
func (o *Ownership) Test(ctx context.Context, p *model.Principal, testID string) error {
	t, err := o.tests.Get(ctx, testID)
	if err != nil {
		return err
	}
	err = o.College(ctx, p, t.CollegeID)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: test belongs to another college", model.ErrForbidden)
	}
	return err
}

// QuestionPartition allows p to write into the question partition
// collegeID. The shared bank (nil) is open to every college account.
func (o *Ownership) QuestionPartition(ctx context.Context, p *model.Principal, collegeID *string) error {
	if p == nil {
		return model.ErrUnauthenticated
	}
	if p.Role != model.RoleCollege {
		return fmt.Errorf("%w: only colleges manage questions", model.ErrForbidden)
	}
	if collegeID == nil {
		return nil
	}
	err := o.College(ctx, p, *collegeID)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: question partition belongs to another college", model.ErrForbidden)
	}
	return err
}

// Question allows p to change questionID when it lives in a partition p may
// write. An absent question passes so deletes stay idempotent.
func (o *Ownership) Question(ctx context.Context, p *model.Principal, questionID string) error {
	q, err := o.questions.Get(ctx, questionID, nil)
	if errors.Is(err, model.ErrNotFound) {
		return o.QuestionPartition(ctx, p, nil)
	}
	if err != nil {
		return err
	}
	return o.QuestionPartition(ctx, p, q.CollegeID)
}

// NewTest allows p to create a test for collegeID. An unknown college is left
// to input validation.
func (o *Ownership) NewTest(ctx context.Context, p *model.Principal, collegeID string) error {
	err := o.College(ctx, p, collegeID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}
