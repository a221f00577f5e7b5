package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

type collegeStore struct {
	db *DB
}

// NewCollegeStore returns a CollegeStore backed by db.
func NewCollegeStore(db *DB) repository.CollegeStore {
	return &collegeStore{db: db}
}

func sortColleges(out []model.College) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
}

func (s *collegeStore) List(_ context.Context) ([]model.College, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.College, 0, len(s.db.colleges))
	for _, c := range s.db.colleges {
		out = append(out, *cloneCollege(c))
	}
	sortColleges(out)
	return out, nil
}

func (s *collegeStore) Search(_ context.Context, f repository.CollegeFilter) ([]model.College, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	term := strings.ToLower(strings.TrimSpace(f.Term))
	country := strings.TrimSpace(f.Country)

	out := make([]model.College, 0)
	for _, c := range s.db.colleges {
		if !c.IsVerified {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			continue
		}
		if country != "" && !strings.EqualFold(c.Country, country) {
			continue
		}
		out = append(out, *cloneCollege(c))
	}
	sortColleges(out)
	return out, nil
}

func (s *collegeStore) Get(_ context.Context, id string) (*model.College, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	c, ok := s.db.colleges[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneCollege(c), nil
}

func (s *collegeStore) GetByProfileID(_ context.Context, profileID string) (*model.College, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	for _, c := range s.db.colleges {
		if c.ProfileID == profileID {
			return cloneCollege(c), nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *collegeStore) Create(_ context.Context, c *model.College) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	for _, existing := range s.db.colleges {
		if existing.ID == c.ID || existing.ProfileID == c.ProfileID {
			return model.ErrConflict
		}
	}
	s.db.colleges[c.ID] = cloneCollege(c)
	return nil
}

func (s *collegeStore) Update(_ context.Context, c *model.College) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.colleges[c.ID]; !ok {
		return model.ErrNotFound
	}
	s.db.colleges[c.ID] = cloneCollege(c)
	return nil
}

func (s *collegeStore) Delete(_ context.Context, id string) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.colleges[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.db.colleges, id)
	for cid, course := range s.db.courses {
		if course.CollegeID == id {
			delete(s.db.courses, cid)
		}
	}
	return nil
}

type courseStore struct {
	db *DB
}

// NewCourseStore returns a CourseStore backed by db.
func NewCourseStore(db *DB) repository.CourseStore {
	return &courseStore{db: db}
}

func (s *courseStore) ListByCollege(_ context.Context, collegeID string) ([]model.Course, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.Course, 0)
	for _, c := range s.db.courses {
		if c.CollegeID == collegeID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *courseStore) Get(_ context.Context, id string) (*model.Course, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	c, ok := s.db.courses[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *courseStore) Create(_ context.Context, c *model.Course) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.colleges[c.CollegeID]; !ok {
		return model.ErrNotFound
	}
	if _, ok := s.db.courses[c.ID]; ok {
		return model.ErrConflict
	}
	stored := *c
	s.db.courses[c.ID] = &stored
	return nil
}
