package service

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/praxis-ed/praxis-api/internal/models"
	"github.com/praxis-ed/praxis-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uint]models.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var users []models.User
	for _, user := range f.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.ID = uint(len(f.users) + 1)
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.ID] = *user
	return nil
}

type fakeScenarioRepo struct {
	scenarios map[uint]models.Scenario
}

func newFakeScenarioRepo() *fakeScenarioRepo {
	repo := &fakeScenarioRepo{scenarios: make(map[uint]models.Scenario)}
	for _, scenario := range models.ScenarioCatalog() {
		repo.scenarios[scenario.ID] = scenario
	}
	return repo
}

func (f *fakeScenarioRepo) List(ctx context.Context) ([]models.Scenario, error) {
	scenarios := make([]models.Scenario, 0, len(f.scenarios))
	for id := uint(1); id <= uint(len(f.scenarios)); id++ {
		scenarios = append(scenarios, f.scenarios[id])
	}
	return scenarios, nil
}

func (f *fakeScenarioRepo) GetByID(ctx context.Context, id uint) (models.Scenario, error) {
	scenario, ok := f.scenarios[id]
	if !ok {
		return models.Scenario{}, gorm.ErrRecordNotFound
	}
	return scenario, nil
}

func (f *fakeScenarioRepo) SeedCatalog(ctx context.Context, scenarios []models.Scenario) error {
	for _, scenario := range scenarios {
		if _, exists := f.scenarios[scenario.ID]; !exists {
			f.scenarios[scenario.ID] = scenario
		}
	}
	return nil
}

// fakeAttemptRepo emulates the conflict-as-update semantics of the real
// upsert, keyed on the (teacher, scenario) pair.
type fakeAttemptRepo struct {
	mu       sync.Mutex
	rows     map[[2]uint]models.Attempt
	nextID   uint
	upserts  int
	failNext error
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{rows: make(map[[2]uint]models.Attempt)}
}

func (f *fakeAttemptRepo) List(ctx context.Context, filter repository.AttemptFilter) ([]models.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var attempts []models.Attempt
	for id := uint(1); id <= f.nextID; id++ {
		for _, attempt := range f.rows {
			if attempt.ID != id {
				continue
			}
			if filter.TeacherID != nil && attempt.TeacherID != *filter.TeacherID {
				continue
			}
			if filter.Status != nil && attempt.Status != *filter.Status {
				continue
			}
			attempts = append(attempts, attempt)
		}
	}
	return attempts, nil
}

func (f *fakeAttemptRepo) GetByTeacherAndScenario(ctx context.Context, teacherID, scenarioID uint) (models.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	attempt, ok := f.rows[[2]uint{teacherID, scenarioID}]
	if !ok {
		return models.Attempt{}, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

func (f *fakeAttemptRepo) Upsert(ctx context.Context, attempt *models.Attempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}

	f.upserts++
	key := [2]uint{attempt.TeacherID, attempt.ScenarioID}
	if existing, ok := f.rows[key]; ok {
		attempt.ID = existing.ID
		attempt.CreatedAt = existing.CreatedAt
	} else {
		f.nextID++
		attempt.ID = f.nextID
	}
	f.rows[key] = *attempt
	return nil
}

func (f *fakeAttemptRepo) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeEvaluationRepo struct {
	mu      sync.Mutex
	rows    map[uint]models.Evaluation
	upserts int
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{rows: make(map[uint]models.Evaluation)}
}

func (f *fakeEvaluationRepo) GetByTeacher(ctx context.Context, teacherID uint) (models.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	evaluation, ok := f.rows[teacherID]
	if !ok {
		return models.Evaluation{}, gorm.ErrRecordNotFound
	}
	return evaluation, nil
}

func (f *fakeEvaluationRepo) ListByTeachers(ctx context.Context, teacherIDs []uint) ([]models.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var evaluations []models.Evaluation
	for _, id := range teacherIDs {
		if evaluation, ok := f.rows[id]; ok {
			evaluations = append(evaluations, evaluation)
		}
	}
	return evaluations, nil
}

func (f *fakeEvaluationRepo) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.upserts++
	if existing, ok := f.rows[evaluation.TeacherID]; ok {
		evaluation.ID = existing.ID
	} else {
		evaluation.ID = uint(len(f.rows) + 1)
	}
	f.rows[evaluation.TeacherID] = *evaluation
	return nil
}

func (f *fakeEvaluationRepo) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}
