package services

import (
	"strings"
	"time"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/storage"
	"github.com/taskvault/taskvault/internal/utils"
	"github.com/taskvault/taskvault/internal/validation"
)

const (
	defaultCategoryColor = "#6c757d"
	defaultCategoryIcon  = "folder"
)

// defaultCategories are created once per user on first run.
var defaultCategories = []struct {
	Name  string
	Color string
	Icon  string
}{
	{"Work", "#4361ee", "briefcase"},
	{"Personal", "#20c997", "user"},
	{"Shopping", "#fd7e14", "shopping-cart"},
	{"Health", "#e83e8c", "heart"},
}

// CategoryService handles category business logic for a single user.
// Category names are unique per user, compared case-insensitively.
type CategoryService struct {
	repo   repository.CategoryRepository
	userID string

	categories []models.Category
	now        func() time.Time
}

// NewCategoryService creates a CategoryService and eagerly loads the
// user's categories.
func NewCategoryService(repo repository.CategoryRepository, userID string) (*CategoryService, error) {
	categories, err := repo.ForUser(userID)
	if err != nil {
		return nil, err
	}
	return &CategoryService{
		repo:       repo,
		userID:     userID,
		categories: categories,
		now:        time.Now,
	}, nil
}

// InitializeDefaults creates the standard category set for a user who has
// none yet. Calling it again, or for a user who deleted some defaults, is
// a no-op.
func (s *CategoryService) InitializeDefaults() error {
	if len(s.categories) > 0 {
		return nil
	}

	now := storage.NewDateTime(s.now())
	created := make([]models.Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		created = append(created, models.Category{
			ID:        utils.NewID("cat"),
			UserID:    s.userID,
			Name:      d.Name,
			Color:     d.Color,
			Icon:      d.Icon,
			CreatedAt: now,
		})
	}

	prev := s.categories
	s.categories = created
	if err := s.repo.SaveForUser(s.userID, s.categories); err != nil {
		s.categories = prev
		return err
	}
	return nil
}

// CreateCategoryInput represents the fields accepted when creating a
// category. Color and Icon fall back to neutral defaults when empty.
type CreateCategoryInput struct {
	Name  string
	Color string
	Icon  string
}

// CreateCategory validates the input and appends the new category.
func (s *CategoryService) CreateCategory(input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := validation.CategoryName(name); err != nil {
		return nil, err
	}
	if s.nameTaken(name, "") {
		return nil, apperrors.Duplicatef("category %q already exists", name)
	}

	color := input.Color
	if color == "" {
		color = defaultCategoryColor
	}
	if err := validation.Color(color); err != nil {
		return nil, err
	}
	icon := input.Icon
	if icon == "" {
		icon = defaultCategoryIcon
	}

	category := models.Category{
		ID:        utils.NewID("cat"),
		UserID:    s.userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: storage.NewDateTime(s.now()),
	}

	prev := s.categories
	s.categories = append(append([]models.Category(nil), s.categories...), category)
	if err := s.repo.SaveForUser(s.userID, s.categories); err != nil {
		s.categories = prev
		return nil, err
	}

	out := category
	return &out, nil
}

// UpdateCategoryInput carries a partial category update.
type UpdateCategoryInput struct {
	Name  *string
	Color *string
	Icon  *string
}

// UpdateCategory applies a partial update to the category with the given
// id.
func (s *CategoryService) UpdateCategory(id string, input UpdateCategoryInput) (*models.Category, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.NotFoundf("category %s not found", id)
	}

	updated := s.categories[idx]
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validation.CategoryName(name); err != nil {
			return nil, err
		}
		if s.nameTaken(name, id) {
			return nil, apperrors.Duplicatef("category %q already exists", name)
		}
		updated.Name = name
	}
	if input.Color != nil {
		if err := validation.Color(*input.Color); err != nil {
			return nil, err
		}
		updated.Color = *input.Color
	}
	if input.Icon != nil {
		updated.Icon = *input.Icon
	}

	prev := s.categories
	next := make([]models.Category, len(s.categories))
	copy(next, s.categories)
	next[idx] = updated
	s.categories = next
	if err := s.repo.SaveForUser(s.userID, s.categories); err != nil {
		s.categories = prev
		return nil, err
	}

	out := updated
	return &out, nil
}

// DeleteCategory removes the category with the given id. Tasks that
// referenced it fall back to the uncategorized bucket in grouped views.
func (s *CategoryService) DeleteCategory(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return apperrors.NotFoundf("category %s not found", id)
	}

	prev := s.categories
	next := make([]models.Category, 0, len(s.categories)-1)
	for i, c := range s.categories {
		if i != idx {
			next = append(next, c)
		}
	}
	s.categories = next
	if err := s.repo.SaveForUser(s.userID, s.categories); err != nil {
		s.categories = prev
		return err
	}
	return nil
}

// GetByID returns a copy of the category with the given id.
func (s *CategoryService) GetByID(id string) (*models.Category, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.NotFoundf("category %s not found", id)
	}
	out := s.categories[idx]
	return &out, nil
}

// All returns a copy of the user's categories in insertion order.
func (s *CategoryService) All() []models.Category {
	return append([]models.Category(nil), s.categories...)
}

// Search returns categories whose name contains the query,
// case-insensitively.
func (s *CategoryService) Search(query string) []models.Category {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.All()
	}
	out := make([]models.Category, 0)
	for _, c := range s.categories {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// CategoryWithCount pairs a category with the number of tasks assigned to
// it.
type CategoryWithCount struct {
	models.Category
	TaskCount int `json:"taskCount"`
}

// WithTaskCounts annotates each category with how many of the given tasks
// reference it.
func (s *CategoryService) WithTaskCounts(tasks []models.Task) []CategoryWithCount {
	counts := make(map[string]int, len(s.categories))
	for _, t := range tasks {
		counts[t.CategoryID]++
	}

	out := make([]CategoryWithCount, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, CategoryWithCount{Category: c, TaskCount: counts[c.ID]})
	}
	return out
}

func (s *CategoryService) nameTaken(name, excludeID string) bool {
	for _, c := range s.categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (s *CategoryService) indexOf(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}
