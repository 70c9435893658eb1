package testutils

import (
	"fmt"
	"strings"
	"time"

	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values and a unique email
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Test User",
		Email:        fmt.Sprintf("user-%s@test.com", id.String()[:8]),
		PasswordHash: HashPassword("password123"),
	}
}

// WithName sets a custom name for the user
func (f *UserFactory) WithName(name string) *models.User {
	user := f.Create()
	user.Name = name
	return user
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithPassword sets a custom password for the user, stored hashed
func (f *UserFactory) WithPassword(password string) *models.User {
	user := f.Create()
	user.PasswordHash = HashPassword(password)
	return user
}

// HashPassword returns a bcrypt hash suitable for seeding test users.
// MinCost keeps suites fast; production registration uses the default cost.
func HashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values and a unique invite code
func (f *TeamFactory) Create() *models.Team {
	id := uuid.New()
	// Derive a unique 6-char uppercase code from the UUID to avoid collisions
	code := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:models.TeamCodeLength]
	return &models.Team{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Team",
		Description: "A test team",
		TeamCode:    code,
		CreatedBy:   uuid.New(),
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// WithCreator sets the creating user for the team
func (f *TeamFactory) WithCreator(userID uuid.UUID) *models.Team {
	team := f.Create()
	team.CreatedBy = userID
	return team
}

// WithCode sets a custom invite code for the team
func (f *TeamFactory) WithCode(code string) *models.Team {
	team := f.Create()
	team.TeamCode = code
	return team
}

// MembershipFactory provides methods to create test TeamMembership data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Create creates a membership linking the given user to the given team
func (f *MembershipFactory) Create(teamID, userID uuid.UUID, role models.TeamRole) *models.TeamMembership {
	return &models.TeamMembership{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create() *models.Project {
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TeamID:      uuid.New(),
		Name:        "Test Project",
		Description: "A test project",
	}
}

// WithTeam sets the owning team for the project
func (f *ProjectFactory) WithTeam(teamID uuid.UUID) *models.Project {
	project := f.Create()
	project.TeamID = teamID
	return project
}

// WithName sets a custom name for the project
func (f *ProjectFactory) WithName(name string) *models.Project {
	project := f.Create()
	project.Name = name
	return project
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task with default values
func (f *TaskFactory) Create() *models.Task {
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:   uuid.New(),
		Title:       "Test Task",
		Description: "A test task",
		Status:      models.TaskStatusBacklog,
		Priority:    models.TaskPriorityMedium,
		OrderIndex:  0,
	}
}

// WithProject sets the owning project for the task
func (f *TaskFactory) WithProject(projectID uuid.UUID) *models.Task {
	task := f.Create()
	task.ProjectID = projectID
	return task
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(status models.TaskStatus) *models.Task {
	task := f.Create()
	task.Status = status
	return task
}

// WithTitle sets a custom title for the task
func (f *TaskFactory) WithTitle(title string) *models.Task {
	task := f.Create()
	task.Title = title
	return task
}

// FactorySet provides access to all factories
type FactorySet struct {
	User       *UserFactory
	Team       *TeamFactory
	Membership *MembershipFactory
	Project    *ProjectFactory
	Task       *TaskFactory
	Comment    *CommentFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:       NewUserFactory(),
		Team:       NewTeamFactory(),
		Membership: NewMembershipFactory(),
		Project:    NewProjectFactory(),
		Task:       NewTaskFactory(),
		Comment:    NewCommentFactory(),
	}
}

// CommentFactory provides methods to create test Comment data
type CommentFactory struct{}

// NewCommentFactory creates a new CommentFactory
func NewCommentFactory() *CommentFactory {
	return &CommentFactory{}
}

// Create creates a comment on the given task by the given author
func (f *CommentFactory) Create(taskID, authorID uuid.UUID) *models.Comment {
	return &models.Comment{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TaskID:   taskID,
		AuthorID: authorID,
		Body:     "A test comment",
	}
}
