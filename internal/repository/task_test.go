package repository

import (
	"testing"

	"taskforge-backend/internal/database/models"
	"taskforge-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TaskRepositoryTestSuite tests the TaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TaskRepository
	factories     *testutils.FactorySet
	project       *models.Project
}

// SetupSuite runs before all tests in the suite
func (suite *TaskRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTaskRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TaskRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest creates a fresh team and project for each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	user := suite.factories.User.Create()
	suite.NoError(NewUserRepository(suite.baseTestSuite.DB).Create(user))

	team := suite.factories.Team.WithCreator(user.ID)
	suite.NoError(NewTeamRepository(suite.baseTestSuite.DB).CreateWithOwner(team))

	suite.project = suite.factories.Project.WithTeam(team.ID)
	suite.NoError(NewProjectRepository(suite.baseTestSuite.DB).Create(suite.project))
}

// TearDownTest runs after each test
func (suite *TaskRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TaskRepositoryTestSuite) createTask(status models.TaskStatus) *models.Task {
	task := suite.factories.Task.WithStatus(status)
	task.ProjectID = suite.project.ID
	suite.NoError(suite.repo.CreateAppend(task))
	return task
}

// TestCreateAppendDenseIndexes tests that tasks appended to the same column
// get consecutive order indexes starting at zero
func (suite *TaskRepositoryTestSuite) TestCreateAppendDenseIndexes() {
	first := suite.createTask(models.TaskStatusTodo)
	second := suite.createTask(models.TaskStatusTodo)
	third := suite.createTask(models.TaskStatusTodo)

	suite.Equal(0, first.OrderIndex)
	suite.Equal(1, second.OrderIndex)
	suite.Equal(2, third.OrderIndex)
}

// TestCreateAppendPerColumn tests that order indexes are scoped to the
// status column, not the project
func (suite *TaskRepositoryTestSuite) TestCreateAppendPerColumn() {
	todo := suite.createTask(models.TaskStatusTodo)
	doing := suite.createTask(models.TaskStatusInProgress)

	suite.Equal(0, todo.OrderIndex)
	suite.Equal(0, doing.OrderIndex)
}

// TestMoveToStatusAppendsAtEnd tests that a moved task lands at the end of
// its target column
func (suite *TaskRepositoryTestSuite) TestMoveToStatusAppendsAtEnd() {
	suite.createTask(models.TaskStatusDone)
	suite.createTask(models.TaskStatusDone)
	moved := suite.createTask(models.TaskStatusTodo)

	err := suite.repo.MoveToStatus(moved, models.TaskStatusDone)

	suite.NoError(err)
	suite.Equal(models.TaskStatusDone, moved.Status)
	suite.Equal(2, moved.OrderIndex)

	// The change must be persisted, not just in-memory
	reloaded, err := suite.repo.GetByID(moved.ID)
	suite.NoError(err)
	suite.Equal(models.TaskStatusDone, reloaded.Status)
	suite.Equal(2, reloaded.OrderIndex)
}

// TestGetByProjectIDOrdering tests the board ordering contract
func (suite *TaskRepositoryTestSuite) TestGetByProjectIDOrdering() {
	a := suite.createTask(models.TaskStatusTodo)
	b := suite.createTask(models.TaskStatusTodo)

	tasks, err := suite.repo.GetByProjectID(suite.project.ID)

	suite.NoError(err)
	suite.Len(tasks, 2)
	suite.Equal(a.ID, tasks[0].ID)
	suite.Equal(b.ID, tasks[1].ID)
}

// TestUpdate tests persisting field changes
func (suite *TaskRepositoryTestSuite) TestUpdate() {
	task := suite.createTask(models.TaskStatusBacklog)

	task.Title = "Renamed"
	task.Priority = models.TaskPriorityHigh
	suite.NoError(suite.repo.Update(task))

	reloaded, err := suite.repo.GetByID(task.ID)
	suite.NoError(err)
	suite.Equal("Renamed", reloaded.Title)
	suite.Equal(models.TaskPriorityHigh, reloaded.Priority)
}

// TestDelete tests removal and the strict not-found contract
func (suite *TaskRepositoryTestSuite) TestDelete() {
	task := suite.createTask(models.TaskStatusTodo)

	suite.NoError(suite.repo.Delete(task.ID))

	_, err := suite.repo.GetByID(task.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)

	// Deleting again reports not found instead of succeeding silently
	err = suite.repo.Delete(task.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestDeleteUnknownID tests deleting a task that never existed
func (suite *TaskRepositoryTestSuite) TestDeleteUnknownID() {
	err := suite.repo.Delete(uuid.New())
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// Run the test suite
func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
