package service_test

import (
	"testing"

	"taskforge-backend/internal/database/models"
	apperrors "taskforge-backend/internal/errors"
	"taskforge-backend/internal/repository"
	"taskforge-backend/internal/service"
	"taskforge-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	baseTestSuite  *testutils.BaseTestSuite
	projectService *service.ProjectService
	userRepo       *repository.UserRepository
	teamRepo       *repository.TeamRepository
	membershipRepo *repository.MembershipRepository
	factories      *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ProjectServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.factories = testutils.NewFactorySet()

	db := suite.baseTestSuite.DB
	suite.userRepo = repository.NewUserRepository(db)
	suite.teamRepo = repository.NewTeamRepository(db)
	suite.membershipRepo = repository.NewMembershipRepository(db)

	authorizer := service.NewAuthorizer(suite.membershipRepo)
	suite.projectService = service.NewProjectService(
		repository.NewProjectRepository(db), suite.teamRepo, authorizer, validator.New())
}

// TearDownSuite runs after all tests in the suite
func (suite *ProjectServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *ProjectServiceTestSuite) createUser(name string) *models.User {
	user := suite.factories.User.WithName(name)
	suite.NoError(suite.userRepo.Create(user))
	return user
}

func (suite *ProjectServiceTestSuite) createTeam(owner *models.User) *models.Team {
	team := suite.factories.Team.WithCreator(owner.ID)
	suite.NoError(suite.teamRepo.CreateWithOwner(team))
	return team
}

// TestCreate tests creating a project as a team member
func (suite *ProjectServiceTestSuite) TestCreate() {
	alice := suite.createUser("Alice")
	team := suite.createTeam(alice)

	project, err := suite.projectService.Create(alice.ID, &service.CreateProjectRequest{
		TeamID:      team.ID,
		Name:        "Launch",
		Description: "Ship the first release",
	})

	suite.NoError(err)
	suite.Equal("Launch", project.Name)
	suite.Equal(team.ID, project.TeamID)
}

// TestCreateRequiresMembership tests that outsiders cannot create projects
func (suite *ProjectServiceTestSuite) TestCreateRequiresMembership() {
	alice := suite.createUser("Alice")
	mallory := suite.createUser("Mallory")
	team := suite.createTeam(alice)

	_, err := suite.projectService.Create(mallory.ID, &service.CreateProjectRequest{
		TeamID: team.ID,
		Name:   "Sneaky",
	})

	suite.ErrorIs(err, apperrors.ErrNotTeamMember)
}

// TestCreateUnknownTeam tests creating in a non-existent team
func (suite *ProjectServiceTestSuite) TestCreateUnknownTeam() {
	alice := suite.createUser("Alice")

	_, err := suite.projectService.Create(alice.ID, &service.CreateProjectRequest{
		TeamID: uuid.New(),
		Name:   "Orphan",
	})

	suite.ErrorIs(err, apperrors.ErrTeamNotFound)
}

// TestListScopedToTeam tests the teamId-filtered listing with its
// membership gate
func (suite *ProjectServiceTestSuite) TestListScopedToTeam() {
	alice := suite.createUser("Alice")
	mallory := suite.createUser("Mallory")
	team := suite.createTeam(alice)

	_, err := suite.projectService.Create(alice.ID, &service.CreateProjectRequest{TeamID: team.ID, Name: "Launch"})
	suite.NoError(err)

	projects, err := suite.projectService.List(alice.ID, &team.ID)
	suite.NoError(err)
	suite.Len(projects, 1)

	_, err = suite.projectService.List(mallory.ID, &team.ID)
	suite.ErrorIs(err, apperrors.ErrNotTeamMember)
}

// TestListAcrossTeams tests the unscoped listing covering every team the
// caller belongs to and nothing else
func (suite *ProjectServiceTestSuite) TestListAcrossTeams() {
	alice := suite.createUser("Alice")
	bob := suite.createUser("Bob")

	teamA := suite.createTeam(alice)
	teamB := suite.createTeam(alice)
	teamC := suite.createTeam(bob)

	_, err := suite.projectService.Create(alice.ID, &service.CreateProjectRequest{TeamID: teamA.ID, Name: "A1"})
	suite.NoError(err)
	_, err = suite.projectService.Create(alice.ID, &service.CreateProjectRequest{TeamID: teamB.ID, Name: "B1"})
	suite.NoError(err)
	_, err = suite.projectService.Create(bob.ID, &service.CreateProjectRequest{TeamID: teamC.ID, Name: "C1"})
	suite.NoError(err)

	projects, err := suite.projectService.List(alice.ID, nil)

	suite.NoError(err)
	suite.Len(projects, 2)
	names := []string{projects[0].Name, projects[1].Name}
	suite.ElementsMatch([]string{"A1", "B1"}, names)
}

// Run the test suite
func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
