package repository

import (
	"testing"

	"taskforge-backend/internal/database/models"
	"taskforge-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MembershipRepositoryTestSuite tests the MembershipRepository
type MembershipRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *MembershipRepository
	teamRepo      *TeamRepository
	userRepo      *UserRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *MembershipRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewMembershipRepository(suite.baseTestSuite.DB)
	suite.teamRepo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.userRepo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *MembershipRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *MembershipRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *MembershipRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *MembershipRepositoryTestSuite) createUser(name string) *models.User {
	user := suite.factories.User.WithName(name)
	suite.NoError(suite.userRepo.Create(user))
	return user
}

func (suite *MembershipRepositoryTestSuite) createTeam(owner *models.User) *models.Team {
	team := suite.factories.Team.WithCreator(owner.ID)
	suite.NoError(suite.teamRepo.CreateWithOwner(team))
	return team
}

// TestCreateDuplicateIsUniqueViolation tests that a second membership for
// the same (team, user) pair fails with a detectable unique violation
func (suite *MembershipRepositoryTestSuite) TestCreateDuplicateIsUniqueViolation() {
	owner := suite.createUser("Owner")
	joiner := suite.createUser("Joiner")
	team := suite.createTeam(owner)

	err := suite.repo.Create(suite.factories.Membership.Create(team.ID, joiner.ID, models.TeamRoleMember))
	suite.NoError(err)

	err = suite.repo.Create(suite.factories.Membership.Create(team.ID, joiner.ID, models.TeamRoleAdmin))
	suite.Error(err)
	suite.True(IsUniqueViolation(err))
}

// TestSameUserAcrossTeams tests that the uniqueness constraint is scoped
// per team
func (suite *MembershipRepositoryTestSuite) TestSameUserAcrossTeams() {
	owner := suite.createUser("Owner")
	joiner := suite.createUser("Joiner")
	teamA := suite.createTeam(owner)
	teamB := suite.createTeam(owner)

	suite.NoError(suite.repo.Create(suite.factories.Membership.Create(teamA.ID, joiner.ID, models.TeamRoleMember)))
	suite.NoError(suite.repo.Create(suite.factories.Membership.Create(teamB.ID, joiner.ID, models.TeamRoleMember)))
}

// TestGetByTeamAndUserNotFound tests the miss path
func (suite *MembershipRepositoryTestSuite) TestGetByTeamAndUserNotFound() {
	owner := suite.createUser("Owner")
	outsider := suite.createUser("Outsider")
	team := suite.createTeam(owner)

	membership, err := suite.repo.GetByTeamAndUser(team.ID, outsider.ID)

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(membership)
}

// TestListByTeamOrdering tests that members come back owner first, then
// admins, then members, joined with user details
func (suite *MembershipRepositoryTestSuite) TestListByTeamOrdering() {
	owner := suite.createUser("Owner")
	member := suite.createUser("Member")
	admin := suite.createUser("Admin")
	team := suite.createTeam(owner)

	// Insert the plain member before the admin; role rank must still win
	suite.NoError(suite.repo.Create(suite.factories.Membership.Create(team.ID, member.ID, models.TeamRoleMember)))
	suite.NoError(suite.repo.Create(suite.factories.Membership.Create(team.ID, admin.ID, models.TeamRoleAdmin)))

	rows, err := suite.repo.ListByTeam(team.ID)

	suite.NoError(err)
	suite.Len(rows, 3)
	suite.Equal(models.TeamRoleOwner, rows[0].Role)
	suite.Equal(owner.ID, rows[0].UserID)
	suite.Equal(models.TeamRoleAdmin, rows[1].Role)
	suite.Equal(admin.ID, rows[1].UserID)
	suite.Equal(models.TeamRoleMember, rows[2].Role)
	suite.Equal(member.ID, rows[2].UserID)
	suite.Equal(owner.Email, rows[0].Email)
}

// TestIsUniqueViolationIgnoresOtherErrors tests the negative cases
func (suite *MembershipRepositoryTestSuite) TestIsUniqueViolationIgnoresOtherErrors() {
	suite.False(IsUniqueViolation(nil))
	suite.False(IsUniqueViolation(gorm.ErrRecordNotFound))
}

// Run the test suite
func TestMembershipRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipRepositoryTestSuite))
}
