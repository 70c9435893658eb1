package repository

import (
	"time"

	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamWithMemberCount is a team row annotated with its total member count
type TeamWithMemberCount struct {
	models.Team
	MemberCount int64 `json:"member_count"`
}

// TeamRepository handles database operations for teams
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// CreateWithOwner inserts the team row and the creator's owner membership in
// a single transaction. A team without an owner membership must never be
// observable, so the pair commits or rolls back together.
func (r *TeamRepository) CreateWithOwner(team *models.Team) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		membership := &models.TeamMembership{
			TeamID:   team.ID,
			UserID:   team.CreatedBy,
			Role:     models.TeamRoleOwner,
			JoinedAt: time.Now(),
		}
		return tx.Create(membership).Error
	})
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByCode retrieves a team by its exact invite code
func (r *TeamRepository) GetByCode(code string) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, "team_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// CodeExists reports whether any team already uses the given invite code
func (r *TeamRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Team{}).Where("team_code = ?", code).Count(&count).Error
	return count > 0, err
}

// GetTeamsForUser retrieves every team the user holds a membership in,
// annotated with member counts, newest first.
func (r *TeamRepository) GetTeamsForUser(userID uuid.UUID) ([]TeamWithMemberCount, error) {
	var rows []TeamWithMemberCount
	err := r.db.Raw(`
		SELECT t.*, COUNT(tm.user_id) AS member_count
		FROM teams t
		LEFT JOIN team_memberships tm ON tm.team_id = t.id
		WHERE t.id IN (SELECT team_id FROM team_memberships WHERE user_id = ?)
		GROUP BY t.id
		ORDER BY t.created_at DESC`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetAvailableTeams retrieves every team the user holds no membership in,
// the complement of GetTeamsForUser, same shape and ordering.
func (r *TeamRepository) GetAvailableTeams(userID uuid.UUID) ([]TeamWithMemberCount, error) {
	var rows []TeamWithMemberCount
	err := r.db.Raw(`
		SELECT t.*, COUNT(tm.user_id) AS member_count
		FROM teams t
		LEFT JOIN team_memberships tm ON tm.team_id = t.id
		WHERE t.id NOT IN (SELECT team_id FROM team_memberships WHERE user_id = ?)
		GROUP BY t.id
		ORDER BY t.created_at DESC`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMemberCount returns the number of members in a team
func (r *TeamRepository) GetMemberCount(teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMembership{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}
