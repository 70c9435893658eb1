package repository

import (
	"errors"
	"time"

	"taskforge-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TeamMemberRow is a membership joined with the user it belongs to,
// shaped for the team members listing.
type TeamMemberRow struct {
	UserID   uuid.UUID       `json:"user_id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.TeamRole `json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
}

// MembershipRepository handles database operations for team memberships
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a membership row. The composite unique index on
// (team_id, user_id) rejects duplicates; callers translate that violation
// with IsUniqueViolation instead of trusting a prior read.
func (r *MembershipRepository) Create(membership *models.TeamMembership) error {
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now()
	}
	return r.db.Create(membership).Error
}

// GetByTeamAndUser retrieves the membership for a (team, user) pair
func (r *MembershipRepository) GetByTeamAndUser(teamID, userID uuid.UUID) (*models.TeamMembership, error) {
	var membership models.TeamMembership
	err := r.db.First(&membership, "team_id = ? AND user_id = ?", teamID, userID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListByTeam retrieves all members of a team joined with user details,
// ordered by role rank (owner, admin, member) and then join time for
// stability.
func (r *MembershipRepository) ListByTeam(teamID uuid.UUID) ([]TeamMemberRow, error) {
	var rows []TeamMemberRow
	err := r.db.Raw(`
		SELECT u.id AS user_id, u.name, u.email, tm.role, tm.joined_at
		FROM team_memberships tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = ?
		ORDER BY CASE tm.role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 ELSE 2 END,
		         tm.joined_at ASC, tm.id ASC`, teamID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505) or GORM's translated duplicate-key error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
