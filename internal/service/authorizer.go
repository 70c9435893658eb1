package service

import (
	"errors"
	"fmt"

	"taskforge-backend/internal/database/models"
	apperrors "taskforge-backend/internal/errors"
	"taskforge-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authorizer is the single membership/role predicate every mutating team,
// project, and task operation goes through. Centralizing the check keeps the
// per-endpoint authorization rules from drifting apart.
type Authorizer struct {
	membershipRepo repository.MembershipRepositoryInterface
}

// NewAuthorizer creates a new authorizer
func NewAuthorizer(membershipRepo repository.MembershipRepositoryInterface) *Authorizer {
	return &Authorizer{membershipRepo: membershipRepo}
}

// RequireRole checks that the caller holds a membership in the team with at
// least the authority of minRole. A missing membership and an insufficient
// role both surface as authorization errors.
func (a *Authorizer) RequireRole(callerID, teamID uuid.UUID, minRole models.TeamRole) (*models.TeamMembership, error) {
	membership, err := a.membershipRepo.GetByTeamAndUser(teamID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotTeamMember
		}
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}
	if !membership.Role.AtLeast(minRole) {
		return nil, apperrors.ErrInsufficientRole
	}
	return membership, nil
}

// RequireMember checks that the caller holds any membership in the team
func (a *Authorizer) RequireMember(callerID, teamID uuid.UUID) (*models.TeamMembership, error) {
	return a.RequireRole(callerID, teamID, models.TeamRoleMember)
}
