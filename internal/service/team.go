package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"taskforge-backend/internal/database/models"
	apperrors "taskforge-backend/internal/errors"
	"taskforge-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const teamCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// codeGenMaxAttempts bounds the collision-retry loop for invite codes.
// An adversarial or saturated code space fails loudly instead of looping.
const codeGenMaxAttempts = 20

// CodeGenerator produces candidate team invite codes. Injectable so tests
// can force collisions.
type CodeGenerator func() (string, error)

// GenerateTeamCode returns a random 6-character uppercase alphanumeric
// invite code using crypto/rand.
func GenerateTeamCode() (string, error) {
	code := make([]byte, models.TeamCodeLength)
	max := big.NewInt(int64(len(teamCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate team code: %w", err)
		}
		code[i] = teamCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// TeamService handles business logic for teams and memberships
type TeamService struct {
	teamRepo       repository.TeamRepositoryInterface
	membershipRepo repository.MembershipRepositoryInterface
	userRepo       repository.UserRepositoryInterface
	authorizer     *Authorizer
	validator      *validator.Validate
	generateCode   CodeGenerator
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repository.TeamRepositoryInterface, membershipRepo repository.MembershipRepositoryInterface, userRepo repository.UserRepositoryInterface, authorizer *Authorizer, validator *validator.Validate) *TeamService {
	return &TeamService{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		authorizer:     authorizer,
		validator:      validator,
		generateCode:   GenerateTeamCode,
	}
}

// WithCodeGenerator replaces the invite-code generator. Used by tests to
// force collisions and exhaustion.
func (s *TeamService) WithCodeGenerator(gen CodeGenerator) *TeamService {
	s.generateCode = gen
	return s
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// AddMemberRequest represents the request to add a member to a team. Either
// email or user_id identifies the target.
type AddMemberRequest struct {
	Email  string          `json:"email" validate:"omitempty,email"`
	UserID *uuid.UUID      `json:"user_id,omitempty"`
	Role   models.TeamRole `json:"role,omitempty"`
}

// JoinByCodeRequest represents the request to join a team by invite code
type JoinByCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// TeamResponse represents the response for team operations
type TeamResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeamCode    string    `json:"team_code"`
	CreatedBy   uuid.UUID `json:"created_by"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// TeamMemberResponse represents one row of the team members listing
type TeamMemberResponse struct {
	UserID   uuid.UUID       `json:"user_id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.TeamRole `json:"role"`
	JoinedAt string          `json:"joined_at"`
}

// JoinTeamResponse represents the result of joining a team by code
type JoinTeamResponse struct {
	TeamID uuid.UUID `json:"teamId"`
}

// Create creates a team and inserts the creator's owner membership in the
// same transaction. The invite code is regenerated on collision up to the
// retry bound.
func (s *TeamService) Create(callerID uuid.UUID, req *CreateTeamRequest) (*TeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, err
		}

		exists, err := s.teamRepo.CodeExists(code)
		if err != nil {
			return nil, fmt.Errorf("failed to check team code: %w", err)
		}
		if exists {
			continue
		}

		team := &models.Team{
			Name:        req.Name,
			Description: req.Description,
			TeamCode:    code,
			CreatedBy:   callerID,
		}
		if err := s.teamRepo.CreateWithOwner(team); err != nil {
			// A concurrent create may have claimed the code between the
			// existence check and the insert; that attempt counts too.
			if repository.IsUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("failed to create team: %w", err)
		}

		resp := s.toResponse(&repository.TeamWithMemberCount{Team: *team, MemberCount: 1})
		return resp, nil
	}

	return nil, apperrors.ErrCodeGenerationExhausted
}

// ListForUser retrieves every team the caller is a member of, with member
// counts, newest first.
func (s *TeamService) ListForUser(callerID uuid.UUID) ([]TeamResponse, error) {
	rows, err := s.teamRepo.GetTeamsForUser(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return s.toResponses(rows), nil
}

// ListAvailable retrieves every team the caller is not a member of, the
// complement of ListForUser.
func (s *TeamService) ListAvailable(callerID uuid.UUID) ([]TeamResponse, error) {
	rows, err := s.teamRepo.GetAvailableTeams(callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available teams: %w", err)
	}
	return s.toResponses(rows), nil
}

// AddMember inserts a membership for the target user. The caller must be
// owner or admin of the team; the target is identified by user id or email.
// The unique (team, user) index is the final authority against duplicates.
func (s *TeamService) AddMember(callerID, teamID uuid.UUID, req *AddMemberRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return apperrors.NewValidationError("", err.Error())
	}
	if req.Email == "" && req.UserID == nil {
		return apperrors.NewValidationError("email", "email or user_id is required")
	}

	role := req.Role
	if role == "" {
		role = models.TeamRoleMember
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidTeamRole, role)
	}

	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamNotFound
		}
		return fmt.Errorf("failed to look up team: %w", err)
	}

	if _, err := s.authorizer.RequireRole(callerID, teamID, models.TeamRoleAdmin); err != nil {
		return err
	}

	targetID, err := s.resolveTarget(req)
	if err != nil {
		return err
	}

	if _, err := s.membershipRepo.GetByTeamAndUser(teamID, targetID); err == nil {
		return apperrors.ErrMembershipExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing membership: %w", err)
	}

	membership := &models.TeamMembership{
		TeamID:   teamID,
		UserID:   targetID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.membershipRepo.Create(membership); err != nil {
		if repository.IsUniqueViolation(err) {
			return apperrors.ErrMembershipExists
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// GetMembers retrieves the members of a team, ordered by role rank then
// join time. The caller must hold any membership in the team.
func (s *TeamService) GetMembers(callerID, teamID uuid.UUID) ([]TeamMemberResponse, error) {
	if _, err := s.teamRepo.GetByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to look up team: %w", err)
	}

	if _, err := s.authorizer.RequireMember(callerID, teamID); err != nil {
		return nil, err
	}

	rows, err := s.membershipRepo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]TeamMemberResponse, 0, len(rows))
	for _, row := range rows {
		members = append(members, TeamMemberResponse{
			UserID:   row.UserID,
			Name:     row.Name,
			Email:    row.Email,
			Role:     row.Role,
			JoinedAt: row.JoinedAt.Format(time.RFC3339),
		})
	}
	return members, nil
}

// JoinByCode adds the caller to the team owning the invite code, with role
// member. An unknown code is not found; an existing membership is a
// conflict and never upserts.
func (s *TeamService) JoinByCode(callerID uuid.UUID, req *JoinByCodeRequest) (*JoinTeamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("code", "code is required")
	}

	team, err := s.teamRepo.GetByCode(req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamCodeInvalid
		}
		return nil, fmt.Errorf("failed to look up team code: %w", err)
	}

	membership := &models.TeamMembership{
		TeamID:   team.ID,
		UserID:   callerID,
		Role:     models.TeamRoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.membershipRepo.Create(membership); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrMembershipExists
		}
		return nil, fmt.Errorf("failed to join team: %w", err)
	}

	return &JoinTeamResponse{TeamID: team.ID}, nil
}

func (s *TeamService) resolveTarget(req *AddMemberRequest) (uuid.UUID, error) {
	if req.UserID != nil {
		if _, err := s.userRepo.GetByID(*req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, apperrors.ErrUserNotFound
			}
			return uuid.Nil, fmt.Errorf("failed to resolve user by id: %w", err)
		}
		return *req.UserID, nil
	}
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user by email: %w", err)
	}
	return user.ID, nil
}

func (s *TeamService) toResponse(row *repository.TeamWithMemberCount) *TeamResponse {
	return &TeamResponse{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		TeamCode:    row.TeamCode,
		CreatedBy:   row.CreatedBy,
		MemberCount: row.MemberCount,
		CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   row.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *TeamService) toResponses(rows []repository.TeamWithMemberCount) []TeamResponse {
	responses := make([]TeamResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, *s.toResponse(&rows[i]))
	}
	return responses
}
