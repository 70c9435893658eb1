package handlers

import (
	"net/http"

	"taskforge-backend/internal/auth"
	"taskforge-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamHandler handles HTTP requests for team and membership operations
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListTeams handles GET /teams
// @Summary List the caller's teams
// @Description Get every team the caller is a member of, with member counts, newest first
// @Tags teams
// @Produce json
// @Success 200 {array} service.TeamResponse "Teams"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Security BearerAuth
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	teams, err := h.teamService.ListForUser(callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// CreateTeam handles POST /teams
// @Summary Create a team
// @Description Create a team with a fresh invite code; the caller becomes its owner
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.CreateTeamRequest true "Team data"
// @Success 201 {object} service.TeamResponse "Created team"
// @Failure 400 {object} ErrorResponse "Missing name"
// @Failure 409 {object} ErrorResponse "Invite code space exhausted"
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.teamService.Create(callerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListAvailableTeams handles GET /teams/available-to-join
// @Summary List joinable teams
// @Description Get every team the caller is not yet a member of
// @Tags teams
// @Produce json
// @Success 200 {array} service.TeamResponse "Teams"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Security BearerAuth
// @Router /teams/available-to-join [get]
func (h *TeamHandler) ListAvailableTeams(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	teams, err := h.teamService.ListAvailable(callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// JoinByCode handles POST /teams/join-by-code
// @Summary Join a team by invite code
// @Description Join the team owning the code with role member
// @Tags teams
// @Accept json
// @Produce json
// @Param code body service.JoinByCodeRequest true "Invite code"
// @Success 201 {object} service.JoinTeamResponse "Joined team"
// @Failure 400 {object} ErrorResponse "Missing code"
// @Failure 404 {object} ErrorResponse "Unknown code"
// @Failure 409 {object} ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /teams/join-by-code [post]
func (h *TeamHandler) JoinByCode(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req service.JoinByCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.teamService.JoinByCode(callerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetTeamMembers handles GET /teams/:teamId/members
// @Summary List team members
// @Description Get the members of a team ordered by role rank; the caller must be a member
// @Tags teams
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Success 200 {array} service.TeamMemberResponse "Members"
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Security BearerAuth
// @Router /teams/{teamId}/members [get]
func (h *TeamHandler) GetTeamMembers(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team ID"})
		return
	}

	members, err := h.teamService.GetMembers(callerID, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// AddMember handles POST /teams/:teamId/members
// @Summary Add a team member
// @Description Add a user to the team by email or user id; the caller must be owner or admin
// @Tags teams
// @Accept json
// @Produce json
// @Param teamId path string true "Team ID (UUID)"
// @Param member body service.AddMemberRequest true "Target user and role"
// @Success 201 {object} map[string]interface{} "Member added"
// @Failure 400 {object} ErrorResponse "Missing email/user id or invalid role"
// @Failure 403 {object} ErrorResponse "Insufficient role"
// @Failure 404 {object} ErrorResponse "User or team not found"
// @Failure 409 {object} ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /teams/{teamId}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	callerID, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team ID"})
		return
	}

	var req service.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.teamService.AddMember(callerID, teamID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}
