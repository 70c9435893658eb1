package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskforge-backend/internal/config"
	"taskforge-backend/internal/database"
	"taskforge-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type UserData struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type TeamData struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Code        string   `yaml:"code"`
	OwnerEmail  string   `yaml:"owner_email"`
	Members     []string `yaml:"members,omitempty"` // emails, joined as plain members
}

type ProjectData struct {
	Name        string `yaml:"name"`
	TeamName    string `yaml:"team_name"`
	Description string `yaml:"description"`
}

type TaskData struct {
	Title       string `yaml:"title"`
	ProjectName string `yaml:"project_name"`
	Description string `yaml:"description,omitempty"`
	Status      string `yaml:"status,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	Assignee    string `yaml:"assignee,omitempty"` // email
}

// File structures
type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

type ProjectsFile struct {
	Projects []ProjectData `yaml:"projects"`
}

type TasksFile struct {
	Tasks []TaskData `yaml:"tasks"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	teams, err := loadTeams(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	projects, err := loadProjects(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	tasks, err := loadTasks(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	// Create users first
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users {
		user, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[userData.Email] = user
		if created {
			userCreated++
		}
	}
	log.Printf("Users: %d created, %d total", userCreated, len(users))

	// Create teams with their owner and member rows
	teamMap := make(map[string]*models.Team)
	teamCreated := 0
	for _, teamData := range teams {
		team, created, err := createTeam(db, teamData, userMap)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", teamData.Name, err)
		}
		teamMap[teamData.Name] = team
		if created {
			teamCreated++
		}
	}
	log.Printf("Teams: %d created, %d total", teamCreated, len(teams))

	// Create projects
	projectMap := make(map[string]*models.Project)
	projectCreated := 0
	for _, projectData := range projects {
		project, created, err := createProject(db, projectData, teamMap)
		if err != nil {
			return fmt.Errorf("failed to create project %s: %w", projectData.Name, err)
		}
		projectMap[projectData.Name] = project
		if created {
			projectCreated++
		}
	}
	log.Printf("Projects: %d created, %d total", projectCreated, len(projects))

	// Create tasks, appending each to the end of its status column
	taskCreated := 0
	for _, taskData := range tasks {
		_, created, err := createTask(db, taskData, projectMap, userMap)
		if err != nil {
			log.Printf("Warning: failed to create task %s: %v", taskData.Title, err)
			continue
		}
		if created {
			taskCreated++
		}
	}
	log.Printf("Tasks: %d created, %d total", taskCreated, len(tasks))

	return nil
}

func loadUsers(dataDir string) ([]UserData, error) {
	var allUsers []UserData

	err := walkYAMLFiles(dataDir, "users", func(data []byte) error {
		var file UsersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		allUsers = append(allUsers, file.Users...)
		return nil
	})

	return allUsers, err
}

func loadTeams(dataDir string) ([]TeamData, error) {
	var allTeams []TeamData

	err := walkYAMLFiles(dataDir, "teams", func(data []byte) error {
		var file TeamsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		allTeams = append(allTeams, file.Teams...)
		return nil
	})

	return allTeams, err
}

func loadProjects(dataDir string) ([]ProjectData, error) {
	var allProjects []ProjectData

	err := walkYAMLFiles(dataDir, "projects", func(data []byte) error {
		var file ProjectsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		allProjects = append(allProjects, file.Projects...)
		return nil
	})

	return allProjects, err
}

func loadTasks(dataDir string) ([]TaskData, error) {
	var allTasks []TaskData

	err := walkYAMLFiles(dataDir, "tasks", func(data []byte) error {
		var file TasksFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		allTasks = append(allTasks, file.Tasks...)
		return nil
	})

	return allTasks, err
}

func walkYAMLFiles(dataDir, nameFragment string, apply func([]byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, nameFragment) {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return apply(data)
		}
		return nil
	})
}

func createUser(db *gorm.DB, userData UserData) (*models.User, bool, error) {
	var user models.User
	if err := db.Where("email = ?", userData.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hash, err := bcrypt.GenerateFromPassword([]byte(userData.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, false, fmt.Errorf("failed to hash password: %w", err)
			}

			user = models.User{
				Name:         userData.Name,
				Email:        userData.Email,
				PasswordHash: string(hash),
			}

			if err := db.Create(&user).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create user: %w", err)
			}
			return &user, true, nil // created = true
		}
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, false, nil // created = false (existing)
}

func createTeam(db *gorm.DB, teamData TeamData, userMap map[string]*models.User) (*models.Team, bool, error) {
	owner := userMap[teamData.OwnerEmail]
	if owner == nil {
		return nil, false, fmt.Errorf("owner %s not found for team %s", teamData.OwnerEmail, teamData.Name)
	}

	var team models.Team
	if err := db.Where("team_code = ?", teamData.Code).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			team = models.Team{
				Name:        teamData.Name,
				Description: teamData.Description,
				TeamCode:    strings.ToUpper(teamData.Code),
				CreatedBy:   owner.ID,
			}

			if err := db.Create(&team).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create team: %w", err)
			}

			ownership := models.TeamMembership{
				TeamID:   team.ID,
				UserID:   owner.ID,
				Role:     models.TeamRoleOwner,
				JoinedAt: time.Now(),
			}
			if err := db.Create(&ownership).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create owner membership: %w", err)
			}

			for _, email := range teamData.Members {
				member := userMap[email]
				if member == nil {
					log.Printf("Warning: member %s not found for team %s", email, teamData.Name)
					continue
				}
				membership := models.TeamMembership{
					TeamID:   team.ID,
					UserID:   member.ID,
					Role:     models.TeamRoleMember,
					JoinedAt: time.Now(),
				}
				if err := db.Create(&membership).Error; err != nil {
					log.Printf("Warning: failed to add member %s to team %s: %v", email, teamData.Name, err)
				}
			}

			return &team, true, nil // created = true
		}
		return nil, false, fmt.Errorf("failed to query team: %w", err)
	}

	return &team, false, nil // created = false (existing)
}

func createProject(db *gorm.DB, projectData ProjectData, teamMap map[string]*models.Team) (*models.Project, bool, error) {
	team := teamMap[projectData.TeamName]
	if team == nil {
		return nil, false, fmt.Errorf("team %s not found for project %s", projectData.TeamName, projectData.Name)
	}

	var project models.Project
	if err := db.Where("name = ? AND team_id = ?", projectData.Name, team.ID).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			project = models.Project{
				TeamID:      team.ID,
				Name:        projectData.Name,
				Description: projectData.Description,
			}

			if err := db.Create(&project).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create project: %w", err)
			}
			return &project, true, nil // created = true
		}
		return nil, false, fmt.Errorf("failed to query project: %w", err)
	}

	return &project, false, nil // created = false (existing)
}

func createTask(db *gorm.DB, taskData TaskData, projectMap map[string]*models.Project, userMap map[string]*models.User) (*models.Task, bool, error) {
	project := projectMap[taskData.ProjectName]
	if project == nil {
		return nil, false, fmt.Errorf("project %s not found for task %s", taskData.ProjectName, taskData.Title)
	}

	status := models.TaskStatusBacklog
	if taskData.Status != "" {
		status = models.TaskStatus(taskData.Status)
	}

	priority := models.TaskPriorityMedium
	if taskData.Priority != "" {
		priority = models.TaskPriority(taskData.Priority)
	}

	var task models.Task
	if err := db.Where("title = ? AND project_id = ?", taskData.Title, project.ID).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			task = models.Task{
				ProjectID:   project.ID,
				Title:       taskData.Title,
				Description: taskData.Description,
				Status:      status,
				Priority:    priority,
			}

			if taskData.Assignee != "" {
				if assignee := userMap[taskData.Assignee]; assignee != nil {
					task.AssigneeID = &assignee.ID
				}
			}

			// Append to the end of the status column
			var next struct{ Next int }
			if err := db.Model(&models.Task{}).
				Select("COALESCE(MAX(order_index), -1) + 1 AS next").
				Where("project_id = ? AND status = ?", project.ID, status).
				Scan(&next).Error; err != nil {
				return nil, false, fmt.Errorf("failed to compute order index: %w", err)
			}
			task.OrderIndex = next.Next

			if err := db.Create(&task).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create task: %w", err)
			}
			return &task, true, nil // created = true
		}
		return nil, false, fmt.Errorf("failed to query task: %w", err)
	}

	return &task, false, nil // created = false (existing)
}
