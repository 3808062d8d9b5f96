package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// SeedResult reports what Seed created
type SeedResult struct {
	Workspaces int
	Projects   int
	Lists      int
	Tasks      int
	Comments   int
	AdminEmail string
	ClientSlug string
}

// Reset deletes every row, children before parents
func Reset(ctx context.Context) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.TaskCommentFile{},
			&models.TaskComment{},
			&models.TaskApproval{},
			&models.TaskDependency{},
			&models.TaskFile{},
			&models.ListTask{},
			&models.TaskTag{},
			&models.Task{},
			&models.Tag{},
			&models.List{},
			&models.CustomFieldValue{},
			&models.CustomFieldDefinition{},
			&models.File{},
			&models.Folder{},
			&models.Project{},
			&models.Session{},
			&models.MagicToken{},
			&models.Workspace{},
			&models.User{},
			&models.TaskStatus{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", m, err)
			}
		}
		return nil
	})
}

// Seed loads the demo agency: an interiors client and the studio's own
// workspace. Existing data is refused unless reset is set.
func Seed(ctx context.Context, reset bool) (*SeedResult, error) {
	if reset {
		if err := Reset(ctx); err != nil {
			return nil, err
		}
	} else {
		var n int64
		if err := DB.WithContext(ctx).Model(&models.Workspace{}).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, conflict("database already has %d workspaces", n)
		}
	}

	s := &seeder{ctx: ctx, res: &SeedResult{}}
	s.run()
	if s.err != nil {
		return nil, fmt.Errorf("seed failed: %w", s.err)
	}

	log.Info("seed complete",
		zap.Int("workspaces", s.res.Workspaces),
		zap.Int("projects", s.res.Projects),
		zap.Int("tasks", s.res.Tasks),
	)
	return s.res, nil
}

// seeder stops at the first error; later calls become no-ops
type seeder struct {
	ctx context.Context
	res *SeedResult
	err error
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func ptr[T any](v T) *T { return &v }

func (s *seeder) user(email, name string, role models.Role) *models.User {
	if s.err != nil {
		return &models.User{}
	}
	u, err := CreateUser(s.ctx, CreateUserRequest{Email: email, Name: name, Role: role})
	s.err = err
	if err != nil {
		return &models.User{}
	}
	return u
}

func (s *seeder) workspace(req CreateWorkspaceRequest) *models.Workspace {
	if s.err != nil {
		return &models.Workspace{}
	}
	ws, err := CreateWorkspace(s.ctx, req)
	s.err = err
	if err != nil {
		return &models.Workspace{}
	}
	s.res.Workspaces++
	return ws
}

func (s *seeder) status(name, color string, order int, isDefault bool, state models.StatusState) *models.TaskStatus {
	if s.err != nil {
		return &models.TaskStatus{}
	}
	st, err := CreateStatus(s.ctx, CreateStatusRequest{Name: name, Color: color, Order: order, IsDefault: isDefault, State: state})
	s.err = err
	if err != nil {
		return &models.TaskStatus{}
	}
	return st
}

func (s *seeder) field(req CreateCustomFieldRequest) *models.CustomFieldDefinition {
	if s.err != nil {
		return &models.CustomFieldDefinition{}
	}
	f, err := CreateCustomField(s.ctx, req)
	s.err = err
	if err != nil {
		return &models.CustomFieldDefinition{}
	}
	return f
}

func (s *seeder) project(req CreateProjectRequest) *models.Project {
	if s.err != nil {
		return &models.Project{}
	}
	p, err := CreateProject(s.ctx, req)
	s.err = err
	if err != nil {
		return &models.Project{}
	}
	s.res.Projects++
	return p
}

func (s *seeder) value(projectID, fieldID uint, value string) {
	if s.err != nil {
		return
	}
	_, s.err = SetCustomFieldValue(s.ctx, projectID, fieldID, value)
}

func (s *seeder) list(projectID uint, name string) *models.List {
	if s.err != nil {
		return &models.List{}
	}
	l, err := CreateList(s.ctx, projectID, name)
	s.err = err
	if err != nil {
		return &models.List{}
	}
	s.res.Lists++
	return l
}

func (s *seeder) task(req CreateTaskRequest, extraLists ...uint) *models.Task {
	if s.err != nil {
		return &models.Task{}
	}
	t, err := CreateTask(s.ctx, req)
	s.err = err
	if err != nil {
		return &models.Task{}
	}
	for _, listID := range extraLists {
		if s.err = AddTaskToList(s.ctx, t.ID, listID); s.err != nil {
			return t
		}
	}
	s.res.Tasks++
	return t
}

func (s *seeder) comment(req AddCommentRequest) *models.TaskComment {
	if s.err != nil {
		return &models.TaskComment{}
	}
	c, err := AddComment(s.ctx, req)
	s.err = err
	if err != nil {
		return &models.TaskComment{}
	}
	s.res.Comments++
	return c
}

func (s *seeder) folder(req CreateFolderRequest) *models.Folder {
	if s.err != nil {
		return &models.Folder{}
	}
	f, err := CreateFolder(s.ctx, req)
	s.err = err
	if err != nil {
		return &models.Folder{}
	}
	return f
}

func (s *seeder) file(req CreateFileRequest) *models.File {
	if s.err != nil {
		return &models.File{}
	}
	f, err := CreateFile(s.ctx, req)
	s.err = err
	if err != nil {
		return &models.File{}
	}
	return f
}

func (s *seeder) run() {
	admin := s.user("admin@lunapm.local", "Luna Admin", models.RoleAdmin)
	sam := s.user("sam@lunapm.local", "Sam Chen", models.RoleAdmin)
	ava := s.user("ava@crescent.local", "Ava Martinez", models.RoleClient)
	s.res.AdminEmail = admin.Email

	crescent := s.workspace(CreateWorkspaceRequest{
		Name:          "Crescent Interiors",
		Slug:          "crescent-interiors",
		Type:          models.WorkspaceClient,
		Address:       "120 Wythe Ave, Brooklyn, NY 11249",
		PrimaryUserID: &ava.ID,
	})
	internal := s.workspace(CreateWorkspaceRequest{
		Name:    "Internal Ops",
		Slug:    "internal-ops",
		Type:    models.WorkspaceCompany,
		Address: "85 Broad St, New York, NY 10004",
	})
	s.res.ClientSlug = crescent.Slug
	if s.err == nil {
		s.err = AssignUserWorkspace(s.ctx, ava.ID, crescent.ID)
	}

	contractor := s.field(CreateCustomFieldRequest{WorkspaceID: crescent.ID, Name: "Contractor", Type: models.FieldText, Order: 1})
	style := s.field(CreateCustomFieldRequest{
		WorkspaceID: crescent.ID,
		Name:        "Style Preference",
		Type:        models.FieldSelect,
		Options:     []string{"Modern", "Traditional", "Transitional", "Minimalist"},
		Order:       2,
	})

	todo := s.status("To do", "#E4E4E7", 1, true, models.StatusActive)
	inProgress := s.status("In progress", "#BFDBFE", 2, false, models.StatusActive)
	review := s.status("Ready for review", "#FDE68A", 3, false, models.StatusActive)
	onHold := s.status("On hold", "#FCA5A5", 4, false, models.StatusActive)
	done := s.status("Done", "#BBF7D0", 5, false, models.StatusActive)
	// kept off the boards; tasks moved here drop out of every column
	s.status("Cancelled", "#D4D4D8", 6, false, models.StatusArchived)

	brooklyn := s.project(CreateProjectRequest{
		WorkspaceID: crescent.ID,
		Name:        "Brooklyn Brownstone Refresh",
		Status:      models.ProjectActive,
		Description: "Full interior refresh of a classic Brooklyn brownstone. Living room, kitchen, and master bedroom.",
		StartDate:   date("2026-01-15"),
		EndDate:     date("2026-06-30"),
	})
	tribeca := s.project(CreateProjectRequest{
		WorkspaceID: crescent.ID,
		Name:        "Tribeca Loft Styling",
		Status:      models.ProjectPending,
		Description: "Modern styling for a converted warehouse loft in Tribeca.",
		StartDate:   date("2026-03-01"),
		EndDate:     date("2026-08-15"),
	})
	soho := s.project(CreateProjectRequest{
		WorkspaceID: crescent.ID,
		Name:        "SoHo Showroom Launch",
		Status:      models.ProjectIntake,
		Description: "Design and setup of a new retail showroom in SoHo.",
	})
	website := s.project(CreateProjectRequest{
		WorkspaceID: internal.ID,
		Name:        "Website Redesign",
		Status:      models.ProjectActive,
		Description: "Redesign the company website with updated branding and portfolio.",
		StartDate:   date("2026-02-01"),
		EndDate:     date("2026-04-30"),
	})

	s.value(brooklyn.ID, contractor.ID, "Atlas Build Co")
	s.value(brooklyn.ID, style.ID, "Transitional")
	s.value(tribeca.ID, style.ID, "Modern")

	design := s.list(brooklyn.ID, "Design Planning")
	procurement := s.list(brooklyn.ID, "Procurement")
	installation := s.list(brooklyn.ID, "Installation")
	styling := s.list(tribeca.ID, "Styling")
	designPhase := s.list(website.ID, "Design Phase")

	s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		StatusID:    todo.ID,
		OwnerID:     &admin.ID,
		Name:        "General vendor follow-up",
		Description: "Follow up with all active vendors on pricing and availability.",
	})
	s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &brooklyn.ID,
		StatusID:    done.ID,
		OwnerID:     &admin.ID,
		Name:        "Initial client meeting",
		Description: "Kickoff meeting with the client to discuss vision and budget.",
		DueDate:     date("2026-01-20"),
		Priority:    models.PriorityHigh,
	})
	floorPlan := s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &brooklyn.ID,
		StatusID:    done.ID,
		OwnerID:     &admin.ID,
		Name:        "Review floor plan measurements",
		DueDate:     date("2026-01-25"),
	})
	moodboard := s.task(CreateTaskRequest{
		WorkspaceID:  crescent.ID,
		ProjectID:    &brooklyn.ID,
		ListID:       &design.ID,
		StatusID:     inProgress.ID,
		OwnerID:      &sam.ID,
		Name:         "Finalize mood board",
		Description:  "Create and finalize the mood board for the living room and kitchen.",
		DueDate:      date("2026-02-28"),
		Priority:     models.PriorityHigh,
		Tags:         []string{"living-room", "kitchen"},
		TimeEstimate: ptr(6.5),
	})
	for _, sub := range []struct {
		name   string
		status uint
		due    *time.Time
	}{
		{"Select color palette", done.ID, nil},
		{"Choose fabric samples", inProgress.ID, nil},
		{"Create presentation deck", todo.ID, date("2026-02-25")},
	} {
		s.task(CreateTaskRequest{
			WorkspaceID:  crescent.ID,
			ProjectID:    &brooklyn.ID,
			ParentTaskID: &moodboard.ID,
			StatusID:     sub.status,
			OwnerID:      &sam.ID,
			Name:         sub.name,
			DueDate:      sub.due,
		})
	}
	pendant := s.task(CreateTaskRequest{
		WorkspaceID:      crescent.ID,
		ProjectID:        &brooklyn.ID,
		ListID:           &procurement.ID,
		StatusID:         review.ID,
		OwnerID:          &admin.ID,
		Name:             "Approve pendant light selection",
		Description:      "Client needs to approve final pendant light options for the kitchen island.",
		DueDate:          date("2026-03-10"),
		Priority:         models.PriorityUrgent,
		RequiresApproval: true,
		RequestorID:      &ava.ID,
	})
	s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &brooklyn.ID,
		ListID:      &design.ID,
		StatusID:    inProgress.ID,
		OwnerID:     &sam.ID,
		Name:        "Source pendant lights",
		Description: "Research and source pendant light options from three vendors.",
		DueDate:     date("2026-03-01"),
		Priority:    models.PriorityHigh,
		Points:      ptr(3),
	}, procurement.ID)
	s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &brooklyn.ID,
		ListID:      &installation.ID,
		StatusID:    todo.ID,
		OwnerID:     &admin.ID,
		Name:        "Schedule kitchen island installation",
		Description: "Coordinate with Atlas Build Co on kitchen island delivery and install dates.",
		DueDate:     date("2026-04-15"),
	})
	lighting := s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &brooklyn.ID,
		ListID:      &installation.ID,
		StatusID:    onHold.ID,
		Name:        "Install living room lighting",
		Description: "Waiting on pendant approval before scheduling electrician.",
	})
	s.task(CreateTaskRequest{
		WorkspaceID:      crescent.ID,
		ProjectID:        &tribeca.ID,
		ListID:           &styling.ID,
		StatusID:         todo.ID,
		OwnerID:          &sam.ID,
		Name:             "Artwork shortlist",
		Description:      "Curate a shortlist of artwork pieces for the main living area.",
		DueDate:          date("2026-04-01"),
		RequiresApproval: true,
	})
	s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &tribeca.ID,
		ListID:      &styling.ID,
		StatusID:    todo.ID,
		OwnerID:     &admin.ID,
		Name:        "Select furniture pieces",
		Description: "Choose sofa, dining table, and accent chairs.",
		DueDate:     date("2026-03-20"),
		Priority:    models.PriorityHigh,
	})
	s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &tribeca.ID,
		StatusID:    inProgress.ID,
		OwnerID:     &admin.ID,
		Name:        "Complete site survey",
		Description: "Measure all rooms and document existing conditions.",
		DueDate:     date("2026-02-20"),
		Priority:    models.PriorityUrgent,
	})
	s.task(CreateTaskRequest{
		WorkspaceID: crescent.ID,
		ProjectID:   &soho.ID,
		StatusID:    todo.ID,
		OwnerID:     &admin.ID,
		Name:        "Define showroom scope",
		Description: "Outline square footage needs, fixture requirements, and layout.",
	})
	s.task(CreateTaskRequest{
		WorkspaceID: internal.ID,
		ProjectID:   &website.ID,
		ListID:      &designPhase.ID,
		StatusID:    inProgress.ID,
		OwnerID:     &sam.ID,
		Name:        "Create wireframes",
		Description: "Design wireframes for homepage, portfolio, and contact pages.",
		DueDate:     date("2026-02-28"),
		Priority:    models.PriorityHigh,
	})
	s.task(CreateTaskRequest{
		WorkspaceID: internal.ID,
		ProjectID:   &website.ID,
		ListID:      &designPhase.ID,
		StatusID:    done.ID,
		OwnerID:     &admin.ID,
		Name:        "Finalize brand guidelines",
		Description: "Complete the updated brand guide with new color palette and typography.",
	})
	s.task(CreateTaskRequest{
		WorkspaceID: internal.ID,
		ProjectID:   &website.ID,
		StatusID:    todo.ID,
		OwnerID:     &admin.ID,
		Name:        "Write website copy",
		Description: "Draft copy for all pages including About, Services, and Contact.",
		DueDate:     date("2026-03-15"),
	})

	if s.err == nil {
		_, s.err = AddDependency(s.ctx, lighting.ID, pendant.ID)
	}

	first := s.comment(AddCommentRequest{
		TaskID:   pendant.ID,
		AuthorID: &admin.ID,
		Body:     "I've narrowed it down to three options from West Elm and one from Rejuvenation. Photos attached.",
		Files: []CommentFile{
			{Filename: "Pendant-Option-A.jpg", StorageKey: "crescent/brooklyn/pendant-a.jpg", Size: 420000, MimeType: "image/jpeg"},
			{Filename: "Pendant-Option-B.jpg", StorageKey: "crescent/brooklyn/pendant-b.jpg", Size: 380000, MimeType: "image/jpeg"},
		},
	})
	s.comment(AddCommentRequest{
		TaskID:          pendant.ID,
		AuthorID:        &ava.ID,
		ParentCommentID: &first.ID,
		Body:            "Love the Rejuvenation option! Can we get it in brass instead of black?",
	})
	s.comment(AddCommentRequest{
		TaskID:          pendant.ID,
		AuthorID:        &admin.ID,
		ParentCommentID: &first.ID,
		Body:            "Yes, they offer it in aged brass. I'll request a swatch and updated pricing.",
	})
	s.comment(AddCommentRequest{
		TaskID:   moodboard.ID,
		AuthorID: &ava.ID,
		Body:     "Can we lean more warm and earthy? Less cool tones please.",
	})

	clientDocs := s.folder(CreateFolderRequest{WorkspaceID: crescent.ID, Name: "Client Docs"})
	brooklynAssets := s.folder(CreateFolderRequest{WorkspaceID: crescent.ID, ProjectID: &brooklyn.ID, Name: "Project Assets"})
	concepts := s.folder(CreateFolderRequest{WorkspaceID: crescent.ID, ProjectID: &brooklyn.ID, ParentID: &brooklynAssets.ID, Name: "Concepts"})
	tribecaAssets := s.folder(CreateFolderRequest{WorkspaceID: crescent.ID, ProjectID: &tribeca.ID, Name: "Project Assets"})
	internalDocs := s.folder(CreateFolderRequest{WorkspaceID: internal.ID, Name: "Internal Docs"})

	s.file(CreateFileRequest{
		Filename:    "Client brief.pdf",
		StorageKey:  "crescent/client-docs/client-brief.pdf",
		Size:        245000,
		MimeType:    "application/pdf",
		UploaderID:  &admin.ID,
		WorkspaceID: crescent.ID,
		FolderID:    &clientDocs.ID,
	})
	render := s.file(CreateFileRequest{
		Filename:    "Living room render v3.png",
		StorageKey:  "crescent/brooklyn/concepts/living-room-v3.png",
		Size:        3200000,
		MimeType:    "image/png",
		UploaderID:  &sam.ID,
		WorkspaceID: crescent.ID,
		ProjectID:   &brooklyn.ID,
		FolderID:    &concepts.ID,
	})
	floorPlanFile := s.file(CreateFileRequest{
		Filename:    "Floor plan measurements.pdf",
		StorageKey:  "crescent/brooklyn/floor-plan.pdf",
		Size:        890000,
		MimeType:    "application/pdf",
		UploaderID:  &admin.ID,
		WorkspaceID: crescent.ID,
		ProjectID:   &brooklyn.ID,
		FolderID:    &brooklynAssets.ID,
	})
	s.file(CreateFileRequest{
		Filename:    "Loft style guide.pdf",
		StorageKey:  "crescent/tribeca/style-guide.pdf",
		Size:        1500000,
		MimeType:    "application/pdf",
		UploaderID:  &admin.ID,
		WorkspaceID: crescent.ID,
		ProjectID:   &tribeca.ID,
		FolderID:    &tribecaAssets.ID,
	})
	s.file(CreateFileRequest{
		Filename:    "Brand guidelines.pdf",
		StorageKey:  "internal/brand-guidelines.pdf",
		Size:        2100000,
		MimeType:    "application/pdf",
		UploaderID:  &admin.ID,
		WorkspaceID: internal.ID,
		FolderID:    &internalDocs.ID,
	})

	if s.err == nil {
		s.err = AttachFile(s.ctx, floorPlan.ID, floorPlanFile.ID)
	}
	if s.err == nil {
		s.err = AttachFile(s.ctx, moodboard.ID, render.ID)
	}
}
