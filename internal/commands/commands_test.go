package commands

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/models"
	"github.com/balkashynov/luna/internal/parser"
)

func seeded(t *testing.T) context.Context {
	t.Helper()
	require.NoError(t, db.Initialize(filepath.Join(t.TempDir(), "luna.db")))
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err := db.Seed(ctx, false)
	require.NoError(t, err)
	return ctx
}

func findTask(t *testing.T, ctx context.Context, name string) models.Task {
	t.Helper()
	tasks, err := db.ListTasks(ctx, db.TaskFilter{WithSubtask: true})
	require.NoError(t, err)
	for _, task := range tasks {
		if task.Name == name {
			return task
		}
	}
	t.Fatalf("task %q not found", name)
	return models.Task{}
}

func TestMatchSlug(t *testing.T) {
	names := []string{"Design Planning", "Design Phase", "Procurement"}

	i, err := matchSlug("list", "procurement", names)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = matchSlug("list", "design-pl", names)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	_, err = matchSlug("list", "design", names)
	assert.ErrorContains(t, err, "Design Planning, Design Phase")

	_, err = matchSlug("list", "styling", names)
	assert.ErrorContains(t, err, "no list matches")
}

func TestBuildTaskRequest(t *testing.T) {
	ctx := seeded(t)

	parsed := parser.ParseTitle("Order fabric samples #fabric @brooklyn list:procurement +high")
	req, err := buildTaskRequest(ctx, "crescent-interiors", parsed)
	require.NoError(t, err)

	assert.Equal(t, "Order fabric samples", req.Name)
	assert.Equal(t, models.PriorityHigh, req.Priority)
	assert.Equal(t, []string{"fabric"}, req.Tags)
	require.NotNil(t, req.ProjectID)
	require.NotNil(t, req.ListID)

	project, err := db.GetProject(ctx, *req.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Brooklyn Brownstone Refresh", project.Name)

	def, err := db.DefaultStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, def.ID, req.StatusID)

	task, err := db.CreateTask(ctx, req)
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
}

func TestBuildTaskRequestErrors(t *testing.T) {
	ctx := seeded(t)

	_, err := buildTaskRequest(ctx, "", parser.ParseTitle("Anything"))
	assert.ErrorContains(t, err, "workspace is required")

	_, err = buildTaskRequest(ctx, "nowhere", parser.ParseTitle("Anything"))
	assert.ErrorIs(t, err, db.ErrNotFound)

	_, err = buildTaskRequest(ctx, "crescent-interiors", parser.ParseTitle("Anything list:procurement"))
	assert.ErrorContains(t, err, "needs a project")

	// projects of other workspaces are not candidates
	_, err = buildTaskRequest(ctx, "crescent-interiors", parser.ParseTitle("Anything @website"))
	assert.ErrorContains(t, err, "no project matches")

	req, err := buildTaskRequest(ctx, "internal-ops", parser.ParseTitle("Vendor call"))
	require.NoError(t, err)
	assert.Nil(t, req.ProjectID)
}

func TestResolveStatus(t *testing.T) {
	ctx := seeded(t)

	done, err := resolveStatus(ctx, "DONE")
	require.NoError(t, err)
	assert.Equal(t, "Done", done.Name)

	byID, err := resolveStatus(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), byID.ID)

	_, err = resolveStatus(ctx, "someday")
	assert.Error(t, err)
}

func TestBoardSourceMovesCards(t *testing.T) {
	ctx := seeded(t)
	pendant := findTask(t, ctx, "Source pendant lights")
	require.NotNil(t, pendant.ProjectID)
	done, err := resolveStatus(ctx, "done")
	require.NoError(t, err)

	src := &boardSource{ctx: ctx, projectID: *pendant.ProjectID}
	title, err := src.title()
	require.NoError(t, err)
	assert.Equal(t, "Brooklyn Brownstone Refresh", title)

	require.NoError(t, src.Move(pendant.ID, done.ID))

	board, err := src.Load()
	require.NoError(t, err)
	var found []string
	for _, col := range board.Columns {
		if col.Status.ID != done.ID {
			continue
		}
		for _, g := range col.Groups {
			for _, c := range g.Cards {
				if c.TaskID == pendant.ID {
					found = append(found, g.Label)
				}
			}
		}
	}
	assert.Equal(t, []string{"Design Planning, Procurement"}, found)
}

func TestCommandsAgainstDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "luna.db")
	t.Cleanup(func() { _ = db.Close() })

	run := func(args ...string) error {
		rootCmd.SetArgs(append([]string{"--db", path}, args...))
		return rootCmd.Execute()
	}

	require.NoError(t, run("seed"))
	require.NoError(t, run("add", "Order fabric samples #fabric @brooklyn +urgent", "-w", "crescent-interiors"))
	assert.Error(t, run("add", "Stray task", "-w", "no-such-workspace"))

	require.NoError(t, db.Initialize(path))
	ctx := context.Background()
	task := findTask(t, ctx, "Order fabric samples")
	assert.Equal(t, models.PriorityUrgent, task.Priority)
	pendant := findTask(t, ctx, "Approve pendant light selection")
	require.NoError(t, db.Close())

	require.NoError(t, run("move", "1", "done"))
	require.NoError(t, run("approve", strconv.FormatUint(uint64(pendant.ID), 10), "--by", "admin@lunapm.local", "--note", "ok"))
	assert.Error(t, run("reject", strconv.FormatUint(uint64(pendant.ID), 10), "--by", "admin@lunapm.local"), "already decided")

	require.NoError(t, db.Initialize(path))
	got, err := db.GetTask(ctx, pendant.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Approval)
	assert.Equal(t, models.ApprovalApproved, got.Approval.Status)
	assert.Equal(t, "ok", got.Approval.Note)
}

func TestMaintenanceCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "luna.db")
	t.Cleanup(func() { _ = db.Close() })

	run := func(args ...string) error {
		rootCmd.SetArgs(append([]string{"--db", path}, args...))
		return rootCmd.Execute()
	}
	id := func(v uint) string { return strconv.FormatUint(uint64(v), 10) }

	require.NoError(t, run("seed"))

	require.NoError(t, db.Initialize(path))
	ctx := context.Background()
	pendant := findTask(t, ctx, "Approve pendant light selection")
	lighting := findTask(t, ctx, "Install living room lighting")
	websiteCopy := findTask(t, ctx, "Write website copy")
	brooklynID := *pendant.ProjectID

	folders, err := db.ListFolders(ctx, pendant.WorkspaceID, &brooklynID)
	require.NoError(t, err)
	byName := map[string]uint{}
	for _, f := range folders {
		byName[f.Name] = f.ID
	}
	lists, err := db.ProjectLists(ctx, brooklynID)
	require.NoError(t, err)
	for _, l := range lists {
		byName[l.Name] = l.ID
	}
	fields, err := db.CustomFields(ctx, pendant.WorkspaceID)
	require.NoError(t, err)
	for _, f := range fields {
		byName[f.Name] = f.ID
	}
	require.NoError(t, db.Close())

	require.NoError(t, run("status", "archive", "On hold"))

	assert.Error(t, run("folder", "mv", id(byName["Project Assets"]), id(byName["Concepts"])), "cycle")
	require.NoError(t, run("folder", "mv", id(byName["Concepts"])))

	require.NoError(t, run("lists", "add", id(pendant.ID), id(byName["Design Planning"])))
	require.NoError(t, run("lists", "rm", id(pendant.ID), id(byName["Procurement"])))

	require.NoError(t, run("dep", "rm", id(lighting.ID), id(pendant.ID)))
	assert.Error(t, run("dep", "rm", id(lighting.ID), id(pendant.ID)))
	assert.Error(t, run("dep", "add", id(pendant.ID), id(pendant.ID)))

	require.NoError(t, run("field", "set", id(brooklynID), id(byName["Style Preference"]), "Modern"))
	assert.Error(t, run("field", "set", id(brooklynID), id(byName["Style Preference"]), "Baroque"))

	require.NoError(t, run("rm", id(websiteCopy.ID)))

	require.NoError(t, db.Initialize(path))

	onHold, err := resolveStatus(ctx, "on hold")
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, onHold.State)

	folders, err = db.ListFolders(ctx, pendant.WorkspaceID, &brooklynID)
	require.NoError(t, err)
	for _, f := range folders {
		assert.Nil(t, f.ParentID, f.Name)
	}

	got, err := db.GetTask(ctx, pendant.ID)
	require.NoError(t, err)
	require.Len(t, got.Memberships, 1)
	assert.Equal(t, byName["Design Planning"], got.Memberships[0].ListID)

	blockedBy, err := db.BlockedBy(ctx, lighting.ID)
	require.NoError(t, err)
	assert.Empty(t, blockedBy)

	values, err := db.ProjectFieldValues(ctx, brooklynID)
	require.NoError(t, err)
	for _, v := range values {
		if v.CustomFieldID == byName["Style Preference"] {
			assert.Equal(t, "Modern", v.Value)
		}
	}

	_, err = db.GetTask(ctx, websiteCopy.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)
}
