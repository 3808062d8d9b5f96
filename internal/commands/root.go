package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/luna/internal/config"
	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	dbPath     string
	jsonOutput bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "luna",
	Short: "Project management for a design studio",
	Long: `luna tracks client workspaces, projects, lists and tasks for a design agency.
Run 'luna serve' for the admin API and client portal, or use the commands
below to work from the terminal.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("luna %s (commit %s, built %s)\n", version, commit, date)
	},
}

// setup loads configuration, builds the logger and opens the database
func setup() error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}

	l, err := logging.New(c.Log)
	if err != nil {
		return err
	}

	db.SetLogger(l)
	if err := db.Initialize(c.Database.Path); err != nil {
		return err
	}

	cfg, logger = c, l
	return nil
}

// withDB wraps a command function to initialize the database first
func withDB(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		defer func() {
			_ = logger.Sync()
			_ = db.Close()
		}()
		return fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.luna/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides database.path)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(workspacesCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(depCmd)
	rootCmd.AddCommand(fieldCmd)
	rootCmd.AddCommand(approvalsCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(versionCmd)
}
