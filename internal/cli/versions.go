package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cookbook-cleanup/internal/app"
	"cookbook-cleanup/internal/types"
)

type versionsOptions struct {
	Delete        bool
	Backup        bool
	Keep          int
	Cookbook      string
	RunList       string
	Verbose       bool
	AssumeYes     bool
	BackupDir     string
	ServerBackend string
	ServerURL     string
	ClientName    string
	ClientKey     string
	InventoryFile string
	TimeoutSec    int
	Retries       int
	RetryDelayMs  int
	AuditDB       string
	MetricsFile   string
}

func newVersionsCommand() *cobra.Command {
	opts := versionsOptions{}
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Report or delete cookbook versions no environment still needs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersions(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Delete, "delete", "D", false, "Delete the unused versions of the cookbooks")
	cmd.Flags().BoolVarP(&opts.Backup, "backup", "B", false, "Backup the cookbook versions that are being deleted")
	cmd.Flags().IntVarP(&opts.Keep, "keep", "K", types.DefaultKeepCount, "Keep the last N versions")
	cmd.Flags().StringVarP(&opts.Cookbook, "cookbook", "C", "", "Only cleanup the named cookbook")
	cmd.Flags().StringVarP(&opts.RunList, "runlist", "R", "", "Run-list to evaluate in every environment, e.g. 'recipe[app::default]'")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show protected versions and skipped run-list resolutions")
	cmd.Flags().BoolVar(&opts.AssumeYes, "yes", false, "Delete without asking for confirmation")
	cmd.Flags().StringVar(&opts.BackupDir, "backup-dir", types.DefaultBackupDir, "Directory for cookbook backups")
	cmd.Flags().StringVar(&opts.ServerBackend, "server-backend", "chef", "Server backend (chef or file)")
	cmd.Flags().StringVar(&opts.ServerURL, "server-url", "", "Chef server URL including the organization, e.g. https://chef.example.com/organizations/acme")
	cmd.Flags().StringVar(&opts.ClientName, "client-name", "", "Chef API client name")
	cmd.Flags().StringVar(&opts.ClientKey, "client-key", "", "Path to the Chef API client private key")
	cmd.Flags().StringVar(&opts.InventoryFile, "inventory-file", "", "YAML server snapshot for the file backend")
	cmd.Flags().IntVar(&opts.TimeoutSec, "timeout", 60, "Chef HTTP timeout in seconds (0 = default)")
	cmd.Flags().IntVar(&opts.Retries, "retries", 3, "Chef API attempts per request (0 = default)")
	cmd.Flags().IntVar(&opts.RetryDelayMs, "retry-delay-ms", 200, "Chef retry base delay in ms (0 = default)")
	cmd.Flags().StringVar(&opts.AuditDB, "audit-db", "", "SQLite audit ledger path (empty disables auditing)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Prometheus textfile output path (empty disables metrics)")

	_ = viper.BindPFlag("delete", cmd.Flags().Lookup("delete"))
	_ = viper.BindPFlag("backup", cmd.Flags().Lookup("backup"))
	_ = viper.BindPFlag("keep", cmd.Flags().Lookup("keep"))
	_ = viper.BindPFlag("cookbook", cmd.Flags().Lookup("cookbook"))
	_ = viper.BindPFlag("runlist", cmd.Flags().Lookup("runlist"))
	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("yes", cmd.Flags().Lookup("yes"))
	_ = viper.BindPFlag("backup_dir", cmd.Flags().Lookup("backup-dir"))
	_ = viper.BindPFlag("server_backend", cmd.Flags().Lookup("server-backend"))
	_ = viper.BindPFlag("server_url", cmd.Flags().Lookup("server-url"))
	_ = viper.BindPFlag("client_name", cmd.Flags().Lookup("client-name"))
	_ = viper.BindPFlag("client_key", cmd.Flags().Lookup("client-key"))
	_ = viper.BindPFlag("inventory_file", cmd.Flags().Lookup("inventory-file"))
	_ = viper.BindPFlag("timeout_sec", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("retries", cmd.Flags().Lookup("retries"))
	_ = viper.BindPFlag("retry_delay_ms", cmd.Flags().Lookup("retry-delay-ms"))
	_ = viper.BindPFlag("audit_db", cmd.Flags().Lookup("audit-db"))
	_ = viper.BindPFlag("metrics_file", cmd.Flags().Lookup("metrics-file"))

	return cmd
}

func versionsRequest(cmd *cobra.Command, opts versionsOptions) app.CleanupRequest {
	return app.CleanupRequest{
		KeepCount:     resolveInt(cmd, opts.Keep, "keep", "keep"),
		Cookbook:      resolveString(cmd, opts.Cookbook, "cookbook", "cookbook"),
		RunList:       resolveString(cmd, opts.RunList, "runlist", "runlist"),
		Delete:        resolveBool(cmd, opts.Delete, "delete", "delete"),
		Backup:        resolveBool(cmd, opts.Backup, "backup", "backup"),
		BackupDir:     resolveString(cmd, opts.BackupDir, "backup_dir", "backup-dir"),
		Verbose:       resolveBool(cmd, opts.Verbose, "verbose", "verbose"),
		AssumeYes:     resolveBool(cmd, opts.AssumeYes, "yes", "yes"),
		ServerBackend: resolveString(cmd, opts.ServerBackend, "server_backend", "server-backend"),
		ServerURL:     resolveString(cmd, opts.ServerURL, "server_url", "server-url"),
		ClientName:    resolveString(cmd, opts.ClientName, "client_name", "client-name"),
		ClientKey:     resolveString(cmd, opts.ClientKey, "client_key", "client-key"),
		InventoryFile: resolveString(cmd, opts.InventoryFile, "inventory_file", "inventory-file"),
		TimeoutSec:    resolveInt(cmd, opts.TimeoutSec, "timeout_sec", "timeout"),
		Retries:       resolveInt(cmd, opts.Retries, "retries", "retries"),
		RetryDelayMs:  resolveInt(cmd, opts.RetryDelayMs, "retry_delay_ms", "retry-delay-ms"),
		AuditDB:       resolveString(cmd, opts.AuditDB, "audit_db", "audit-db"),
		MetricsFile:   resolveString(cmd, opts.MetricsFile, "metrics_file", "metrics-file"),
	}
}

func runVersions(ctx context.Context, cmd *cobra.Command, opts versionsOptions) error {
	req := versionsRequest(cmd, opts)
	if req.Verbose && zerolog.GlobalLevel() > zerolog.DebugLevel {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	service := newAppService()
	result, err := service.CleanupVersions(ctx, req)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		log.Ctx(ctx).Error().
			Int("failed", result.Failed).
			Str("run_id", result.RunID).
			Msg("cleanup finished with failures")
		return errPartialFailure
	}
	return nil
}
