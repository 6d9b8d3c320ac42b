package cli

import (
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"temptrack/internal/adapter/s3"
	"temptrack/internal/app"
)

// NewBackupCommand creates the backup command.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot of the history to S3",
		Long: `Upload a JSON snapshot of every reading, cycle start and note to the
configured S3-compatible bucket (backup.bucket or TEMPTRACK_BACKUP_BUCKET).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(cmd, rootOpts)
		},
	}
	return cmd
}

func runBackup(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.Backup.Bucket == "" {
		return errors.New("backup bucket not configured")
	}

	ctx := cmd.Context()
	blobs, err := s3.New(ctx, s3.Config{
		Region:          cfg.Backup.Region,
		Bucket:          cfg.Backup.Bucket,
		Endpoint:        cfg.Backup.Endpoint,
		AccessKeyID:     cfg.Backup.AccessKeyID,
		SecretAccessKey: cfg.Backup.SecretAccessKey,
		PathStyle:       cfg.Backup.PathStyle,
	})
	if err != nil {
		return err
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	key, err := app.NewBackupService(store, blobs, cfg.Backup.Prefix).Backup(ctx, time.Now())
	if err != nil {
		return err
	}
	out := map[string]string{"bucket": cfg.Backup.Bucket, "key": key}
	return printResult(cmd.OutOrStdout(), opts.Format, out, func(w io.Writer) {
		printf(w, "uploaded s3://%s/%s\n", cfg.Backup.Bucket, key)
	})
}
