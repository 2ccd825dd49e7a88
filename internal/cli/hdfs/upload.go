package hdfs

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/env"
	hdfspkg "github.com/danieljhkim/churnguard/internal/hdfs"
	"github.com/danieljhkim/churnguard/internal/util"
)

// datasetURL is where the default telco churn dataset can be downloaded from
const datasetURL = "https://raw.githubusercontent.com/IBM/telco-customer-churn-on-icp4d/master/data/Telco-Customer-Churn.csv"

func newUploadCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	var (
		file string
		name string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a local file into HDFS",
		Long: `Upload a local file into the raw-data directory in HDFS.

Without --file the configured dataset (hdfs.dataset) is uploaded, after
checking that the relay container is running.

Examples:
  churnguard hdfs upload
  churnguard hdfs upload --file data/raw/extra.csv
  churnguard hdfs upload --file extra.csv --name archive/extra-2024.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, settings, err := newBridge(pathsGetter, runner)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if file == "" {
				if _, err := bridge.CheckConnectivity(ctx); err != nil {
					if errors.Is(err, hdfspkg.ErrRelayUnavailable) {
						util.Fail("Namenode container is not running")
						util.Log("Start it using: docker compose up -d %s", bridge.Container())
					}
					return err
				}
				file = settings.HDFS.Dataset
				if !util.FileExists(file) {
					util.Fail("Dataset not found: %s", file)
					util.Log("Download with: wget -O %s %s", file, datasetURL)
					return fmt.Errorf("dataset %s: %w", file, hdfspkg.ErrNotFound)
				}
			}

			util.Log("Uploading file: %s", file)
			result, err := bridge.Upload(ctx, file, name)
			switch result.Status {
			case hdfspkg.StatusUploaded:
				util.Success("File uploaded to HDFS: %s", result.Remote)
				fmt.Fprintln(cmd.OutOrStdout(), result.Listing)
				return nil
			case hdfspkg.StatusUnverified:
				util.Warn("Upload attempted, but could not verify %s", result.Remote)
				return err
			default:
				util.Fail("Upload of %s failed", filepath.Base(file))
				return err
			}
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Local file to upload (default: the configured dataset)")
	cmd.Flags().StringVar(&name, "name", "", "Destination name or path in HDFS (default: base name of the file)")

	return cmd
}
