// cmd/archive.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Copy a run's outputs into a dated archive folder",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(configFlag)
		applyLogLevel(cfg.LogLevel)

		src := cfg.OutputFolder
		dest := outputFlag
		if dest == "" {
			dest = filepath.Join("data", time.Now().Format("2006-01-02T15-04"))
		}

		if err := archiveFolder(src, dest); err != nil {
			logrus.Fatalf("archive: %v", err)
		}
		logrus.Infof("archived %s to %s", src, dest)
	},
}

func archiveFolder(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
