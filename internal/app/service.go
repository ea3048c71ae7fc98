// Package app wires discovery, classification, transcoding and
// placement into the conversion operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"saveporter/internal/audit"
	"saveporter/internal/classify"
	"saveporter/internal/config"
	"saveporter/internal/steam"
	"saveporter/internal/transcode"
	"saveporter/internal/wgs"
)

type Options struct {
	ConfigPath string
	// SteamPath overrides the destination directory from config.
	SteamPath string
	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer
}

type Service struct {
	ConfigPath string
	Config     config.Config
	WGSRoot    string
	SteamDir   string
	KeepDir    string

	Classifier classify.Classifier
	Audit      *audit.Logger

	out io.Writer
}

func New(opts Options) (*Service, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Ensure(configPath)
	if err != nil {
		return nil, err
	}

	wgsRoot, err := config.ResolveWGSRoot(cfg)
	if err != nil {
		return nil, err
	}
	steamDir := opts.SteamPath
	if steamDir == "" {
		steamDir, err = config.ResolveSteamDir(cfg)
		if err != nil {
			return nil, err
		}
	}
	keepDir, err := config.ResolveKeepDir(cfg)
	if err != nil {
		return nil, err
	}

	var logger *audit.Logger
	if cfg.Audit.Enabled {
		logger = audit.New(config.ResolveAuditPath(cfg, configPath))
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Service{
		ConfigPath: configPath,
		Config:     cfg,
		WGSRoot:    wgsRoot,
		SteamDir:   steamDir,
		KeepDir:    keepDir,
		Classifier: classify.SizeRank{},
		Audit:      logger,
		out:        out,
	}, nil
}

// ConvertOptions controls one conversion run.
type ConvertOptions struct {
	// DryRun converts but does not place; the scratch output is
	// retained at the service's KeepDir.
	DryRun bool
	// FixDLC clears DLC entitlement records in the save.
	FixDLC bool
}

// Result describes one converted container.
type Result struct {
	Container   string   `json:"container"`
	SaveFolder  string   `json:"saveFolder"`
	ArchivePath string   `json:"archivePath"`
	Destination string   `json:"destination,omitempty"`
	Checksum    string   `json:"checksum,omitempty"`
	Entries     int      `json:"entries"`
	SizeBytes   int64    `json:"sizeBytes"`
	DryRun      bool     `json:"dryRun"`
	Warnings    []string `json:"warnings,omitempty"`
}

// ConvertLatest converts the newest container of the newest save
// folder, the single-shot path.
func (s *Service) ConvertLatest(ctx context.Context, opts ConvertOptions) (Result, error) {
	fmt.Fprintf(s.out, "Searching for save folders in: %s\n", s.WGSRoot)
	folder, err := wgs.FindLatestSaveFolder(s.WGSRoot)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(s.out, "Latest save folder: %s (modified %s)\n", folder.Name, folder.ModTime.Format("2006-01-02 15:04:05"))

	container, err := wgs.FindLatestContainerFolder(folder)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(s.out, "Latest container: %s\n", container.ID)

	return s.convert(ctx, container, transcode.DefaultArchiveName, opts)
}

// Discover enumerates every convertible container under the WGS root,
// newest first, with best-effort display names attached.
func (s *Service) Discover() ([]wgs.Container, error) {
	if s.Audit != nil {
		_ = s.Audit.Log(audit.Event{Operation: "discover", Phase: "start", Status: "ok"})
	}
	containers, err := wgs.DiscoverAll(s.WGSRoot, classify.ExtractSaveName)
	if err != nil {
		if s.Audit != nil {
			_ = s.Audit.Log(audit.Event{Operation: "discover", Phase: "done", Status: "error", Message: err.Error()})
		}
		return nil, err
	}
	if s.Audit != nil {
		_ = s.Audit.Log(audit.Event{Operation: "discover", Phase: "done", Status: "ok", Message: fmt.Sprintf("containers=%d", len(containers))})
	}
	return containers, nil
}

// ConvertContainer converts one discovered container, naming the
// output after its identifier.
func (s *Service) ConvertContainer(ctx context.Context, container wgs.Container, opts ConvertOptions) (Result, error) {
	return s.convert(ctx, container, transcode.BatchArchiveName(container.ID), opts)
}

func (s *Service) convert(ctx context.Context, container wgs.Container, archiveName string, opts ConvertOptions) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if s.Audit != nil {
		_ = s.Audit.Log(audit.Event{Operation: "convert", Phase: "start", Status: "ok", Container: container.ID})
	}
	res, err := s.convertOnce(container, archiveName, opts)
	if s.Audit != nil {
		if err != nil {
			_ = s.Audit.Log(audit.Event{Operation: "convert", Phase: "done", Status: "error", Container: container.ID, Message: err.Error()})
		} else {
			_ = s.Audit.Log(audit.Event{Operation: "convert", Phase: "done", Status: "ok", Container: container.ID, Checksum: res.Checksum})
		}
	}
	return res, err
}

func (s *Service) convertOnce(container wgs.Container, archiveName string, opts ConvertOptions) (Result, error) {
	files, err := classify.ListFiles(container.Path)
	if err != nil {
		return Result{}, err
	}
	set, err := s.Classifier.Classify(files)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintln(s.out, "Files found (sorted by size):")
	for i, f := range []classify.File{set.SaveBlob, set.ImageHigh, set.ImageLow, set.Header} {
		fmt.Fprintf(s.out, "%d. %s (%.2f MB)\n", i+1, f.Name, float64(f.Size)/(1024*1024))
	}

	var scratch *transcode.Scratch
	if opts.DryRun {
		scratch, err = transcode.NewScratchAt(s.KeepDir)
	} else {
		scratch, err = transcode.NewScratch()
	}
	if err != nil {
		return Result{}, err
	}
	defer scratch.Close()

	tr, err := transcode.Convert(set, scratch, transcode.Options{
		ArchiveName: archiveName,
		FixDLC:      opts.FixDLC,
	})
	if err != nil {
		return Result{}, err
	}
	for _, w := range tr.Warnings {
		fmt.Fprintf(s.out, "Warning: %s\n", w)
		if s.Audit != nil {
			_ = s.Audit.Log(audit.Event{Operation: "convert", Phase: "skip", Status: "warn", Container: container.ID, Message: w})
		}
	}
	fmt.Fprintf(s.out, "Extracted %d files, created %s (%.2f MB)\n", tr.Unpacked, archiveName, float64(tr.Size)/(1024*1024))

	result := Result{
		Container:   container.ID,
		SaveFolder:  container.SaveFolder,
		ArchivePath: tr.ArchivePath,
		Checksum:    tr.Checksum,
		Entries:     tr.Entries,
		SizeBytes:   tr.Size,
		DryRun:      opts.DryRun,
		Warnings:    tr.Warnings,
	}

	if opts.DryRun {
		fmt.Fprintf(s.out, "Dry run: converted save left at %s\n", tr.ArchivePath)
		return result, nil
	}

	dest, err := steam.Place(tr.ArchivePath, s.SteamDir)
	if err != nil {
		// The archive was produced; placement failure is reported
		// without rolling it back.
		if s.Audit != nil {
			_ = s.Audit.Log(audit.Event{Operation: "place", Phase: "done", Status: "error", Container: container.ID, Message: err.Error()})
		}
		return Result{}, err
	}
	if s.Audit != nil {
		_ = s.Audit.Log(audit.Event{Operation: "place", Phase: "done", Status: "ok", Container: container.ID, Message: dest})
	}
	result.Destination = dest
	fmt.Fprintf(s.out, "Copied to: %s\n", dest)
	return result, nil
}
