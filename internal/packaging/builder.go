package packaging

import (
	"archive/zip"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"

	"shipwright/internal/logging"
	"shipwright/internal/services"
)

// Builder packages a working tree into a single zip archive.
type Builder struct {
	root      string
	assetName string
	logger    *slog.Logger
}

// New constructs a Builder rooted at the repository working tree.
func New(root, assetName string, logger *slog.Logger) (*Builder, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("packaging root required")
	}
	assetName = strings.TrimSpace(assetName)
	if assetName == "" {
		return nil, errors.New("asset name required")
	}
	return &Builder{
		root:      root,
		assetName: assetName,
		logger:    logging.NewComponentLogger(logger, "packaging"),
	}, nil
}

// Build writes the archive into destDir and returns its path. Exclusion list
// files that do not exist are skipped silently; listed paths and everything
// beneath them stay out of the archive.
func (b *Builder) Build(ctx context.Context, destDir string, excludeLists []string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive directory: %w", err)
	}

	excluded, err := b.loadExclusions(excludeLists)
	if err != nil {
		return "", err
	}

	archivePath := filepath.Join(destDir, b.assetName)
	out, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("create archive %s: %w", archivePath, err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	writer.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	walkErr := filepath.WalkDir(b.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if entry.IsDir() {
			if rel == ".git" || excluded[rel] {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded[rel] {
			return nil
		}
		return addFile(writer, path, rel)
	})
	if walkErr != nil {
		_ = writer.Close()
		_ = os.Remove(archivePath)
		return "", services.Wrap(services.ErrTransient, "packaging", "walk tree", "", walkErr)
	}
	if err := writer.Close(); err != nil {
		_ = os.Remove(archivePath)
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("flush archive: %w", err)
	}

	b.logger.Info("archive built",
		logging.String(logging.FieldEventType, "package_complete"),
		logging.String("archive", archivePath),
	)
	return archivePath, nil
}

// loadExclusions reads each exclusion list, one path per line, '#' comments
// and blank lines ignored. Paths are normalized to slash-separated relatives.
func (b *Builder) loadExclusions(lists []string) (map[string]bool, error) {
	excluded := make(map[string]bool)
	for _, list := range lists {
		path := list
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.root, list)
		}
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("open exclusion list %s: %w", path, err)
		}
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			excluded[filepath.ToSlash(filepath.Clean(line))] = true
		}
		err = scanner.Err()
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("read exclusion list %s: %w", path, err)
		}
	}
	return excluded, nil
}

func addFile(writer *zip.Writer, path, rel string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = rel
	header.Method = zip.Deflate

	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}
