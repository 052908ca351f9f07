package infrastructure

import (
	"archive/zip"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/charmbracelet/log"
)

// ZipArchiver packs a project directory into a single zip file.
type ZipArchiver struct {
	logger *log.Logger
}

// NewZipArchiver creates a ZipArchiver.
func NewZipArchiver(logger *log.Logger) *ZipArchiver {
	return &ZipArchiver{logger: logger}
}

// Archive writes every directory and regular file below srcDir into dstZip.
// Entry names are relative to srcDir. On failure the partial archive is
// removed. Returns the size of the written archive.
func (z *ZipArchiver) Archive(ctx context.Context, srcDir, dstZip string) (int64, error) {
	size, err := z.write(ctx, srcDir, dstZip)
	if err != nil {
		if rmErr := os.Remove(dstZip); rmErr != nil && !os.IsNotExist(rmErr) {
			z.logger.Error("Error cleaning up zip file", "path", dstZip, "err", rmErr)
		}
		z.logger.Error("Archive error", "src", srcDir, "err", err)
		return 0, domain.WrapError(domain.KindArchive, domain.MsgArchiveFailed, err)
	}

	z.logger.Info("ZIP created", "path", dstZip, "bytes", size)
	return size, nil
}

func (z *ZipArchiver) write(ctx context.Context, srcDir, dstZip string) (int64, error) {
	out, err := os.Create(dstZip)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dstZip, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return addDir(zw, rel, info)
		case info.Mode().IsRegular():
			return addFile(zw, path, rel, info)
		default:
			z.logger.Debug("Skipping non-regular file", "path", path, "mode", info.Mode())
			return nil
		}
	})
	if walkErr != nil {
		zw.Close()
		return 0, walkErr
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalize zip: %w", err)
	}
	if err := out.Sync(); err != nil {
		return 0, fmt.Errorf("sync zip: %w", err)
	}

	st, err := out.Stat()
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

func addDir(zw *zip.Writer, rel string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel) + "/"
	header.Method = zip.Store
	_, err = zw.CreateHeader(header)
	return err
}

func addFile(zw *zip.Writer, path, rel string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy %s: %w", rel, err)
	}
	return nil
}
