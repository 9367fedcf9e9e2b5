package util

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// CreateArchive zips files flat (base names only) into output.
func CreateArchive(files []string, output string) error {
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing output file %s: %v", output, cerr)
		}
	}()

	z := zip.NewWriter(out)

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for _, file := range sorted {
		if err := addFileToZip(z, file); err != nil {
			_ = z.Close()
			return err
		}
	}

	return z.Close()
}

func addFileToZip(z *zip.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing input file %s: %v", file, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(file)
	// PNGs are already compressed
	header.Method = zip.Store

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, f); err != nil {
		return err
	}

	return nil
}
