// Package catalog lists the log files available under the log root.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/NoreeIsmael/Next-Project/internal/engine"
	"github.com/NoreeIsmael/Next-Project/internal/model"
)

// List returns one record per *.log file directly under root, sorted by
// name. Amount is the physical line count of the file, so multi-line
// entries and blank lines are counted too. A file that cannot be counted
// is logged and skipped; it never aborts the rest of the listing.
func List(root string) ([]model.LogFile, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("log root: %w", err)
	}

	matches, err := doublestar.FilepathGlob(
		filepath.Join(root, "*"+engine.LogExt),
		doublestar.WithFilesOnly(),
	)
	if err != nil {
		return nil, fmt.Errorf("list log root %s: %w", root, err)
	}

	files := make([]model.LogFile, 0, len(matches))
	for _, path := range matches {
		count, err := countLines(path)
		if err != nil {
			log.Printf("catalog: skipping %s: %v", path, err)
			continue
		}
		files = append(files, model.LogFile{
			Name:   strings.TrimSuffix(filepath.Base(path), engine.LogExt),
			Amount: count,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// countLines counts newline-delimited lines, reading in fixed-size blocks
// so large files never land in memory at once. An unterminated final line
// still counts.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	count := 0
	unterminated := false
	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			unterminated = buf[n-1] != '\n'
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if unterminated {
		count++
	}
	return count, nil
}
