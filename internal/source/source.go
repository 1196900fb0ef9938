// Package source resolves the input path into the list of files to scan.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/livp123/evtxsift/pkg/errors"
)

// Resolve returns the source files named by input. A regular file is returned
// as is, whatever its extension. A directory yields its direct entries whose
// extension equals ext (case-insensitive); subdirectories are not descended.
// skipped receives the directory entries that were ignored.
// Resolve 将输入路径解析为待处理的源文件列表。
func Resolve(input, ext string) (files []string, skipped []string, err error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, nil, errors.NewInputError(input, err)
	}

	if info.Mode().IsRegular() {
		return []string{input}, nil, nil
	}
	if !info.IsDir() {
		return nil, nil, errors.NewInputError(input, nil)
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, nil, errors.NewInputError(input, err)
	}

	ext = NormalizeExt(ext)
	for _, e := range entries {
		path := filepath.Join(input, e.Name())
		if !e.Type().IsRegular() && !isRegularLink(path, e) {
			skipped = append(skipped, path)
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			skipped = append(skipped, path)
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, skipped, nil
}

// NormalizeExt makes sure ext starts with a dot.
func NormalizeExt(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}

func isRegularLink(path string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
