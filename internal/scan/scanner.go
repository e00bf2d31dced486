package scan

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// sniffSize is how much of a file is read to decide whether it is a transcript.
const sniffSize = 8 * 1024

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// ScanDir walks root for .txt files that look like chat exports, newest
// first. A missing root yields no files and no error.
func ScanDir(root string) ([]FileInfo, error) {
	if root == "" {
		return nil, nil
	}

	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		if !looksLikeTranscript(path) {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Mtime > files[j].Mtime })
	return files, nil
}

// Latest returns the most recently modified transcript under root, or "" if
// there is none.
func Latest(root string) (string, error) {
	files, err := ScanDir(root)
	if err != nil || len(files) == 0 {
		return "", err
	}
	return files[0].Path, nil
}

func looksLikeTranscript(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(bufio.NewReader(f), sniffSize))
	if err != nil {
		return false
	}
	return parse.HasHeader(string(head))
}
