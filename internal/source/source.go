// Package source loads the files being compared through a billy filesystem:
// path resolution, text classification and content loading.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
	"github.com/Sumatoshi-tech/difr/pkg/textutil"
)

// languageSniffLength bounds the content handed to language detection.
const languageSniffLength = 16 << 10

var (
	// ErrDirectoryPath indicates a file operation was attempted on a directory.
	ErrDirectoryPath = errors.New("path points to a directory")
	// ErrEmptyPath indicates a path argument was empty.
	ErrEmptyPath = errors.New("path is empty")
	// ErrPathContainsNUL indicates the path contains a NUL byte.
	ErrPathContainsNUL = errors.New("path contains NUL byte")
	// ErrDecode indicates text content is not valid UTF-8.
	ErrDecode = errors.New("content is not valid UTF-8")
)

// Loader reads files from a billy filesystem. Relative paths are resolved
// against the loader's working directory.
type Loader struct {
	fs      billy.Filesystem
	workDir string
}

// NewLoader creates a Loader over fsys resolving relative paths against workDir.
func NewLoader(fsys billy.Filesystem, workDir string) *Loader {
	return &Loader{fs: fsys, workDir: workDir}
}

// NewOSLoader creates a Loader over the host filesystem rooted at "/" and
// resolving relative paths against the process working directory.
func NewOSLoader() (*Loader, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	return NewLoader(osfs.New(string(filepath.Separator)), wd), nil
}

// Resolve normalizes path and checks that it names an existing regular file.
func (l *Loader) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	if strings.ContainsRune(path, '\x00') {
		return "", fmt.Errorf("%w: %q", ErrPathContainsNUL, path)
	}

	resolved := filepath.Clean(path)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(l.workDir, resolved)
	}

	info, err := l.fs.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", resolved, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDirectoryPath, resolved)
	}

	return resolved, nil
}

// IsText reads at most textutil.TextSniffLength bytes of the file and
// reports whether they are valid UTF-8. A rune cut by the sample counts as
// invalid.
func (l *Loader) IsText(path string) (bool, error) {
	resolved, err := l.Resolve(path)
	if err != nil {
		return false, err
	}

	file, err := l.fs.Open(resolved)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", resolved, err)
	}
	defer file.Close()

	sample, err := io.ReadAll(io.LimitReader(file, textutil.TextSniffLength))
	if err != nil {
		return false, fmt.Errorf("read %s: %w", resolved, err)
	}

	return textutil.IsText(sample), nil
}

// Load reads the whole file.
func (l *Loader) Load(path string) (*File, error) {
	resolved, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := l.fs.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", resolved, err)
	}

	content, err := util.ReadFile(l.fs, resolved)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", resolved, err)
	}

	return &File{
		Path:    resolved,
		Size:    info.Size(),
		Content: content,
	}, nil
}

// File is a fully loaded input file.
type File struct {
	Path    string
	Size    int64
	Content []byte
}

// Text returns the content as a string, failing with ErrDecode when it is
// not valid UTF-8.
func (f *File) Text() (string, error) {
	if !utf8.Valid(f.Content) {
		return "", fmt.Errorf("%w: %s", ErrDecode, f.Path)
	}

	return string(f.Content), nil
}

// Lines splits the content into a line sequence.
func (f *File) Lines() (linecmp.Sequence, error) {
	text, err := f.Text()
	if err != nil {
		return nil, err
	}

	return linecmp.Split(text), nil
}

// LineCount returns the number of lines in the content.
func (f *File) LineCount() int {
	return textutil.CountLines(f.Content)
}

// Language guesses the language of the file from its name and content.
// Returns an empty string when unknown.
func (f *File) Language() string {
	sample := f.Content[:min(len(f.Content), languageSniffLength)]

	return enry.GetLanguage(filepath.Base(f.Path), sample)
}
