package render

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

// FrontMatter is the YAML header of a locale source file.
type FrontMatter struct {
	Title   string   `yaml:"title"`
	Excerpt string   `yaml:"excerpt"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
}

var (
	fenceOpen = []byte("---")
	fenceEnds = [][]byte{[]byte("---"), []byte("...")}
	bom       = []byte("\xef\xbb\xbf")
)

// SplitFrontMatter separates the header from the body. Sources without a
// leading "---" line have no header. An opened but unterminated header, or
// one that is not valid YAML, is malformed.
func SplitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	src = bytes.TrimPrefix(src, bom)

	first, rest, _ := cutLine(src)
	if !bytes.Equal(trimLine(first), fenceOpen) {
		return fm, src, nil
	}

	var header []byte
	remaining := rest
	for {
		line, next, more := cutLine(remaining)
		if isFenceEnd(trimLine(line)) {
			if err := yaml.Unmarshal(header, &fm); err != nil {
				return FrontMatter{}, nil, fmt.Errorf("%w: front matter: %v", domain.ErrMalformedMarkup, err)
			}
			return fm, next, nil
		}
		header = append(header, line...)
		header = append(header, '\n')
		if !more {
			return FrontMatter{}, nil, fmt.Errorf("%w: unterminated front matter", domain.ErrMalformedMarkup)
		}
		remaining = next
	}
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	return bytes.Cut(b, []byte("\n"))
}

func trimLine(line []byte) []byte {
	return bytes.TrimRight(line, " \t\r")
}

func isFenceEnd(line []byte) bool {
	for _, end := range fenceEnds {
		if bytes.Equal(line, end) {
			return true
		}
	}
	return false
}

// FrontMatterStage fills Job.Front and Job.Body from Job.Source.
type FrontMatterStage struct{}

// Name returns the stage name.
func (FrontMatterStage) Name() string { return "frontmatter" }

// Process splits the job source.
func (FrontMatterStage) Process(_ context.Context, job *Job) error {
	fm, body, err := SplitFrontMatter(job.Source)
	if err != nil {
		return err
	}
	job.Front = fm
	job.Body = body
	return nil
}
