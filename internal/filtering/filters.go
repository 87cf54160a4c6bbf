package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/resume"
)

type unsupportedFormatFilter struct {
	logger *zap.Logger
}

// NewUnsupportedFormat creates a filter that removes resumes in formats the
// pipeline cannot parse.
func NewUnsupportedFormat(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &unsupportedFormatFilter{logger: logger}
}

func (f *unsupportedFormatFilter) Name() string { return "unsupported_format" }

func (f *unsupportedFormatFilter) Apply(_ context.Context, s *resume.Sources) (*resume.Sources, Step, error) {
	initial := s.Len()
	excluded := s.ExcludeUnsupported()
	if len(excluded) > 0 {
		f.logger.Info("excluding resumes in unsupported formats",
			zap.Strings("excluded_resumes", excluded),
			zap.Int("resumes_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(excluded), Left: s.Len()}, nil
}

type excludeFileFilter struct {
	path   string
	logger *zap.Logger
}

// NewExcludeFile creates a filter that removes resumes listed in the exclude
// file. An empty path makes the filter a no-op.
func NewExcludeFile(path string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &excludeFileFilter{path: path, logger: logger}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Apply(_ context.Context, s *resume.Sources) (*resume.Sources, Step, error) {
	initial := s.Len()
	if f.path == "" {
		return s, Step{Initial: initial, Dropped: 0, Left: s.Len()}, nil
	}

	excluded, err := resume.ExcludedFromFile(f.path)
	if err != nil {
		return nil, Step{}, err
	}

	removed := s.Exclude(excluded.IDs())
	if len(removed) > 0 {
		f.logger.Info("excluding resumes based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_resumes", removed),
			zap.Int("resumes_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(removed), Left: s.Len()}, nil
}
