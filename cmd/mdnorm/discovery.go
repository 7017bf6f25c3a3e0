package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	mdnorm "github.com/alnah/go-mdnorm"
	"github.com/alnah/go-mdnorm/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have a markdown extension (.md, .markdown, .mdown, .mkd)")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrAmbiguousOutput    = errors.New("several inputs need --output <dir> or --write")
)

// FileToNormalize represents a single file to process.
// An empty OutputPath means stdout.
type FileToNormalize struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs (files and directories) into markdown files.
// Directories are walked recursively; non-markdown files inside them are
// skipped, while an explicit non-markdown file is an error.
func discoverFiles(inputs []string, outputDir string, inPlace bool) ([]FileToNormalize, error) {
	var files []FileToNormalize

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}

		if !info.IsDir() {
			if err := validateMarkdownExtension(input); err != nil {
				return nil, err
			}
			files = append(files, FileToNormalize{
				InputPath:  input,
				OutputPath: resolveOutputPath(input, outputDir, "", inPlace),
			})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !fileutil.IsMarkdownFile(path) {
				return nil
			}
			files = append(files, FileToNormalize{
				InputPath:  path,
				OutputPath: resolveOutputPath(path, outputDir, input, inPlace),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// resolveOutputPath determines where the normalized file goes.
//
//   - inPlace: the input path itself
//   - no outputDir: "" (stdout)
//   - outputDir with a markdown extension: that file
//   - otherwise: outputDir plus the path relative to baseInputDir
func resolveOutputPath(inputPath, outputDir, baseInputDir string, inPlace bool) string {
	if inPlace {
		return inputPath
	}
	if outputDir == "" {
		return ""
	}
	if fileutil.IsMarkdownFile(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, relPath)
		}
	}

	return filepath.Join(outputDir, filepath.Base(inputPath))
}

// validateOutputs rejects plans where several files would share stdout or
// a single output file.
func validateOutputs(files []FileToNormalize) error {
	if len(files) < 2 {
		return nil
	}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.OutputPath == "" || seen[f.OutputPath] {
			return ErrAmbiguousOutput
		}
		seen[f.OutputPath] = true
	}
	return nil
}

// validateMarkdownExtension checks that the file has a markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdnorm.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdnorm.MaxPoolSize)
	}
	return nil
}

// resolveOutputDir returns the output destination: flag first, then config.
func resolveOutputDir(flagOutput, configDir string) string {
	if flagOutput != "" {
		return flagOutput
	}
	return configDir
}
