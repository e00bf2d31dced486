package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/scan"
	"github.com/Zuo-Peng/chatstat/internal/stopwords"
)

// resolveTranscript returns the path given on the command line, or the newest
// transcript in the configured exports directory.
func resolveTranscript(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	path, err := scan.Latest(cfg.ExportsDir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", cfg.ExportsDir, err)
	}
	if path == "" {
		return "", fmt.Errorf("no transcript given and none found in %s", cfg.ExportsDir)
	}
	log.WithField("path", path).Info("using latest transcript")
	return path, nil
}

func loadTranscript(args []string) (string, []parse.Record, error) {
	path, err := resolveTranscript(args)
	if err != nil {
		return "", nil, err
	}

	start := time.Now()
	records, err := parse.ParseFile(path)
	if err != nil {
		return "", nil, err
	}
	log.WithFields(logrus.Fields{
		"path":    path,
		"records": len(records),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("parsed transcript")
	return path, records, nil
}

func loadStopWords() (analytics.StopWords, error) {
	sw, err := stopwords.Load(cfg.StopWordsPath)
	if err == nil {
		log.WithField("words", len(sw)).Debug("loaded stop words")
		return sw, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", cfg.StopWordsPath).Warn("stop word file not found, counting every word")
		return analytics.StopWords{}, nil
	}
	return nil, err
}

// writeStructured writes v as JSON or YAML and reports whether format was one
// of them.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}
