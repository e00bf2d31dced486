package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/scan"
	"github.com/Zuo-Peng/chatstat/internal/stopwords"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, stop words, exports, DB and FTS5",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("=== Config ===")
			fmt.Printf("  Log level:  %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
			fmt.Printf("  Output:     %s\n", cfg.Output)

			fmt.Println("\n=== Stop Words ===")
			if sw, err := stopwords.Load(cfg.StopWordsPath); err != nil {
				fmt.Printf("  %s: %v\n", cfg.StopWordsPath, err)
			} else {
				fmt.Printf("  %s: %d words (OK)\n", cfg.StopWordsPath, len(sw))
			}

			fmt.Println("\n=== Exports ===")
			checkDir("Exports", cfg.ExportsDir)
			files, err := scan.ScanDir(cfg.ExportsDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  Transcripts: %d\n", len(files))
				if len(files) > 0 {
					fmt.Printf("  Latest:      %s\n", files[0].Path)
				}
			}

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'chatstat export' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			transcripts, err := db.TranscriptCount()
			if err != nil {
				return fmt.Errorf("count transcripts: %w", err)
			}
			messages, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			fmt.Printf("  Transcripts: %d\n", transcripts)
			fmt.Printf("  Messages:    %s\n", humanize.Comma(int64(messages)))

			fmt.Println("\n=== FTS5 ===")
			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == messages {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", messages, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("\n=== DB Size: %s ===\n", humanize.Bytes(uint64(info.Size())))
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
