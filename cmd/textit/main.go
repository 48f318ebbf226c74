package main

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	textit "github.com/cs-pub-ro/textit-go"
)

// version is a semver constant for the output record's "version"
// field (spec.md §6). Bump it when the record shape changes.
const version = "0.1.0"

// outputRecord is the JSON record a driver wrapping this core emits
// per input document (spec.md §6, supplemented from
// original_source/src/textit/metadata.py).
type outputRecord struct {
	FileType       string `json:"file_type"`
	DocumentClass  string `json:"document_class"`
	Digest         string `json:"digest"`
	NLines         int    `json:"nlines"`
	OriginalNLines int    `json:"original_nlines"`
	Version        string `json:"version"`
	URL            string `json:"url"`
	RawContent     string `json:"raw_content"`
	OCR            bool   `json:"ocr"`
	Decrypted      bool   `json:"decrypted"`
	DropReason     string `json:"drop_reason,omitempty"`
}

func main() {
	cmd := &cli.Command{
		Name:  "textit",
		Usage: "Reconstruct paragraph-level text from a PDF for corpus building",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input PDF file path",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output JSON record path (default: stdout)",
			},
			&cli.IntFlag{
				Name:  "start-page",
				Usage: "Start page index (0-indexed, default: all pages)",
				Value: -1,
			},
			&cli.IntFlag{
				Name:  "end-page",
				Usage: "End page index, exclusive (0-indexed, default: all pages, or only the start page when --start-page is set)",
				Value: -1,
			},
		},
		Action: extractPDF,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractPDF(ctx context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	outputPath := cmd.String("output")
	startPage := cmd.Int("start-page")
	endPage := cmd.Int("end-page")

	pageRange := textit.AllPages
	if startPage >= 0 || endPage >= 0 {
		start := int(startPage)
		if start < 0 {
			start = 0
		}
		stop := int(endPage)
		if stop < 0 {
			stop = start + 1
		}
		pageRange = textit.Range(start, stop, 1)
	}

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	inputBytes, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	digest := sha1.Sum(inputBytes)

	result, meta := textit.Extract(ctx, inputPath, instance, pageRange, textit.DefaultConfig())

	lines := result.UnwrapOr(nil)
	rawContent := ""
	if result.IsOk() {
		for i, line := range lines {
			if i > 0 {
				rawContent += "\n"
			}
			rawContent += line
		}
	}

	record := outputRecord{
		FileType:       "PDF",
		DocumentClass:  "BOOK",
		Digest:         "sha1:" + hex.EncodeToString(digest[:]),
		NLines:         len(lines),
		OriginalNLines: meta.OriginalNLines,
		Version:        version,
		URL:            inputPath,
		RawContent:     rawContent,
		OCR:            meta.OCR,
		Decrypted:      meta.Decrypted,
		DropReason:     meta.DropReason,
	}

	encoded, err := sonic.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output record: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(encoded))
		return nil
	}

	return os.WriteFile(outputPath, encoded, 0644)
}
