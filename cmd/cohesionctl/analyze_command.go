package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/cohesion"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		center      string
		listFile    string
		maxBins     int
		stopWords   []string
		placeholder string
		normalize   bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report distances, dispersion and the best partition of a text list",
		Long:  "Reads one text per line from --file (or stdin with -) and measures how tightly the texts cluster around --center.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(center) == "" {
				return errors.New("--center is required")
			}
			opts := []cohesion.Option{}
			for _, f := range stopWords {
				opts = append(opts, cohesion.WithStopWordFile(f))
			}
			if placeholder != "" {
				if utf8.RuneCountInString(placeholder) != 1 {
					return fmt.Errorf("--placeholder must be a single character, got %q", placeholder)
				}
				r, _ := utf8.DecodeRuneInString(placeholder)
				opts = append(opts, cohesion.WithPlaceholder(r))
			}
			if normalize {
				opts = append(opts, cohesion.WithNormalization())
			}

			texts, err := readTexts(cmd.InOrStdin(), listFile)
			if err != nil {
				return err
			}

			a, err := cohesion.New(opts...)
			if err != nil {
				return err
			}
			a.SetCenter(center)
			a.SetList(texts)

			rep, err := a.Report(maxBins)
			if err != nil {
				return err
			}

			if wantJSON(jsonOut, cmd.OutOrStdout()) {
				return writeJSON(cmd, rep)
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}

	cmd.Flags().StringVar(&center, "center", "", "Center text the list is compared against")
	cmd.Flags().StringVarP(&listFile, "file", "f", "-", "File with one text per line (- for stdin)")
	cmd.Flags().IntVar(&maxBins, "max-bins", cohesion.DefaultMaxBins, "Largest bin count evaluated")
	cmd.Flags().StringSliceVar(&stopWords, "stop-words", nil, "Stop word file, one word per line (repeatable)")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "Character that overwrites stop words (default _)")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Match stop words on the Unicode NFC form")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON even on a terminal")

	return cmd
}

func readTexts(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("open list: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var texts []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("list is empty: %w", cohesion.ErrEmptyInput)
	}
	return texts, nil
}

func printReport(w io.Writer, rep cohesion.Report) {
	mode := "-"
	if rep.Mode != nil {
		mode = fmt.Sprintf("%d (x%d)", rep.Mode.Value, rep.Mode.Count)
	}
	summary := [][]string{
		{"Texts", strconv.Itoa(rep.TextCount)},
		{"Vocabulary", strconv.Itoa(rep.VocabularySize)},
		{"Mean", formatOptional(rep.Mean)},
		{"Std deviation", formatOptional(rep.StdDeviation)},
		{"Dispersion", formatOptional(rep.Dispersion)},
		{"Mode", mode},
	}
	if p := rep.Partition; p != nil {
		summary = append(summary,
			[]string{"Best bins", strconv.Itoa(p.Bins)},
			[]string{"Max bin std dev", formatFloat(p.MaxStdDev)},
		)
	}
	fmt.Fprintln(w, renderTable([]string{"Metric", "Value"}, summary, []columnAlignment{alignLeft, alignRight}))

	if rep.Partition == nil {
		return
	}
	rows := make([][]string, len(rep.Partition.Classification))
	for i, b := range rep.Partition.Classification {
		rows[i] = []string{strconv.Itoa(i), formatBounds(b, i == len(rep.Partition.Classification)-1), strconv.Itoa(b.Count)}
	}
	fmt.Fprintln(w, renderTable([]string{"Bin", "Range", "Count"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight}))
}

func formatBounds(b cohesion.Bin, last bool) string {
	closing := ")"
	if last {
		closing = "]"
	}
	return "[" + formatFloat(b.Start) + ", " + formatFloat(b.End) + closing
}
