package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/equity-backend/internal/app"
	"github.com/xtding233/equity-backend/internal/equity"
	"github.com/xtding233/equity-backend/internal/preset"
)

func runCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(out)
	presetName := fs.String("preset", "", "preset to apply under the file's fields")
	dir := fs.String("dir", envOr("EQUITY_PRESET_DIR", "./config"), "preset directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("check needs exactly one file")
	}

	raw, err := readRequest(fs.Arg(0))
	if err != nil {
		return err
	}

	loader := preset.NewLoader(*dir)
	svc := app.NewConfigService(loader, nil, zap.NewNop().Sugar())
	resolved, err := svc.Resolve(context.Background(), *presetName, raw)
	if errors.Is(err, app.ErrUnknownPreset) {
		if names, lerr := loader.Names(); lerr == nil && len(names) > 0 {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}
	}
	if err != nil {
		return err
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(resolvedRows(resolved)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, pterm.Success.Sprint("configuration is valid"))
	fmt.Fprintln(out, table)
	return nil
}

// readRequest decodes a JSON or YAML request file, chosen by extension.
func readRequest(path string) (equity.Raw, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		err = dec.Decode(&raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	default:
		return nil, fmt.Errorf("%s: unsupported extension, want .json, .yaml or .yml", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: file must hold an object", path)
	}
	return equity.Raw(raw), nil
}

func resolvedRows(r equity.Resolved) [][]string {
	hands := "(none)"
	if len(r.Hands) > 0 {
		hands = strings.Join(r.Hands, " | ")
	}
	board := r.Board
	if board == "" {
		board = "(none)"
	}
	return [][]string{
		{"Field", "Value"},
		{equity.FieldNumPlayers, strconv.Itoa(r.NumPlayers)},
		{equity.FieldHands, hands},
		{equity.FieldBoard, board},
		{equity.FieldBoardSize, strconv.Itoa(r.BoardSize)},
		{equity.FieldHandSize, strconv.Itoa(r.HandSize)},
		{equity.FieldNumDecks, strconv.Itoa(r.NumDecks)},
		{equity.FieldIterations, strconv.Itoa(r.Iterations)},
		{equity.FieldReturnHandStats, strconv.FormatBool(r.ReturnHandStats)},
		{equity.FieldReturnTieHandStats, strconv.FormatBool(r.ReturnTieHandStats)},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
