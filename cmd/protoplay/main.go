// Package main provides the protoplay CLI.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/protoplay"
	"github.com/phanxgames/protoplay/player"
)

var rootCmd = &cobra.Command{
	Use:   "protoplay",
	Short: "Replay design-tool prototypes",
	Long:  `protoplay loads an exported prototype document, plays its click and timeout reactions with their animations, and inspects the differences between variants.`,
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play <document>",
	Short: "Open a window and play a prototype",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

var diffCmd = &cobra.Command{
	Use:   "diff <document> <source-id> <target-id>",
	Short: "List the changes between two nodes of a document",
	Args:  cobra.ExactArgs(3),
	RunE:  runDiff,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Print a document's node tree, reactions and instances",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var (
	configPath string
	scriptPath string
	logLevel   string
	showFPS    bool
	debugMode  bool
	matchGlob  string
	jsonFlag   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	playCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	playCmd.Flags().StringVar(&scriptPath, "script", "", "Path to a JSON test script to run")
	playCmd.Flags().BoolVar(&showFPS, "fps", false, "Show the FPS overlay")
	playCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable scene debug checks and stats")

	diffCmd.Flags().StringVar(&matchGlob, "match", "", "Only list changes whose child path matches this glob")
	diffCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs a text handler on stderr at the configured level.
// The --log-level flag wins over the config file.
func setupLogging(cfg *Config) {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level()}))
	slog.SetDefault(l)
	protoplay.SetLogger(l)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("script") {
		cfg.Script = scriptPath
	}
	if cmd.Flags().Changed("fps") {
		cfg.Window.ShowFPS = showFPS
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugMode
	}
	setupLogging(cfg)

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	scene := protoplay.NewScene()
	scene.ClearColor = protoplay.ColorWhite
	scene.SetDebugMode(cfg.Debug)
	if err := scene.Load(doc); err != nil {
		return err
	}
	defer scene.Destroy()

	exitWhenDone := false
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := protoplay.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
		exitWhenDone = cfg.ExitWhenDone
	}

	slog.Info("playing", "document", args[0], "roots", len(doc.Roots), "instances", len(doc.Instances))
	return player.Run(scene, player.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		ShowFPS:       cfg.Window.ShowFPS,
		ScreenshotDir: cfg.ScreenshotDir,
		ExitWhenDone:  exitWhenDone,
	})
}

func runDiff(cmd *cobra.Command, args []string) error {
	setupLogging(&Config{LogLevel: "warn"})
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	return writeDiff(cmd.OutOrStdout(), doc, args[1], args[2], matchGlob, jsonFlag)
}

// writeDiff prints the changes from sourceID to targetID, optionally
// filtered by a child-path glob.
func writeDiff(w io.Writer, doc *protoplay.Document, sourceID, targetID, match string, asJSON bool) error {
	src := doc.Find(sourceID)
	if src == nil {
		return fmt.Errorf("source %q: %w", sourceID, protoplay.ErrMissingSnapshot)
	}
	tgt := doc.Find(targetID)
	if tgt == nil {
		return fmt.Errorf("target %q: %w", targetID, protoplay.ErrMissingSnapshot)
	}
	changes := protoplay.DetectChanges(src, tgt)
	if match != "" {
		var err error
		if changes, err = protoplay.FilterChanges(changes, match); err != nil {
			return err
		}
	}
	return printChanges(w, changes, asJSON)
}

func printChanges(w io.Writer, changes []protoplay.Change, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if changes == nil {
			changes = []protoplay.Change{}
		}
		return enc.Encode(changes)
	}
	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	setupLogging(&Config{LogLevel: "warn"})
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	writeInspect(cmd.OutOrStdout(), doc)
	return nil
}

// writeInspect prints the node tree of every root with reactions, then the
// variant instances.
func writeInspect(w io.Writer, doc *protoplay.Document) {
	for _, r := range doc.Roots {
		marker := ""
		if doc.Start == r.ID {
			marker = " (start)"
		}
		fmt.Fprintf(w, "root %s%s\n", r.ID, marker)
		writeTree(w, r, 1)
	}
	for _, ri := range doc.Instances {
		fmt.Fprintf(w, "instance %s %q variants=[%s] active=%s\n",
			ri.Instance.ID, ri.Instance.Name, strings.Join(ri.VariantIDs(), ", "), ri.ActiveVariant)
		for _, v := range ri.Variants {
			writeTree(w, v, 1)
		}
	}
}

func writeTree(w io.Writer, s *protoplay.Snapshot, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %q %s %gx%g at (%g, %g)\n", indent, s.ID, s.Name, s.Type, s.Width, s.Height, s.X, s.Y)
	for _, r := range s.Reactions {
		line := fmt.Sprintf("%s  on %s -> %s", indent, r.Trigger.Type, r.Action.DestinationID)
		if r.Trigger.Type == protoplay.TriggerTimeout {
			line += fmt.Sprintf(" after %gs", r.Trigger.Timeout)
		}
		if t := r.Action.Transition; t != nil {
			line += fmt.Sprintf(" %s %gs %s", t.Type, t.Duration, protoplay.CSSEasing(t.Easing))
		}
		fmt.Fprintln(w, line)
	}
	for _, c := range s.Children {
		writeTree(w, c, depth+1)
	}
}
