package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/grovetools/shelf/cli"
	"github.com/grovetools/shelf/logging"
	"github.com/grovetools/shelf/tui/theme"
	"github.com/grovetools/shelf/util/pathutil"
)

// TailedLine is a line of log output attributed to a component.
type TailedLine struct {
	Component string
	Line      string
}

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [component...]",
		Short: "Display logs from shelf components",
		Long: `Streams logs written under .shelf/logs/. With no arguments, all component
log files are shown; name components to restrict the output.

Examples:
  # Follow all component logs
  shelf logs -f

  # Only the picker's log, last 50 lines
  shelf logs picker --tail 50

  # Raw JSON Lines for piping into jq
  shelf logs --json
`,
		RunE: runLogsE,
	}

	cmd.Flags().Bool("json", false, "Output logs in JSON Lines format")
	cmd.Flags().BoolP("tui", "i", false, "Launch the interactive log viewer")
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of each log (default: all)")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	var logCfg logging.Config
	if cfg != nil {
		_ = cfg.UnmarshalExtension("logging", &logCfg)
	}

	files, err := discoverLogFiles(args, &logCfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("No log files found.")
		return nil
	}

	follow, _ := cmd.Flags().GetBool("follow")

	if tuiMode, _ := cmd.Flags().GetBool("tui"); tuiMode {
		return runLogsTUI(files)
	}

	tailLines, _ := cmd.Flags().GetInt("tail")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	lineChan := make(chan TailedLine, 100)
	var wg sync.WaitGroup
	for component, path := range files {
		wg.Add(1)
		go tailLogFile(component, path, lineChan, &wg, follow, tailLines)
	}
	go func() {
		wg.Wait()
		close(lineChan)
	}()

	for tailedLine := range lineChan {
		if logCfg.Show != nil || logCfg.Hide != nil {
			if !logging.IsComponentVisible(tailedLine.Component, &logCfg) {
				continue
			}
		}
		if jsonOutput || opts.JSONOutput {
			printLogJSON(tailedLine)
		} else {
			printLogText(tailedLine)
		}
	}

	return nil
}

// discoverLogFiles maps component names to their log file paths. An explicit
// file path in the logging config wins; otherwise every .log file under
// .shelf/logs/ in the working directory is a component.
func discoverLogFiles(components []string, logCfg *logging.Config) (map[string]string, error) {
	if logCfg.File.Enabled && logCfg.File.Path != "" {
		path, err := pathutil.Expand(logCfg.File.Path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), ".log")
		return map[string]string{name: path}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logsDir := filepath.Join(cwd, ".shelf", "logs")
	entries, err := os.ReadDir(logsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read log directory %s: %w", logsDir, err)
	}

	wanted := make(map[string]bool)
	for _, c := range components {
		wanted[c] = true
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".log")
		if len(wanted) > 0 && !wanted[name] {
			continue
		}
		files[name] = filepath.Join(logsDir, entry.Name())
	}
	return files, nil
}

// tailLogFile streams a log file to lineChan, honoring --tail and --follow.
func tailLogFile(component, path string, lineChan chan<- TailedLine, wg *sync.WaitGroup, follow bool, tailLines int) {
	defer wg.Done()

	if tailLines >= 0 {
		for _, line := range lastLines(path, tailLines) {
			lineChan <- TailedLine{Component: component, Line: line}
		}
		if !follow {
			return
		}
	}

	cfg := tail.Config{
		Follow: follow,
		ReOpen: follow,
		Logger: tail.DiscardingLogger,
	}
	if tailLines >= 0 {
		// Historical lines were already printed above.
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}
	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return
	}
	defer t.Cleanup()

	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		text := strings.TrimSpace(line.Text)
		if text != "" {
			lineChan <- TailedLine{Component: component, Line: text}
		}
	}
}

// lastLines returns the trailing n non-empty lines of a file.
func lastLines(path string, n int) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// printLogJSON prints a log line in JSON format, enriched with the component name.
func printLogJSON(tailedLine TailedLine) {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(tailedLine.Line), &logMap); err != nil {
		fallback := map[string]interface{}{
			"component": tailedLine.Component,
			"raw_line":  tailedLine.Line,
			"error":     "failed to parse original log line as JSON",
		}
		jsonData, _ := json.Marshal(fallback)
		fmt.Println(string(jsonData))
		return
	}

	if _, ok := logMap["component"]; !ok {
		logMap["component"] = tailedLine.Component
	}
	jsonData, _ := json.Marshal(logMap)
	fmt.Println(string(jsonData))
}

// printLogText pretty-prints a log line for human consumption.
func printLogText(tailedLine TailedLine) {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(tailedLine.Line), &logMap); err != nil {
		fmt.Printf("[%s] %s\n",
			theme.DefaultTheme.Accent.Render(tailedLine.Component),
			tailedLine.Line,
		)
		return
	}

	ts, _ := logMap["time"].(string)
	level, _ := logMap["level"].(string)
	msg, _ := logMap["msg"].(string)

	parsedTime, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsedTime, _ = time.Parse(time.RFC3339, ts)
	}
	timeStr := parsedTime.Format("15:04:05")

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		levelStyle = theme.DefaultTheme.Error
	case "warning":
		levelStyle = theme.DefaultTheme.Warning
	case "info":
		levelStyle = theme.DefaultTheme.Info
	default:
		levelStyle = theme.DefaultTheme.Muted
	}

	otherFields := []string{}
	sortedKeys := []string{}
	for k := range logMap {
		if k != "time" && k != "level" && k != "msg" && k != "component" {
			sortedKeys = append(sortedKeys, k)
		}
	}
	sort.Strings(sortedKeys)
	for _, k := range sortedKeys {
		otherFields = append(otherFields, fmt.Sprintf("%s=%v", theme.DefaultTheme.Muted.Render(k), logMap[k]))
	}

	fmt.Printf("%s [%s] %s %s %s\n",
		timeStr,
		theme.DefaultTheme.Accent.Render(tailedLine.Component),
		levelStyle.Render(strings.ToUpper(level)),
		msg,
		strings.Join(otherFields, " "),
	)
}
