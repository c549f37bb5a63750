package palette

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// commandLauncher drives rofi, fuzzel, wofi or dmenu in dmenu mode. rofi and
// fuzzel report the selected row index; the others echo the label back.
type commandLauncher struct {
	command string
	indexed bool
	run     func(name string, args []string, stdin string) (string, error)
}

func newCommandLauncher(command string) *commandLauncher {
	return &commandLauncher{
		command: command,
		indexed: command == "rofi" || command == "fuzzel",
		run:     runCommand,
	}
}

func runCommand(name string, args []string, stdin string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		// 1 is "nothing selected" for every supported launcher, 130 is Ctrl+C.
		if errors.As(err, &exitErr) && (exitErr.ExitCode() == 1 || exitErr.ExitCode() == 130) {
			return "", ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %s", name, msg)
		}
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (l *commandLauncher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	rows := l.rows(items)
	selection, err := l.run(l.command, l.args(prompt, items), strings.Join(rows, "\n"))
	if err != nil {
		return Item{}, err
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parse(selection, items, rows)
}

func (l *commandLauncher) args(prompt string, items []Item) []string {
	switch l.command {
	case "rofi":
		args := []string{"-dmenu", "-i", "-p", prompt, "-format", "i", "-no-custom"}
		var headers, active []string
		selected := -1
		for i, item := range items {
			switch {
			case item.IsHeader:
				headers = append(headers, strconv.Itoa(i))
			case item.IsActive:
				active = append(active, strconv.Itoa(i))
				if selected < 0 {
					selected = i
				}
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","))
		}
		if len(headers) > 0 {
			args = append(args, "-u", strings.Join(headers, ","))
		}
		if selected >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selected))
		}
		return args
	case "fuzzel":
		return []string{"--dmenu", "--index", "--prompt", prompt + " "}
	case "wofi":
		return []string{"--dmenu", "--prompt", prompt}
	default:
		return []string{"-i", "-p", prompt}
	}
}

// rows renders one line per item. Launchers that echo text back get unique
// labels so the selection maps to exactly one item.
func (l *commandLauncher) rows(items []Item) []string {
	rows := make([]string, len(items))
	seen := make(map[string]int)
	for i, item := range items {
		label := sanitize(item.Label)
		if item.IsHeader {
			label = "── " + label + " ──"
		}
		if !l.indexed {
			if n := seen[label]; n > 0 {
				seen[label]++
				label = fmt.Sprintf("%s (%d)", label, n+1)
			} else {
				seen[label] = 1
			}
		}
		rows[i] = label
	}
	return rows
}

func (l *commandLauncher) parse(selection string, items []Item, rows []string) (Item, error) {
	idx := -1
	if l.indexed {
		if n, err := strconv.Atoi(selection); err == nil {
			idx = n
		}
	}
	if idx < 0 {
		for i, row := range rows {
			if row == selection {
				idx = i
				break
			}
		}
	}
	if idx < 0 || idx >= len(items) {
		return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
	}
	if items[idx].IsHeader {
		return Item{}, ErrCancelled
	}
	return items[idx], nil
}

func sanitize(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	label = strings.ReplaceAll(label, "\x00", " ")
	return strings.TrimSpace(label)
}
