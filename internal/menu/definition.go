package menu

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the on-disk description of a popup menu tree.
type Definition struct {
	Title string     `yaml:"title"`
	Items []EntryDef `yaml:"items"`
}

// EntryDef describes one menu entry in a definition file.
type EntryDef struct {
	ID       string     `yaml:"id"`
	Label    string     `yaml:"label"`
	Key      string     `yaml:"key,omitempty"`
	Columns  int        `yaml:"columns,omitempty"`
	Submenu  []EntryDef `yaml:"submenu,omitempty"`
	Group    []EntryDef `yaml:"group,omitempty"`
	Tmux     string     `yaml:"tmux,omitempty"`
	Run      string     `yaml:"run,omitempty"`
	Print    string     `yaml:"print,omitempty"`
	KeepOpen bool       `yaml:"keep-open,omitempty"`

	// yaml.v3 drops unset slices, so key presence is tracked separately to let
	// an empty submenu or group survive decoding.
	hasSubmenu bool
	hasGroup   bool
}

// UnmarshalYAML records whether submenu/group keys were present.
func (e *EntryDef) UnmarshalYAML(node *yaml.Node) error {
	type plain EntryDef
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = EntryDef(p)
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		switch key.Value {
		case "submenu":
			e.hasSubmenu = true
		case "group":
			e.hasGroup = true
		case "id", "label", "key", "columns", "tmux", "run", "print", "keep-open":
		default:
			return fmt.Errorf("line %d: unknown menu entry field %q", key.Line, key.Value)
		}
	}
	return nil
}

// IsSubmenu reports whether the entry opens a nested menu.
func (e EntryDef) IsSubmenu() bool { return e.hasSubmenu || len(e.Submenu) > 0 }

// IsGroup reports whether the entry lays its children out as a grid.
func (e EntryDef) IsGroup() bool { return e.hasGroup || len(e.Group) > 0 }

var (
	ErrMissingID   = errors.New("menu entry is missing an id")
	ErrDuplicateID = errors.New("duplicate menu entry id")
	ErrAmbiguous   = errors.New("menu entry cannot be both submenu and group")
	ErrActionCount = errors.New("menu entry declares more than one action")
	ErrReservedKey = errors.New("menu entry key is bound to navigation")
)

// ReservedKeys are the key names the popup binds for navigation. An entry key
// among them would never reach the shortcut dispatcher.
var ReservedKeys = []string{
	"up", "down", "left", "right",
	"k", "j", "h", "l",
	"enter", "esc", "/", "q", "ctrl+c",
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu definition: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a YAML definition.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode menu definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks structural rules across the whole tree. Node ids must be
// unique tree-wide because focus-by-node resolves the first match only.
func (d *Definition) Validate() error {
	seen := make(map[string]struct{})
	var check func(entries []EntryDef, trail string) error
	check = func(entries []EntryDef, trail string) error {
		for i, entry := range entries {
			id := strings.TrimSpace(entry.ID)
			where := fmt.Sprintf("%s[%d]", trail, i)
			if id == "" {
				return fmt.Errorf("%s: %w", where, ErrMissingID)
			}
			where = trail + "/" + id
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%s: %w", where, ErrDuplicateID)
			}
			seen[id] = struct{}{}
			if entry.IsSubmenu() && entry.IsGroup() {
				return fmt.Errorf("%s: %w", where, ErrAmbiguous)
			}
			if entry.Columns < 0 {
				return fmt.Errorf("%s: columns must be >= 0 (got %d)", where, entry.Columns)
			}
			if slices.Contains(ReservedKeys, entry.Key) {
				return fmt.Errorf("%s: key %q: %w", where, entry.Key, ErrReservedKey)
			}
			if actionCount(entry) > 1 {
				return fmt.Errorf("%s: %w", where, ErrActionCount)
			}
			if err := check(entry.Submenu, where); err != nil {
				return err
			}
			if err := check(entry.Group, where); err != nil {
				return err
			}
		}
		return nil
	}
	return check(d.Items, "items")
}

func actionCount(e EntryDef) int {
	n := 0
	for _, v := range []string{e.Tmux, e.Run, e.Print} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

func (e EntryDef) action() Action {
	switch {
	case strings.TrimSpace(e.Tmux) != "":
		return Action{Kind: ActionTmux, Command: strings.TrimSpace(e.Tmux), KeepOpen: e.KeepOpen}
	case strings.TrimSpace(e.Run) != "":
		return Action{Kind: ActionShell, Command: strings.TrimSpace(e.Run), KeepOpen: e.KeepOpen}
	case e.Print != "":
		return Action{Kind: ActionPrint, Command: e.Print, KeepOpen: e.KeepOpen}
	}
	return Action{KeepOpen: e.KeepOpen}
}

func (e EntryDef) label() string {
	if label := strings.TrimSpace(e.Label); label != "" {
		return label
	}
	return prettyLabel(e.ID)
}
