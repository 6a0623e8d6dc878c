package editor

import (
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultMenuClass is the class of the menu's root element.
const DefaultMenuClass = "wysiwyg-menu"

// DefaultActions are the menu buttons, in order. Other native commands
// (underline, strikeThrough, justify*, indent, outdent, sub/superscript)
// and the block actions work through Format but are left out of the
// default menu.
var DefaultActions = []string{
	"undo",
	"redo",
	"bold",
	"italic",
	"insertUnorderedList",
	"insertOrderedList",
	"createLink",
	"unlink",
}

// DefaultIcons maps actions to their Font Awesome button markup.
var DefaultIcons = map[string]string{
	"undo":                `<i class="fa fa-undo"></i>`,
	"redo":                `<i class="fa fa-repeat"></i>`,
	"bold":                `<i class="fa fa-bold"></i>`,
	"italic":              `<i class="fa fa-italic"></i>`,
	"underline":           `<i class="fa fa-underline"></i>`,
	"strikeThrough":       `<i class="fa fa-strikethrough"></i>`,
	"insertUnorderedList": `<i class="fa fa-list-ul"></i>`,
	"insertOrderedList":   `<i class="fa fa-list-ol"></i>`,
	"justifyLeft":         `<i class="fa fa-align-left"></i>`,
	"justifyCenter":       `<i class="fa fa-align-center"></i>`,
	"justifyRight":        `<i class="fa fa-align-right"></i>`,
	"justifyFull":         `<i class="fa fa-align-justify"></i>`,
	"indent":              `<i class="fa fa-indent"></i>`,
	"outdent":             `<i class="fa fa-outdent"></i>`,
	"subscript":           `<i class="fa fa-subscript"></i>`,
	"superscript":         `<i class="fa fa-superscript"></i>`,
	"createLink":          `<i class="fa fa-link"></i>`,
	"unlink":              `<i class="fa fa-unlink"></i>`,
	"h1":                  `h<sup>1</sup>`,
	"h2":                  `h<sup>2</sup>`,
}

// Icon renders the inner markup of an action's button.
type Icon func(action string) string

// StaticIcon returns an Icon that always renders markup.
func StaticIcon(markup string) Icon {
	return func(string) string { return markup }
}

// MenuOptions configures the menu built by Session.Menu.
type MenuOptions struct {
	// Class replaces DefaultMenuClass.
	Class string `yaml:"class"`
	// Actions replaces DefaultActions.
	Actions []string `yaml:"actions"`
	// Icons overrides DefaultIcons per action.
	Icons map[string]string `yaml:"icons"`
	// Icon, when set, renders every button and wins over Icons.
	Icon Icon `yaml:"-"`
}

// LoadMenuOptions decodes menu options from YAML.
func LoadMenuOptions(r io.Reader) (MenuOptions, error) {
	var opts MenuOptions
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil && err != io.EOF {
		return MenuOptions{}, fmt.Errorf("failed to decode menu options: %w", err)
	}
	return opts, nil
}

func (o MenuOptions) class() string {
	if o.Class != "" {
		return o.Class
	}
	return DefaultMenuClass
}

func (o MenuOptions) actions() []string {
	if len(o.Actions) > 0 {
		return slices.Clone(o.Actions)
	}
	return slices.Clone(DefaultActions)
}

// icon returns the button markup for action.
func (o MenuOptions) icon(action string) string {
	if o.Icon != nil {
		return o.Icon(action)
	}
	if markup, ok := o.Icons[action]; ok {
		return markup
	}
	if markup, ok := DefaultIcons[action]; ok {
		return markup
	}
	return action
}
