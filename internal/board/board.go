package board

import (
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"

	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
)

// InputPort reads the current value of a named control. Unknown controls
// read as the empty string.
type InputPort interface {
	ReadField(name string) string
}

// OutputPort writes to named controls. Writes to unknown controls are
// ignored.
type OutputPort interface {
	WriteText(name, value string)
	SetEnabled(name string, enabled bool)
	SetClass(name, className string, present bool)
}

// ValueSetter is implemented by inputs whose values the page can overwrite,
// such as clearing the guess field.
type ValueSetter interface {
	SetValue(name, value string)
}

type Element struct {
	Value    string
	Text     string
	Disabled bool
	Classes  map[string]struct{}
}

// Board is the server-side model of the game page. It backs both ports and
// is rendered by the templates.
type Board struct {
	elements map[string]*Element
}

var inputIDs = []string{constants.FieldMin, constants.FieldMax, constants.FieldAttempt, constants.FieldGuess}

var textIDs = []string{
	constants.TextMessage, constants.TextError, constants.TextSecret, constants.TextAttemptCount,
	constants.TextMinTitle, constants.TextMaxTitle, constants.TextAttemptTitle,
}

var buttonIDs = []string{constants.ButtonSave, constants.ButtonGenerate, constants.ButtonExit}

func New() *Board {
	ids := slices.Concat(inputIDs, textIDs, buttonIDs, []string{constants.ContainerBody})
	b := &Board{elements: lo.SliceToMap(ids, func(id string) (string, *Element) {
		return id, &Element{Classes: map[string]struct{}{}}
	})}
	b.SetValue(constants.FieldMin, itoa(constants.DefaultMin))
	b.SetValue(constants.FieldMax, itoa(constants.DefaultMax))
	b.SetValue(constants.FieldAttempt, itoa(constants.DefaultMaxAttempts))
	b.WriteText(constants.TextMinTitle, itoa(constants.DefaultMin))
	b.WriteText(constants.TextMaxTitle, itoa(constants.DefaultMax))
	b.WriteText(constants.TextAttemptTitle, itoa(constants.DefaultMaxAttempts))
	b.WriteText(constants.TextAttemptCount, itoa(constants.DefaultMaxAttempts))
	b.WriteText(constants.TextSecret, constants.SecretHidden)
	b.WriteText(constants.TextMessage, constants.MessageStart)
	b.SetClass(constants.TextSecret, constants.ClassBase, true)
	return b
}

func (b *Board) ReadField(name string) string {
	if el, ok := b.elements[name]; ok {
		return el.Value
	}
	return ""
}

// SetValue stores user input for a control, as typed into a form field.
func (b *Board) SetValue(name, value string) {
	if el, ok := b.elements[name]; ok {
		el.Value = value
	}
}

func (b *Board) WriteText(name, value string) {
	if el, ok := b.elements[name]; ok {
		el.Text = value
	}
}

func (b *Board) SetEnabled(name string, enabled bool) {
	if el, ok := b.elements[name]; ok {
		el.Disabled = !enabled
	}
}

func (b *Board) SetClass(name, className string, present bool) {
	el, ok := b.elements[name]
	if !ok {
		return
	}
	if present {
		el.Classes[className] = struct{}{}
	} else {
		delete(el.Classes, className)
	}
}

func (b *Board) Value(name string) string { return b.ReadField(name) }

func (b *Board) Text(name string) string {
	if el, ok := b.elements[name]; ok {
		return el.Text
	}
	return ""
}

func (b *Board) Disabled(name string) bool {
	el, ok := b.elements[name]
	return ok && el.Disabled
}

func (b *Board) HasClass(name, className string) bool {
	el, ok := b.elements[name]
	if !ok {
		return false
	}
	_, present := el.Classes[className]
	return present
}

// ClassList renders the classes of a control in a stable order for a class
// attribute.
func (b *Board) ClassList(name string) string {
	el, ok := b.elements[name]
	if !ok {
		return ""
	}
	return strings.Join(slices.Sorted(maps.Keys(el.Classes)), " ")
}
