package form

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/model"
)

// OperationGroup is one heading of the operational detail step with its own
// item list.
type OperationGroup struct {
	Heading string `json:"heading"`
	Items   Lines  `json:"items"`
}

// Operations is the grouped operational detail block. Like Lines it always
// holds at least one group while being edited.
type Operations []OperationGroup

// NewOperations returns a block with one empty group.
func NewOperations() Operations {
	return Operations{{Items: NewLines()}}
}

// OperationsFromModel converts persisted groups into editable groups.
func OperationsFromModel(groups model.Operations) Operations {
	if len(groups) == 0 {
		return NewOperations()
	}
	out := make(Operations, 0, len(groups))
	for _, g := range groups {
		out = append(out, OperationGroup{
			Heading: g.Heading,
			Items:   LinesFromList(g.Items),
		})
	}
	return out
}

// AddGroup appends an empty group.
func (o *Operations) AddGroup() {
	*o = append(*o, OperationGroup{Items: NewLines()})
}

// RemoveGroup deletes group g. Removing the last group leaves one empty
// group.
func (o *Operations) RemoveGroup(g int) error {
	if err := o.check(g); err != nil {
		return err
	}
	*o = append((*o)[:g], (*o)[g+1:]...)
	if len(*o) == 0 {
		*o = NewOperations()
	}
	return nil
}

// SetHeading replaces the heading of group g.
func (o *Operations) SetHeading(g int, heading string) error {
	if err := o.check(g); err != nil {
		return err
	}
	if strings.ContainsAny(heading, "\r\n") {
		return fmt.Errorf("%w: a heading must not contain line breaks", domain.ErrInvalidInput)
	}
	(*o)[g].Heading = heading
	return nil
}

// Items returns the item list of group g for line edits.
func (o *Operations) Items(g int) (*Lines, error) {
	if err := o.check(g); err != nil {
		return nil, err
	}
	return &(*o)[g].Items, nil
}

// Model converts the block to its persisted shape. Groups with neither a
// heading nor any item are dropped.
func (o Operations) Model() model.Operations {
	out := make(model.Operations, 0, len(o))
	for _, g := range o {
		heading := strings.TrimSpace(g.Heading)
		items := g.Items.List()
		if heading == "" && len(items) == 0 {
			continue
		}
		out = append(out, model.OperationGroup{Heading: heading, Items: items})
	}
	return out
}

func (o *Operations) check(g int) error {
	if g < 0 || g >= len(*o) {
		return fmt.Errorf("%w: group %d of %d", domain.ErrIndexOutOfRange, g, len(*o))
	}
	return nil
}

func (o *Operations) normalize() {
	if len(*o) == 0 {
		*o = NewOperations()
		return
	}
	for i := range *o {
		(*o)[i].Items.normalize()
	}
}
