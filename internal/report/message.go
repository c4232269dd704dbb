package report

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/plangridgo/internal/model"
)

// Message returns the English description of d.
func Message(d model.Diagnostic) string {
	switch d := d.(type) {
	case model.DuplicateCompleteKeyword:
		return fmt.Sprintf("the complete keyword appears more than once in the header of %q", d.ResourceID)
	case model.CompleteOnUnsupportedType:
		return fmt.Sprintf("%s %q cannot be marked complete, only tasks can", d.ResourceType, d.ResourceID)
	case model.CompleteKeywordAttributeConflict:
		return fmt.Sprintf("task %q is complete in its header but sets complete = %s, the header wins", d.ResourceID, d.AttributeValue)
	case model.InvalidCompleteKeywordPosition:
		return fmt.Sprintf("the complete keyword must follow the %s id", d.ResourceType)
	case model.CircularDependency:
		return "circular dependency: " + strings.Join(d.Nodes, " -> ")
	case model.DanglingDependency:
		return fmt.Sprintf("%s %q depends on %q, which is not defined", d.DependentType, d.DependentID, d.MissingID)
	case model.DuplicateID:
		msg := fmt.Sprintf("duplicate id %q, this %s is ignored", d.ID, d.Type)
		if d.Kept != nil {
			msg += " in favor of the one at " + Position(d.Kept)
		}
		return msg
	case model.UnknownResourceType:
		return fmt.Sprintf("unknown resource type %q, expected task or milestone", d.Type)
	case model.MissingResourceID:
		return fmt.Sprintf("%s block has no id", d.Type)
	case model.UnknownModifier:
		return fmt.Sprintf("unknown modifier %q on %q", d.Modifier, d.ResourceID)
	case model.UnsupportedBlock:
		return fmt.Sprintf("nested block %q in %q is not supported", d.BlockType, d.ResourceID)
	case model.UnsupportedAttributeValue:
		return fmt.Sprintf("attribute %q of %q is a %s, which is not supported, the attribute is ignored", d.Key, d.ResourceID, d.Shape)
	case model.UnsupportedArrayElement:
		return fmt.Sprintf("an element of %q in %q is a %s, which is not supported, the element is skipped", d.Key, d.ResourceID, d.Shape)
	case model.InvalidDependencyValue:
		return fmt.Sprintf("depends_on entry %s in %q is not a resource id", d.Value, d.ResourceID)
	}
	return string(d.Code())
}

// Position formats an origin as document:line with a 1-based line.
func Position(o *model.Origin) string {
	if o == nil {
		return ""
	}
	if o.Document == "" {
		return fmt.Sprintf("line %d", o.StartRow+1)
	}
	return fmt.Sprintf("%s:%d", o.Document, o.StartRow+1)
}
