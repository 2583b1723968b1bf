package dom

import (
	"strings"
)

// CSSStyleDeclaration represents an element's inline style, kept in sync
// with its style attribute.
type CSSStyleDeclaration struct {
	element       *Element
	declarations  map[string]*styleProperty
	propertyOrder []string
}

type styleProperty struct {
	value    string
	priority string // "important" or ""
}

// NewCSSStyleDeclaration creates a new CSSStyleDeclaration for an element.
func NewCSSStyleDeclaration(element *Element) *CSSStyleDeclaration {
	sd := &CSSStyleDeclaration{
		element:      element,
		declarations: make(map[string]*styleProperty),
	}
	if element != nil && element.HasAttribute("style") {
		sd.parseFromAttribute(element.GetAttribute("style"))
	}
	return sd
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSStyleDeclaration) CSSText() string {
	var parts []string
	for _, prop := range sd.propertyOrder {
		sp := sd.declarations[prop]
		part := prop + ": " + sp.value
		if sp.priority == "important" {
			part += " !important"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// Length returns the number of declared properties.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.propertyOrder)
}

// GetPropertyValue returns the value of a property, or "" if unset.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	if sp, ok := sd.declarations[normalizeCSSPropertyName(property)]; ok {
		return sp.value
	}
	return ""
}

// GetPropertyPriority returns "important" or "".
func (sd *CSSStyleDeclaration) GetPropertyPriority(property string) string {
	if sp, ok := sd.declarations[normalizeCSSPropertyName(property)]; ok {
		return sp.priority
	}
	return ""
}

// SetProperty sets a property. An empty value removes it.
func (sd *CSSStyleDeclaration) SetProperty(property, value string, priority ...string) {
	property = normalizeCSSPropertyName(property)
	if property == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		sd.RemoveProperty(property)
		return
	}
	prio := ""
	if len(priority) > 0 && strings.EqualFold(priority[0], "important") {
		prio = "important"
	}
	if _, exists := sd.declarations[property]; !exists {
		sd.propertyOrder = append(sd.propertyOrder, property)
	}
	sd.declarations[property] = &styleProperty{value: value, priority: prio}
	sd.syncToAttribute()
}

// RemoveProperty removes a property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	property = normalizeCSSPropertyName(property)
	sp, ok := sd.declarations[property]
	if !ok {
		return ""
	}
	delete(sd.declarations, property)
	for i, p := range sd.propertyOrder {
		if p == property {
			sd.propertyOrder = append(sd.propertyOrder[:i], sd.propertyOrder[i+1:]...)
			break
		}
	}
	sd.syncToAttribute()
	return sp.value
}

// PropertyNames returns all property names in declaration order.
func (sd *CSSStyleDeclaration) PropertyNames() []string {
	out := make([]string, len(sd.propertyOrder))
	copy(out, sd.propertyOrder)
	return out
}

// RefreshFromAttribute reloads declarations from the element's style attribute.
func (sd *CSSStyleDeclaration) RefreshFromAttribute() {
	sd.declarations = make(map[string]*styleProperty)
	sd.propertyOrder = nil
	if sd.element != nil && sd.element.HasAttribute("style") {
		sd.parseFromAttribute(sd.element.GetAttribute("style"))
	}
}

func (sd *CSSStyleDeclaration) parseFromAttribute(styleAttr string) {
	for _, part := range strings.Split(styleAttr, ";") {
		property, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		property = normalizeCSSPropertyName(property)
		value = strings.TrimSpace(value)
		if property == "" || value == "" {
			continue
		}

		priority := ""
		if idx := strings.LastIndex(value, "!"); idx >= 0 &&
			strings.EqualFold(strings.TrimSpace(value[idx+1:]), "important") {
			priority = "important"
			value = strings.TrimSpace(value[:idx])
		}

		if _, exists := sd.declarations[property]; !exists {
			sd.propertyOrder = append(sd.propertyOrder, property)
		}
		sd.declarations[property] = &styleProperty{value: value, priority: priority}
	}
}

// syncToAttribute writes the declarations back without re-parsing.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	if sd.element == nil {
		return
	}
	if text := sd.CSSText(); text == "" {
		sd.element.removeAttributeRaw("style")
	} else {
		sd.element.setAttributeRaw("style", text)
	}
}

// normalizeCSSPropertyName converts camelCase to kebab-case and lowercases.
// "marginLeft" -> "margin-left", "WebkitTransform" -> "-webkit-transform".
func normalizeCSSPropertyName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") {
		return name
	}
	var sb strings.Builder
	for _, prefix := range []string{"Webkit", "Moz", "Ms"} {
		if strings.HasPrefix(name, prefix) {
			sb.WriteByte('-')
			break
		}
	}
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
