package settings

import (
	"sort"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
)

// Registry maps hierarchical dotted setting names to their current and
// default values. It is shared by reference across the session.
type Registry struct {
	values   map[string]Value
	defaults map[string]Value
}

// defaultSettings is the full set of known settings. There is no
// implicit creation: setting an unknown key fails.
func defaultSettings() map[string]Value {
	return map[string]Value{
		"debug":           Bool(false),
		"checker":         Bool(false),
		"vsync":           Bool(false),
		"background":      Color(gfx.Transparent),
		"input/mouse":     Bool(true),
		"scale":           Float(1.0),
		"animation":       Bool(true),
		"animation/delay": Int(160),
		"ui/palette":      Bool(true),
		"ui/status":       Bool(true),
		"ui/cursor":       Bool(true),
		"ui/message":      Bool(true),
		"ui/switcher":     Bool(true),
		"ui/view-info":    Bool(true),
		"grid":            Bool(false),
		"grid/color":      Color(gfx.Blue),
		"grid/spacing":    Pair(8, 8),
	}
}

// NewRegistry returns a registry populated with the default settings.
func NewRegistry() *Registry {
	defaults := defaultSettings()
	values := make(map[string]Value, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}
	return &Registry{values: values, defaults: defaults}
}

// Get looks up a setting.
func (r *Registry) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Set replaces a setting's value after type-checking it against the
// declared type. Integers widen to float settings; everything else must
// match exactly. Returns the old value.
func (r *Registry) Set(key string, v Value) (Value, error) {
	current, ok := r.values[key]
	if !ok {
		return Value{}, errors.UnknownSetting(key)
	}
	if v.Type() != current.Type() {
		if current.Type() == TypeFloat && v.Type() == TypeInt {
			v = Float(v.AsFloat())
		} else {
			return Value{}, errors.TypeMismatch(key, current.Type().String(), v.String())
		}
	}
	r.values[key] = v
	return current, nil
}

// Toggle flips a boolean setting.
func (r *Registry) Toggle(key string) error {
	current, ok := r.values[key]
	if !ok {
		return errors.UnknownSetting(key)
	}
	if current.Type() != TypeBool {
		return errors.TypeMismatch(key, TypeBool.String(), current.String())
	}
	r.values[key] = Bool(!current.IsSet())
	return nil
}

// Reset restores every setting to its default.
func (r *Registry) Reset() {
	for k, v := range r.defaults {
		r.values[k] = v
	}
}

// Keys returns all setting names in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
