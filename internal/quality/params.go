package quality

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Parameters holds named measure parameters, e.g. "alpha" or "beta".
type Parameters map[string]string

// ParseParameters reads parameters from a JSON object. Values may be
// numbers or strings.
func ParseParameters(json string) (Parameters, error) {
	result := make(Parameters)

	if json == "" {
		return result, nil
	}

	if !gjson.Valid(json) {
		return nil, fmt.Errorf("quality: invalid parameter json")
	}

	obj := gjson.Parse(json)

	if !obj.IsObject() {
		return nil, fmt.Errorf("quality: parameters must be a json object")
	}

	obj.ForEach(func(key, value gjson.Result) bool {
		result[key.String()] = value.String()
		return true
	})

	return result, nil
}

// Float returns the named parameter as float, or def if it is missing or
// not a number.
func (p Parameters) Float(name string, def float64) float64 {
	s, ok := p[name]

	if !ok || s == "" {
		return def
	}

	f, err := strconv.ParseFloat(s, 64)

	if err != nil {
		log.Warnf("quality: parameter %s has invalid value %q, using %g", name, s, def)
		return def
	}

	return f
}

// Clone returns a copy.
func (p Parameters) Clone() Parameters {
	result := make(Parameters, len(p))

	for k, v := range p {
		result[k] = v
	}

	return result
}
