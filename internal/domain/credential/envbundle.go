package credential

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EnvVar is one named environment variable in a bundle.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EnvBundleSecret holds a set of environment variables stored as a single
// credential: the variable names go into the username field (comma-joined)
// and the values into the password field as a JSON object whose key order
// is the insertion order.
type EnvBundleSecret struct {
	Vars     []EnvVar `json:"vars"`
	Endpoint string   `json:"endpoint,omitempty"`
}

func (s *EnvBundleSecret) Type() ServiceType {
	return TypeEnv
}

func (s *EnvBundleSecret) Validate() error {
	if len(filterEnvVars(s.Vars)) == 0 {
		return fmt.Errorf("%w: at least one environment variable required", ErrValidation)
	}
	return nil
}

func (s *EnvBundleSecret) Flatten(_ string) (FieldSet, error) {
	names, bundle, err := EncodeEnvVars(s.Vars)
	if err != nil {
		return FieldSet{}, err
	}
	return FieldSet{Username: names, Password: bundle, URL: s.Endpoint}, nil
}

// filterEnvVars drops pairs whose key or value is blank. Trimming is only
// the keep/drop predicate: kept pairs carry their original key and value,
// whitespace included.
func filterEnvVars(vars []EnvVar) []EnvVar {
	kept := make([]EnvVar, 0, len(vars))
	for _, v := range vars {
		if strings.TrimSpace(v.Key) == "" || strings.TrimSpace(v.Value) == "" {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

// EncodeEnvVars serializes a variable list into the two physical fields:
// the comma-joined names and a JSON object string. Insertion order is
// preserved and duplicate keys are kept as-is, which is why the object is
// written by hand instead of going through a Go map.
func EncodeEnvVars(vars []EnvVar) (names string, bundle string, err error) {
	kept := filterEnvVars(vars)
	if len(kept) == 0 {
		return "", "", fmt.Errorf("%w: at least one environment variable required", ErrValidation)
	}

	keys := make([]string, len(kept))
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range kept {
		keys[i] = v.Key
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(v.Key)
		if err != nil {
			return "", "", fmt.Errorf("encode env key: %w", err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		val, err := json.Marshal(v.Value)
		if err != nil {
			return "", "", fmt.Errorf("encode env value: %w", err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	return strings.Join(keys, ", "), buf.String(), nil
}

// DecodeEnvVars parses the JSON object stored in the password field back
// into an ordered variable list. A token stream is used so the original
// key order survives. Malformed input degrades to a single blank pair
// rather than failing the edit flow.
func DecodeEnvVars(bundle string) []EnvVar {
	blank := []EnvVar{{}}

	dec := json.NewDecoder(strings.NewReader(bundle))
	tok, err := dec.Token()
	if err != nil {
		return blank
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return blank
	}

	var vars []EnvVar
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return blank
		}
		key, ok := keyTok.(string)
		if !ok {
			return blank
		}
		valTok, err := dec.Token()
		if err != nil {
			return blank
		}
		value, ok := valTok.(string)
		if !ok {
			return blank
		}
		vars = append(vars, EnvVar{Key: key, Value: value})
	}
	if len(vars) == 0 {
		return blank
	}
	return vars
}
