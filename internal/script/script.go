package script

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Script is a generated standalone Python program plus the metadata a
// caller needs to save and run it.
type Script struct {
	Code         string `json:"code"`
	Filename     string `json:"filename"`
	Instructions string `json:"instructions"`
}

type Renderer interface {
	Render(s Script) map[string]any
}

type JSONRenderer struct{}

func NewRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(s Script) map[string]any {
	return map[string]any{
		"code":         s.Code,
		"filename":     s.Filename,
		"instructions": s.Instructions,
	}
}

var pyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// PyStr renders s as a single-quoted Python string literal.
func PyStr(s string) string {
	return "'" + pyEscaper.Replace(s) + "'"
}

// PyMultiline renders s as a triple-quoted Python string literal, used
// for system prompts and other block text.
func PyMultiline(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"""`, `\"\"\"`)
	if strings.HasSuffix(escaped, `"`) {
		escaped += " "
	}
	return `"""` + escaped + `"""`
}

func PyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// PyValue renders a JSON-shaped value as a compact Python literal.
func PyValue(v any) string {
	normalized, err := normalize(v)
	if err != nil {
		return "None"
	}
	var sb strings.Builder
	writePy(&sb, normalized, 0, false)
	return sb.String()
}

// PyIndented renders a JSON-shaped value as a Python literal indented
// four spaces per level, matching json.dumps(v, indent=4) layout.
func PyIndented(v any) string {
	normalized, err := normalize(v)
	if err != nil {
		return "None"
	}
	var sb strings.Builder
	writePy(&sb, normalized, 0, true)
	return sb.String()
}

func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func writePy(sb *strings.Builder, v any, depth int, pretty bool) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("None")
	case bool:
		sb.WriteString(PyBool(t))
	case json.Number:
		sb.WriteString(t.String())
	case string:
		data, _ := json.Marshal(t)
		sb.Write(data)
	case map[string]any:
		if len(t) == 0 {
			sb.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("{")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(",")
				if !pretty {
					sb.WriteString(" ")
				}
			}
			if pretty {
				sb.WriteString("\n")
				sb.WriteString(strings.Repeat("    ", depth+1))
			}
			data, _ := json.Marshal(k)
			sb.Write(data)
			sb.WriteString(": ")
			writePy(sb, t[k], depth+1, pretty)
		}
		if pretty {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("    ", depth))
		}
		sb.WriteString("}")
	case []any:
		if len(t) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[")
		for i, item := range t {
			if i > 0 {
				sb.WriteString(",")
				if !pretty {
					sb.WriteString(" ")
				}
			}
			if pretty {
				sb.WriteString("\n")
				sb.WriteString(strings.Repeat("    ", depth+1))
			}
			writePy(sb, item, depth+1, pretty)
		}
		if pretty {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("    ", depth))
		}
		sb.WriteString("]")
	default:
		sb.WriteString("None")
	}
}

// SafeName lowercases s and maps anything outside [a-z0-9._-] to an
// underscore so the result is always a usable file name component.
func SafeName(s string) string {
	return sanitize(strings.ToLower(s))
}

// SafeFile keeps case but applies the same character mapping.
func SafeFile(s string) string {
	return sanitize(s)
}

func sanitize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
