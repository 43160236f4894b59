package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/geomech/pkg/errors"
)

// flattenJSON turns a JSON object into key-value rows in document order.
// Nested objects become dotted keys and arrays of scalars a comma separated
// list; arrays of objects get an index segment ("assessments.0.criterion").
func flattenJSON(data []byte) ([]kv, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []kv
	if err := flattenValue(dec, "", &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "format result")
	}
	return rows, nil
}

func flattenValue(dec *json.Decoder, prefix string, rows *[]kv) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)
			if err := flattenValue(dec, joinKey(prefix, key), rows); err != nil {
				return err
			}
		}
		_, err = dec.Token()
		return err
	case json.Delim('['):
		var scalars []string
		i := 0
		for ; dec.More(); i++ {
			var elem json.RawMessage
			if err := dec.Decode(&elem); err != nil {
				return err
			}
			sub := json.NewDecoder(bytes.NewReader(elem))
			sub.UseNumber()
			if c := elem[0]; c == '{' || c == '[' {
				if err := flattenValue(sub, joinKey(prefix, strconv.Itoa(i)), rows); err != nil {
					return err
				}
				continue
			}
			tok, err := sub.Token()
			if err != nil {
				return err
			}
			scalars = append(scalars, formatScalar(tok))
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
		if scalars != nil || i == 0 {
			*rows = append(*rows, kv{prefix, strings.Join(scalars, ", ")})
		}
		return nil
	}
	*rows = append(*rows, kv{prefix, formatScalar(tok)})
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// formatScalar prints numbers with at most four decimals.
func formatScalar(tok json.Token) string {
	switch v := tok.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return v.String()
		}
		return formatNumber(f)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	}
	return fmt.Sprint(tok)
}

func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// writeJSON writes v as indented JSON. json.RawMessage values are
// re-indented.
func writeJSON(w io.Writer, v any) error {
	if raw, ok := v.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "indent result")
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
