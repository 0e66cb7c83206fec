package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// bodyFlags are the ways a command accepts a request body.
type bodyFlags struct {
	file       string
	sets       []string
	setStrings []string
}

func (b *bodyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&b.file, "file", "f", "", "YAML or JSON file with one or more documents")
	cmd.Flags().StringArrayVar(&b.sets, "set", nil, "Set a field, key=value; JSON literals keep their type")
	cmd.Flags().StringArrayVar(&b.setStrings, "set-string", nil, "Set a field to a string, key=value")
}

var missingKeyRegex = regexp.MustCompile(`map has no entry for key "(.*?)"`)

// expandEnv replaces {{ .ENV.VAR }} placeholders with values from the
// environment, after loading .env from the working directory.
func expandEnv(input []byte) ([]byte, error) {
	_ = godotenv.Load() // no error if .env doesn't exist

	env := map[string]string{}
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	tmpl, err := template.New("body").Option("missingkey=error").Parse(string(input))
	if err != nil {
		return nil, fmt.Errorf("template error: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, struct{ ENV map[string]string }{ENV: env}); err != nil {
		if m := missingKeyRegex.FindStringSubmatch(err.Error()); len(m) == 2 {
			return nil, fmt.Errorf("missing environment variable: %s (set it in your shell or .env file)", m[1])
		}
		return nil, fmt.Errorf("template error: %w", err)
	}
	return out.Bytes(), nil
}

// splitDocuments decodes every non-empty YAML document in data and returns
// each as JSON. YAML being a superset of JSON, plain JSON input works too.
func splitDocuments(data []byte) ([][]byte, error) {
	data = bytes.ReplaceAll(data, []byte("\t"), []byte("    "))

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var docs [][]byte
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		if doc == nil {
			continue
		}
		normalized, err := stringKeys(doc)
		if err != nil {
			return nil, err
		}
		if _, ok := normalized.(map[string]any); !ok {
			return nil, fmt.Errorf("expected each document to be a mapping, got %T", normalized)
		}
		raw, err := json.Marshal(normalized)
		if err != nil {
			return nil, fmt.Errorf("failed to convert document to JSON: %w", err)
		}
		docs = append(docs, raw)
	}
	return docs, nil
}

// stringKeys rewrites nested map[any]any values into map[string]any.
func stringKeys(input any) (any, error) {
	switch v := input.(type) {
	case map[any]any:
		result := make(map[string]any, len(v))
		for k, val := range v {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string map key: %v (type %T)", k, k)
			}
			converted, err := stringKeys(val)
			if err != nil {
				return nil, err
			}
			result[key] = converted
		}
		return result, nil
	case map[string]any:
		for k, val := range v {
			converted, err := stringKeys(val)
			if err != nil {
				return nil, err
			}
			v[k] = converted
		}
		return v, nil
	case []any:
		for i, elem := range v {
			converted, err := stringKeys(elem)
			if err != nil {
				return nil, err
			}
			v[i] = converted
		}
		return v, nil
	default:
		return v, nil
	}
}

// applySets patches doc with key=value pairs. Keys are sjson paths. Values
// that parse as JSON keep their type unless asString is set.
func applySets(doc []byte, pairs []string, asString bool) ([]byte, error) {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", pair)
		}
		var err error
		if !asString && gjson.Valid(value) {
			doc, err = sjson.SetRawBytes(doc, key, []byte(value))
		} else {
			doc, err = sjson.SetBytes(doc, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
		}
	}
	return doc, nil
}

// documents returns the JSON bodies described by the flags: one per file
// document, or a single body built from --set pairs alone.
func (b *bodyFlags) documents() ([][]byte, error) {
	docs := [][]byte{[]byte("{}")}
	if b.file != "" {
		data, err := os.ReadFile(b.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		data, err = expandEnv(data)
		if err != nil {
			return nil, err
		}
		docs, err = splitDocuments(data)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, fmt.Errorf("%s contains no documents", b.file)
		}
	}

	for i, doc := range docs {
		var err error
		if doc, err = applySets(doc, b.sets, false); err != nil {
			return nil, err
		}
		if doc, err = applySets(doc, b.setStrings, true); err != nil {
			return nil, err
		}
		docs[i] = doc
	}
	return docs, nil
}

// decodeForms decodes every body into T, rejecting unknown fields.
func decodeForms[T any](b *bodyFlags) ([]T, error) {
	docs, err := b.documents()
	if err != nil {
		return nil, err
	}
	forms := make([]T, 0, len(docs))
	for i, doc := range docs {
		var form T
		dec := json.NewDecoder(bytes.NewReader(doc))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&form); err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// decodeForm is decodeForms for commands that take exactly one body.
func decodeForm[T any](b *bodyFlags) (T, error) {
	var zero T
	forms, err := decodeForms[T](b)
	if err != nil {
		return zero, err
	}
	if len(forms) != 1 {
		return zero, fmt.Errorf("expected one document, got %d", len(forms))
	}
	return forms[0], nil
}
