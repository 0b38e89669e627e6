package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// ExportObjectName builds the object key of a submissions export.
func ExportObjectName(formID string, at time.Time) string {
	return fmt.Sprintf("exports/%s/submissions-%s.xlsx", formID, at.UTC().Format("20060102-150405"))
}

// SplitYAMLDocuments splits a multi-document YAML stream on "---" lines.
var SplitYAMLDocuments = func(content string) []string {
	lines := strings.Split(content, "\n")
	docs := make([]string, 0)
	var currentDoc []string

	flush := func() {
		if len(currentDoc) == 0 {
			return
		}
		if docStr := strings.TrimSpace(strings.Join(currentDoc, "\n")); docStr != "" {
			docs = append(docs, docStr)
		}
		currentDoc = nil
	}

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "---" || strings.HasPrefix(trimmedLine, "--- ") {
			flush()
			continue
		}
		currentDoc = append(currentDoc, line)
	}
	flush()

	return docs
}

// ReplacePlaceholders substitutes {{key}} markers in a text template.
func ReplacePlaceholders(template string, values map[string]string) string {
	return replaceString(template, values)
}

func replaceString(s string, values map[string]string) string {
	for key, val := range values {
		s = strings.ReplaceAll(s, "{{"+key+"}}", val)
	}
	return s
}

// ReplacePlaceholdersInJSON substitutes {{key}} markers inside the string
// values of a JSON document. Values are inserted as JSON strings, so user
// input can not break the document structure.
func ReplacePlaceholdersInJSON(jsonStr string, values map[string]string) (string, error) {
	var data interface{}

	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	replaced := replaceInInterface(data, values)

	out, err := json.MarshalIndent(replaced, "", "  ")
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func replaceInInterface(v interface{}, values map[string]string) interface{} {
	switch val := v.(type) {
	case string:
		return replaceString(val, values)
	case []interface{}:
		for i := range val {
			val[i] = replaceInInterface(val[i], values)
		}
		return val
	case map[string]interface{}:
		for k, v2 := range val {
			val[k] = replaceInInterface(v2, values)
		}
		return val
	default:
		return v
	}
}

// YAMLToJSON converts a YAML document to JSON so it can be decoded with the
// json tags of the target type.
var YAMLToJSON = func(yamlContent []byte) ([]byte, error) {
	var yamlObj interface{}
	if err := yaml.Unmarshal(yamlContent, &yamlObj); err != nil {
		return nil, err
	}

	jsonReady, err := convertToStringKeys(yamlObj)
	if err != nil {
		return nil, err
	}

	return json.Marshal(jsonReady)
}

func convertToStringKeys(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m2 := make(map[string]interface{}, len(x))
		for k, v2 := range x {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string yaml key %v", k)
			}
			conv, err := convertToStringKeys(v2)
			if err != nil {
				return nil, err
			}
			m2[key] = conv
		}
		return m2, nil
	case []interface{}:
		for i, v2 := range x {
			conv, err := convertToStringKeys(v2)
			if err != nil {
				return nil, err
			}
			x[i] = conv
		}
	}
	return v, nil
}
