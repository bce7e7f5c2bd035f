package inventory

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SegmentType represents the type of a path segment
type SegmentType int

const (
	SegmentTypeKey SegmentType = iota
	SegmentTypeIndex
	SegmentTypeWildcard
)

// PathSegment is a single step of a jq-like path
type PathSegment struct {
	Type  SegmentType
	Key   string
	Index int
}

var (
	bareIndexRegex  = regexp.MustCompile(`^\[(.+)\]$`)
	keyedIndexRegex = regexp.MustCompile(`^(.+?)\[(.+)\]$`)
)

// Query looks up a jq-like path such as `_meta.hostvars.web.ansible_host` or
// `machines.hosts.[0]` in the rendered document. An empty path returns the
// whole document as generic JSON values.
func Query(doc *Document, path string) (interface{}, error) {
	data, err := toGeneric(doc)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return data, nil
	}

	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return navigate(data, segments)
}

// List returns the sorted keys of the object found at path
func List(doc *Document, path string) ([]string, error) {
	data, err := Query(doc, path)
	if err != nil {
		return nil, err
	}

	obj, ok := data.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("cannot list keys on non-object type")
	}
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ParsePath splits a dotted path into segments. `[n]` selects an array
// element and `[*]` every element, either standalone or suffixed to a key.
func ParsePath(path string) ([]PathSegment, error) {
	var segments []PathSegment

	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}

		if m := bareIndexRegex.FindStringSubmatch(part); m != nil {
			seg, err := indexSegment(m[1])
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
			continue
		}

		if m := keyedIndexRegex.FindStringSubmatch(part); m != nil {
			segments = append(segments, PathSegment{Type: SegmentTypeKey, Key: m[1]})
			seg, err := indexSegment(m[2])
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
			continue
		}

		segments = append(segments, PathSegment{Type: SegmentTypeKey, Key: part})
	}

	return segments, nil
}

func indexSegment(s string) (PathSegment, error) {
	if s == "*" {
		return PathSegment{Type: SegmentTypeWildcard}, nil
	}
	index, err := strconv.Atoi(s)
	if err != nil {
		return PathSegment{}, fmt.Errorf("invalid array index: %s", s)
	}
	return PathSegment{Type: SegmentTypeIndex, Index: index}, nil
}

// toGeneric round-trips doc through JSON so paths match the printed field names
func toGeneric(doc *Document) (interface{}, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory: %w", err)
	}
	var data interface{}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}
	return data, nil
}

func navigate(data interface{}, segments []PathSegment) (interface{}, error) {
	if len(segments) == 0 {
		return data, nil
	}

	seg, rest := segments[0], segments[1:]
	switch seg.Type {
	case SegmentTypeKey:
		obj, ok := data.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot access key %s on non-object type", seg.Key)
		}
		value, exists := obj[seg.Key]
		if !exists {
			return nil, fmt.Errorf("key not found: %s", seg.Key)
		}
		return navigate(value, rest)
	case SegmentTypeIndex:
		arr, ok := data.([]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot access index %d on non-array type", seg.Index)
		}
		if seg.Index < 0 || seg.Index >= len(arr) {
			return nil, fmt.Errorf("array index out of bounds: %d", seg.Index)
		}
		return navigate(arr[seg.Index], rest)
	case SegmentTypeWildcard:
		arr, ok := data.([]interface{})
		if !ok {
			return nil, fmt.Errorf("cannot use wildcard on non-array type")
		}
		results := []interface{}{}
		for _, item := range arr {
			result, err := navigate(item, rest)
			if err != nil {
				// items that lack the remaining path are skipped
				continue
			}
			results = append(results, result)
		}
		return results, nil
	default:
		return nil, fmt.Errorf("unknown segment type")
	}
}
