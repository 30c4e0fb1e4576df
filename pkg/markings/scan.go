package markings

// marker is one ${key} occurrence in template text.
type marker struct {
	key   string
	start int // offset of '$'
	end   int // offset just past '}'
}

// keyStart returns the offset of the first byte after "${".
func (m marker) keyStart() int { return m.start + 2 }

// keyEnd returns the offset of the closing '}'.
func (m marker) keyEnd() int { return m.end - 1 }

// FindKeys returns the keys of all ${key} markers in input, in the order
// they appear. Repeated keys are returned once per occurrence and key text
// is not trimmed.
//
// It is exposed for callers that want to inspect a template before parsing.
// FindKeys fails on nested markers and on unbalanced braces.
//
// Example:
//
//	keys, _ := FindKeys("${this} is a ${test} ${with some keys}")
//	// keys: ["this", "test", "with some keys"]
func FindKeys(input string) ([]string, error) {
	markers, err := scan(input)
	if err != nil {
		return nil, err
	}
	return keysOf(markers), nil
}

// scan walks input once, byte by byte, pairing every "${" with the next '}'.
// Only ASCII bytes are compared, so multi-byte UTF-8 sequences pass through.
func scan(input string) ([]marker, error) {
	var heads, tails []int
	open := -1

	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '$':
			if i+1 >= len(input) || input[i+1] != '{' {
				continue
			}
			if open >= 0 {
				return nil, &NestedMarkerError{Pos: i}
			}
			open = i
			heads = append(heads, i)
			i++ // skip '{'
		case '{':
			if open >= 0 {
				return nil, &NestedMarkerError{Pos: i}
			}
		case '}':
			if open >= 0 {
				tails = append(tails, i)
				open = -1
			}
		}
	}

	if len(heads) != len(tails) {
		return nil, &BraceCountError{Open: len(heads), Close: len(tails)}
	}

	markers := make([]marker, 0, len(heads))
	for i, head := range heads {
		if i >= len(tails) {
			return nil, &ExpectedClosingError{Head: head}
		}
		tail := tails[i]
		if tail <= head {
			return nil, &ExpectedOpeningError{Tail: tail}
		}
		markers = append(markers, marker{
			key:   input[head+2 : tail],
			start: head,
			end:   tail + 1,
		})
	}
	return markers, nil
}

func keysOf(markers []marker) []string {
	keys := make([]string, len(markers))
	for i, m := range markers {
		keys[i] = m.key
	}
	return keys
}
