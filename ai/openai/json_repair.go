// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import "strings"

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON fixes formatting mistakes small models commonly make:
// keys missing their opening quote (`, type":`) and trailing commas
// before a closing brace or bracket. String contents are left alone.
func repairJSON(s string) string {
	src := []rune(s)
	out := make([]rune, 0, len(src)+16)
	inString := false

	for i := 0; i < len(src); i++ {
		ch := src[i]

		if inString {
			out = append(out, ch)
			switch ch {
			case '\\':
				if i+1 < len(src) {
					i++
					out = append(out, src[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out = append(out, ch)
		case ',':
			if next := skipSpace(src, i+1); next < len(src) && (src[next] == '}' || src[next] == ']') {
				continue
			}
			out = append(out, ch)
			i = copyUnquotedKey(src, i+1, &out) - 1
		case '{':
			out = append(out, ch)
			i = copyUnquotedKey(src, i+1, &out) - 1
		default:
			out = append(out, ch)
		}
	}

	return string(out)
}

// copyUnquotedKey copies whitespace starting at i and, when it is followed
// by a bare word ending in `":`, emits the word with both quotes.
// It returns the index of the first rune not consumed.
func copyUnquotedKey(src []rune, i int, out *[]rune) int {
	for i < len(src) && isSpace(src[i]) {
		*out = append(*out, src[i])
		i++
	}
	if i >= len(src) || !isLetter(src[i]) {
		return i
	}

	end := i
	for end < len(src) && (isLetter(src[end]) || src[end] == '_') {
		end++
	}
	if end+1 < len(src) && src[end] == '"' && src[end+1] == ':' {
		*out = append(*out, '"')
		*out = append(*out, src[i:end+1]...)
		return end + 1
	}
	return i
}

func skipSpace(src []rune, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
