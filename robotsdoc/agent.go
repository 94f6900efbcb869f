// Copyright 2020 Jim Smart
// Copyright 1999 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package robotsdoc

// isGlobalToken reports whether a user-agent line value marks its
// group as global: exactly "*", or "*" followed by a whitespace byte
// (any trailing text after that is ignored — still global).
func isGlobalToken(value string) bool {
	if len(value) == 0 || value[0] != '*' {
		return false
	}
	return len(value) == 1 || isSpaceByte(value[1])
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// extractAgentToken truncates a user-agent value at the first byte
// that is not an ASCII letter, '-' or '_'. An all-punctuation or empty
// value yields "".
func extractAgentToken(value string) string {
	i := 0
	for i < len(value) && isAgentByte(value[i]) {
		i++
	}
	return value[:i]
}

func isAgentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-' || c == '_'
}
