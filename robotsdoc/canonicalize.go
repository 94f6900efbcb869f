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

import "strings"

const hexDigits = "0123456789ABCDEF"

// escapePattern canonicalizes an Allow/Disallow value: any non-ASCII
// byte is percent-encoded with uppercase hex, and any existing %xx
// escape with lowercase hex digits is rewritten uppercase. Wildcard
// '*', anchor '$', '/', '?' and all other ASCII bytes pass through
// unchanged.
//
//	/SanJoséSellers ==> /SanJos%C3%A9Sellers
//	%aa ==> %AA
func escapePattern(src string) string {
	needUppercase := false
	numToEscape := 0

	at := func(i int) byte {
		if i < len(src) {
			return src[i]
		}
		return 0
	}

	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '%' && isHexDigit(at(i+1)) && isHexDigit(at(i+2)):
			if isLowerHex(at(i+1)) || isLowerHex(at(i+2)) {
				needUppercase = true
			}
		case src[i] >= 0x80:
			numToEscape++
		}
	}
	if numToEscape == 0 && !needUppercase {
		return src
	}

	var b strings.Builder
	b.Grow(len(src) + numToEscape*2)
	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '%' && isHexDigit(at(i+1)) && isHexDigit(at(i+2)):
			b.WriteByte('%')
			b.WriteByte(toUpperHex(src[i+1]))
			b.WriteByte(toUpperHex(src[i+2]))
			i += 2
		case src[i] >= 0x80:
			b.WriteByte('%')
			b.WriteByte(hexDigits[(src[i]>>4)&0xF])
			b.WriteByte(hexDigits[src[i]&0xF])
		default:
			b.WriteByte(src[i])
		}
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isLowerHex(c byte) bool {
	return 'a' <= c && c <= 'f'
}

func toUpperHex(c byte) byte {
	if isLowerHex(c) {
		return c - 'a' + 'A'
	}
	return c
}
