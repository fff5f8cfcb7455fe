// Package dbg turns pointers into readable names for debugging output.
package dbg

import (
	"fmt"
	"reflect"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// Vertices, faces and edge records are all pointers, and printing them as hex
// addresses makes a mesh dump unreadable. Name hands out an adjective-animal
// pair per object instead. The memo leaks, but names are generated lazily, so
// it only costs anything while you are actually debugging.

var memo = map[interface{}]string{}

func init() {
	// Names are handed out in order of demand, so they are randomized to remind
	// the reader that the same name does not mean the same object between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Pointer && v.IsNil() {
		return "Ø"
	}

	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", title(petname.Adjective()), title(petname.Name()))
	memo[obj] = r
	return r
}

func title(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
