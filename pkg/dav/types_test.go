package dav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeFromName(t *testing.T) {
	cases := []struct {
		name string
		want Type
		ok   bool
	}{
		{"int", TypeInt, true},
		{"char", TypeChar, true},
		{"int*", TypeIntPtr, true},
		{"char*", TypeCharPtr, true},
		{"void", TypeVoid, true},
		{"bogus", TypeUndefined, false},
	}

	for _, c := range cases {
		got, ok := typeFromName(c.name)
		assert.Equal(t, c.ok, ok, c.name)
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestPromotePointer(t *testing.T) {
	cases := []struct {
		in   Type
		want Type
		ok   bool
	}{
		{TypeInt, TypeIntPtr, true},
		{TypeChar, TypeCharPtr, true},
		{TypeCharPtr, TypeCharPtrPtr, true},
		{TypeIntPtr, TypeUndefined, false},
		{TypeCharPtrPtr, TypeUndefined, false},
		{TypeVoid, TypeUndefined, false},
	}

	for _, c := range cases {
		got, ok := c.in.PromotePointer()
		assert.Equal(t, c.ok, ok, c.in.String())
		assert.Equal(t, c.want, got, c.in.String())
	}
}

func TestPointee(t *testing.T) {
	cases := []struct {
		in   Type
		want Type
		ok   bool
	}{
		{TypeIntPtr, TypeInt, true},
		{TypeCharPtr, TypeChar, true},
		{TypeCharPtrPtr, TypeCharPtr, true},
		{TypeInt, TypeUndefined, false},
		{TypeVoid, TypeUndefined, false},
	}

	for _, c := range cases {
		got, ok := c.in.Pointee()
		assert.Equal(t, c.ok, ok, c.in.String())
		assert.Equal(t, c.want, got, c.in.String())
	}
}

func TestTypeStringMatchesTextualTags(t *testing.T) {
	cases := map[Type]string{
		TypeUndefined:  "undefined",
		TypeInt:        "int",
		TypeChar:       "char",
		TypeCharPtr:    "char*",
		TypeIntPtr:     "int*",
		TypeCharPtrPtr: "char**",
		TypeVoid:       "void",
	}

	for typ, want := range cases {
		assert.Equal(t, want, typ.String())
	}
}
