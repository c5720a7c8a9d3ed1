package types

import (
	"pinsc/common"
	"testing"
)

func TestSizes(t *testing.T) {
	w := common.WordSize

	tests := []struct {
		name    string
		typ     Type
		size    int
		asParam int
	}{
		{"integer", AtomInt, w, w},
		{"logical", AtomLog, w, w},
		{"string", AtomStr, w, w},
		{"void", AtomVoid, 0, 0},
		{"array", &ArrayType{Size: 5, Elem: AtomInt}, 5 * w, w},
		{"nested array", &ArrayType{Size: 3, Elem: &ArrayType{Size: 2, Elem: AtomLog}}, 6 * w, w},
		{"function", &FunType{Result: AtomInt}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.SizeInBytes(); got != tt.size {
				t.Errorf("SizeInBytes() = %d, want %d", got, tt.size)
			}

			if got := tt.typ.SizeInBytesAsParam(); got != tt.asParam {
				t.Errorf("SizeInBytesAsParam() = %d, want %d", got, tt.asParam)
			}
		})
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same atom", AtomInt, AtomInt, true},
		{"different atom", AtomInt, AtomLog, false},
		{"same array", &ArrayType{Size: 2, Elem: AtomInt}, &ArrayType{Size: 2, Elem: AtomInt}, true},
		{"array length", &ArrayType{Size: 2, Elem: AtomInt}, &ArrayType{Size: 3, Elem: AtomInt}, false},
		{"array elem", &ArrayType{Size: 2, Elem: AtomInt}, &ArrayType{Size: 2, Elem: AtomStr}, false},
		{"atom and array", AtomInt, &ArrayType{Size: 1, Elem: AtomInt}, false},
		{
			"functions",
			&FunType{Params: []Type{AtomInt}, Result: AtomLog},
			&FunType{Params: []Type{AtomInt}, Result: AtomLog},
			true,
		},
		{
			"function arity",
			&FunType{Params: []Type{AtomInt}, Result: AtomLog},
			&FunType{Result: AtomLog},
			false,
		},
		{"nil", nil, AtomInt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equals(tt.a, tt.b); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	arr := &ArrayType{Size: 4, Elem: AtomStr}

	if !IsInt(AtomInt) || IsInt(AtomLog) {
		t.Error("IsInt misclassifies atoms")
	}

	if !IsLog(AtomLog) || !IsStr(AtomStr) || !IsVoid(AtomVoid) {
		t.Error("atom predicates misclassify atoms")
	}

	if !IsArray(arr) || IsArray(AtomInt) {
		t.Error("IsArray misclassifies types")
	}

	if IsAtom(AtomVoid) || !IsAtom(AtomStr) || IsAtom(arr) {
		t.Error("IsAtom misclassifies types")
	}

	if got := arr.Repr(); got != "arr[4] string" {
		t.Errorf("Repr() = %q", got)
	}

	ft := &FunType{Params: []Type{AtomInt, arr}, Result: AtomLog}
	if got := ft.Repr(); got != "(integer, arr[4] string) -> logical" {
		t.Errorf("Repr() = %q", got)
	}
}
