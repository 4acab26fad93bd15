package extstrgutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMultiValueParam(t *testing.T) {
	ast := assert.New(t)
	tt := []struct {
		name string
		line string
		exp  []string
	}{
		{"single", "4", []string{"4"}},
		{"space", "3 4", []string{"3", "4"}},
		{"comma", "3,4", []string{"3", "4"}},
		{"semicolon", "3;4", []string{"3", "4"}},
		{"tab", "3\t4", []string{"3", "4"}},
		{"padded", " 1 , 2 ", []string{"1", "2"}},
		{"mixed", "0, 1;2 3", []string{"0", "1", "2", "3"}},
		{"empty", "", []string{}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			res := SplitMultiValueParam(tc.line)
			ast.Equal(len(tc.exp), len(res))
			if len(tc.exp) > 0 {
				ast.Equal(tc.exp, res)
			}
		})
	}
}
