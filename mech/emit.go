package mech

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/njchilds90/go-kane"
)

// EmitOptions controls the shape of the emitted procedural code.
type EmitOptions struct {
	// HName and DHName are the output array names.
	HName  string `yaml:"h_name"`
	DHName string `yaml:"dh_name"`

	// TempPrefix names the intermediate-variable array.
	TempPrefix string `yaml:"temp_prefix"`

	// Indent is prepended to every statement line.
	Indent string `yaml:"indent"`

	// Header lines are written first, each as a // comment.
	Header []string `yaml:"header"`
}

func DefaultEmitOptions() EmitOptions {
	return EmitOptions{
		HName:      "h",
		DHName:     "dh",
		TempPrefix: "z",
		Indent:     "  ",
		Header: []string{
			"Steady-rolling constraint equations for a rigid ellipsoid",
			"rolling without slip on a horizontal plane.",
		},
	}
}

// Emit writes the derivation's equation families as C-like procedural code:
// an intermediate-variable block and an assignment block for h, then the
// same pair for dh. The two blocks run independent eliminations, each with a
// fresh temporary namespace; scalar temporary names are rewritten into array
// references by a final text pass.
func Emit(w io.Writer, d *Derivation, opts EmitOptions) error {
	var sb strings.Builder
	for _, line := range opts.Header {
		sb.WriteString("// " + line + "\n")
	}
	if len(opts.Header) > 0 {
		sb.WriteString("\n")
	}

	writeBlock := func(label, name string, exprs []gokane.Expr) {
		table, reduced := gokane.CSE(exprs, opts.TempPrefix)
		sb.WriteString(opts.Indent + "// Intermediate variables for " + label + "\n")
		for _, r := range table {
			sb.WriteString(opts.Indent + r.Sym.Name() + " = " + gokane.CCode(r.Expr) + ";\n")
		}
		sb.WriteString("\n" + opts.Indent + "// " + label + "\n")
		for i, e := range reduced {
			sb.WriteString(fmt.Sprintf("%s%s[%d] = %s;\n", opts.Indent, name, i, gokane.CCode(e)))
		}
	}
	writeBlock("h's", opts.HName, d.H[:])
	sb.WriteString("\n")
	writeBlock("dh's", opts.DHName, d.DH[:])

	text := sb.String()
	re := regexp.MustCompile(regexp.QuoteMeta(opts.TempPrefix) + `(\d+)`)
	text = re.ReplaceAllString(text, opts.TempPrefix+"[$1]")

	_, err := io.WriteString(w, text)
	return err
}
