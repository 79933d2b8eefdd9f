// Package experiment loads HCL experiment definitions: a named dataset
// of points plus the hyperparameters for one training run.
package experiment

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// File is the decoded top level of an experiment file.
type File struct {
	Experiments []*Experiment `hcl:"experiment,block"`
}

// Experiment describes one training run.
type Experiment struct {
	Name      string   `hcl:"name,label"`
	Hidden    []int    `hcl:"hidden"` // layer widths, last entry is the output width
	Epochs    int      `hcl:"epochs,optional"`
	LR        float64  `hcl:"lr,optional"`
	Warmup    int      `hcl:"warmup,optional"` // lr warmup epochs, 0 keeps lr constant
	MinLR     float64  `hcl:"min_lr,optional"`
	Optimizer string   `hcl:"optimizer,optional"`
	Points    []*Point `hcl:"point,block"`
}

// Point is one training sample.
type Point struct {
	In  []float64 `hcl:"in"`
	Out float64   `hcl:"out"`
}

// Defaults backs the eval context values an experiment file can
// reference as defaults.epochs, defaults.lr and defaults.optimizer,
// and fills any hyperparameter the file leaves unset.
type Defaults struct {
	Epochs    int
	LR        float64
	Optimizer string
}

// Load parses and validates an experiment file.
func Load(path string, defaults Defaults) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse experiment file %s: %s", path, diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, evalContext(defaults), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode experiment file %s: %s", path, diags.Error())
	}

	if len(f.Experiments) == 0 {
		return nil, fmt.Errorf("experiment file %s: no experiment blocks", path)
	}

	for _, exp := range f.Experiments {
		exp.applyDefaults(defaults)
		if err := exp.validate(); err != nil {
			return nil, fmt.Errorf("experiment %q: %w", exp.Name, err)
		}
	}

	return &f, nil
}

// Get returns the named experiment, or the first one when name is empty.
func (f *File) Get(name string) (*Experiment, error) {
	if name == "" {
		return f.Experiments[0], nil
	}
	for _, exp := range f.Experiments {
		if exp.Name == name {
			return exp, nil
		}
	}
	return nil, fmt.Errorf("experiment %q not found", name)
}

// InputWidth returns the number of inputs per point.
func (e *Experiment) InputWidth() int {
	return len(e.Points[0].In)
}

func (e *Experiment) applyDefaults(d Defaults) {
	if e.Epochs == 0 {
		e.Epochs = d.Epochs
	}
	if e.LR == 0 {
		e.LR = d.LR
	}
	if e.Optimizer == "" {
		e.Optimizer = d.Optimizer
	}
}

func (e *Experiment) validate() error {
	if len(e.Hidden) == 0 {
		return fmt.Errorf("hidden must name at least one layer width")
	}
	for _, h := range e.Hidden {
		if h <= 0 {
			return fmt.Errorf("layer width %d is not positive", h)
		}
	}
	if e.Epochs <= 0 {
		return fmt.Errorf("epochs %d is not positive", e.Epochs)
	}
	if e.LR <= 0 {
		return fmt.Errorf("lr %v is not positive", e.LR)
	}
	if e.Warmup < 0 {
		return fmt.Errorf("warmup %d is negative", e.Warmup)
	}
	if e.Warmup > 0 && e.Warmup >= e.Epochs {
		return fmt.Errorf("warmup %d must be below epochs %d", e.Warmup, e.Epochs)
	}
	if e.MinLR < 0 {
		return fmt.Errorf("min_lr %v is negative", e.MinLR)
	}
	if e.Optimizer != "sgd" && e.Optimizer != "adamw" {
		return fmt.Errorf("unknown optimizer %q", e.Optimizer)
	}
	if len(e.Points) == 0 {
		return fmt.Errorf("no point blocks")
	}

	width := len(e.Points[0].In)
	if width == 0 {
		return fmt.Errorf("points must have at least one input")
	}
	for i, p := range e.Points {
		if len(p.In) != width {
			return fmt.Errorf("point %d has %d inputs, want %d", i, len(p.In), width)
		}
	}

	return nil
}

// evalContext exposes the defaults to HCL expressions.
func evalContext(d Defaults) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"epochs":    cty.NumberIntVal(int64(d.Epochs)),
				"lr":        cty.NumberFloatVal(d.LR),
				"optimizer": cty.StringVal(d.Optimizer),
			}),
		},
	}
}
