package workflow

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// HCL workflow files declare one block per node, labeled with the node ID:
//
//	node "seismic" {
//	  title      = "Seismic Analysis App"
//	  type       = "seismic"
//	  depends_on = ["geometry"]
//	}
//
// Attributes the core does not interpret (owner, team, ...) are converted to
// Go values and passed through in Meta.

// hclWorkflowFile is the top-level structure of a workflow file for decoding.
type hclWorkflowFile struct {
	Nodes []*hclNode `hcl:"node,block"`
}

// hclNode defers attribute decoding to decodeHCLNode so undeclared
// attributes can be collected instead of rejected.
type hclNode struct {
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

func decodeHCL(src []byte, filename string) (*Workflow, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "parse HCL workflow %s", filename)
	}

	var parsed hclWorkflowFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "decode HCL workflow %s", filename)
	}

	w := &Workflow{Nodes: make([]Node, 0, len(parsed.Nodes))}
	for _, block := range parsed.Nodes {
		node, err := decodeHCLNode(block)
		if err != nil {
			return nil, err
		}
		w.Nodes = append(w.Nodes, node)
	}
	return w, nil
}

func decodeHCLNode(block *hclNode) (Node, error) {
	node := Node{ID: block.ID}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return Node{}, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "node %q attributes", block.ID)
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return Node{}, errors.Wrap(errors.ErrCodeInvalidFormat, diags,
				"node %q attribute %q", block.ID, name)
		}

		switch name {
		case "title":
			s, err := attrString(val)
			if err != nil {
				return Node{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q title", block.ID)
			}
			node.Title = s
		case "type":
			s, err := attrString(val)
			if err != nil {
				return Node{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q type", block.ID)
			}
			node.Type = s
		case "url":
			s, err := attrString(val)
			if err != nil {
				return Node{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q url", block.ID)
			}
			node.URL = s
		case "depends_on":
			deps, err := attrDependencies(val)
			if err != nil {
				return Node{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q depends_on", block.ID)
			}
			node.DependsOn = deps
		default:
			if node.Meta == nil {
				node.Meta = make(map[string]any)
			}
			node.Meta[name] = ctyToGo(val)
		}
	}
	return node, nil
}

func attrString(val cty.Value) (string, error) {
	if val.Type() != cty.String {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"expected string, got %s", val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

// attrDependencies converts a list of node ID strings into dependency refs.
func attrDependencies(val cty.Value) ([]Dependency, error) {
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"expected list of node IDs, got %s", ty.FriendlyName())
	}

	var deps []Dependency
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		id, err := attrString(ev)
		if err != nil {
			return nil, err
		}
		deps = append(deps, Dependency{NodeID: id})
	}
	return deps, nil
}

// ctyToGo converts an HCL attribute value to its plain Go equivalent for
// metadata passthrough. Unrepresentable values (functions, unknowns) become
// nil rather than failing the load.
func ctyToGo(val cty.Value) any {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString()
	case ty == cty.Bool:
		return val.True()
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ctyToGo(ev))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			out[kv.AsString()] = ctyToGo(ev)
		}
		return out
	}
	return nil
}
