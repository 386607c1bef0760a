// Package workflow is the strict parse-and-validate boundary between raw
// workflow definitions and the typed graph the rest of flowcanvas consumes.
//
// # Overview
//
// A workflow definition is an ordered list of nodes, each with an ID, a
// type, a title, and declared dependencies on other nodes. Definitions can
// be written in JSON (the canonical wire shape), TOML, or HCL; all three
// decode into the same [Workflow] value.
//
// Decoding and validation are deliberately separate stages. [Decode] and
// [DecodeFile] only report malformed syntax. [Workflow.Build] performs the
// semantic checks - non-empty unique IDs, every depends_on reference
// resolving to a declared node - and assembles the [dag.Graph]. Build is
// atomic: on any failure it returns a structured error and no graph, so a
// caller showing a previously loaded workflow keeps its last good state.
//
// # Metadata Passthrough
//
// Fields the core does not interpret are not rejected and not dropped: they
// ride along in Node.Meta. JSON captures unknown keys via a custom
// unmarshaller, HCL converts undeclared attributes with go-cty, and TOML
// carries them under an explicit [nodes.meta] table.
//
// [dag.Graph]: github.com/matzehuels/flowcanvas/pkg/dag#Graph
package workflow
