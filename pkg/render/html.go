package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/layout"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// HTMLOptions configure the standalone viewer page.
type HTMLOptions struct {
	Title string // Page title (defaults to "Workflow")
	// Live enables the interactive endpoints: drags POST to /api/pin and
	// the re-layout buttons call /api/relayout. A static export keeps the
	// pan/zoom shell but drops server calls.
	Live bool
}

// viewerData is the JSON payload embedded in the page for the JS shell.
type viewerData struct {
	Workflow  *workflow.Workflow         `json:"workflow"`
	Positions map[string]layout.Position `json:"positions"`
	Pinned    []string                   `json:"pinned"`
	NodeW     float64                    `json:"node_w"`
	NodeH     float64                    `json:"node_h"`
	Live      bool                       `json:"live"`
}

// RenderHTML produces a self-contained viewer page: the rendered SVG plus a
// small pan/zoom/drag shell. The workflow and current positions are embedded
// as JSON so the shell can hit-test nodes and report drags without another
// round trip.
func RenderHTML(wf *workflow.Workflow, g *dag.Graph, eng *layout.Engine, width float64, opts HTMLOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Workflow"
	}

	p := eng.Params()
	data, err := json.Marshal(viewerData{
		Workflow:  wf,
		Positions: eng.Positions(),
		Pinned:    eng.Pinned(),
		NodeW:     p.NodeWidth,
		NodeH:     p.NodeHeight,
		Live:      opts.Live,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal viewer data: %w", err)
	}

	var buf bytes.Buffer
	err = viewerTemplate.Execute(&buf, map[string]any{
		"Title": opts.Title,
		"SVG":   string(RenderSVG(g, eng, width)),
		"Data":  string(data),
	})
	if err != nil {
		return nil, fmt.Errorf("render viewer page: %w", err)
	}
	return buf.Bytes(), nil
}

var viewerTemplate = template.Must(template.New("viewer").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>{{.Title}}</title>
  <style>
    html, body { margin: 0; height: 100%; background: #f8fafc; font-family: sans-serif; }
    #stage { width: 100%; height: 100%; overflow: hidden; cursor: grab; }
    #stage.panning { cursor: grabbing; }
    .zoom-controls { position: fixed; right: 16px; bottom: 16px; display: flex; flex-direction: column; gap: 4px; }
    .zoom-controls button { width: 32px; height: 32px; border: 1px solid #cbd5e1; border-radius: 6px; background: #fff; cursor: pointer; }
    .node { cursor: move; }
  </style>
</head>
<body>
  <div id="stage">{{.SVG}}</div>
  <div class="zoom-controls">
    <button id="zoom-in" title="Zoom In">+</button>
    <button id="zoom-out" title="Zoom Out">&minus;</button>
    <button id="zoom-reset" title="Reset View">&#8634;</button>
  </div>
  <script id="workflow-data" type="application/json">{{.Data}}</script>
  <script>
    const data = JSON.parse(document.getElementById("workflow-data").textContent);
    const svg = document.querySelector("#stage svg");
    const view = { x: 0, y: 0, scale: 1 };

    function applyView() {
      svg.style.transform = "translate(" + view.x + "px," + view.y + "px) scale(" + view.scale + ")";
      svg.style.transformOrigin = "0 0";
    }
    function zoomBy(f) { view.scale = Math.min(4, Math.max(0.25, view.scale * f)); applyView(); }
    document.getElementById("zoom-in").addEventListener("click", () => zoomBy(1.2));
    document.getElementById("zoom-out").addEventListener("click", () => zoomBy(1 / 1.2));
    document.getElementById("zoom-reset").addEventListener("click", () => { view.x = 0; view.y = 0; view.scale = 1; applyView(); });

    const stage = document.getElementById("stage");
    stage.addEventListener("wheel", e => { e.preventDefault(); zoomBy(e.deltaY < 0 ? 1.1 : 1 / 1.1); }, { passive: false });

    let pan = null, drag = null;
    stage.addEventListener("pointerdown", e => {
      const nodeEl = e.target.closest(".node");
      if (nodeEl) {
        const id = nodeEl.id.replace("node-", "");
        drag = { id, el: nodeEl, startX: e.clientX, startY: e.clientY, pos: { ...data.positions[id] } };
      } else {
        pan = { startX: e.clientX - view.x, startY: e.clientY - view.y };
        stage.classList.add("panning");
      }
      stage.setPointerCapture(e.pointerId);
    });
    stage.addEventListener("pointermove", e => {
      if (drag) {
        const dx = (e.clientX - drag.startX) / view.scale;
        const dy = (e.clientY - drag.startY) / view.scale;
        drag.el.setAttribute("transform", "translate(" + dx + "," + dy + ")");
        drag.moved = { x: drag.pos.x + dx, y: drag.pos.y + dy };
      } else if (pan) {
        view.x = e.clientX - pan.startX;
        view.y = e.clientY - pan.startY;
        applyView();
      }
    });
    stage.addEventListener("pointerup", () => {
      if (drag && drag.moved && data.live) {
        fetch("/api/pin", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ id: drag.id, x: drag.moved.x, y: drag.moved.y }),
        }).then(() => location.reload());
      }
      drag = null; pan = null;
      stage.classList.remove("panning");
    });

    if (data.live) {
      window.addEventListener("resize", () => {
        fetch("/api/relayout?width=" + window.innerWidth, { method: "POST" }).then(() => location.reload());
      });
    }
  </script>
</body>
</html>
`))
