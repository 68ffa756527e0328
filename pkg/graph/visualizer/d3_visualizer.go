package visualizer

import (
	"bytes"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// The HTML template for D3.js visualization
const d3Template = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>
        body {
            margin: 0;
            font-family: Arial, sans-serif;
        }
        #graph {
            width: 100%;
            height: 100vh;
            background-color: #f5f5f5;
        }
        .node {
            stroke: #fff;
            stroke-width: 1.5px;
        }
        .link {
            stroke: #cccccc;
            stroke-opacity: 0.6;
        }
        .node-label {
            font-size: 12px;
            font-weight: bold;
            pointer-events: none;
        }
        .controls, .legend {
            position: absolute;
            background-color: rgba(255,255,255,0.8);
            padding: 10px;
            border-radius: 5px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .controls { top: 10px; left: 10px; }
        .legend { top: 10px; right: 10px; }
        .legend span {
            display: inline-block;
            width: 12px;
            height: 12px;
            border-radius: 50%;
            margin-right: 6px;
        }
    </style>
</head>
<body>
    <div id="graph"></div>
    <div class="controls">
        <h3>{{.Title}}</h3>
        <p>Nodes: {{.NodeCount}}, Edges: {{.EdgeCount}}, Shared genes: {{.SharedGenes}}</p>
        <div>
            <label for="node-type-filter">Show:</label>
            <select id="node-type-filter">
                <option value="all">All nodes</option>
                <option value="shared">Shared genes only</option>
            </select>
        </div>
    </div>
    <div class="legend">
        {{range .Legend}}<div><span style="background-color: {{.Color}}"></span>{{.Label}}</div>
        {{end}}
    </div>

    <script>
        const graphData = {{.GraphData}};

        const simulation = d3.forceSimulation(graphData.nodes)
            .force("link", d3.forceLink(graphData.edges).id(d => d.id).distance(60))
            .force("charge", d3.forceManyBody().strength(-120))
            .force("center", d3.forceCenter(window.innerWidth / 2, window.innerHeight / 2));

        const svg = d3.select("#graph")
            .append("svg")
            .attr("width", "100%")
            .attr("height", "100%")
            .call(d3.zoom().on("zoom", (event) => {
                g.attr("transform", event.transform);
            }));

        const g = svg.append("g");

        const link = g.append("g")
            .selectAll("line")
            .data(graphData.edges)
            .enter()
            .append("line")
            .attr("class", "link");

        const node = g.append("g")
            .selectAll("circle")
            .data(graphData.nodes)
            .enter()
            .append("circle")
            .attr("class", "node")
            .attr("r", d => d.size)
            .attr("fill", d => d.color)
            .call(d3.drag()
                .on("start", dragstarted)
                .on("drag", dragged)
                .on("end", dragended));

        // Only pathways are labelled; genes show their symbol on hover
        const label = g.append("g")
            .selectAll("text")
            .data(graphData.nodes.filter(d => d.type === "pathway"))
            .enter()
            .append("text")
            .attr("class", "node-label")
            .attr("dx", 14)
            .attr("dy", ".35em")
            .text(d => d.label);

        node.append("title")
            .text(d => d.type === "gene"
                ? d.label + " (in " + d.count + " pathways)"
                : d.label + " (" + d.count + " genes)");

        simulation.on("tick", () => {
            link
                .attr("x1", d => d.source.x)
                .attr("y1", d => d.source.y)
                .attr("x2", d => d.target.x)
                .attr("y2", d => d.target.y);

            node
                .attr("cx", d => d.x)
                .attr("cy", d => d.y);

            label
                .attr("x", d => d.x)
                .attr("y", d => d.y);
        });

        d3.select("#node-type-filter").on("change", function() {
            if (this.value === "all") {
                node.style("visibility", "visible");
                link.style("visibility", "visible");
                return;
            }
            const visible = d => d.type === "pathway" || d.count > 1;
            node.style("visibility", d => visible(d) ? "visible" : "hidden");
            link.style("visibility", d => visible(d.source) && visible(d.target) ? "visible" : "hidden");
        });

        function dragstarted(event, d) {
            if (!event.active) simulation.alphaTarget(0.3).restart();
            d.fx = d.x;
            d.fy = d.y;
        }

        function dragged(event, d) {
            d.fx = event.x;
            d.fy = event.y;
        }

        function dragended(event, d) {
            if (!event.active) simulation.alphaTarget(0);
            d.fx = null;
            d.fy = null;
        }
    </script>
</body>
</html>
`

var d3Page = template.Must(template.New("d3").Parse(d3Template))

// LegendEntry is one row of the graph legend
type LegendEntry struct {
	Label string
	Color string
}

// Legend lists the pathway categories and the shared gene color
var Legend = []LegendEntry{
	{Label: "Cancer Pathway", Color: graph.CategoryColor(graph.CategoryCancer)},
	{Label: "Vitamin Pathway", Color: graph.CategoryColor(graph.CategoryVitamin)},
	{Label: "Diabetes Pathway", Color: graph.CategoryColor(graph.CategoryDiabetes)},
	{Label: "Drug Metabolism Pathway", Color: graph.CategoryColor(graph.CategoryDrug)},
	{Label: "Other Pathway", Color: graph.CategoryColor(graph.CategoryOther)},
	{Label: "Shared Gene", Color: graph.SharedGeneColor},
	{Label: "Gene", Color: graph.UniqueGeneColor},
}

// D3Visualizer creates D3.js-based visualizations of membership graphs
type D3Visualizer struct {
	outputPath string
	title      string
}

// NewD3Visualizer creates a new D3.js visualizer writing to outputPath
func NewD3Visualizer(outputPath string) *D3Visualizer {
	return &D3Visualizer{
		outputPath: outputPath,
		title:      "Pathway Overlap Network",
	}
}

// Visualize writes an HTML visualization of the graph to the output path
func (v *D3Visualizer) Visualize(data *graph.GraphData) error {
	dir := filepath.Dir(v.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	var buf bytes.Buffer
	if err := Render(&buf, v.title, data); err != nil {
		return err
	}

	return os.WriteFile(v.outputPath, buf.Bytes(), 0644)
}

// Render writes the D3 page for data to w
func Render(w io.Writer, title string, data *graph.GraphData) error {
	if data == nil {
		data = &graph.GraphData{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
	}

	graphData, err := sonic.ConfigStd.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to encode graph")
	}

	page := struct {
		Title       string
		GraphData   template.JS
		NodeCount   int
		EdgeCount   int
		SharedGenes int
		Legend      []LegendEntry
	}{
		Title:       title,
		GraphData:   template.JS(graphData),
		NodeCount:   len(data.Nodes),
		EdgeCount:   len(data.Edges),
		SharedGenes: data.Stats.SharedGenes,
		Legend:      Legend,
	}

	return errors.Wrap(d3Page.Execute(w, page), "failed to render graph page")
}
